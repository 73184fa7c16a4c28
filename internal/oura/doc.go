// Package oura talks to the Oura v2 API and turns its raw records into
// canonical measurements: a resty-based read client, the session interval
// expander, the normalizer, and the inbound webhook handler.
package oura
