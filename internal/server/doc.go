// Package server wires the HTTP surface: polling endpoints, live snapshot
// reads, the Oura webhook, the websocket subscription, and the
// health/metrics routes.
package server
