// Package timeseries fuses heart-rate and session measurements into one
// time-ordered stream and keeps the process-wide live snapshots of it: the
// aggregator service, the snapshot store, and the recurring poller.
package timeseries
