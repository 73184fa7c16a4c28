// Package domain holds the core types shared across the service: the
// canonical Measurement record, update events, and the publisher interface
// that transport code subscribes through.
package domain
