// Package broadcast fans update events out to connected websocket clients.
//
// A single hub goroutine owns the client set and processes typed commands
// from a channel; each client gets a writer goroutine draining a bounded
// send queue. Clients whose queue is full when an event is published are
// pruned after the broadcast pass.
package broadcast
