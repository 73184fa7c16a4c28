package domain

import "time"

// Event types pushed to websocket subscribers.
const (
	EventHeartRateUpdate = "heartrate_update"
	EventCombinedUpdate  = "ouratimeseries_update"
)

// UpdateEvent announces that a live snapshot changed size.
type UpdateEvent struct {
	Type        string    `json:"type"`
	Count       int       `json:"count"`
	CountDiff   int       `json:"count_diff"`
	LastUpdated time.Time `json:"last_updated"`
}

// EventPublisher fans an update event out to all connected subscribers.
// Delivery is best-effort; subscribers that cannot receive are dropped.
type EventPublisher interface {
	Publish(event UpdateEvent)
}
