package oura

import "time"

// HeartRateSample is one raw continuous heart-rate reading as the API
// returns it.
type HeartRateSample struct {
	BPM       float64 `json:"bpm"`
	Source    string  `json:"source,omitempty"`
	Timestamp string  `json:"timestamp"`
}

// IntervalBlock is the compressed representation of evenly-sampled readings
// inside a session record: an anchor timestamp, seconds per sample, and the
// sample values.
type IntervalBlock struct {
	Interval  float64   `json:"interval"`
	Items     []float64 `json:"items"`
	Timestamp string    `json:"timestamp"`
}

// Session is one raw discrete session record. Only the interval-sampled
// sub-fields matter downstream; the rest is carried through for the
// one-shot session endpoint.
type Session struct {
	ID                   string         `json:"id,omitempty"`
	Day                  string         `json:"day,omitempty"`
	StartDatetime        string         `json:"start_datetime,omitempty"`
	EndDatetime          string         `json:"end_datetime,omitempty"`
	Type                 string         `json:"type,omitempty"`
	Mood                 string         `json:"mood,omitempty"`
	HeartRate            *IntervalBlock `json:"heart_rate,omitempty"`
	HeartRateVariability *IntervalBlock `json:"heart_rate_variability,omitempty"`
	MotionCount          *IntervalBlock `json:"motion_count,omitempty"`
}

// WebhookEvent is the body of an inbound Oura webhook notification.
type WebhookEvent struct {
	EventType string `json:"event_type"`
	DataType  string `json:"data_type"`
	ObjectID  string `json:"object_id"`
	UserID    string `json:"user_id"`
}

// DateTimeWindow is a sub-day-precision fetch window (heart rate).
// The zero value means "use the default rolling window".
type DateTimeWindow struct {
	Start time.Time
	End   time.Time
}

func (w DateTimeWindow) IsZero() bool {
	return w.Start.IsZero() && w.End.IsZero()
}

// Dates reduces the window to day precision for resources queried by date.
func (w DateTimeWindow) Dates() DateWindow {
	return DateWindow{Start: w.Start, End: w.End}
}

// DateWindow is a day-precision fetch window (sessions). The two window
// kinds use incompatible granularity and must not be conflated.
type DateWindow struct {
	Start time.Time
	End   time.Time
}

func (w DateWindow) IsZero() bool {
	return w.Start.IsZero() && w.End.IsZero()
}

// DefaultWindow is the rolling lookback applied when a caller passes a zero
// window: the 24 hours up to now, recomputed at call time.
func DefaultWindow(now time.Time) DateTimeWindow {
	return DateTimeWindow{Start: now.Add(-24 * time.Hour), End: now}
}
