package timeseries

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/michael-de-wit/mood-ring-backend/internal/domain"
	"github.com/michael-de-wit/mood-ring-backend/internal/oura"
)

// Snapshot is the last written value of one live stream. It is replaced
// wholesale on every write, never merged.
type Snapshot[T any] struct {
	Data        []T       `json:"data"`
	LastUpdated time.Time `json:"last_updated"`
	Count       int       `json:"count"`
}

// LiveStore holds the latest snapshot of one stream. Writes replace data,
// count, and timestamp as a single unit; reads never block writers out of
// seeing a fully-formed snapshot.
type LiveStore[T any] struct {
	mu    sync.RWMutex
	clock clockwork.Clock
	snap  Snapshot[T]
}

// NewLiveStore creates a store holding an empty initial snapshot.
func NewLiveStore[T any](clock clockwork.Clock) *LiveStore[T] {
	return &LiveStore[T]{
		clock: clock,
		snap:  Snapshot[T]{Data: []T{}},
	}
}

// Write replaces the snapshot and returns the new value.
func (s *LiveStore[T]) Write(data []T) Snapshot[T] {
	if data == nil {
		data = []T{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = Snapshot[T]{
		Data:        data,
		LastUpdated: s.clock.Now(),
		Count:       len(data),
	}
	return s.snap
}

// Read returns the last written snapshot, or the empty initial one.
func (s *LiveStore[T]) Read() Snapshot[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// State owns the two live snapshot slots: raw heart-rate pulls and combined
// aggregator output. There is no cross-slot atomicity; a reader may see one
// slot updated before the other mid-tick.
type State struct {
	HeartRate *LiveStore[oura.HeartRateSample]
	Combined  *LiveStore[domain.Measurement]
}

// NewState creates the two empty slots.
func NewState(clock clockwork.Clock) *State {
	return &State{
		HeartRate: NewLiveStore[oura.HeartRateSample](clock),
		Combined:  NewLiveStore[domain.Measurement](clock),
	}
}
