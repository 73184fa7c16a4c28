package timeseries

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/michael-de-wit/mood-ring-backend/internal/domain"
	"github.com/michael-de-wit/mood-ring-backend/internal/logging"
	"github.com/michael-de-wit/mood-ring-backend/internal/metrics"
	"github.com/michael-de-wit/mood-ring-backend/internal/oura"
)

// Poller re-runs the fetch-normalize-aggregate pipeline on a fixed
// interval, replaces the live snapshots, and publishes an update event
// whenever a snapshot's record count moves. A failed tick keeps the
// previous snapshots and counts; the next tick proceeds on schedule.
//
// The loop has no stop signal and runs until process exit.
type Poller struct {
	svc       *Service
	state     *State
	publisher domain.EventPublisher
	clock     clockwork.Clock
	interval  time.Duration

	mu                 sync.Mutex
	prevHeartRateCount int
	prevCombinedCount  int
}

// NewPoller wires the recurring poll task. publisher may be nil, in which
// case count changes update snapshots without notifying anyone.
func NewPoller(svc *Service, state *State, publisher domain.EventPublisher, clock clockwork.Clock, interval time.Duration) *Poller {
	return &Poller{
		svc:       svc,
		state:     state,
		publisher: publisher,
		clock:     clock,
		interval:  interval,
	}
}

// Start launches the recurring poll loop on its own goroutine so a slow
// vendor response never stalls request handling.
func (p *Poller) Start() {
	go func() {
		for {
			p.tick(context.Background())
			p.clock.Sleep(p.interval)
		}
	}()
}

// tick runs one full poll cycle: heart-rate pull, snapshot replacement and
// conditional notify, then the combined refresh reusing the same pull.
func (p *Poller) tick(ctx context.Context) {
	log := logging.WithTick(uuid.NewString())
	timer := prometheus.NewTimer(metrics.PollCycleDuration)
	defer timer.ObserveDuration()

	heartRate, err := p.svc.HeartRate(ctx, oura.DateTimeWindow{})
	if err != nil {
		metrics.PollCyclesTotal.WithLabelValues("error").Inc()
		log.Error("Heart rate poll failed, keeping previous snapshot", "error", err)
		return
	}

	p.mu.Lock()
	diff := len(heartRate) - p.prevHeartRateCount
	p.prevHeartRateCount = len(heartRate)
	p.mu.Unlock()

	snap := p.state.HeartRate.Write(heartRate)
	log.Debug("Heart rate snapshot replaced", "count", snap.Count, "count_diff", diff)
	if diff != 0 {
		p.publish(domain.UpdateEvent{
			Type:        domain.EventHeartRateUpdate,
			Count:       snap.Count,
			CountDiff:   diff,
			LastUpdated: snap.LastUpdated,
		})
	}

	if err := p.refreshCombined(ctx, heartRate); err != nil {
		metrics.PollCyclesTotal.WithLabelValues("error").Inc()
		log.Error("Combined refresh failed, keeping previous snapshot", "error", err)
		return
	}

	metrics.PollCyclesTotal.WithLabelValues("ok").Inc()
}

// RefreshCombined re-runs the combined pipeline out of band (webhook
// trigger) with the same snapshot and notification behavior as a tick's
// combined step. Concurrent refreshes are tolerated; last write wins.
func (p *Poller) RefreshCombined(ctx context.Context) error {
	return p.refreshCombined(ctx, nil)
}

func (p *Poller) refreshCombined(ctx context.Context, prefetched []oura.HeartRateSample) error {
	combined, err := p.svc.Combined(ctx, oura.DateTimeWindow{}, prefetched)
	if err != nil {
		return err
	}

	p.mu.Lock()
	diff := len(combined) - p.prevCombinedCount
	p.prevCombinedCount = len(combined)
	p.mu.Unlock()

	snap := p.state.Combined.Write(combined)
	if diff != 0 {
		p.publish(domain.UpdateEvent{
			Type:        domain.EventCombinedUpdate,
			Count:       snap.Count,
			CountDiff:   diff,
			LastUpdated: snap.LastUpdated,
		})
	}
	return nil
}

func (p *Poller) publish(event domain.UpdateEvent) {
	if p.publisher == nil {
		return
	}
	metrics.BroadcastsTotal.WithLabelValues(event.Type).Inc()
	p.publisher.Publish(event)
}
