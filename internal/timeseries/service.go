package timeseries

import (
	"context"
	"fmt"
	"sort"

	"github.com/michael-de-wit/mood-ring-backend/internal/domain"
	"github.com/michael-de-wit/mood-ring-backend/internal/oura"
)

// VendorClient is the read contract against the wearable API.
type VendorClient interface {
	FetchHeartRate(ctx context.Context, window oura.DateTimeWindow) ([]oura.HeartRateSample, error)
	FetchSessions(ctx context.Context, window oura.DateWindow) ([]oura.Session, error)
}

// Service orchestrates the fetch → expand → normalize → combine cycle.
type Service struct {
	client VendorClient
}

// NewService creates the aggregator service.
func NewService(client VendorClient) *Service {
	return &Service{client: client}
}

// HeartRate returns a raw heart-rate pull for the window.
func (s *Service) HeartRate(ctx context.Context, window oura.DateTimeWindow) ([]oura.HeartRateSample, error) {
	return s.client.FetchHeartRate(ctx, window)
}

// Sessions returns raw session records for the window.
func (s *Service) Sessions(ctx context.Context, window oura.DateWindow) ([]oura.Session, error) {
	return s.client.FetchSessions(ctx, window)
}

// Combine unions two measurement sequences into one, stably sorted
// ascending by timestamp string. Both inputs may be empty.
func Combine(heartRate, session []domain.Measurement) []domain.Measurement {
	combined := make([]domain.Measurement, 0, len(heartRate)+len(session))
	combined = append(combined, heartRate...)
	combined = append(combined, session...)
	sort.SliceStable(combined, func(i, j int) bool {
		return combined[i].Timestamp < combined[j].Timestamp
	})
	return combined
}

// Combined runs the full cycle over the window: fetch heart rate (unless a
// fresh pull is supplied), fetch sessions over the matching date window,
// expand, normalize, combine. Two empty sources yield an empty sequence,
// not an error.
func (s *Service) Combined(ctx context.Context, window oura.DateTimeWindow, prefetched []oura.HeartRateSample) ([]domain.Measurement, error) {
	heartRate := prefetched
	if heartRate == nil {
		var err error
		heartRate, err = s.client.FetchHeartRate(ctx, window)
		if err != nil {
			return nil, fmt.Errorf("combined refresh: %w", err)
		}
	}

	sessions, err := s.client.FetchSessions(ctx, window.Dates())
	if err != nil {
		return nil, fmt.Errorf("combined refresh: %w", err)
	}

	expanded := oura.ExpandSessions(sessions)
	return Combine(oura.NormalizeHeartRateSamples(heartRate), oura.NormalizeExpanded(expanded)), nil
}
