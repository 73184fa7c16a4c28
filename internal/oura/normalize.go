package oura

import (
	"github.com/michael-de-wit/mood-ring-backend/internal/domain"
)

// NormalizeHeartRate maps one raw heart-rate sample to the canonical
// measurement shape. A missing source tag is carried through empty rather
// than rejected.
func NormalizeHeartRate(sample HeartRateSample) domain.Measurement {
	return domain.Measurement{
		Timestamp:        sample.Timestamp,
		MeasurementType:  domain.MeasurementHeartRate,
		MeasurementValue: sample.BPM,
		MeasurementUnit:  domain.UnitBPM,
		SensorMode:       sample.Source,
		DataSource:       domain.DataSource,
		DeviceSource:     domain.DeviceSource,
	}
}

// NormalizeHeartRateSamples maps a raw heart-rate pull in order.
func NormalizeHeartRateSamples(samples []HeartRateSample) []domain.Measurement {
	measurements := make([]domain.Measurement, 0, len(samples))
	for _, sample := range samples {
		measurements = append(measurements, NormalizeHeartRate(sample))
	}
	return measurements
}

// NormalizeSessionSample maps one expanded session sample of the given kind.
func NormalizeSessionSample(kind domain.MeasurementType, sample SessionSample) domain.Measurement {
	return domain.Measurement{
		Timestamp:        sample.Timestamp,
		MeasurementType:  kind,
		MeasurementValue: sample.Value,
		MeasurementUnit:  domain.UnitFor(kind),
		SensorMode:       domain.SensorModeSession,
		DataSource:       domain.DataSource,
		DeviceSource:     domain.DeviceSource,
	}
}

// NormalizeExpanded maps every expanded session sample, kind by kind.
func NormalizeExpanded(expanded ExpandedSession) []domain.Measurement {
	size := len(expanded.HeartRate) + len(expanded.HeartRateVariability) + len(expanded.MotionCount)
	measurements := make([]domain.Measurement, 0, size)

	for _, sample := range expanded.HeartRate {
		measurements = append(measurements, NormalizeSessionSample(domain.MeasurementHeartRate, sample))
	}
	for _, sample := range expanded.HeartRateVariability {
		measurements = append(measurements, NormalizeSessionSample(domain.MeasurementHeartRateVariability, sample))
	}
	for _, sample := range expanded.MotionCount {
		measurements = append(measurements, NormalizeSessionSample(domain.MeasurementMotionCount, sample))
	}
	return measurements
}
