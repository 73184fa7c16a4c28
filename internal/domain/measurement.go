package domain

// MeasurementType classifies a biosensor reading.
type MeasurementType string

const (
	MeasurementHeartRate            MeasurementType = "heartrate"
	MeasurementHeartRateVariability MeasurementType = "heart_rate_variability"
	MeasurementMotionCount          MeasurementType = "motion_count"
)

// Units per measurement type.
const (
	UnitBPM          = "bpm"
	UnitMilliseconds = "ms"
	UnitCount        = "count"
)

// SensorModeSession marks readings reconstructed from a session record.
// Live heart-rate samples carry whatever source tag the vendor sent.
const SensorModeSession = "session"

// Fixed provenance identifiers stamped on every normalized record.
const (
	DataSource   = "oura_api"
	DeviceSource = "oura_ring"
)

// Measurement is the canonical normalized biosensor reading. Fields are
// optional at construction; records handed downstream must carry at least
// a timestamp and a value.
type Measurement struct {
	Timestamp        string          `json:"timestamp,omitempty"`
	MeasurementType  MeasurementType `json:"measurement_type,omitempty"`
	MeasurementValue float64         `json:"measurement_value"`
	MeasurementUnit  string          `json:"measurement_unit,omitempty"`
	SensorMode       string          `json:"sensor_mode,omitempty"`
	DataSource       string          `json:"data_source,omitempty"`
	DeviceSource     string          `json:"device_source,omitempty"`
}

// UnitFor returns the fixed unit for a measurement type, or "" for an
// unknown type.
func UnitFor(t MeasurementType) string {
	switch t {
	case MeasurementHeartRate:
		return UnitBPM
	case MeasurementHeartRateVariability:
		return UnitMilliseconds
	case MeasurementMotionCount:
		return UnitCount
	default:
		return ""
	}
}
