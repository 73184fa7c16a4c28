package oura

import (
	"log/slog"
	"time"
)

// wireTimestampLayout matches the rendering Oura uses on the wire
// (millisecond precision, colon-separated UTC offset). Expanded samples
// keep this layout so their timestamps stay lexically comparable with
// upstream ones.
const wireTimestampLayout = "2006-01-02T15:04:05.000-07:00"

// SessionSample is one reconstructed reading from a session interval block.
type SessionSample struct {
	Timestamp string
	Value     float64
}

// ExpandedSession holds the reconstructed samples of one or more session
// records, concatenated per field kind.
type ExpandedSession struct {
	HeartRate            []SessionSample
	HeartRateVariability []SessionSample
	MotionCount          []SessionSample
}

// ExpandSession reconstructs timestamped samples from the interval blocks
// of a single session record. Absent blocks are skipped without error.
func ExpandSession(session Session) ExpandedSession {
	return ExpandedSession{
		HeartRate:            expandBlock(session.HeartRate),
		HeartRateVariability: expandBlock(session.HeartRateVariability),
		MotionCount:          expandBlock(session.MotionCount),
	}
}

// ExpandSessions expands each session independently and concatenates the
// results per field kind; samples of different sessions are never
// interleaved.
func ExpandSessions(sessions []Session) ExpandedSession {
	var out ExpandedSession
	for _, session := range sessions {
		expanded := ExpandSession(session)
		out.HeartRate = append(out.HeartRate, expanded.HeartRate...)
		out.HeartRateVariability = append(out.HeartRateVariability, expanded.HeartRateVariability...)
		out.MotionCount = append(out.MotionCount, expanded.MotionCount...)
	}
	return out
}

// expandBlock turns one interval block into evenly-spaced samples. The
// block's anchor timestamp marks the SECOND sample: items[0] sits one
// interval before the anchor, items[i] at anchor + (i-1)*interval. This
// alignment is inferred from observed traces, not documented upstream.
func expandBlock(block *IntervalBlock) []SessionSample {
	if block == nil || len(block.Items) == 0 {
		return nil
	}

	anchor, err := time.Parse(time.RFC3339, block.Timestamp)
	if err != nil {
		slog.Warn("Skipping interval block with unparsable anchor timestamp",
			"timestamp", block.Timestamp, "error", err)
		return nil
	}

	samples := make([]SessionSample, 0, len(block.Items))
	for i, value := range block.Items {
		offset := time.Duration(float64(i-1) * block.Interval * float64(time.Second))
		samples = append(samples, SessionSample{
			Timestamp: anchor.Add(offset).Format(wireTimestampLayout),
			Value:     value,
		})
	}
	return samples
}
