package metrics

import (
	"time"

	"github.com/kilianp07/evsize/core/sizing"
)

// EstimateEvent represents one completed sizing computation to be recorded.
type EstimateEvent struct {
	RequestID             string
	VehicleCount          int
	AvgAnnualKmPerVehicle float64
	Result                sizing.Result
	ComputedAt            time.Time
}

// Sink records estimate events for observability purposes.
type Sink interface {
	RecordEstimate(EstimateEvent) error
}

// NopSink implements Sink with no-op methods.
type NopSink struct{}

func (NopSink) RecordEstimate(EstimateEvent) error { return nil }
