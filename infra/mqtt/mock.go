package mqtt

import (
	"fmt"
	"sync"

	coremetrics "github.com/kilianp07/evsize/core/metrics"
)

// MockPublisher records published estimates for tests.
type MockPublisher struct {
	mu     sync.Mutex
	Events []coremetrics.EstimateEvent
	Fail   bool
	Closed bool
}

// NewMockPublisher creates a new MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

// PublishEstimate records the event or returns an error if configured to fail.
func (m *MockPublisher) PublishEstimate(ev coremetrics.EstimateEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail {
		return fmt.Errorf("publish failed")
	}
	m.Events = append(m.Events, ev)
	return nil
}

// Close marks the publisher as closed.
func (m *MockPublisher) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}
