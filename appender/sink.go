package appender

import (
	"fmt"
	"os"
	"sync"
)

// ErrorSink receives failures from append and close paths. Nothing is
// propagated back into the hosting framework's control flow; every failure
// is funneled here instead.
type ErrorSink interface {
	HandleError(err error)
}

// ErrorSinkFunc adapts a function to ErrorSink.
type ErrorSinkFunc func(error)

// HandleError implements ErrorSink
func (f ErrorSinkFunc) HandleError(err error) { f(err) }

// StderrSink writes errors to stderr. It is the sink used when none is
// configured.
type StderrSink struct{}

// HandleError implements ErrorSink
func (s *StderrSink) HandleError(err error) {
	fmt.Fprintf(os.Stderr, "logfwd: %+v\n", err)
}

// NoopSink discards input
type NoopSink struct{}

// HandleError implements ErrorSink
func (s *NoopSink) HandleError(err error) {}

// MockSink records errors so they can be read in tests
type MockSink struct {
	mu   sync.Mutex
	errs []error
	n    int
}

// NewMockSink returns a new instance of MockSink
func NewMockSink() *MockSink {
	return &MockSink{errs: make([]error, 0)}
}

// HandleError implements ErrorSink
func (m *MockSink) HandleError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs = append(m.errs, err)
}

// Errors returns a copy of the errors received so far
func (m *MockSink) Errors() []error {
	m.mu.Lock()
	defer m.mu.Unlock()
	errs := make([]error, len(m.errs))
	copy(errs, m.errs)
	return errs
}

// Next returns the next recorded error, starting from the first. If there
// are no more errors, the second return value will be false
func (m *MockSink) Next() (error, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.n >= len(m.errs) {
		return nil, false
	}
	err := m.errs[m.n]
	m.n++
	return err, true
}
