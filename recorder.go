package tracewire

import "sync"

// A SpanRecorder handles the FinishedSpan records produced by an
// associated Tracer. Implementations decide whether and where to store
// or forward each span; they must be safe for concurrent use and must
// not assume records arrive in start order (they arrive in end order).
type SpanRecorder interface {
	Record(span FinishedSpan)
}

// InMemoryRecorder keeps finished spans in memory, in the order they
// ended. It stands in for a real telemetry backend in tests and
// simulations and is safe for concurrent use.
type InMemoryRecorder struct {
	mu    sync.Mutex
	spans []FinishedSpan
}

// NewInMemoryRecorder creates a new empty recorder.
func NewInMemoryRecorder() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Record appends the span.
func (r *InMemoryRecorder) Record(span FinishedSpan) {
	r.mu.Lock()
	r.spans = append(r.spans, span)
	r.mu.Unlock()
}

// Drain returns a copy of all recorded spans without clearing them.
func (r *InMemoryRecorder) Drain() []FinishedSpan {
	r.mu.Lock()
	defer r.mu.Unlock()
	spans := make([]FinishedSpan, len(r.spans))
	copy(spans, r.spans)
	return spans
}

// Reset discards all recorded spans.
func (r *InMemoryRecorder) Reset() {
	r.mu.Lock()
	r.spans = nil
	r.mu.Unlock()
}

// Len returns the number of recorded spans.
func (r *InMemoryRecorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.spans)
}

// TeeRecorder fans a finished span out to several recorders, e.g. an
// in-memory recorder for assertions next to a backend sink.
func TeeRecorder(recorders ...SpanRecorder) SpanRecorder {
	return teeRecorder(recorders)
}

type teeRecorder []SpanRecorder

func (t teeRecorder) Record(span FinishedSpan) {
	for _, r := range t {
		r.Record(span)
	}
}
