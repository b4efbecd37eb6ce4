package otbridge

import (
	tracewire "github.com/tracewire/tracewire-go"
)

// SpanContext wraps the tracewire span identity for the OpenTracing
// API surface.
type SpanContext tracewire.SpanContext

// ForeachBaggageItem belongs to the opentracing.SpanContext interface.
// Tracewire propagates tracestate, not OpenTracing baggage, so there
// is nothing to iterate.
func (c SpanContext) ForeachBaggageItem(handler func(k, v string) bool) {
}
