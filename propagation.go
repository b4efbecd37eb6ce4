// Copyright 2026 The Tracewire Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tracewire

import (
	"strings"
	"time"

	opentracing "github.com/opentracing/opentracing-go"
)

const defaultLogInterval = 10 * time.Second

// Propagator writes and reads W3C trace context on text map carriers.
// Any type satisfying opentracing.TextMapWriter / TextMapReader works
// as a carrier: opentracing.TextMapCarrier (a plain map[string]string),
// opentracing.HTTPHeadersCarrier, messaging.HeaderCarrier, grpcmd.Carrier.
type Propagator struct {
	errors *StateLogger
}

// PropagatorOption allows customizing a Propagator.
type PropagatorOption func(p *Propagator)

// WithExtractErrorLogger routes swallowed extraction failures to
// logger, throttled to one line per distinct error per interval.
func WithExtractErrorLogger(logger Logger, interval time.Duration) PropagatorOption {
	return func(p *Propagator) {
		p.errors = NewStateLogger(logger, interval)
	}
}

// NewPropagator creates a Propagator. Extraction failures are
// discarded unless a logger is provided.
func NewPropagator(opts ...PropagatorOption) *Propagator {
	p := &Propagator{
		errors: NewStateLogger(NewNopLogger(), defaultLogInterval),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Inject writes sc into the carrier as a traceparent header, plus a
// tracestate header when the state is non-empty. Injecting an invalid
// context fails with opentracing.ErrInvalidSpanContext; a header must
// never carry a zero id.
func (p *Propagator) Inject(sc SpanContext, carrier opentracing.TextMapWriter) error {
	if !sc.IsValid() {
		return opentracing.ErrInvalidSpanContext
	}
	carrier.Set(TraceparentHeader, FormatTraceparent(sc))
	if sc.State.Len() > 0 {
		carrier.Set(TracestateHeader, sc.State.String())
	}
	return nil
}

// Extract reads trace context from the carrier. The second return
// value is false when no traceparent header is present or it fails to
// parse; a malformed upstream context must not crash the receiver, so
// the parse error is logged and swallowed and the caller starts a
// fresh root instead. A malformed tracestate is dropped while the
// parent identity is still honored. Carrier keys are matched case
// insensitively.
func (p *Propagator) Extract(carrier opentracing.TextMapReader) (SpanContext, bool) {
	var traceparent, tracestate string
	_ = carrier.ForeachKey(func(k, v string) error {
		switch strings.ToLower(k) {
		case TraceparentHeader:
			traceparent = v
		case TracestateHeader:
			tracestate = v
		}
		return nil
	})
	if traceparent == "" {
		return SpanContext{}, false
	}
	sc, err := ParseTraceparent(traceparent)
	if err != nil {
		p.errors.LogError(err)
		return SpanContext{}, false
	}
	if tracestate != "" {
		state, err := ParseTraceState(tracestate)
		if err != nil {
			p.errors.LogError(err)
		} else {
			sc.State = state
		}
	}
	return sc, true
}
