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
	"errors"
	"sync/atomic"
	"time"

	opentracing "github.com/opentracing/opentracing-go"
)

// Tracer starts spans and hands the finished records to its recorder.
// It holds no process-global state: construct one explicitly and pass
// it down.
type Tracer struct {
	recorder   SpanRecorder
	idgen      IDGenerator
	propagator *Propagator
	observer   observer
	active     int64
	rootFlags  TraceFlags
}

// NewTracer creates a Tracer delivering finished spans to recorder.
func NewTracer(recorder SpanRecorder, opts ...TracerOption) (*Tracer, error) {
	if recorder == nil {
		return nil, errors.New("tracewire: recorder must not be nil")
	}
	t := &Tracer{
		recorder:  recorder,
		idgen:     NewRandomIDGenerator(),
		rootFlags: FlagSampled,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.propagator == nil {
		t.propagator = NewPropagator()
	}
	return t, nil
}

// StartSpanOptions bundles the optional StartSpan parameters.
type StartSpanOptions struct {
	Parent    SpanContext
	StartTime time.Time
	Tags      []Tag
	Flags     *TraceFlags
}

// StartSpanOption configures a single StartSpan call.
type StartSpanOption func(o *StartSpanOptions)

// WithParent makes the new span a child of parent: same trace id,
// parent span id recorded, flags and tracestate inherited. An invalid
// (zero) parent is ignored and the span becomes a fresh root; a stale
// or default id is never inherited.
func WithParent(parent SpanContext) StartSpanOption {
	return func(o *StartSpanOptions) { o.Parent = parent }
}

// WithStartTime overrides the span start timestamp.
func WithStartTime(at time.Time) StartSpanOption {
	return func(o *StartSpanOptions) { o.StartTime = at }
}

// WithTags sets initial span tags.
func WithTags(tags ...Tag) StartSpanOption {
	return func(o *StartSpanOptions) { o.Tags = append(o.Tags, tags...) }
}

// WithFlags overrides the trace flags instead of inheriting them from
// the parent or the tracer's root default.
func WithFlags(flags TraceFlags) StartSpanOption {
	return func(o *StartSpanOptions) { o.Flags = &flags }
}

// StartSpan starts a span. With a valid parent the span joins the
// parent's trace; without one it becomes a root with a fresh random
// trace id. The returned span is started and must be ended exactly
// once.
func (t *Tracer) StartSpan(name string, kind SpanKind, opts ...StartSpanOption) *Span {
	var options StartSpanOptions
	for _, opt := range opts {
		opt(&options)
	}

	sc := SpanContext{SpanID: t.idgen.NewSpanID()}
	var parentID SpanID
	if options.Parent.IsValid() {
		sc.TraceID = options.Parent.TraceID
		sc.Flags = options.Parent.Flags
		sc.State = options.Parent.State
		parentID = options.Parent.SpanID
	} else {
		sc.TraceID = t.idgen.NewTraceID()
		sc.Flags = t.rootFlags
	}
	if options.Flags != nil {
		sc.Flags = *options.Flags
	}

	start := options.StartTime
	if start.IsZero() {
		start = time.Now()
	}

	span := &Span{
		tracer:   t,
		context:  sc,
		parentID: parentID,
		name:     name,
		kind:     kind,
		start:    start,
		tags:     append([]Tag(nil), options.Tags...),
	}
	span.observer = t.observer.OnStartSpan(span)
	atomic.AddInt64(&t.active, 1)
	return span
}

// Inject writes sc into the carrier using the tracer's propagator.
func (t *Tracer) Inject(sc SpanContext, carrier opentracing.TextMapWriter) error {
	return t.propagator.Inject(sc, carrier)
}

// Extract reads trace context from the carrier. The boolean is false
// when the carrier holds no usable context; the caller must then start
// a fresh root.
func (t *Tracer) Extract(carrier opentracing.TextMapReader) (SpanContext, bool) {
	return t.propagator.Extract(carrier)
}

// ActiveSpans returns the number of started spans that have not ended.
// A value that keeps growing indicates abandoned spans: a leak, not a
// crash.
func (t *Tracer) ActiveSpans() int64 {
	return atomic.LoadInt64(&t.active)
}

func (t *Tracer) record(span FinishedSpan) {
	atomic.AddInt64(&t.active, -1)
	t.recorder.Record(span)
}
