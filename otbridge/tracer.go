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

// Package otbridge exposes a tracewire Tracer through the OpenTracing
// API, so code instrumented against opentracing-go emits spans into
// the W3C propagation core without changes.
package otbridge

import (
	"fmt"

	otobserver "github.com/opentracing-contrib/go-observer"
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"

	tracewire "github.com/tracewire/tracewire-go"
)

type tracerImpl struct {
	core *tracewire.Tracer
	opts *TracerOptions
}

// TracerOptions allows creating a customized bridge tracer.
type TracerOptions struct {
	observer otobserver.Observer
}

// TracerOption allows for functional options.
type TracerOption func(opts *TracerOptions)

// WithObserver assigns an initialized observer to opts.observer
func WithObserver(observer otobserver.Observer) TracerOption {
	return func(opts *TracerOptions) {
		opts.observer = observer
	}
}

// Wrap receives a tracewire tracer and returns an opentracing tracer.
func Wrap(core *tracewire.Tracer, opts ...TracerOption) opentracing.Tracer {
	t := &tracerImpl{
		core: core,
		opts: &TracerOptions{},
	}
	for _, o := range opts {
		o(t.opts)
	}
	return t
}

func (t *tracerImpl) StartSpan(operationName string, opts ...opentracing.StartSpanOption) opentracing.Span {
	var startSpanOptions opentracing.StartSpanOptions
	for _, opt := range opts {
		opt.Apply(&startSpanOptions)
	}

	var startOpts []tracewire.StartSpanOption

	// Parent
	if len(startSpanOptions.References) > 0 {
		if parent, ok := (startSpanOptions.References[0].ReferencedContext).(SpanContext); ok {
			startOpts = append(startOpts, tracewire.WithParent(tracewire.SpanContext(parent)))
		}
	}

	if !startSpanOptions.StartTime.IsZero() {
		startOpts = append(startOpts, tracewire.WithStartTime(startSpanOptions.StartTime))
	}

	kind, tags := splitKindFromTags(startSpanOptions.Tags)
	if len(tags) > 0 {
		startOpts = append(startOpts, tracewire.WithTags(tags...))
	}

	sp := &spanImpl{
		span:   t.core.StartSpan(operationName, kind, startOpts...),
		tracer: t,
	}
	if t.opts.observer != nil {
		observer, _ := t.opts.observer.OnStartSpan(sp, operationName, startSpanOptions)
		sp.observer = observer
	}
	return sp
}

// splitKindFromTags translates the OpenTracing span.kind tag into a
// tracewire.SpanKind, which can only be set on span creation, and
// returns the remaining tags verbatim.
func splitKindFromTags(t map[string]interface{}) (tracewire.SpanKind, []tracewire.Tag) {
	kind := tracewire.SpanKindInternal
	tags := make([]tracewire.Tag, 0, len(t))
	for key, val := range t {
		if key == string(ext.SpanKind) {
			kind = parseKind(fmt.Sprint(val))
			continue
		}
		tags = append(tags, tracewire.Tag{Key: key, Value: val})
	}
	return kind, tags
}

func parseKind(kind string) tracewire.SpanKind {
	switch kind {
	case string(ext.SpanKindRPCServerEnum):
		return tracewire.SpanKindServer
	case string(ext.SpanKindRPCClientEnum):
		return tracewire.SpanKindClient
	case string(ext.SpanKindProducerEnum):
		return tracewire.SpanKindProducer
	case string(ext.SpanKindConsumerEnum):
		return tracewire.SpanKindConsumer
	default:
		return tracewire.SpanKindInternal
	}
}

func (t *tracerImpl) Inject(sm opentracing.SpanContext, format interface{}, carrier interface{}) error {
	sc, ok := sm.(SpanContext)
	if !ok {
		return opentracing.ErrInvalidSpanContext
	}
	switch format {
	case opentracing.TextMap, opentracing.HTTPHeaders:
		writer, ok := carrier.(opentracing.TextMapWriter)
		if !ok {
			return opentracing.ErrInvalidCarrier
		}
		return t.core.Inject(tracewire.SpanContext(sc), writer)
	}
	return opentracing.ErrUnsupportedFormat
}

func (t *tracerImpl) Extract(format interface{}, carrier interface{}) (opentracing.SpanContext, error) {
	switch format {
	case opentracing.TextMap, opentracing.HTTPHeaders:
		reader, ok := carrier.(opentracing.TextMapReader)
		if !ok {
			return nil, opentracing.ErrInvalidCarrier
		}
		sc, found := t.core.Extract(reader)
		if !found {
			return nil, opentracing.ErrSpanContextNotFound
		}
		return SpanContext(sc), nil
	}
	return nil, opentracing.ErrUnsupportedFormat
}
