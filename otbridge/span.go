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

package otbridge

import (
	"fmt"
	"time"

	otobserver "github.com/opentracing-contrib/go-observer"
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/opentracing/opentracing-go/log"

	tracewire "github.com/tracewire/tracewire-go"
)

type spanImpl struct {
	span     *tracewire.Span
	tracer   *tracerImpl
	observer otobserver.SpanObserver
}

func (s *spanImpl) SetOperationName(operationName string) opentracing.Span {
	if s.observer != nil {
		s.observer.OnSetOperationName(operationName)
	}
	// Renaming an ended span indicates a caller bug; the core reports
	// it, the OpenTracing surface has no error channel to carry it.
	_ = s.span.SetName(operationName)
	return s
}

func (s *spanImpl) SetTag(key string, value interface{}) opentracing.Span {
	if s.observer != nil {
		s.observer.OnSetTag(key, value)
	}

	switch key {
	case string(ext.SamplingPriority):
		// sampling decisions cannot change after span creation
		return s
	case string(ext.SpanKind):
		// kind can only be set on span creation
		return s
	}

	_ = s.span.SetTag(key, value)

	if key == "error" {
		if isErr, _ := value.(bool); isErr {
			_ = s.span.SetStatus(tracewire.StatusError, "error tag set")
		}
	}
	return s
}

func (s *spanImpl) LogKV(keyValues ...interface{}) {
	fields, err := log.InterleavedKVToFields(keyValues...)
	if err != nil {
		return
	}
	s.LogFields(fields...)
}

func (s *spanImpl) LogFields(fields ...log.Field) {
	for _, field := range fields {
		_ = s.span.SetTag("log."+field.Key(), fmt.Sprint(field.Value()))
	}
}

func (s *spanImpl) LogEvent(event string) {
	s.Log(opentracing.LogData{Event: event})
}

func (s *spanImpl) LogEventWithPayload(event string, payload interface{}) {
	s.Log(opentracing.LogData{Event: event, Payload: payload})
}

func (s *spanImpl) Log(ld opentracing.LogData) {
	_ = s.span.SetTag("log."+ld.Event, fmt.Sprint(ld.Payload))
}

func (s *spanImpl) Finish() {
	if s.observer != nil {
		s.observer.OnFinish(opentracing.FinishOptions{})
	}
	_, _ = s.span.End()
}

func (s *spanImpl) FinishWithOptions(opts opentracing.FinishOptions) {
	if s.observer != nil {
		s.observer.OnFinish(opts)
	}
	for _, lr := range opts.LogRecords {
		s.LogFields(lr.Fields...)
	}
	at := opts.FinishTime
	if at.IsZero() {
		at = time.Now()
	}
	_, _ = s.span.EndWithTime(at)
}

func (s *spanImpl) Tracer() opentracing.Tracer {
	return s.tracer
}

func (s *spanImpl) Context() opentracing.SpanContext {
	return SpanContext(s.span.Context())
}

func (s *spanImpl) SetBaggageItem(key, val string) opentracing.Span {
	return s
}

func (s *spanImpl) BaggageItem(key string) string {
	return ""
}
