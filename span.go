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
	"sync"
	"time"
)

// SpanKind describes the role of a span in a trace.
type SpanKind int

// Available span kinds.
const (
	SpanKindInternal SpanKind = iota
	SpanKindServer
	SpanKindClient
	SpanKindProducer
	SpanKindConsumer
)

func (k SpanKind) String() string {
	switch k {
	case SpanKindServer:
		return "server"
	case SpanKindClient:
		return "client"
	case SpanKindProducer:
		return "producer"
	case SpanKindConsumer:
		return "consumer"
	default:
		return "internal"
	}
}

// SpanStatus is the outcome recorded on a span.
type SpanStatus int

// Available span statuses.
const (
	StatusUnset SpanStatus = iota
	StatusOK
	StatusError
)

func (s SpanStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusError:
		return "error"
	default:
		return "unset"
	}
}

// Tag is a single span attribute. Tags keep insertion order; setting
// an existing key updates it in place.
type Tag struct {
	Key   string
	Value interface{}
}

// Span is a started, not yet ended unit of work. It has exactly two
// lifecycle states: started and ended. While started, tags and status
// are mutable; End freezes it and hands the FinishedSpan to the
// tracer's recorder. Every mutation after End fails with
// ErrSpanAlreadyEnded.
//
// A Span is safe for concurrent use.
type Span struct {
	tracer   *Tracer
	observer SpanObserver

	mu         sync.Mutex
	context    SpanContext
	parentID   SpanID
	name       string
	kind       SpanKind
	start      time.Time
	tags       []Tag
	status     SpanStatus
	statusDesc string
	ended      bool
}

// Context returns the span's immutable identity.
func (s *Span) Context() SpanContext { return s.context }

// ParentSpanID returns the parent span id, zero for a root span.
func (s *Span) ParentSpanID() SpanID { return s.parentID }

// Kind returns the span kind.
func (s *Span) Kind() SpanKind { return s.kind }

// Name returns the operation name.
func (s *Span) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// SetName renames the span. Fails with ErrSpanAlreadyEnded after End.
func (s *Span) SetName(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return ErrSpanAlreadyEnded
	}
	s.name = name
	return nil
}

// SetTag sets a span attribute, replacing the value of an existing key
// while keeping its position. Fails with ErrSpanAlreadyEnded after End.
func (s *Span) SetTag(key string, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return ErrSpanAlreadyEnded
	}
	for i := range s.tags {
		if s.tags[i].Key == key {
			s.tags[i].Value = value
			s.notifyTag(key, value)
			return nil
		}
	}
	s.tags = append(s.tags, Tag{Key: key, Value: value})
	s.notifyTag(key, value)
	return nil
}

// SetStatus records the span outcome. The description is retained for
// diagnostics; for StatusError it should say what failed. Fails with
// ErrSpanAlreadyEnded after End.
func (s *Span) SetStatus(status SpanStatus, description string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return ErrSpanAlreadyEnded
	}
	s.status = status
	s.statusDesc = description
	if s.observer != nil {
		s.observer.OnSetStatus(status, description)
	}
	return nil
}

// End freezes the span, stamps the end time and hands the resulting
// FinishedSpan to the tracer's recorder. It must be called exactly
// once; a second call fails with ErrSpanAlreadyEnded and records
// nothing.
func (s *Span) End() (FinishedSpan, error) {
	return s.EndWithTime(time.Now())
}

// EndWithTime is End with an explicit end timestamp.
func (s *Span) EndWithTime(at time.Time) (FinishedSpan, error) {
	s.mu.Lock()
	if s.ended {
		s.mu.Unlock()
		return FinishedSpan{}, ErrSpanAlreadyEnded
	}
	s.ended = true
	fs := FinishedSpan{
		Context:           s.context,
		ParentID:          s.parentID,
		Name:              s.name,
		Kind:              s.kind,
		Start:             s.start,
		End:               at,
		Tags:              append([]Tag(nil), s.tags...),
		Status:            s.status,
		StatusDescription: s.statusDesc,
	}
	s.mu.Unlock()

	if s.observer != nil {
		s.observer.OnFinish(fs)
	}
	s.tracer.record(fs)
	return fs, nil
}

func (s *Span) notifyTag(key string, value interface{}) {
	if s.observer != nil {
		s.observer.OnSetTag(key, value)
	}
}

// FinishedSpan is the immutable record of an ended span, as handed to
// the recorder.
type FinishedSpan struct {
	Context           SpanContext
	ParentID          SpanID
	Name              string
	Kind              SpanKind
	Start             time.Time
	End               time.Time
	Tags              []Tag
	Status            SpanStatus
	StatusDescription string
}

// Duration returns End minus Start.
func (fs FinishedSpan) Duration() time.Duration { return fs.End.Sub(fs.Start) }

// LookupTag returns the value recorded under key.
func (fs FinishedSpan) LookupTag(key string) (interface{}, bool) {
	for _, t := range fs.Tags {
		if t.Key == key {
			return t.Value, true
		}
	}
	return nil, false
}
