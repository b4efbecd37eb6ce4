// Package zipkinsink forwards finished tracewire spans to a zipkin
// reporter. It is a boundary adapter: batching, retry and transmission
// are the reporter's responsibility, and a failing reporter never
// affects span creation or ending.
package zipkinsink

import (
	"encoding/binary"
	"fmt"

	"github.com/openzipkin/zipkin-go/model"
	"github.com/openzipkin/zipkin-go/reporter"

	tracewire "github.com/tracewire/tracewire-go"
)

// Reporter implements tracewire.SpanRecorder on top of a zipkin
// reporter.Reporter.
type Reporter struct {
	rep      reporter.Reporter
	endpoint *model.Endpoint
}

// Option sets a parameter for the Reporter.
type Option func(r *Reporter)

// WithLocalEndpoint names the reporting service on every span.
func WithLocalEndpoint(serviceName string) Option {
	return func(r *Reporter) {
		r.endpoint = &model.Endpoint{ServiceName: serviceName}
	}
}

// New creates a Reporter sending spans through rep.
func New(rep reporter.Reporter, opts ...Option) *Reporter {
	r := &Reporter{rep: rep}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record converts the span to the zipkin representation and hands it
// to the underlying reporter.
func (r *Reporter) Record(span tracewire.FinishedSpan) {
	r.rep.Send(toSpanModel(span, r.endpoint))
}

// Close flushes and closes the underlying reporter.
func (r *Reporter) Close() error {
	return r.rep.Close()
}

func toSpanModel(fs tracewire.FinishedSpan, endpoint *model.Endpoint) model.SpanModel {
	sampled := fs.Context.IsSampled()
	sm := model.SpanModel{
		SpanContext: model.SpanContext{
			TraceID: model.TraceID{
				High: binary.BigEndian.Uint64(fs.Context.TraceID[:8]),
				Low:  binary.BigEndian.Uint64(fs.Context.TraceID[8:]),
			},
			ID:      model.ID(binary.BigEndian.Uint64(fs.Context.SpanID[:])),
			Sampled: &sampled,
		},
		Name:          fs.Name,
		Kind:          toKind(fs.Kind),
		Timestamp:     fs.Start,
		Duration:      fs.Duration(),
		LocalEndpoint: endpoint,
		Tags:          make(map[string]string, len(fs.Tags)+2),
	}
	if !fs.ParentID.IsZero() {
		pid := model.ID(binary.BigEndian.Uint64(fs.ParentID[:]))
		sm.ParentID = &pid
	}
	for _, tag := range fs.Tags {
		sm.Tags[tag.Key] = fmt.Sprint(tag.Value)
	}
	if fs.Status == tracewire.StatusError {
		sm.Tags["error"] = fs.StatusDescription
	}
	if fs.Context.State.Len() > 0 {
		sm.Tags["w3c.tracestate"] = fs.Context.State.String()
	}
	return sm
}

func toKind(kind tracewire.SpanKind) model.Kind {
	switch kind {
	case tracewire.SpanKindServer:
		return model.Server
	case tracewire.SpanKindClient:
		return model.Client
	case tracewire.SpanKindProducer:
		return model.Producer
	case tracewire.SpanKindConsumer:
		return model.Consumer
	default:
		return model.Undetermined
	}
}
