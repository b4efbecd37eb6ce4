package messaging

import (
	tracewire "github.com/tracewire/tracewire-go"
)

// Consumer processes messages from a destination, continuing the trace
// carried in the message headers.
type Consumer struct {
	tracer *tracewire.Tracer
	system string
	dest   string
}

// NewConsumer creates a consumer for the given messaging system name
// and destination.
func NewConsumer(tracer *tracewire.Tracer, system, destination string) *Consumer {
	return &Consumer{tracer: tracer, system: system, dest: destination}
}

// Process handles one message inside a consumer span. When the headers
// carry a valid trace context the span joins that trace as a child of
// the producer span; otherwise it becomes a fresh root tagged
// messaging.orphaned=true so operators can detect missing propagation.
//
// A payload that fails validation is recorded as span status Error
// with the validation message and an error.type tag; the span still
// ends normally and the validation error is returned to the caller as
// the business outcome.
func (c *Consumer) Process(msg Message) (tracewire.FinishedSpan, error) {
	parent, found := c.tracer.Extract(msg.Headers)

	opts := []tracewire.StartSpanOption{}
	if found {
		opts = append(opts, tracewire.WithParent(parent))
	}
	span := c.tracer.StartSpan(c.dest+" process", tracewire.SpanKindConsumer, opts...)
	if !found {
		span.SetTag(TagOrphaned, true)
	}

	span.SetTag(TagSystem, c.system)
	span.SetTag(TagDestination, c.dest)
	span.SetTag(TagOperation, "process")
	span.SetTag(TagMessageID, msg.ID)

	var verr error
	if err := msg.Payload.Validate(); err != nil {
		span.SetStatus(tracewire.StatusError, err.Error())
		span.SetTag(TagErrorType, "validation")
		verr = err
	} else {
		span.SetStatus(tracewire.StatusOK, "")
	}

	fs, err := span.End()
	if err != nil {
		return tracewire.FinishedSpan{}, err
	}
	return fs, verr
}
