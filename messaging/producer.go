package messaging

import (
	"errors"

	"github.com/google/uuid"

	tracewire "github.com/tracewire/tracewire-go"
)

// ErrInvalidPayload marks business validation failures. They are
// recorded on the consumer span as status Error, never raised out of
// the tracing boundary.
var ErrInvalidPayload = errors.New("messaging: invalid payload")

// Producer publishes messages to a destination, wrapping every publish
// in a producer span and injecting its context into the message
// headers.
type Producer struct {
	tracer *tracewire.Tracer
	system string
	dest   string
}

// NewProducer creates a producer for the given messaging system name
// (the messaging.system tag, e.g. "rabbitmq") and destination.
func NewProducer(tracer *tracewire.Tracer, system, destination string) *Producer {
	return &Producer{tracer: tracer, system: system, dest: destination}
}

// Publish builds a message carrying payload and the producer span's
// trace context. A valid parent makes the publish span part of the
// caller's trace; the zero SpanContext starts a fresh one.
func (p *Producer) Publish(parent tracewire.SpanContext, payload Payload) (Message, error) {
	span := p.tracer.StartSpan(p.dest+" publish", tracewire.SpanKindProducer,
		tracewire.WithParent(parent))

	msg := Message{
		ID:          uuid.NewString(),
		Destination: p.dest,
		Headers:     HeaderCarrier{},
		Payload:     payload,
	}
	if err := p.tracer.Inject(span.Context(), msg.Headers); err != nil {
		_, _ = span.End()
		return Message{}, err
	}

	span.SetTag(TagSystem, p.system)
	span.SetTag(TagDestination, p.dest)
	span.SetTag(TagOperation, "publish")
	span.SetTag(TagMessageID, msg.ID)

	if _, err := span.End(); err != nil {
		return Message{}, err
	}
	return msg, nil
}
