// Package messaging simulates a producer→broker→consumer hop with W3C
// trace context travelling in the message headers. It is the reference
// binding for the tracewire carrier surface; real broker bindings
// (AMQP headers, Kafka record headers) follow the same shape.
package messaging

import "fmt"

// Attribute keys recorded on publish and process spans.
const (
	TagSystem      = "messaging.system"
	TagDestination = "messaging.destination.name"
	TagOperation   = "messaging.operation"
	TagMessageID   = "messaging.message.id"
	TagOrphaned    = "messaging.orphaned"
	TagErrorType   = "error.type"
)

// HeaderCarrier adapts message headers to the tracewire carrier
// surface. It satisfies opentracing.TextMapWriter and TextMapReader.
type HeaderCarrier map[string]string

// Set stores the header.
func (c HeaderCarrier) Set(key, val string) {
	c[key] = val
}

// ForeachKey walks every header.
func (c HeaderCarrier) ForeachKey(handler func(key, val string) error) error {
	for k, v := range c {
		if err := handler(k, v); err != nil {
			return err
		}
	}
	return nil
}

// Message is the transient data exchange object crossing the hop. The
// producer writes trace context into Headers; the consumer reads it
// back. Nothing owns a Message.
type Message struct {
	ID          string
	Destination string
	Headers     HeaderCarrier
	Payload     Payload
}

// Payload is the business content of a message.
type Payload struct {
	OrderID string
	Amount  int64
}

// Validate checks the payload against the business rules. The returned
// error text ends up as the consumer span's status description.
func (p Payload) Validate() error {
	if p.OrderID == "" {
		return fmt.Errorf("%w: empty order id", ErrInvalidPayload)
	}
	if p.Amount <= 0 {
		return fmt.Errorf("%w: amount %d must be positive", ErrInvalidPayload, p.Amount)
	}
	return nil
}
