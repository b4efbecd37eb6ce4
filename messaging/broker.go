package messaging

import (
	"errors"
	"sync"
)

// ErrBrokerClosed is returned by Publish after Close.
var ErrBrokerClosed = errors.New("messaging: broker closed")

// Broker is an in-memory topic transport. It stands in for a real
// message broker in simulations: one buffered channel per destination,
// delivery in publish order, no persistence.
type Broker struct {
	mu     sync.Mutex
	buffer int
	queues map[string]chan Message
	closed bool
}

// NewBroker creates a broker whose destinations buffer up to buffer
// undelivered messages.
func NewBroker(buffer int) *Broker {
	if buffer <= 0 {
		buffer = 16
	}
	return &Broker{
		buffer: buffer,
		queues: make(map[string]chan Message),
	}
}

// Publish enqueues the message on its destination. It fails when the
// broker is closed or the destination buffer is full.
func (b *Broker) Publish(msg Message) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrBrokerClosed
	}
	q := b.queue(msg.Destination)
	b.mu.Unlock()

	select {
	case q <- msg:
		return nil
	default:
		return errors.New("messaging: destination buffer full: " + msg.Destination)
	}
}

// Subscribe returns the delivery channel for a destination. The
// channel is closed when the broker closes.
func (b *Broker) Subscribe(destination string) <-chan Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.queue(destination)
}

// Close closes all destination channels. Messages already enqueued are
// still delivered.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, q := range b.queues {
		close(q)
	}
}

// queue returns the channel for destination, creating it on first use.
// Callers must hold b.mu.
func (b *Broker) queue(destination string) chan Message {
	q, ok := b.queues[destination]
	if !ok {
		q = make(chan Message, b.buffer)
		b.queues[destination] = q
	}
	return q
}
