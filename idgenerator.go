package tracewire

import (
	"encoding/binary"
	"sync"

	"github.com/openzipkin/zipkin-go/idgenerator"
	"github.com/openzipkin/zipkin-go/model"
)

// IDGenerator provides trace and span ids for new root and child
// spans. Implementations must never return the all-zero id.
type IDGenerator interface {
	NewTraceID() TraceID
	NewSpanID() SpanID
}

// NewRandomIDGenerator returns the default generator, backed by the
// zipkin 128 bit random id generator.
func NewRandomIDGenerator() IDGenerator {
	return &randomIDGenerator{gen: idgenerator.NewRandom128()}
}

type randomIDGenerator struct {
	mu  sync.Mutex // the zipkin generator is not safe for concurrent use
	gen idgenerator.IDGenerator
}

func (g *randomIDGenerator) NewTraceID() TraceID {
	g.mu.Lock()
	defer g.mu.Unlock()
	var id TraceID
	for id.IsZero() {
		tid := g.gen.TraceID()
		binary.BigEndian.PutUint64(id[:8], tid.High)
		binary.BigEndian.PutUint64(id[8:], tid.Low)
	}
	return id
}

func (g *randomIDGenerator) NewSpanID() SpanID {
	g.mu.Lock()
	defer g.mu.Unlock()
	var id SpanID
	for id.IsZero() {
		// An empty trace id forces the zipkin generator to pick a
		// fresh random span id instead of reusing the trace id low.
		sid := g.gen.SpanID(model.TraceID{})
		binary.BigEndian.PutUint64(id[:], uint64(sid))
	}
	return id
}

// NewSequentialIDGenerator returns deterministic ids counting up from
// seed. Intended for tests and reproducible simulations.
func NewSequentialIDGenerator(seed uint64) IDGenerator {
	if seed == 0 {
		seed = 1
	}
	return &sequentialIDGenerator{next: seed}
}

type sequentialIDGenerator struct {
	mu   sync.Mutex
	next uint64
}

func (g *sequentialIDGenerator) NewTraceID() TraceID {
	g.mu.Lock()
	defer g.mu.Unlock()
	var id TraceID
	binary.BigEndian.PutUint64(id[8:], g.next)
	g.next++
	return id
}

func (g *sequentialIDGenerator) NewSpanID() SpanID {
	g.mu.Lock()
	defer g.mu.Unlock()
	var id SpanID
	binary.BigEndian.PutUint64(id[:], g.next)
	g.next++
	return id
}
