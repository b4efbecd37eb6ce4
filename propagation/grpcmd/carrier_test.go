package grpcmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/metadata"

	tracewire "github.com/tracewire/tracewire-go"
)

func TestCarrierRoundTrip(t *testing.T) {
	tracer, err := tracewire.NewTracer(tracewire.NewInMemoryRecorder(),
		tracewire.WithIDGenerator(tracewire.NewSequentialIDGenerator(1)))
	require.NoError(t, err)

	span := tracer.StartSpan("rpc", tracewire.SpanKindClient)
	sc := span.Context()
	sc.State = sc.State.Insert("vendor", "a")

	md := metadata.New(nil)
	require.NoError(t, tracer.Inject(sc, Carrier(md)))

	got, ok := tracer.Extract(Carrier(md))
	require.True(t, ok)
	assert.Equal(t, sc, got)

	_, err = span.End()
	require.NoError(t, err)
}

func TestCarrierSetLowercasesKeys(t *testing.T) {
	md := metadata.New(nil)
	Carrier(md).Set("TraceParent", "x")
	assert.Equal(t, []string{"x"}, md["traceparent"])
}

func TestCarrierSetReplaces(t *testing.T) {
	md := metadata.New(nil)
	c := Carrier(md)
	c.Set("traceparent", "first")
	c.Set("traceparent", "second")
	assert.Equal(t, []string{"second"}, md["traceparent"])
}

func TestExtractEmptyMetadata(t *testing.T) {
	tracer, err := tracewire.NewTracer(tracewire.NewInMemoryRecorder())
	require.NoError(t, err)

	_, ok := tracer.Extract(Carrier(metadata.New(nil)))
	assert.False(t, ok)
}
