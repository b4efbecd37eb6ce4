package zipkinsink

import (
	"testing"
	"time"

	"github.com/openzipkin/zipkin-go/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tracewire "github.com/tracewire/tracewire-go"
)

// captureReporter records sent spans in memory.
type captureReporter struct {
	sent   []model.SpanModel
	closed bool
}

func (c *captureReporter) Send(span model.SpanModel) { c.sent = append(c.sent, span) }
func (c *captureReporter) Close() error              { c.closed = true; return nil }

func finishedSpan(t *testing.T) tracewire.FinishedSpan {
	t.Helper()
	traceID, err := tracewire.TraceIDFromHex("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)
	spanID, err := tracewire.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	parentID, err := tracewire.SpanIDFromHex("0123456789abcdef")
	require.NoError(t, err)

	start := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return tracewire.FinishedSpan{
		Context: tracewire.SpanContext{
			TraceID: traceID,
			SpanID:  spanID,
			Flags:   tracewire.FlagSampled,
		},
		ParentID: parentID,
		Name:     "orders process",
		Kind:     tracewire.SpanKindConsumer,
		Start:    start,
		End:      start.Add(42 * time.Millisecond),
		Tags: []tracewire.Tag{
			{Key: "messaging.system", Value: "inmemory"},
			{Key: "retries", Value: 2},
		},
	}
}

func TestRecordConvertsToSpanModel(t *testing.T) {
	rep := &captureReporter{}
	sink := New(rep, WithLocalEndpoint("checkout"))

	sink.Record(finishedSpan(t))

	require.Len(t, rep.sent, 1)
	sent := rep.sent[0]

	assert.Equal(t, "0123456789abcdef0123456789abcdef", sent.TraceID.String())
	assert.Equal(t, "00f067aa0ba902b7", sent.ID.String())
	require.NotNil(t, sent.ParentID)
	assert.Equal(t, "0123456789abcdef", sent.ParentID.String())
	require.NotNil(t, sent.Sampled)
	assert.True(t, *sent.Sampled)

	assert.Equal(t, "orders process", sent.Name)
	assert.Equal(t, model.Consumer, sent.Kind)
	assert.Equal(t, 42*time.Millisecond, sent.Duration)
	require.NotNil(t, sent.LocalEndpoint)
	assert.Equal(t, "checkout", sent.LocalEndpoint.ServiceName)

	assert.Equal(t, "inmemory", sent.Tags["messaging.system"])
	assert.Equal(t, "2", sent.Tags["retries"], "non-string tag values are stringified")
}

func TestRecordRootSpanHasNoParent(t *testing.T) {
	rep := &captureReporter{}
	sink := New(rep)

	fs := finishedSpan(t)
	fs.ParentID = tracewire.SpanID{}
	sink.Record(fs)

	require.Len(t, rep.sent, 1)
	assert.Nil(t, rep.sent[0].ParentID)
	assert.Nil(t, rep.sent[0].LocalEndpoint)
}

func TestRecordErrorStatusBecomesErrorTag(t *testing.T) {
	rep := &captureReporter{}
	sink := New(rep)

	fs := finishedSpan(t)
	fs.Status = tracewire.StatusError
	fs.StatusDescription = "validation failed"
	sink.Record(fs)

	require.Len(t, rep.sent, 1)
	assert.Equal(t, "validation failed", rep.sent[0].Tags["error"])
}

func TestRecordTracestateTag(t *testing.T) {
	rep := &captureReporter{}
	sink := New(rep)

	fs := finishedSpan(t)
	fs.Context.State = fs.Context.State.Insert("congo", "t61rcWkgMzE")
	sink.Record(fs)

	require.Len(t, rep.sent, 1)
	assert.Equal(t, "congo=t61rcWkgMzE", rep.sent[0].Tags["w3c.tracestate"])
}

func TestKindMapping(t *testing.T) {
	assert.Equal(t, model.Producer, toKind(tracewire.SpanKindProducer))
	assert.Equal(t, model.Consumer, toKind(tracewire.SpanKindConsumer))
	assert.Equal(t, model.Client, toKind(tracewire.SpanKindClient))
	assert.Equal(t, model.Server, toKind(tracewire.SpanKindServer))
	assert.Equal(t, model.Undetermined, toKind(tracewire.SpanKindInternal))
}

func TestClose(t *testing.T) {
	rep := &captureReporter{}
	sink := New(rep)
	require.NoError(t, sink.Close())
	assert.True(t, rep.closed)
}
