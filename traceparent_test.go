package tracewire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustContext(t testing.TB, traceID, spanID string, flags TraceFlags) SpanContext {
	t.Helper()
	tid, err := TraceIDFromHex(traceID)
	require.NoError(t, err)
	sid, err := SpanIDFromHex(spanID)
	require.NoError(t, err)
	return SpanContext{TraceID: tid, SpanID: sid, Flags: flags}
}

func TestFormatTraceparent(t *testing.T) {
	sc := mustContext(t, "0123456789abcdef0123456789abcdef", "0123456789abcdef", FlagSampled)
	assert.Equal(t, "00-0123456789abcdef0123456789abcdef-0123456789abcdef-01", FormatTraceparent(sc))

	sc.Flags = 0
	assert.Equal(t, "00-0123456789abcdef0123456789abcdef-0123456789abcdef-00", FormatTraceparent(sc))
}

func TestParseTraceparentRoundTrip(t *testing.T) {
	contexts := []SpanContext{
		mustContext(t, "0123456789abcdef0123456789abcdef", "0123456789abcdef", FlagSampled),
		mustContext(t, "4bf92f3577b34da6a3ce929d0e0e4736", "00f067aa0ba902b7", 0),
		mustContext(t, "ffffffffffffffffffffffffffffffff", "ffffffffffffffff", 0xff),
		mustContext(t, "00000000000000000000000000000001", "0000000000000001", FlagSampled),
	}
	for _, want := range contexts {
		got, err := ParseTraceparent(FormatTraceparent(want))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestParseTraceparentErrors(t *testing.T) {
	tests := []struct {
		name   string
		header string
		err    error
	}{
		{"empty", "", ErrMalformedHeader},
		{"three fields", "00-0123456789abcdef0123456789abcdef-0123456789abcdef", ErrMalformedHeader},
		{"five fields", "00-0123456789abcdef0123456789abcdef-0123456789abcdef-01-00", ErrMalformedHeader},
		{"garbage", "not a traceparent", ErrMalformedHeader},
		{"unknown version", "01-0123456789abcdef0123456789abcdef-0123456789abcdef-01", ErrUnsupportedVersion},
		{"forbidden version", "ff-0123456789abcdef0123456789abcdef-0123456789abcdef-01", ErrUnsupportedVersion},
		{"uppercase version", "0A-0123456789abcdef0123456789abcdef-0123456789abcdef-01", ErrUnsupportedVersion},
		{"short trace id", "00-0123456789abcdef-0123456789abcdef-01", ErrInvalidTraceID},
		{"uppercase trace id", "00-0123456789ABCDEF0123456789ABCDEF-0123456789abcdef-01", ErrInvalidTraceID},
		{"zero trace id", "00-00000000000000000000000000000000-0123456789abcdef-01", ErrInvalidTraceID},
		{"short span id", "00-0123456789abcdef0123456789abcdef-0123456789ab-01", ErrInvalidSpanID},
		{"uppercase span id", "00-0123456789abcdef0123456789abcdef-0123456789ABCDEF-01", ErrInvalidSpanID},
		{"zero span id", "00-0123456789abcdef0123456789abcdef-0000000000000000-01", ErrInvalidSpanID},
		{"short flags", "00-0123456789abcdef0123456789abcdef-0123456789abcdef-1", ErrInvalidFlags},
		{"long flags", "00-0123456789abcdef0123456789abcdef-0123456789abcdef-011", ErrInvalidFlags},
		{"non hex flags", "00-0123456789abcdef0123456789abcdef-0123456789abcdef-zz", ErrInvalidFlags},
		{"uppercase flags", "00-0123456789abcdef0123456789abcdef-0123456789abcdef-0F", ErrInvalidFlags},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTraceparent(tt.header)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestParseTraceState(t *testing.T) {
	ts, err := ParseTraceState("vendor1=a,vendor2=b,vendor3=c")
	require.NoError(t, err)
	assert.Equal(t, []TraceStateEntry{
		{Key: "vendor1", Value: "a"},
		{Key: "vendor2", Value: "b"},
		{Key: "vendor3", Value: "c"},
	}, ts.Entries())

	// order round-trips through String
	assert.Equal(t, "vendor1=a,vendor2=b,vendor3=c", ts.String())
}

func TestParseTraceStateEmpty(t *testing.T) {
	ts, err := ParseTraceState("")
	require.NoError(t, err)
	assert.Equal(t, 0, ts.Len())
}

func TestParseTraceStateWhitespace(t *testing.T) {
	ts, err := ParseTraceState(" vendor1 = a , vendor2 =b")
	require.NoError(t, err)
	assert.Equal(t, "vendor1=a,vendor2=b", ts.String())
}

func TestParseTraceStateDuplicateKeepsFirst(t *testing.T) {
	ts, err := ParseTraceState("vendor=a,other=x,vendor=b")
	require.NoError(t, err)
	v, ok := ts.Get("vendor")
	require.True(t, ok)
	assert.Equal(t, "a", v)
	assert.Equal(t, 2, ts.Len())
}

func TestParseTraceStateErrors(t *testing.T) {
	for name, input := range map[string]string{
		"no equals":      "vendor1",
		"double equals":  "vendor1=a=b",
		"empty key":      "=a",
		"blank key":      "  =a",
		"empty entry":    "vendor1=a,,vendor2=b",
		"trailing comma": "vendor1=a,",
	} {
		_, err := ParseTraceState(input)
		assert.ErrorIs(t, err, ErrMalformedTraceState, name)
	}
}

func BenchmarkFormatTraceparent(b *testing.B) {
	sc := mustContext(b, "4bf92f3577b34da6a3ce929d0e0e4736", "00f067aa0ba902b7", FlagSampled)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = FormatTraceparent(sc)
	}
}

func BenchmarkParseTraceparent(b *testing.B) {
	const header = "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := ParseTraceparent(header); err != nil {
			b.Fatal(err)
		}
	}
}
