// Package tracewire implements the W3C Trace Context propagation model
// for messaging systems: trace/span identity, the traceparent and
// tracestate wire codec, carrier inject/extract and a span lifecycle
// with parent derivation across producer/consumer hops.
package tracewire

import (
	"encoding/hex"
	"strings"
)

// TraceID is a 16 byte probabilistically unique trace identifier. It is
// rendered on the wire as 32 lowercase hex characters. The all-zero
// value is invalid and never assigned to a started span.
type TraceID [16]byte

// SpanID is an 8 byte span identifier, rendered as 16 lowercase hex
// characters. The all-zero value is invalid.
type SpanID [8]byte

// TraceFlags is the 8 bit flags field of a traceparent header.
type TraceFlags byte

// FlagSampled is bit 0 of TraceFlags.
const FlagSampled TraceFlags = 0x01

// String returns the 32 character lowercase hex rendering.
func (t TraceID) String() string { return hex.EncodeToString(t[:]) }

// IsZero reports whether t is the invalid all-zero id.
func (t TraceID) IsZero() bool { return t == TraceID{} }

// String returns the 16 character lowercase hex rendering.
func (s SpanID) String() string { return hex.EncodeToString(s[:]) }

// IsZero reports whether s is the invalid all-zero id.
func (s SpanID) IsZero() bool { return s == SpanID{} }

// String returns the 2 character lowercase hex rendering.
func (f TraceFlags) String() string { return hex.EncodeToString([]byte{byte(f)}) }

// Sampled reports whether the sampled bit is set.
func (f TraceFlags) Sampled() bool { return f&FlagSampled != 0 }

// TraceIDFromHex decodes a 32 character lowercase hex trace id. It
// fails with ErrInvalidTraceID on wrong length, non lowercase hex
// input or the all-zero id.
func TraceIDFromHex(s string) (TraceID, error) {
	var id TraceID
	if len(s) != 2*len(id) || !isLowerHex(s) {
		return TraceID{}, ErrInvalidTraceID
	}
	if _, err := hex.Decode(id[:], []byte(s)); err != nil {
		return TraceID{}, ErrInvalidTraceID
	}
	if id.IsZero() {
		return TraceID{}, ErrInvalidTraceID
	}
	return id, nil
}

// SpanIDFromHex decodes a 16 character lowercase hex span id. It fails
// with ErrInvalidSpanID on wrong length, non lowercase hex input or
// the all-zero id.
func SpanIDFromHex(s string) (SpanID, error) {
	var id SpanID
	if len(s) != 2*len(id) || !isLowerHex(s) {
		return SpanID{}, ErrInvalidSpanID
	}
	if _, err := hex.Decode(id[:], []byte(s)); err != nil {
		return SpanID{}, ErrInvalidSpanID
	}
	if id.IsZero() {
		return SpanID{}, ErrInvalidSpanID
	}
	return id, nil
}

// TraceStateEntry is a single key=value pair of a tracestate header.
type TraceStateEntry struct {
	Key   string
	Value string
}

// TraceState is the ordered list of tracestate entries. Keys are
// unique and order is significant: the most recently updated entry
// comes first. The zero value is an empty, usable state.
type TraceState struct {
	entries []TraceStateEntry
}

// Len returns the number of entries.
func (ts TraceState) Len() int { return len(ts.entries) }

// Get returns the value stored under key.
func (ts TraceState) Get(key string) (string, bool) {
	for _, e := range ts.entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// Insert returns a new TraceState with key=value prepended. A previous
// entry with the same key is removed, keeping keys unique. The
// receiver is not modified.
func (ts TraceState) Insert(key, value string) TraceState {
	entries := make([]TraceStateEntry, 0, len(ts.entries)+1)
	entries = append(entries, TraceStateEntry{Key: key, Value: value})
	for _, e := range ts.entries {
		if e.Key != key {
			entries = append(entries, e)
		}
	}
	return TraceState{entries: entries}
}

// Entries returns a copy of the entries in order.
func (ts TraceState) Entries() []TraceStateEntry {
	if len(ts.entries) == 0 {
		return nil
	}
	entries := make([]TraceStateEntry, len(ts.entries))
	copy(entries, ts.entries)
	return entries
}

// String renders the entries as a tracestate header value.
func (ts TraceState) String() string {
	var b strings.Builder
	for i, e := range ts.entries {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(e.Key)
		b.WriteByte('=')
		b.WriteString(e.Value)
	}
	return b.String()
}

// SpanContext is the propagated identity of a span: trace id, span id,
// flags and tracestate. It is immutable once created; deriving a child
// yields a new SpanContext.
type SpanContext struct {
	TraceID TraceID
	SpanID  SpanID
	Flags   TraceFlags
	State   TraceState
}

// IsValid reports whether both ids are non-zero. The zero SpanContext
// is the explicit "no parent" value.
func (sc SpanContext) IsValid() bool {
	return !sc.TraceID.IsZero() && !sc.SpanID.IsZero()
}

// IsSampled reports whether the sampled flag is set.
func (sc SpanContext) IsSampled() bool { return sc.Flags.Sampled() }

func isLowerHex(s string) bool {
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
