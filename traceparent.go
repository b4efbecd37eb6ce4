// Copyright 2026 The Tracewire Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tracewire

import (
	"encoding/hex"
	"strings"
)

// Header names used on carriers, per https://www.w3.org/TR/trace-context/.
const (
	TraceparentHeader = "traceparent"
	TracestateHeader  = "tracestate"
)

const (
	supportedVersion = "00"

	traceparentFieldCount = 4
	flagsHexLen           = 2
)

// FormatTraceparent renders sc as a version 00 traceparent header
// value: "00-{32 hex trace id}-{16 hex span id}-{2 hex flags}". All
// hex output is lowercase.
func FormatTraceparent(sc SpanContext) string {
	return supportedVersion + "-" + sc.TraceID.String() + "-" + sc.SpanID.String() + "-" + sc.Flags.String()
}

// ParseTraceparent parses a traceparent header value into a
// SpanContext. The returned context carries an empty TraceState;
// tracestate travels in its own header and is parsed by
// ParseTraceState.
//
// Failures are reported with the sentinel errors ErrMalformedHeader,
// ErrUnsupportedVersion, ErrInvalidTraceID, ErrInvalidSpanID and
// ErrInvalidFlags.
func ParseTraceparent(header string) (SpanContext, error) {
	fields := strings.Split(header, "-")
	if len(fields) != traceparentFieldCount {
		return SpanContext{}, ErrMalformedHeader
	}
	if fields[0] != supportedVersion {
		return SpanContext{}, ErrUnsupportedVersion
	}
	traceID, err := TraceIDFromHex(fields[1])
	if err != nil {
		return SpanContext{}, err
	}
	spanID, err := SpanIDFromHex(fields[2])
	if err != nil {
		return SpanContext{}, err
	}
	if len(fields[3]) != flagsHexLen || !isLowerHex(fields[3]) {
		return SpanContext{}, ErrInvalidFlags
	}
	flags, err := hex.DecodeString(fields[3])
	if err != nil {
		return SpanContext{}, ErrInvalidFlags
	}
	return SpanContext{
		TraceID: traceID,
		SpanID:  spanID,
		Flags:   TraceFlags(flags[0]),
	}, nil
}

// ParseTraceState parses a tracestate header value. Entries are
// comma separated key=value pairs; each entry must contain exactly one
// "=" with a non-empty key after trimming surrounding whitespace, or
// parsing fails with ErrMalformedTraceState. Entry order is preserved
// exactly as given; a duplicate key keeps its first occurrence. The
// empty string parses to an empty TraceState.
func ParseTraceState(header string) (TraceState, error) {
	if header == "" {
		return TraceState{}, nil
	}
	parts := strings.Split(header, ",")
	entries := make([]TraceStateEntry, 0, len(parts))
	seen := make(map[string]bool, len(parts))
	for _, part := range parts {
		if strings.Count(part, "=") != 1 {
			return TraceState{}, ErrMalformedTraceState
		}
		eq := strings.IndexByte(part, '=')
		key := strings.TrimSpace(part[:eq])
		value := strings.TrimSpace(part[eq+1:])
		if key == "" {
			return TraceState{}, ErrMalformedTraceState
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		entries = append(entries, TraceStateEntry{Key: key, Value: value})
	}
	return TraceState{entries: entries}, nil
}
