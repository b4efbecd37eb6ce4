package tracewire

import "errors"

var (
	// ErrMalformedHeader is returned when a traceparent header does not
	// split into exactly four hyphen separated fields.
	ErrMalformedHeader = errors.New("tracewire: malformed traceparent header")

	// ErrUnsupportedVersion is returned when the traceparent version
	// field is not a recognized version.
	ErrUnsupportedVersion = errors.New("tracewire: unsupported traceparent version")

	// ErrInvalidTraceID is returned when a trace id is not 32 lowercase
	// hex characters or is all zeros.
	ErrInvalidTraceID = errors.New("tracewire: invalid trace id")

	// ErrInvalidSpanID is returned when a span id is not 16 lowercase
	// hex characters or is all zeros.
	ErrInvalidSpanID = errors.New("tracewire: invalid span id")

	// ErrInvalidFlags is returned when the trace flags field is not
	// exactly 2 lowercase hex characters.
	ErrInvalidFlags = errors.New("tracewire: invalid trace flags")

	// ErrMalformedTraceState is returned when a tracestate entry is not
	// a single key=value pair with a non-empty key.
	ErrMalformedTraceState = errors.New("tracewire: malformed tracestate header")

	// ErrSpanAlreadyEnded is returned by span mutations after End. It
	// indicates a bug in the caller and is never swallowed.
	ErrSpanAlreadyEnded = errors.New("tracewire: span already ended")
)
