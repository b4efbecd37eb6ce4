// Package grpcmd binds gRPC metadata to the tracewire carrier surface,
// so trace context survives unary and streaming RPC hops the same way
// it does message-broker hops.
package grpcmd

import (
	"strings"

	"google.golang.org/grpc/metadata"
)

// Carrier adapts metadata.MD. It satisfies both
// opentracing.TextMapWriter and opentracing.TextMapReader, so it can
// be passed directly to Tracer.Inject and Tracer.Extract.
type Carrier metadata.MD

// Set stores the header, replacing previous values. gRPC metadata keys
// are lowercase.
func (c Carrier) Set(key, val string) {
	metadata.MD(c)[strings.ToLower(key)] = []string{val}
}

// ForeachKey walks every key/value pair in the metadata.
func (c Carrier) ForeachKey(handler func(key, val string) error) error {
	for k, vals := range c {
		for _, v := range vals {
			if err := handler(k, v); err != nil {
				return err
			}
		}
	}
	return nil
}
