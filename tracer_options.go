package tracewire

// TracerOption allows creating a customized Tracer.
// See: http://dave.cheney.net/2014/10/17/functional-options-for-friendly-apis
type TracerOption func(t *Tracer)

// WithIDGenerator replaces the default random id generator, e.g. with
// a deterministic one in tests.
func WithIDGenerator(gen IDGenerator) TracerOption {
	return func(t *Tracer) { t.idgen = gen }
}

// WithPropagator replaces the default propagator, e.g. to route
// swallowed extraction errors to a logger.
func WithPropagator(p *Propagator) TracerOption {
	return func(t *Tracer) { t.propagator = p }
}

// WithObserver registers an observer receiving span lifecycle events.
func WithObserver(obs Observer) TracerOption {
	return func(t *Tracer) { t.observer.observers = append(t.observer.observers, obs) }
}

// WithRootFlags sets the trace flags assigned to new root spans.
// Defaults to FlagSampled.
func WithRootFlags(flags TraceFlags) TracerOption {
	return func(t *Tracer) { t.rootFlags = flags }
}
