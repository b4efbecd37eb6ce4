package tracewire

// Observer can be registered on a Tracer to receive notifications
// about new spans. Observers are how metrics or debugging layers hook
// into the span lifecycle without sitting in the recorder path.
type Observer interface {
	// OnStartSpan is called when a span starts and returns the span
	// observer that receives the span's subsequent events, or nil if
	// this observer is not interested in the span.
	OnStartSpan(span *Span) SpanObserver
}

// SpanObserver receives notifications about events on a single span.
type SpanObserver interface {
	// OnSetTag is called from Span.SetTag.
	OnSetTag(key string, value interface{})
	// OnSetStatus is called from Span.SetStatus.
	OnSetStatus(status SpanStatus, description string)
	// OnFinish is called from Span.End with the frozen record, before
	// it is handed to the recorder.
	OnFinish(span FinishedSpan)
}

// observer dispatches to all registered observers.
type observer struct {
	observers []Observer
}

// spanObserver dispatches to the span observers interested in a span.
type spanObserver struct {
	observers []SpanObserver
}

func (o observer) OnStartSpan(span *Span) SpanObserver {
	var interested []SpanObserver
	for _, obs := range o.observers {
		if so := obs.OnStartSpan(span); so != nil {
			interested = append(interested, so)
		}
	}
	if len(interested) == 0 {
		return nil
	}
	return spanObserver{observers: interested}
}

func (o spanObserver) OnSetTag(key string, value interface{}) {
	for _, obs := range o.observers {
		obs.OnSetTag(key, value)
	}
}

func (o spanObserver) OnSetStatus(status SpanStatus, description string) {
	for _, obs := range o.observers {
		obs.OnSetStatus(status, description)
	}
}

func (o spanObserver) OnFinish(span FinishedSpan) {
	for _, obs := range o.observers {
		obs.OnFinish(span)
	}
}
