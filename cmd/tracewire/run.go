package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	zipkinhttp "github.com/openzipkin/zipkin-go/reporter/http"

	tracewire "github.com/tracewire/tracewire-go"
	"github.com/tracewire/tracewire-go/config"
	"github.com/tracewire/tracewire-go/messaging"
	"github.com/tracewire/tracewire-go/sink/zipkinsink"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the producer→broker→consumer simulation",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Default()
		if cfgFile != "" {
			loaded, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = loaded
		}
		return run(cfg)
	},
}

// run wires the tracer, sink and simulation together. Everything is
// constructed here and torn down before returning; there is no
// process-global tracer state.
func run(cfg *config.Config) error {
	memory := tracewire.NewInMemoryRecorder()
	recorder := tracewire.SpanRecorder(memory)

	var sink *zipkinsink.Reporter
	if cfg.ZipkinURL != "" {
		sink = zipkinsink.New(
			zipkinhttp.NewReporter(cfg.ZipkinURL),
			zipkinsink.WithLocalEndpoint(cfg.ServiceName),
		)
		recorder = tracewire.TeeRecorder(memory, sink)
	}

	rootFlags := tracewire.TraceFlags(0)
	if cfg.Sampled {
		rootFlags = tracewire.FlagSampled
	}
	tracer, err := tracewire.NewTracer(recorder,
		tracewire.WithRootFlags(rootFlags),
		tracewire.WithPropagator(tracewire.NewPropagator(
			tracewire.WithExtractErrorLogger(
				tracewire.LogWrapper(log.New(os.Stderr, "tracewire ", log.LstdFlags)),
				10*time.Second,
			),
		)),
	)
	if err != nil {
		return err
	}

	if err := simulate(tracer, cfg); err != nil {
		return err
	}

	printSpans(memory.Drain())

	if tracer.ActiveSpans() != 0 {
		fmt.Fprintf(os.Stderr, "warning: %d spans started but never ended\n", tracer.ActiveSpans())
	}
	if sink != nil {
		return sink.Close()
	}
	return nil
}

// simulate publishes cfg.MessageCount messages through the in-memory
// broker and processes them, plus two anomalies: a payload that fails
// validation and a message whose headers were stripped in transit.
func simulate(tracer *tracewire.Tracer, cfg *config.Config) error {
	broker := messaging.NewBroker(cfg.MessageCount + 2)
	producer := messaging.NewProducer(tracer, cfg.System, cfg.Destination)
	consumer := messaging.NewConsumer(tracer, cfg.System, cfg.Destination)
	deliveries := broker.Subscribe(cfg.Destination)

	for i := 0; i < cfg.MessageCount; i++ {
		payload := messaging.Payload{OrderID: fmt.Sprintf("order-%d", i+1), Amount: int64(100 * (i + 1))}
		if i == cfg.MessageCount-1 {
			// last payload is broken on purpose
			payload = messaging.Payload{OrderID: "", Amount: -1}
		}
		msg, err := producer.Publish(tracewire.SpanContext{}, payload)
		if err != nil {
			return err
		}
		if err := broker.Publish(msg); err != nil {
			return err
		}
	}

	// A message from an uninstrumented producer: no trace headers.
	orphan := messaging.Message{
		ID:          "untraced-message",
		Destination: cfg.Destination,
		Headers:     messaging.HeaderCarrier{},
		Payload:     messaging.Payload{OrderID: "order-x", Amount: 1},
	}
	if err := broker.Publish(orphan); err != nil {
		return err
	}
	broker.Close()

	for msg := range deliveries {
		// validation failures are recorded on the span; keep consuming
		if _, err := consumer.Process(msg); err != nil {
			fmt.Fprintf(os.Stderr, "message %s rejected: %v\n", msg.ID, err)
		}
	}
	return nil
}

func printSpans(spans []tracewire.FinishedSpan) {
	fmt.Printf("%-34s %-18s %-18s %-10s %-20s %s\n",
		"TRACE", "SPAN", "PARENT", "KIND", "NAME", "STATUS")
	for _, s := range spans {
		parent := "-"
		if !s.ParentID.IsZero() {
			parent = s.ParentID.String()
		}
		status := s.Status.String()
		if s.StatusDescription != "" {
			status += " (" + s.StatusDescription + ")"
		}
		fmt.Printf("%-34s %-18s %-18s %-10s %-20s %s\n",
			s.Context.TraceID, s.Context.SpanID, parent, s.Kind, s.Name, status)
	}
}
