package analyze

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Tracer opens an OpenTelemetry span per Run and aggregates rejection
// reasons and emission errors into a Summary for diagnostics. Spans
// give the same counters a place to live in a real trace backend, not
// just in the returned Summary.
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer returns a Tracer using the process-wide OpenTelemetry
// provider. Wiring an actual exporter is the caller's concern; an
// unconfigured provider's no-op tracer still drives Summary correctly.
func NewTracer() *Tracer {
	return &Tracer{tracer: otel.Tracer("github.com/c360studio/entity-analyzer/analyze")}
}

// Summary is one run's diagnostic counters: rejection reasons keyed by
// "<stage>: <reason>", plus a count of EmissionInvalid errors swallowed
// during factory construction.
type Summary struct {
	Rejections     map[string]int
	EmissionErrors int
}

// runTrace is the live per-run recorder a Tracer hands a Run.
type runTrace struct {
	span trace.Span

	mu  sync.Mutex
	sum Summary
}

func (t *Tracer) start(ctx context.Context, sourceID string) (context.Context, *runTrace) {
	spanCtx, span := t.tracer.Start(ctx, "analyze.run",
		trace.WithAttributes(attribute.String("entity_analyzer.source_id", sourceID)))
	return spanCtx, &runTrace{span: span, sum: Summary{Rejections: make(map[string]int)}}
}

// rejection records one StageRejection: not an error, just a
// mention that didn't survive the pipeline.
func (rt *runTrace) rejection(stage, reason string) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.sum.Rejections[stage+": "+reason]++
	rt.span.AddEvent("rejection", trace.WithAttributes(
		attribute.String("stage", stage),
		attribute.String("reason", reason),
	))
}

// emissionError records one EmissionInvalid error: the
// factory couldn't construct an entity for an otherwise-surviving mention
// or pattern match.
func (rt *runTrace) emissionError(err error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.sum.EmissionErrors++
	rt.span.RecordError(err)
}

// finish closes the span and returns a copy of the accumulated Summary.
func (rt *runTrace) finish() Summary {
	rt.span.End()

	rt.mu.Lock()
	defer rt.mu.Unlock()
	out := Summary{Rejections: make(map[string]int, len(rt.sum.Rejections)), EmissionErrors: rt.sum.EmissionErrors}
	for k, v := range rt.sum.Rejections {
		out.Rejections[k] = v
	}
	return out
}
