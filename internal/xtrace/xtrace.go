// Package xtrace carries dc4eu-vc's pkg/trace otel wrapper into the
// engine in a simplified form: no exporter wiring (that is the
// surrounding application's concern), just a tracer handle that
// storage/mongostore and resolver use to name spans around their
// suspension points.
package xtrace

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Tracer names spans under a fixed instrumentation scope, the way the
// teacher's pkg/trace.Tracer embeds trace.Tracer after calling
// otel.Tracer("").
type Tracer struct {
	trace.Tracer
}

// New returns a Tracer drawing from whatever global TracerProvider the
// embedding application configured (otel.SetTracerProvider). If none was
// configured, spans are recorded by the otel no-op provider.
func New(scope string) *Tracer {
	return &Tracer{Tracer: otel.Tracer(scope)}
}

// Start is a convenience wrapper matching dc4eu-vc's "ctx, span :=
// tp.Start(ctx, name)" call shape used throughout internal/persistent/db.
func (t *Tracer) Start(ctx context.Context, name string) (context.Context, trace.Span) {
	if t == nil || t.Tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return t.Tracer.Start(ctx, name)
}
