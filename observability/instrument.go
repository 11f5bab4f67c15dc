package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/seqkit/stream"
)

// Instrument wraps it so every produced element and error is counted on
// metrics under name. A span covers the iteration from the first pull to
// Close. A nil metrics records only the span.
func Instrument[T any](it stream.Iterator[T], name string, metrics *Metrics) stream.Iterator[T] {
	return &instrumented[T]{src: it, name: name, metrics: metrics}
}

// InstrumentStream applies Instrument to every run of s.
func InstrumentStream[T any](s *stream.Stream[T], name string, metrics *Metrics) *stream.Stream[T] {
	return stream.Wrap(s, func(it stream.Iterator[T]) stream.Iterator[T] {
		return Instrument(it, name, metrics)
	})
}

type instrumented[T any] struct {
	src     stream.Iterator[T]
	name    string
	metrics *Metrics

	ctx    context.Context
	span   trace.Span
	pulled int64
}

func (it *instrumented[T]) Next(ctx context.Context) (T, bool, error) {
	if it.span == nil {
		it.ctx, it.span = StartSpan(ctx, SpanStreamPull, trace.WithAttributes(streamAttr(it.name)))
	}
	v, ok, err := it.src.Next(ctx)
	if err != nil {
		it.span.RecordError(err)
		if it.metrics != nil {
			it.metrics.RecordError(it.ctx, it.name, codeOf(err))
		}
		return v, ok, err
	}
	if ok {
		it.pulled++
		if it.metrics != nil {
			it.metrics.RecordPulls(it.ctx, it.name, 1)
		}
	}
	return v, ok, nil
}

func (it *instrumented[T]) Close() error {
	err := it.src.Close()
	if it.span != nil {
		it.span.SetAttributes(attribute.Int64(AttrPulled, it.pulled))
		it.span.End()
		it.span = nil
	}
	return err
}
