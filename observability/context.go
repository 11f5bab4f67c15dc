package observability

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/logger"
)

// RunContext describes one terminal run over a named stream.
type RunContext struct {
	ID        string
	Stream    string
	StartTime time.Time
	Metrics   *Metrics
}

// NewRun creates a run with a fresh ID. A nil metrics skips recording.
func NewRun(stream string, metrics *Metrics) *RunContext {
	return &RunContext{
		ID:        uuid.NewString(),
		Stream:    stream,
		StartTime: time.Now(),
		Metrics:   metrics,
	}
}

type runContextKey struct{}

// WithRun stores rc in ctx and tags ctx for run-correlated logging.
func WithRun(ctx context.Context, rc *RunContext) context.Context {
	ctx = context.WithValue(ctx, runContextKey{}, rc)
	return logger.ContextWithRunID(ctx, rc.ID)
}

// RunFromContext returns the RunContext stored in ctx, or nil.
func RunFromContext(ctx context.Context) *RunContext {
	if rc, ok := ctx.Value(runContextKey{}).(*RunContext); ok {
		return rc
	}
	return nil
}

// Start opens the run's span and returns a context carrying both.
func (rc *RunContext) Start(ctx context.Context) (context.Context, trace.Span) {
	ctx, span := StartSpan(WithRun(ctx, rc), SpanStreamRun, trace.WithAttributes(
		streamAttr(rc.Stream),
		attribute.String(AttrRunID, rc.ID),
	))
	if sc := span.SpanContext(); sc.IsValid() {
		ctx = logger.ContextWithTrace(ctx, sc.TraceID().String(), sc.SpanID().String())
	}
	return ctx, span
}

// End closes span, records the run duration and logs a summary.
func (rc *RunContext) End(ctx context.Context, span trace.Span, err error) {
	d := rc.Duration()
	status := statusOf(err)

	span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int64(AttrDurationMs, d.Milliseconds()),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()

	if rc.Metrics != nil {
		rc.Metrics.RecordRun(ctx, rc.Stream, status, d)
	}

	log := logger.Get("observability").WithContext(ctx)
	fields := logger.Fields(logger.FieldStream, rc.Stream, logger.FieldDuration, d.Milliseconds())
	if err != nil {
		log.Warn("run failed", logger.MergeWithError(fields, err))
		return
	}
	log.Debug("run finished", fields)
}

// Duration returns the time elapsed since the run started.
func (rc *RunContext) Duration() time.Duration {
	return time.Since(rc.StartTime)
}

// Run executes fn as a traced, timed run of stream.
//
//	names, err := observability.Run(ctx, "friends", metrics, func(ctx context.Context) ([]string, error) {
//	    return stream.FromSlice(friends).ToSlice(ctx)
//	})
func Run[R any](ctx context.Context, stream string, metrics *Metrics, fn func(context.Context) (R, error)) (R, error) {
	rc := NewRun(stream, metrics)
	ctx, span := rc.Start(ctx)
	out, err := fn(ctx)
	rc.End(ctx, span, err)
	return out, err
}

func statusOf(err error) string {
	if err == nil {
		return "ok"
	}
	return codeOf(err)
}

func codeOf(err error) string {
	if appErr, ok := errors.AsAppError(err); ok {
		return string(appErr.Code)
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return string(errors.ErrCodeTimeout)
	}
	return string(errors.ErrCodeInternal)
}
