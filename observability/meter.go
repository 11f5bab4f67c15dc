package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/seqkit/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	ServiceName    string `mapstructure:"service_name"`
	ServiceVersion string `mapstructure:"service_version"`
	Environment    string `mapstructure:"environment"`
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string `mapstructure:"endpoint"`
	Insecure bool   `mapstructure:"insecure"`
	// Interval is the metric export interval.
	Interval time.Duration `mapstructure:"interval"`
}

// DefaultMeterConfig returns defaults for a local collector.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "dev",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter installs a periodic OTLP meter provider as the global one.
// Shut the returned provider down on exit to flush pending measurements.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	logger.Get("observability").Info("meter initialized", logger.Fields(
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))
	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the stream instruments.
type Metrics struct {
	pulls       metric.Int64Counter
	errors      metric.Int64Counter
	runDuration metric.Float64Histogram
}

// NewMetrics creates the stream instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	pulls, err := meter.Int64Counter("stream.pulls",
		metric.WithDescription("Elements produced by instrumented streams"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stream.pulls counter: %w", err)
	}

	errs, err := meter.Int64Counter("stream.errors",
		metric.WithDescription("Errors ending instrumented streams, by code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stream.errors counter: %w", err)
	}

	runDuration, err := meter.Float64Histogram("stream.run.duration",
		metric.WithDescription("Duration of terminal operations"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stream.run.duration histogram: %w", err)
	}

	return &Metrics{pulls: pulls, errors: errs, runDuration: runDuration}, nil
}

// RecordPulls adds n produced elements for stream.
func (m *Metrics) RecordPulls(ctx context.Context, stream string, n int64) {
	m.pulls.Add(ctx, n, metric.WithAttributes(streamAttr(stream)))
}

// RecordError counts an error with the given code for stream.
func (m *Metrics) RecordError(ctx context.Context, stream, code string) {
	m.errors.Add(ctx, 1, metric.WithAttributes(
		streamAttr(stream),
		attribute.String(AttrErrorCode, code),
	))
}

// RecordRun records how long a terminal operation on stream took.
func (m *Metrics) RecordRun(ctx context.Context, stream, status string, d time.Duration) {
	m.runDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
		streamAttr(stream),
		attribute.String(AttrStatus, status),
	))
}
