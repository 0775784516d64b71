package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/alexanderramin/focustrack/internal/domain"
)

const (
	serviceName    = "focustrack"
	serviceVersion = "1.0.0"
)

// Config holds OTEL exporter configuration.
type Config struct {
	Endpoint string
	Enabled  bool
	Insecure bool
}

// Exporter records session metrics on an OTEL meter provider.
type Exporter struct {
	provider      *sdkmetric.MeterProvider
	sessionsTotal metric.Int64Counter
	minutesTotal  metric.Int64Counter
	durationHist  metric.Int64Histogram
	anomalies     metric.Int64Counter
}

// NewExporter creates an exporter that pushes to the configured collector.
func NewExporter(ctx context.Context, cfg Config) (*Exporter, error) {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return nil, fmt.Errorf("OTEL exporter is disabled or endpoint not configured")
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	e, err := newExporter(sdkmetric.NewPeriodicReader(exp), res)
	if err != nil {
		return nil, err
	}
	otel.SetMeterProvider(e.provider)
	return e, nil
}

func newExporter(reader sdkmetric.Reader, res *resource.Resource) (*Exporter, error) {
	opts := []sdkmetric.Option{sdkmetric.WithReader(reader)}
	if res != nil {
		opts = append(opts, sdkmetric.WithResource(res))
	}
	provider := sdkmetric.NewMeterProvider(opts...)
	meter := provider.Meter(serviceName)

	sessionsTotal, err := meter.Int64Counter(
		"focustrack_sessions_total",
		metric.WithDescription("Total number of logged focus sessions"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating sessions counter: %w", err)
	}

	minutesTotal, err := meter.Int64Counter(
		"focustrack_focus_minutes_total",
		metric.WithDescription("Total focused minutes"),
		metric.WithUnit("min"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating minutes counter: %w", err)
	}

	durationHist, err := meter.Int64Histogram(
		"focustrack_session_duration_minutes",
		metric.WithDescription("Focus session duration in minutes"),
		metric.WithUnit("min"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}

	anomalies, err := meter.Int64Counter(
		"focustrack_session_anomalies_total",
		metric.WithDescription("Sessions whose end preceded their start"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating anomalies counter: %w", err)
	}

	return &Exporter{
		provider:      provider,
		sessionsTotal: sessionsTotal,
		minutesTotal:  minutesTotal,
		durationHist:  durationHist,
		anomalies:     anomalies,
	}, nil
}

// RecordSession records one logged session.
func (e *Exporter) RecordSession(ctx context.Context, username string, rec domain.SessionRecord, source string) error {
	opt := metric.WithAttributes(
		attribute.String("user", username),
		attribute.String("category", rec.Category),
		attribute.String("source", source),
	)

	minutes := int64(rec.DurationMinutes)
	if minutes < 0 {
		minutes = 0
	}
	e.sessionsTotal.Add(ctx, 1, opt)
	e.minutesTotal.Add(ctx, minutes, opt)
	e.durationHist.Record(ctx, minutes, opt)
	if rec.IsAnomalous() {
		e.anomalies.Add(ctx, 1, opt)
	}
	return nil
}

// Close shuts down the provider and flushes pending metrics.
func (e *Exporter) Close(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}
