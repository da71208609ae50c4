package infra

import (
	"context"
	"errors"
	"log"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/tnqbao/gau-bakery-service/config"
)

const instrumentationName = "github.com/tnqbao/gau-bakery-service"

type TelemetryClient struct {
	Tracer trace.Tracer
	Meter  metric.Meter

	requests metric.Int64Counter
	duration metric.Float64Histogram
	assetOps metric.Int64Counter

	shutdown []func(context.Context) error
}

// InitTelemetryClient exports traces and metrics over OTLP when an endpoint is
// configured and falls back to the global no-op providers otherwise.
func InitTelemetryClient(cfg *config.EnvConfig) *TelemetryClient {
	client := &TelemetryClient{}

	if cfg.Grafana.OTLPEndpoint != "" {
		if err := client.startExporters(context.Background(), cfg); err != nil {
			log.Printf("Telemetry export disabled: %v", err)
		}
	}

	if err := client.initInstruments(otel.GetTracerProvider(), otel.GetMeterProvider()); err != nil {
		log.Printf("Failed to create telemetry instruments: %v", err)
		return nil
	}
	return client
}

// NewTelemetryClient builds instruments on explicit providers.
func NewTelemetryClient(tp trace.TracerProvider, mp metric.MeterProvider) (*TelemetryClient, error) {
	client := &TelemetryClient{}
	if err := client.initInstruments(tp, mp); err != nil {
		return nil, err
	}
	return client, nil
}

func (t *TelemetryClient) startExporters(ctx context.Context, cfg *config.EnvConfig) error {
	res, err := newResource(ctx, cfg)
	if err != nil {
		return err
	}

	var traceExporter *otlptrace.Exporter
	traceExporter, err = otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(cfg.Grafana.OTLPEndpoint))
	if err != nil {
		return err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	t.shutdown = append(t.shutdown, tp.Shutdown)

	metricExporter, err := otlpmetrichttp.New(ctx, otlpmetrichttp.WithEndpoint(cfg.Grafana.OTLPEndpoint))
	if err != nil {
		return err
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter, sdkmetric.WithInterval(30*time.Second))),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)
	t.shutdown = append(t.shutdown, mp.Shutdown)

	if err := runtime.Start(runtime.WithMeterProvider(mp)); err != nil {
		log.Printf("Runtime instrumentation not started: %v", err)
	}
	return nil
}

func (t *TelemetryClient) initInstruments(tp trace.TracerProvider, mp metric.MeterProvider) error {
	t.Tracer = tp.Tracer(instrumentationName)
	t.Meter = mp.Meter(instrumentationName)

	var err error
	t.requests, err = t.Meter.Int64Counter("bakery.http.requests",
		metric.WithDescription("HTTP requests served"))
	if err != nil {
		return err
	}
	t.duration, err = t.Meter.Float64Histogram("bakery.http.duration",
		metric.WithDescription("HTTP request latency"),
		metric.WithUnit("ms"))
	if err != nil {
		return err
	}
	t.assetOps, err = t.Meter.Int64Counter("bakery.asset.operations",
		metric.WithDescription("Asset store operations by outcome"))
	return err
}

func (t *TelemetryClient) RecordRequest(ctx context.Context, method, route string, status int, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("http.route", route),
		attribute.Int("http.status_code", status),
	)
	t.requests.Add(ctx, 1, attrs)
	t.duration.Record(ctx, float64(elapsed.Microseconds())/1000, attrs)
}

func (t *TelemetryClient) RecordAssetOperation(ctx context.Context, op, outcome string) {
	t.assetOps.Add(ctx, 1, metric.WithAttributes(
		attribute.String("op", op),
		attribute.String("outcome", outcome),
	))
}

func (t *TelemetryClient) Shutdown(ctx context.Context) error {
	var errs []error
	for _, fn := range t.shutdown {
		errs = append(errs, fn(ctx))
	}
	return errors.Join(errs...)
}

func newResource(ctx context.Context, cfg *config.EnvConfig) (*resource.Resource, error) {
	return resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", cfg.Grafana.ServiceName),
			attribute.String("deployment.environment", cfg.Environment.Mode),
			attribute.String("service.namespace", cfg.Environment.Group),
		),
	)
}
