package infra

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/trace"

	"github.com/tnqbao/gau-bakery-service/config"
)

type LoggerClient struct {
	console  *slog.Logger
	remote   *slog.Logger
	provider *sdklog.LoggerProvider
}

func InitLoggerClient(cfg *config.EnvConfig) *LoggerClient {
	client := NewConsoleLogger(os.Stdout, cfg.Environment.Mode != "development")
	client.console = client.console.With(
		slog.String("service", cfg.Grafana.ServiceName),
		slog.String("env", cfg.Environment.Mode),
	)

	if cfg.Grafana.OTLPEndpoint == "" {
		return client
	}

	ctx := context.Background()
	exporter, err := otlploghttp.New(ctx, otlploghttp.WithEndpoint(cfg.Grafana.OTLPEndpoint))
	if err != nil {
		log.Printf("Failed to create OTLP log exporter, logging to console only: %v", err)
		return client
	}

	res, err := newResource(ctx, cfg)
	if err != nil {
		log.Printf("Failed to build telemetry resource: %v", err)
	}

	opts := []sdklog.LoggerProviderOption{
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
	}
	if res != nil {
		opts = append(opts, sdklog.WithResource(res))
	}
	client.provider = sdklog.NewLoggerProvider(opts...)
	global.SetLoggerProvider(client.provider)
	client.remote = otelslog.NewLogger(cfg.Grafana.ServiceName, otelslog.WithLoggerProvider(client.provider))

	return client
}

// NewConsoleLogger logs to w only. JSON output is used outside development.
func NewConsoleLogger(w io.Writer, jsonOutput bool) *LoggerClient {
	var handler slog.Handler
	if jsonOutput {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return &LoggerClient{console: slog.New(handler)}
}

func (l *LoggerClient) DebugWithContextf(ctx context.Context, format string, args ...interface{}) {
	l.log(ctx, slog.LevelDebug, fmt.Sprintf(format, args...))
}

func (l *LoggerClient) InfoWithContextf(ctx context.Context, format string, args ...interface{}) {
	l.log(ctx, slog.LevelInfo, fmt.Sprintf(format, args...))
}

func (l *LoggerClient) WarningWithContextf(ctx context.Context, format string, args ...interface{}) {
	l.log(ctx, slog.LevelWarn, fmt.Sprintf(format, args...))
}

func (l *LoggerClient) ErrorWithContextf(ctx context.Context, err error, format string, args ...interface{}) {
	attrs := []slog.Attr{}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	l.log(ctx, slog.LevelError, fmt.Sprintf(format, args...), attrs...)
}

func (l *LoggerClient) log(ctx context.Context, level slog.Level, msg string, attrs ...slog.Attr) {
	if ctx == nil {
		ctx = context.Background()
	}
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		attrs = append(attrs, slog.String("trace_id", sc.TraceID().String()))
	}

	l.console.LogAttrs(ctx, level, msg, attrs...)
	if l.remote != nil {
		l.remote.LogAttrs(ctx, level, msg, attrs...)
	}
}

// Shutdown flushes pending remote log records.
func (l *LoggerClient) Shutdown(ctx context.Context) error {
	if l.provider == nil {
		return nil
	}
	return l.provider.Shutdown(ctx)
}
