// Пакет telemetry — настройка трассировки OpenTelemetry.
package telemetry

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// ServiceName — имя сервиса в ресурсах трассировки.
const ServiceName = "swift-monitor"

// tracerName — имя инструментирующей библиотеки.
const tracerName = "github.com/bigkaa/swift-monitor"

// Tracer возвращает трассировщик сервиса из глобального провайдера.
// Без Setup спаны не записываются.
func Tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// Setup устанавливает глобальный TracerProvider.
// stdout — печатать спаны в stdout, иначе OTLP/HTTP (OTEL_EXPORTER_OTLP_* переменные).
// Возвращает функцию завершения, сбрасывающую буферы экспортёра.
func Setup(ctx context.Context, version string, stdout bool) (func(context.Context) error, error) {
	var (
		exporter sdktrace.SpanExporter
		err      error
	)
	if stdout {
		exporter, err = stdouttrace.New(stdouttrace.WithWriter(os.Stdout))
	} else {
		exporter, err = otlptracehttp.New(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка создания экспортёра трассировки: %w", err)
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", ServiceName),
		attribute.String("service.version", version),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}
