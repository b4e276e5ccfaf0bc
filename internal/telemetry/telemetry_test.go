package telemetry

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
)

func TestSetup_Stdout(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	shutdown, err := Setup(context.Background(), "test", true)
	if err != nil {
		t.Fatalf("Setup() вернул ошибку: %v", err)
	}

	_, span := Tracer().Start(context.Background(), "test-span")
	if !span.SpanContext().IsValid() {
		t.Error("после Setup спаны должны записываться")
	}
	span.End()

	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown() вернул ошибку: %v", err)
	}
}
