package tracing

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const EnvExporterEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"

// InitTracer installs the global tracer provider and propagator. Spans are
// exported over OTLP/gRPC when an exporter endpoint is configured.
func InitTracer(l logrus.FieldLogger) func(serviceName string) (*sdktrace.TracerProvider, error) {
	return func(serviceName string) (*sdktrace.TracerProvider, error) {
		ctx := context.Background()
		res, err := resource.New(ctx, resource.WithFromEnv(), resource.WithAttributes(semconv.ServiceName(serviceName)))
		if err != nil {
			return nil, err
		}

		opts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
		if endpoint := os.Getenv(EnvExporterEndpoint); endpoint != "" {
			exporter, err := otlptracegrpc.New(ctx)
			if err != nil {
				return nil, err
			}
			opts = append(opts, sdktrace.WithBatcher(exporter))
			l.Infof("Exporting traces to [%s].", endpoint)
		} else {
			l.Infof("No trace exporter configured, spans are propagated only.")
		}

		tp := sdktrace.NewTracerProvider(opts...)
		otel.SetTracerProvider(tp)
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
		return tp, nil
	}
}

func Teardown(l logrus.FieldLogger) func(tp *sdktrace.TracerProvider) func() {
	return func(tp *sdktrace.TracerProvider) func() {
		return func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(ctx); err != nil {
				l.WithError(err).Errorf("Unable to shutdown tracer.")
			}
		}
	}
}
