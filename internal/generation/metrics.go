package generation

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type llmMetrics struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
	requestErrors   metric.Int64Counter
	confidence      metric.Float64Histogram
}

var (
	llmMetricsOnce  sync.Once
	llmMetricsReady bool
	llmInstruments  llmMetrics
)

// ensureLLMMetrics builds the instruments exactly once. Concurrent request
// paths all funnel through here, so the guard has to be a sync.Once rather
// than a plain flag.
func ensureLLMMetrics() {
	llmMetricsOnce.Do(initLLMMetrics)
}

func initLLMMetrics() {
	meter := otel.Meter("github.com/Maximus-08/Assignment-solver/generation")

	requestCount, err := meter.Int64Counter(
		"ai.llm.request.count",
		metric.WithDescription("Number of LLM generation requests"),
	)
	if err != nil {
		return
	}
	requestDuration, err := meter.Float64Histogram(
		"ai.llm.request.duration",
		metric.WithDescription("LLM generation request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return
	}
	requestErrors, err := meter.Int64Counter(
		"ai.llm.request.errors",
		metric.WithDescription("Number of LLM generation request errors"),
	)
	if err != nil {
		return
	}
	confidence, err := meter.Float64Histogram(
		"ai.llm.solution.confidence",
		metric.WithDescription("Confidence score of generated solutions"),
	)
	if err != nil {
		return
	}

	llmInstruments = llmMetrics{
		requestCount:    requestCount,
		requestDuration: requestDuration,
		requestErrors:   requestErrors,
		confidence:      confidence,
	}
	llmMetricsReady = true
}

func recordLLMMetric(ctx context.Context, provider, model string, statusCode int, duration time.Duration, err error) {
	ensureLLMMetrics()
	if !llmMetricsReady {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("ai.provider", provider),
		attribute.String("ai.model", model),
	}
	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	llmInstruments.requestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	llmInstruments.requestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	if err != nil {
		llmInstruments.requestErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

func recordSolutionConfidence(ctx context.Context, provider, model string, score float64) {
	ensureLLMMetrics()
	if !llmMetricsReady {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("ai.provider", provider),
		attribute.String("ai.model", model),
	}
	llmInstruments.confidence.Record(ctx, score, metric.WithAttributes(attrs...))
}
