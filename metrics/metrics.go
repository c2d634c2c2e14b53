// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fallback response sources
const (
	SourceLLM   = "llm"
	SourceRules = "rules"
)

// Metrics provides observability for the chat and dashboard analytics.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Chat messages by classified intent
	ChatIntents *prometheus.CounterVec

	// Replies produced by the language model or the static rules
	FallbackResponses *prometheus.CounterVec

	// Visualization aggregate latency, including the voter query
	VisualizationLatency prometheus.Histogram
}

// New creates a Metrics instance registered on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ChatIntents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "campaign_chat_intents_total",
			Help: "Total chat messages by classified intent",
		}, []string{"intent"}),

		FallbackResponses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "campaign_fallback_responses_total",
			Help: "Total generated replies (chat fallback and issue summaries) by source",
		}, []string{"source"}), // source: "llm", "rules"

		VisualizationLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "campaign_visualization_duration_seconds",
			Help:    "Duration of visualization aggregation including the voter query",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

// IncrementIntent records a classified chat message.
func (m *Metrics) IncrementIntent(intent string) {
	if m != nil {
		m.ChatIntents.WithLabelValues(intent).Inc()
	}
}

// IncrementFallback records which source answered a general question.
func (m *Metrics) IncrementFallback(source string) {
	if m != nil {
		m.FallbackResponses.WithLabelValues(source).Inc()
	}
}

// ObserveVisualization records the duration of one aggregation.
func (m *Metrics) ObserveVisualization(d time.Duration) {
	if m != nil {
		m.VisualizationLatency.Observe(d.Seconds())
	}
}
