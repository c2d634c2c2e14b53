// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package assistant

import (
	"context"
	"log/slog"
	"strings"

	"github.com/danielhkuo/campaign-pulse/metrics"
)

// TextGenerator produces free text for a prompt. *llm.Client implements it.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Static replies used when no text generator is configured or it fails
const (
	ReplyStrategy = "Campaign strategy usually includes voter outreach, door-to-door canvassing, targeted messaging, " +
		"volunteer mobilization, and monitoring booths. Be specific and test messages on small segments first."
	ReplyVoting   = "Voting is the act of making a choice in an election. Laws and procedures vary by country."
	ReplyGreeting = "Hi! I can give you live voter analytics (ask 'female voters' or 'booth 12') or general campaign advice."
	ReplyHelp     = "I can help with campaign analytics (ask about 'female voters', 'booth 12', 'top issues') " +
		"or general campaign strategy. Be specific for better results."
)

// Fallback answers general questions, preferring the text generator and
// degrading to static rules.
type Fallback struct {
	gen     TextGenerator
	metrics *metrics.Metrics
}

// NewFallback creates a Fallback. gen and m may be nil.
func NewFallback(gen TextGenerator, m *metrics.Metrics) *Fallback {
	return &Fallback{gen: gen, metrics: m}
}

// Respond always returns a reply.
func (f *Fallback) Respond(ctx context.Context, text string) string {
	if reply, ok := f.generate(ctx, text); ok {
		f.metrics.IncrementFallback(metrics.SourceLLM)
		return reply
	}

	f.metrics.IncrementFallback(metrics.SourceRules)
	return RuleReply(text)
}

func (f *Fallback) generate(ctx context.Context, text string) (reply string, ok bool) {
	if f.gen == nil {
		return "", false
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("text generator panicked", "panic", r)
			reply, ok = "", false
		}
	}()

	reply, err := f.gen.Generate(ctx, text)
	if err != nil {
		slog.Warn("text generation failed, using rules", "error", err)
		return "", false
	}
	if strings.TrimSpace(reply) == "" {
		return "", false
	}
	return reply, true
}

// RuleReply picks a static reply by substring. The checks are plain
// substring tests, so "hi" also matches words like "this".
func RuleReply(text string) string {
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, "campaign") || strings.Contains(t, "strategy"):
		return ReplyStrategy
	case strings.Contains(t, "voting"):
		return ReplyVoting
	case strings.Contains(t, "hello") || strings.Contains(t, "hi"):
		return ReplyGreeting
	default:
		return ReplyHelp
	}
}
