// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package assistant

import (
	"context"
	"log/slog"
	"strings"

	"github.com/danielhkuo/campaign-pulse/intent"
	"github.com/danielhkuo/campaign-pulse/metrics"
)

const (
	ReplyEmpty         = "Please type a question."
	ReplyInternalError = "Internal error, please try again."
)

// Insights is the set of report generators the chat dispatches to.
// *insight.Service implements it.
type Insights interface {
	GenderInsight(ctx context.Context, gender string) (string, error)
	TopIssueInsight(ctx context.Context, limit int) (string, error)
	AgeGroupInsight(ctx context.Context) (string, error)
	BoothSupporterInsight(ctx context.Context, booth int, ok bool) (string, error)
	SwingVoterInsight(ctx context.Context) (string, error)
	WinProbability(ctx context.Context) (string, error)
}

// Responder answers messages that match no analytics intent.
type Responder interface {
	Respond(ctx context.Context, text string) string
}

// Chat routes one message to a report or the fallback. It keeps no
// conversation state.
type Chat struct {
	insights Insights
	fallback Responder
	metrics  *metrics.Metrics
}

func NewChat(insights Insights, fallback Responder, m *metrics.Metrics) *Chat {
	return &Chat{insights: insights, fallback: fallback, metrics: m}
}

// HandleMessage returns the reply for text. Store errors and panics are
// logged and replaced with a generic message.
func (c *Chat) HandleMessage(ctx context.Context, text string) (reply string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return ReplyEmpty
	}

	in := intent.Classify(text)
	c.metrics.IncrementIntent(string(in))

	defer func() {
		if r := recover(); r != nil {
			slog.Error("chat dispatch panicked", "intent", in, "panic", r)
			reply = ReplyInternalError
		}
	}()

	reply, err := c.dispatch(ctx, in, text)
	if err != nil {
		slog.Error("failed to generate chat reply", "intent", in, "error", err)
		return ReplyInternalError
	}
	return reply
}

func (c *Chat) dispatch(ctx context.Context, in intent.Intent, text string) (string, error) {
	switch in {
	case intent.GenderFemale:
		return c.insights.GenderInsight(ctx, "Female")
	case intent.GenderMale:
		return c.insights.GenderInsight(ctx, "Male")
	case intent.Issues:
		return c.insights.TopIssueInsight(ctx, 5)
	case intent.Age:
		return c.insights.AgeGroupInsight(ctx)
	case intent.Booth:
		booth, ok := intent.ExtractBooth(text)
		return c.insights.BoothSupporterInsight(ctx, booth, ok)
	case intent.Swing:
		return c.insights.SwingVoterInsight(ctx)
	case intent.WinProbability:
		return c.insights.WinProbability(ctx)
	default:
		return c.fallback.Respond(ctx, text), nil
	}
}
