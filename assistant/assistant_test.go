// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package assistant

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/danielhkuo/campaign-pulse/metrics"
)

type fakeGenerator struct {
	reply string
	err   error
	panic bool
	calls int
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.calls++
	if g.panic {
		panic("generator exploded")
	}
	return g.reply, g.err
}

// recordingInsights returns "<method>:<arg>" so dispatch can be asserted.
type recordingInsights struct {
	err   error
	panic bool
}

func (r recordingInsights) result(s string) (string, error) {
	if r.panic {
		panic("store exploded")
	}
	if r.err != nil {
		return "", r.err
	}
	return s, nil
}

func (r recordingInsights) GenderInsight(_ context.Context, gender string) (string, error) {
	return r.result("gender:" + gender)
}

func (r recordingInsights) TopIssueInsight(_ context.Context, limit int) (string, error) {
	return r.result(fmt.Sprintf("issues:%d", limit))
}

func (r recordingInsights) AgeGroupInsight(context.Context) (string, error) {
	return r.result("age")
}

func (r recordingInsights) BoothSupporterInsight(_ context.Context, booth int, ok bool) (string, error) {
	return r.result(fmt.Sprintf("booth:%d:%t", booth, ok))
}

func (r recordingInsights) SwingVoterInsight(context.Context) (string, error) {
	return r.result("swing")
}

func (r recordingInsights) WinProbability(context.Context) (string, error) {
	return r.result("win")
}

func TestRuleReply(t *testing.T) {
	tests := []struct {
		text     string
		expected string
	}{
		{"What campaign tactics work?", ReplyStrategy},
		{"STRATEGY please", ReplyStrategy},
		{"how does voting work", ReplyVoting},
		{"Hello", ReplyGreeting},
		{"hi", ReplyGreeting},
		{"tell me more", ReplyHelp},
		{"", ReplyHelp},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.expected, RuleReply(tt.text))
		})
	}
}

func TestFallback_Respond(t *testing.T) {
	t.Run("generator answers", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		m := metrics.New(reg)
		gen := &fakeGenerator{reply: "Knock on doors."}

		reply := NewFallback(gen, m).Respond(context.Background(), "campaign tips")
		assert.Equal(t, "Knock on doors.", reply)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.FallbackResponses.WithLabelValues(metrics.SourceLLM)))
	})

	t.Run("generator fails", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		m := metrics.New(reg)
		gen := &fakeGenerator{err: errors.New("timeout")}

		reply := NewFallback(gen, m).Respond(context.Background(), "campaign tips")
		assert.Equal(t, ReplyStrategy, reply)
		assert.Equal(t, 1, gen.calls)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.FallbackResponses.WithLabelValues(metrics.SourceRules)))
	})

	t.Run("generator returns blank", func(t *testing.T) {
		reply := NewFallback(&fakeGenerator{reply: " "}, nil).Respond(context.Background(), "voting?")
		assert.Equal(t, ReplyVoting, reply)
	})

	t.Run("generator panics", func(t *testing.T) {
		reply := NewFallback(&fakeGenerator{panic: true}, nil).Respond(context.Background(), "hello")
		assert.Equal(t, ReplyGreeting, reply)
	})

	t.Run("no generator", func(t *testing.T) {
		reply := NewFallback(nil, nil).Respond(context.Background(), "what now")
		assert.Equal(t, ReplyHelp, reply)
	})
}

func TestChat_HandleMessage(t *testing.T) {
	chat := NewChat(recordingInsights{}, NewFallback(nil, nil), nil)

	tests := []struct {
		text     string
		expected string
	}{
		{"female voters?", "gender:Female"},
		{"Male and female breakdown", "gender:Female"},
		{"male voters", "gender:Male"},
		{"top issues", "issues:5"},
		{"youth turnout", "age"},
		{"booth 12 status", "booth:12:true"},
		{"booth female support", "booth:0:false"},
		{"Booth #7 vs house 45", "booth:7:true"},
		{"swing voters", "swing"},
		{"can we win?", "win"},
		{"any campaign tips?", ReplyStrategy},
		{"   ", ReplyEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.expected, chat.HandleMessage(context.Background(), tt.text))
		})
	}
}

func TestChat_ErrorsBecomeGenericReply(t *testing.T) {
	t.Run("store error", func(t *testing.T) {
		chat := NewChat(recordingInsights{err: errors.New("pq: relation \"voter_list\" does not exist")}, NewFallback(nil, nil), nil)

		reply := chat.HandleMessage(context.Background(), "female voters")
		assert.Equal(t, ReplyInternalError, reply)
		assert.NotContains(t, reply, "voter_list")
	})

	t.Run("panic", func(t *testing.T) {
		chat := NewChat(recordingInsights{panic: true}, NewFallback(nil, nil), nil)

		assert.Equal(t, ReplyInternalError, chat.HandleMessage(context.Background(), "swing voters"))
	})
}

func TestChat_CountsIntents(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	chat := NewChat(recordingInsights{}, NewFallback(nil, m), m)

	chat.HandleMessage(context.Background(), "female voters")
	chat.HandleMessage(context.Background(), "women in booth 3")
	chat.HandleMessage(context.Background(), "hello")
	chat.HandleMessage(context.Background(), "")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ChatIntents.WithLabelValues("gender_female")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ChatIntents.WithLabelValues("booth")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ChatIntents.WithLabelValues("general")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FallbackResponses.WithLabelValues(metrics.SourceRules)))
}
