// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/danielhkuo/campaign-pulse/models"
	"github.com/danielhkuo/campaign-pulse/testutil"
)

type echoChat struct {
	got string
}

func (e *echoChat) HandleMessage(_ context.Context, text string) string {
	e.got = text
	return "reply to " + text
}

func TestChat(t *testing.T) {
	chat := &echoChat{}
	h := NewChatHandler(chat)

	w := serve("POST /chat", h.Chat, testutil.MakeRequest("POST", "/chat", models.ChatRequest{Message: "female voters"}, nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.ChatResponse
	testutil.AssertJSON(t, w, &resp)
	assert.Equal(t, "reply to female voters", resp.Reply)
	assert.Equal(t, "female voters", chat.got)
}

func TestChat_InvalidJSON(t *testing.T) {
	chat := &echoChat{}
	h := NewChatHandler(chat)

	req := httptest.NewRequest("POST", "/chat", strings.NewReader("{not json"))
	w := serve("POST /chat", h.Chat, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
	assert.Empty(t, chat.got)
}
