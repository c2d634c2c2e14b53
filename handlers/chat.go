// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"

	"github.com/danielhkuo/campaign-pulse/middleware"
	"github.com/danielhkuo/campaign-pulse/models"
)

// ChatService answers one chat message. *assistant.Chat implements it.
type ChatService interface {
	HandleMessage(ctx context.Context, text string) string
}

type ChatHandler struct {
	chat ChatService
}

func NewChatHandler(chat ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// Chat handles POST /chat. The reply is always 200; analytics failures are
// reported inside the reply text.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ChatResponse{
		Reply: h.chat.HandleMessage(r.Context(), req.Message),
	})
}
