package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/bifpcl/internal/service"
	"github.com/gin-gonic/gin"
)

type chatPayload struct {
	Message string             `json:"message"`
	History []service.ChatTurn `json:"history"`
}

// Chat answers a visitor question. The caller keeps the conversation and
// resends it as history on every call.
func (a *API) Chat(c *gin.Context) {
	var payload chatPayload
	if err := c.ShouldBindJSON(&payload); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	reply, err := a.chatbot.Reply(c.Request.Context(), payload.Message, payload.History)
	if err != nil {
		if errors.Is(err, service.ErrChatMessageEmpty) {
			respondError(c, http.StatusBadRequest, "Message is required")
			return
		}
		respondServiceError(c, err)
		return
	}

	body := gin.H{"response": reply.Response}
	if reply.Fallback {
		body["fallback"] = true
	}
	c.JSON(http.StatusOK, body)
}
