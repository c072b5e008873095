package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mindsender/mindsender/db"
	"github.com/mindsender/mindsender/internal/ai"
	"github.com/mindsender/mindsender/internal/assistant"
	"github.com/mindsender/mindsender/internal/quota"
	"github.com/mindsender/mindsender/internal/taskstore"
	"github.com/mindsender/mindsender/internal/utils"
	"github.com/rs/zerolog/log"
)

type ChatMessage struct {
	Role       string        `json:"role" binding:"required,oneof=user assistant tool"`
	Content    string        `json:"content"`
	ToolCallID string        `json:"tool_call_id,omitempty"`
	ToolCalls  []ai.ToolCall `json:"tool_calls,omitempty"`
}

type ChatRequest struct {
	Messages []ChatMessage `json:"messages" binding:"required,min=1,dive"`
}

// AssistantChat returns the chat handler. A nil assistant means the LLM key
// was absent at startup; the endpoint then reports itself unconfigured
// instead of the server refusing to boot.
func AssistantChat(a *assistant.Assistant, limiter *quota.Limiter) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if a == nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "Assistant is not configured"})
			return
		}

		currentUser, err := utils.GetCurrentUser(ctx)

		if err != nil {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		var req ChatRequest

		if err := ctx.BindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}

		if !limiter.Allow(ctx.Request.Context(), currentUser.ID, currentUser.Plan) {
			ctx.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Daily assistant limit reached. Upgrade your plan for more messages.",
			})
			return
		}

		history := make([]ai.Message, 0, len(req.Messages))

		for _, msg := range req.Messages {
			history = append(history, ai.Message{
				Role:       msg.Role,
				Content:    msg.Content,
				ToolCallID: msg.ToolCallID,
				ToolCalls:  msg.ToolCalls,
			})
		}

		store := taskstore.Scoped(db.DB, currentUser.ID)

		reply, err := a.Chat(ctx.Request.Context(), store, currentUser.ID, history)

		if err != nil {
			log.Error().Err(err).Uint("user_id", currentUser.ID).Msg("Assistant chat failed")
			ctx.JSON(http.StatusBadGateway, gin.H{"error": "The assistant is unavailable right now"})
			return
		}

		ctx.JSON(http.StatusOK, gin.H{"reply": reply})
	}
}
