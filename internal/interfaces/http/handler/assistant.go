package handler

import (
	"github.com/bayup/backend/internal/application/assistant"
	"github.com/gin-gonic/gin"
)

// AssistantHandler serves the store assistant chat
type AssistantHandler struct {
	BaseHandler
	assistantService *assistant.AssistantService
}

// NewAssistantHandler creates a new AssistantHandler
func NewAssistantHandler(assistantService *assistant.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistantService: assistantService}
}

// Chat godoc
// @ID           chatAssistant
// @Summary      Ask the store assistant
// @Description  Sends the conversation plus a snapshot of the store's metrics to the language model
// @Tags         assistant
// @Accept       json
// @Produce      json
// @Param        request body assistant.ChatRequest true "Conversation"
// @Success      200 {object} APIResponse[assistant.ChatResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /assistant/chat [post]
func (h *AssistantHandler) Chat(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req assistant.ChatRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.assistantService.Chat(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
