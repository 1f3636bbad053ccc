package handlers

import (
	"errors"
	"net/http"
	"strings"

	"vetchat/services/chat"
	"vetchat/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatMessageRequest is the body of POST /api/chat/message.
type ChatMessageRequest struct {
	SessionID string            `json:"sessionId"`
	Message   string            `json:"message"`
	Context   map[string]string `json:"context"`
}

// ChatHandler exposes the chat service over HTTP.
type ChatHandler struct {
	Service chat.Service
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(service chat.Service) *ChatHandler {
	return &ChatHandler{Service: service}
}

// SendMessage handles POST /api/chat/message.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, utils.MsgInvalidMessage, err.Error())
		return
	}

	req.SessionID = strings.TrimSpace(req.SessionID)
	req.Message = strings.TrimSpace(req.Message)
	if req.SessionID == "" {
		utils.JSONError(c, http.StatusBadRequest, utils.MsgInvalidSession, "sessionId must be a non-empty string")
		return
	}
	if req.Message == "" {
		utils.JSONError(c, http.StatusBadRequest, utils.MsgInvalidMessage, "message must be a non-empty string")
		return
	}

	result, err := h.Service.ProcessMessage(c.Request.Context(), req.SessionID, req.Message, req.Context)
	if err != nil {
		if errors.Is(err, chat.ErrInvalidInput) {
			utils.JSONError(c, http.StatusBadRequest, utils.MsgInvalidMessage, err.Error())
			return
		}
		utils.GetLogger().Error("failed to process message",
			zap.String("sessionId", req.SessionID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to process message", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

// GetHistory handles GET /api/chat/history/:sessionId.
func (h *ChatHandler) GetHistory(c *gin.Context) {
	sessionID := strings.TrimSpace(c.Param("sessionId"))
	if sessionID == "" {
		utils.JSONError(c, http.StatusBadRequest, utils.MsgInvalidSession, "sessionId must be a non-empty string")
		return
	}

	history, err := h.Service.GetHistory(c.Request.Context(), sessionID)
	if err != nil {
		utils.GetLogger().Error("failed to load history",
			zap.String("sessionId", sessionID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load history", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": history})
}
