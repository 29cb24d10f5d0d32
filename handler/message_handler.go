package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Idyll-Intelligent-Systems/UNIUN/middleware"
	"github.com/Idyll-Intelligent-Systems/UNIUN/service"
)

type MessageHandler struct {
	messages *service.MessageService
	log      *logrus.Logger
}

func NewMessageHandler(messages *service.MessageService, log *logrus.Logger) *MessageHandler {
	return &MessageHandler{messages: messages, log: log}
}

// List summarizes the caller's conversations.
func (h *MessageHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.messages.ListConversations(middleware.UserID(c)))
}

// UnreadCount returns the caller's total unread badge. Read-only.
func (h *MessageHandler) UnreadCount(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"total": h.messages.UnreadTotal(middleware.UserID(c))})
}

// Thread returns the conversation with :withUserId and marks it read.
func (h *MessageHandler) Thread(c *gin.Context) {
	c.JSON(http.StatusOK, h.messages.Thread(middleware.UserID(c), c.Param("withUserId")))
}

type sendMessageRequest struct {
	Text string `json:"text"`
}

// Send appends a message to the conversation with :withUserId.
func (h *MessageHandler) Send(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text required"})
		return
	}

	msg, err := h.messages.Send(middleware.UserID(c), c.Param("withUserId"), req.Text)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}
