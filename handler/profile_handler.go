package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Idyll-Intelligent-Systems/UNIUN/middleware"
	"github.com/Idyll-Intelligent-Systems/UNIUN/service"
)

// ProfileHandler serves the caller's own interaction history.
type ProfileHandler struct {
	interactions *service.InteractionService
	log          *logrus.Logger
}

func NewProfileHandler(interactions *service.InteractionService, log *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{interactions: interactions, log: log}
}

// Bookmarks lists the caller's bookmark records.
func (h *ProfileHandler) Bookmarks(c *gin.Context) {
	list, err := h.interactions.Bookmarks(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Reposts lists the caller's repost records.
func (h *ProfileHandler) Reposts(c *gin.Context) {
	list, err := h.interactions.Reposts(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Replies lists the caller's replies.
func (h *ProfileHandler) Replies(c *gin.Context) {
	list, err := h.interactions.Replies(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
