package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Idyll-Intelligent-Systems/UNIUN/middleware"
	"github.com/Idyll-Intelligent-Systems/UNIUN/model"
	"github.com/Idyll-Intelligent-Systems/UNIUN/service"
)

type InteractionHandler struct {
	interactions *service.InteractionService
	log          *logrus.Logger
}

func NewInteractionHandler(interactions *service.InteractionService, log *logrus.Logger) *InteractionHandler {
	return &InteractionHandler{interactions: interactions, log: log}
}

// Like toggles the caller's like on a post.
func (h *InteractionHandler) Like(c *gin.Context) {
	result, err := h.interactions.Toggle(c.Request.Context(), model.KindLike, middleware.UserID(c), c.Param("postId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "liked": result.Active, "likes": result.Count})
}

// Repost toggles the caller's repost on a post.
func (h *InteractionHandler) Repost(c *gin.Context) {
	result, err := h.interactions.Toggle(c.Request.Context(), model.KindRepost, middleware.UserID(c), c.Param("postId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "reposted": result.Active, "reposts": result.Count})
}

// Bookmark toggles the caller's bookmark; bookmarks carry no counter.
func (h *InteractionHandler) Bookmark(c *gin.Context) {
	result, err := h.interactions.Toggle(c.Request.Context(), model.KindBookmark, middleware.UserID(c), c.Param("postId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "bookmarked": result.Active})
}

type replyRequest struct {
	Text string `json:"text"`
}

// Reply appends a reply to a post.
func (h *InteractionHandler) Reply(c *gin.Context) {
	var req replyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text required"})
		return
	}

	_, err := h.interactions.Reply(c.Request.Context(), middleware.UserID(c), c.Param("postId"), req.Text)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Status reports the caller's toggles on a post.
func (h *InteractionHandler) Status(c *gin.Context) {
	status, err := h.interactions.Status(c.Request.Context(), middleware.UserID(c), c.Param("postId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":         true,
		"liked":      status.Liked,
		"reposted":   status.Reposted,
		"bookmarked": status.Bookmarked,
	})
}
