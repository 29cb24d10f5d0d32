package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Idyll-Intelligent-Systems/UNIUN/middleware"
	"github.com/Idyll-Intelligent-Systems/UNIUN/model"
	"github.com/Idyll-Intelligent-Systems/UNIUN/service"
)

type PostHandler struct {
	posts        *service.PostService
	interactions *service.InteractionService
	log          *logrus.Logger
}

func NewPostHandler(posts *service.PostService, interactions *service.InteractionService, log *logrus.Logger) *PostHandler {
	return &PostHandler{posts: posts, interactions: interactions, log: log}
}

type createPostRequest struct {
	Title     string   `json:"title"`
	MediaType string   `json:"mediaType"`
	MediaURL  *string  `json:"mediaUrl"`
	Price     *float64 `json:"price"`
}

// Create stores a new post owned by the caller.
func (h *PostHandler) Create(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and mediaType are required"})
		return
	}

	post, err := h.posts.Create(c.Request.Context(), middleware.UserID(c), service.CreatePostInput{
		Title:     req.Title,
		MediaType: model.MediaType(req.MediaType),
		MediaURL:  req.MediaURL,
		Price:     req.Price,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": post.ID})
}

// List returns recent posts, optionally filtered by owner.
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.posts.List(c.Request.Context(), c.Query("ownerId"), 50)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if posts == nil {
		posts = []model.Post{}
	}
	c.JSON(http.StatusOK, posts)
}

// Get returns a single post by id.
func (h *PostHandler) Get(c *gin.Context) {
	post, err := h.posts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// Update patches the caller's own post.
func (h *PostHandler) Update(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no valid fields to update"})
		return
	}

	var upd model.PostUpdate
	if v, ok := body["title"].(string); ok {
		upd.Title = &v
	}
	if v, ok := body["mediaUrl"].(string); ok {
		upd.MediaURL = &v
	}
	// price accepts a number, or null/"" to clear it
	if raw, ok := body["price"]; ok {
		switch v := raw.(type) {
		case nil:
			upd.ClearPrice = true
		case string:
			if v == "" {
				upd.ClearPrice = true
			}
		case float64:
			upd.Price = &v
		}
	}

	err := h.posts.Update(c.Request.Context(), c.Param("id"), middleware.UserID(c), upd)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Delete removes the caller's own post.
func (h *PostHandler) Delete(c *gin.Context) {
	err := h.posts.Delete(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// View records a view; only the caller's first view bumps the counter.
func (h *PostHandler) View(c *gin.Context) {
	result, err := h.interactions.RecordView(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"viewed": result.Viewed, "views": result.Views})
}
