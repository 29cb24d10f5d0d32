package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Idyll-Intelligent-Systems/UNIUN/middleware"
	"github.com/Idyll-Intelligent-Systems/UNIUN/model"
	"github.com/Idyll-Intelligent-Systems/UNIUN/service"
)

type UserHandler struct {
	users *service.UserService
	log   *logrus.Logger
}

func NewUserHandler(users *service.UserService, log *logrus.Logger) *UserHandler {
	return &UserHandler{users: users, log: log}
}

// List returns the user directory as cards with follow counts.
func (h *UserHandler) List(c *gin.Context) {
	cards, err := h.users.Directory(c.Request.Context(), 50)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, cards)
}

// Lookup resolves a comma-separated ?ids= list to public profiles.
// Unknown ids are dropped.
func (h *UserHandler) Lookup(c *gin.Context) {
	raw := c.Query("ids")
	ids := make([]string, 0)
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		c.JSON(http.StatusOK, []model.Profile{})
		return
	}

	profiles, err := h.users.ExpandProfiles(c.Request.Context(), ids)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

// Me returns the caller's own minimal profile.
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": user.ID, "username": user.Username})
}

// Follow makes the caller follow :userId.
func (h *UserHandler) Follow(c *gin.Context) {
	err := h.users.Follow(c.Request.Context(), middleware.UserID(c), c.Param("userId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Unfollow removes the caller's follow of :userId.
func (h *UserHandler) Unfollow(c *gin.Context) {
	err := h.users.Unfollow(c.Request.Context(), middleware.UserID(c), c.Param("userId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Followers lists the edges pointing at :id; with ?expand=1 the follower
// ids are resolved to de-duplicated profiles instead.
func (h *UserHandler) Followers(c *gin.Context) {
	edges, err := h.users.Followers(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	ids := make([]string, 0, len(edges))
	for _, e := range edges {
		ids = append(ids, e.FollowerID)
	}
	h.respondEdgeList(c, edges, ids)
}

// Following lists the edges originating from :id; with ?expand=1 the
// followee ids are resolved to de-duplicated profiles instead.
func (h *UserHandler) Following(c *gin.Context) {
	edges, err := h.users.Following(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	ids := make([]string, 0, len(edges))
	for _, e := range edges {
		ids = append(ids, e.FolloweeID)
	}
	h.respondEdgeList(c, edges, ids)
}

func (h *UserHandler) respondEdgeList(c *gin.Context, edges []model.FollowEdge, ids []string) {
	expand := c.Query("expand")
	if expand == "1" || strings.EqualFold(expand, "true") {
		profiles, err := h.users.ExpandProfiles(c.Request.Context(), ids)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		c.JSON(http.StatusOK, profiles)
		return
	}
	c.JSON(http.StatusOK, edges)
}
