package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Idyll-Intelligent-Systems/UNIUN/repository"
)

// DevHandler exposes seed/clear helpers against the memory store. It is
// only mounted in non-production runs on the memory backend.
type DevHandler struct {
	store *repository.MemoryStore
	log   *logrus.Logger
}

func NewDevHandler(store *repository.MemoryStore, log *logrus.Logger) *DevHandler {
	return &DevHandler{store: store, log: log}
}

// Seed inserts the demo accounts and posts.
func (h *DevHandler) Seed(c *gin.Context) {
	inserted := h.store.Seed()
	h.log.WithField("posts", inserted).Info("seeded demo data")
	c.JSON(http.StatusOK, gin.H{"inserted": inserted})
}

// Clear drops all state.
func (h *DevHandler) Clear(c *gin.Context) {
	h.store.Clear()
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
