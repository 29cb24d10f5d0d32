package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Idyll-Intelligent-Systems/UNIUN/service"
)

type SearchHandler struct {
	search *service.SearchService
	log    *logrus.Logger
}

func NewSearchHandler(search *service.SearchService, log *logrus.Logger) *SearchHandler {
	return &SearchHandler{search: search, log: log}
}

// Search matches users and posts by substring.
func (h *SearchHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))

	result, err := h.search.Search(c.Request.Context(), query, 50)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
