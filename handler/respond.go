package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Idyll-Intelligent-Systems/UNIUN/pkg/apperrors"
)

// respondError maps a service error to its status code. Expected domain
// errors carry their own client-safe message; anything else is logged and
// collapsed to a generic 500.
func respondError(c *gin.Context, log *logrus.Logger, err error) {
	status := apperrors.HTTPStatus(err)

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && status < http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": appErr.Message})
		return
	}

	log.WithError(err).WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
	}).Error("request error")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
}
