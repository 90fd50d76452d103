package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/dept-attendance-api/internal/middleware"
	"github.com/noah-isme/dept-attendance-api/internal/models"
	appErrors "github.com/noah-isme/dept-attendance-api/pkg/errors"
	"github.com/noah-isme/dept-attendance-api/pkg/response"
)

// sessionFromContext returns the caller's session or writes a 401.
func sessionFromContext(c *gin.Context) (*models.Session, bool) {
	session := middleware.CurrentSession(c)
	if session == nil {
		response.Error(c, appErrors.ErrSessionNotFound)
		return nil, false
	}
	return session, true
}

// bindJSON decodes the body into dest. An empty body is accepted when optional.
func bindJSON(c *gin.Context, dest interface{}, optional bool) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return true
		}
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid request payload"))
		return false
	}
	return true
}

// requestOrigin prefers the configured public origin and otherwise rebuilds
// it from the request.
func requestOrigin(c *gin.Context, configured string) string {
	if configured != "" {
		return strings.TrimRight(configured, "/")
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = strings.TrimSpace(strings.SplitN(proto, ",", 2)[0])
	}
	return scheme + "://" + c.Request.Host
}
