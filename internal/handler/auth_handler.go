package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/dept-attendance-api/internal/models"
	"github.com/noah-isme/dept-attendance-api/internal/service"
	"github.com/noah-isme/dept-attendance-api/pkg/response"
)

type authenticator interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	Logout(ctx context.Context, session *models.Session) error
}

type registrar interface {
	Register(ctx context.Context, req models.RegisterRequest) (*service.Registration, error)
}

// AuthHandler wires role selection, login, logout and registration.
type AuthHandler struct {
	auth         authenticator
	registration registrar
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(auth authenticator, registration registrar) *AuthHandler {
	return &AuthHandler{auth: auth, registration: registration}
}

// Roles godoc
// @Summary List roles
// @Description Roles offered on the entry screen. Teachers can log in but not register.
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /roles [get]
func (h *AuthHandler) Roles(c *gin.Context) {
	response.OK(c, models.RoleOptions())
}

// Login godoc
// @Summary Log in
// @Description Authenticate with role, name and phone number
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Login payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req, false) {
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, res)
}

// Logout godoc
// @Summary Log out
// @Description Discard the current session
// @Tags Authentication
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} response.Envelope
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	if err := h.auth.Logout(c.Request.Context(), session); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Me godoc
// @Summary Current session
// @Description The session as stored at login
// @Tags Authentication
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	response.OK(c, session)
}

// Register godoc
// @Summary Register
// @Description Create a student or HOD account. Teacher registration is refused.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.RegisterRequest true "Registration payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(c, &req, false) {
		return
	}

	result, err := h.registration.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, result, map[string]interface{}{"message": "Registration successful! Please log in."})
}
