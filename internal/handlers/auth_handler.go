package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/satishkoppanathi/ProjectSphere/internal/services"
	"github.com/satishkoppanathi/ProjectSphere/internal/utils"
)

type AuthHandler struct {
	BaseHandler
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		authService: authService,
	}
}

// Register creates a new user account and returns a token.
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request payload", Details: err.Error()})
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login authenticates an existing user.
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request payload", Details: err.Error()})
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GuestSession issues an anonymous guest token.
func (h *AuthHandler) GuestSession(c *gin.Context) {
	resp, err := h.authService.GuestSession(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Profile returns the authenticated user's own record.
func (h *AuthHandler) Profile(c *gin.Context) {
	actor, ok := GetActor(c)
	if !ok || actor.IsGuest {
		c.JSON(http.StatusForbidden, ErrorResponse{Message: "A registered account is required"})
		return
	}

	user, err := h.authService.GetProfile(c.Request.Context(), actor.ID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
