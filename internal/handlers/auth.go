package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ai-studio/backend/internal/middleware"
	"github.com/ai-studio/backend/internal/models"
	"github.com/ai-studio/backend/internal/session"
)

type AuthHandler struct {
	sessions *session.Manager
}

func NewAuthHandler(sessions *session.Manager) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// Register godoc
// @Summary     Register a new user
// @Description Creates the auth identity and a profile with the initial credit grant
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body models.RegisterRequest true "Registration data"
// @Success     201 {object} models.AuthResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     503 {object} models.ErrorResponse
// @Router      /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	user, identity, err := h.sessions.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.AuthResponse{
		User:         models.NewUserResponse(user),
		AccessToken:  identity.AccessToken,
		RefreshToken: identity.RefreshToken,
		ExpiresIn:    identity.ExpiresIn,
	})
}

// Login godoc
// @Summary     Sign in
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body models.LoginRequest true "Credentials"
// @Success     200 {object} models.AuthResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     503 {object} models.ErrorResponse
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	user, identity, err := h.sessions.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.AuthResponse{
		User:         models.NewUserResponse(user),
		AccessToken:  identity.AccessToken,
		RefreshToken: identity.RefreshToken,
		ExpiresIn:    identity.ExpiresIn,
	})
}

// Logout godoc
// @Summary     Sign out
// @Tags        auth
// @Produce     json
// @Security    Bearer
// @Success     200 {object} map[string]string
// @Failure     401 {object} models.ErrorResponse
// @Router      /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	token, _ := c.Get(middleware.AccessTokenKey)
	tokenStr, _ := token.(string)

	if err := h.sessions.Logout(c.Request.Context(), userID, tokenStr); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}

// Me godoc
// @Summary     Current user
// @Description Returns the session's user projection derived from the profile row
// @Tags        auth
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.UserResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.sessions.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewUserResponse(user))
}
