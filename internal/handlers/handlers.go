package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ai-studio/backend/internal/apperrors"
	"github.com/ai-studio/backend/internal/middleware"
	"github.com/ai-studio/backend/internal/models"
)

// respondError surfaces a service error as the single user-visible
// notification for the request.
func respondError(c *gin.Context, err error) {
	c.JSON(apperrors.Status(err), models.ErrorResponse{
		Error:   apperrors.Code(err),
		Message: err.Error(),
	})
}

// currentUserID reads the authenticated identity set by the auth middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return uuid.Nil, false
	}
	return userID, true
}
