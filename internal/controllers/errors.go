package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mealshare/gin-meal-api/internal/middleware"
	"github.com/mealshare/gin-meal-api/internal/models"
)

// respondServiceError maps service-layer errors onto HTTP responses.
// Forbidden responses intentionally carry no detail about which check failed.
func respondServiceError(ctx *gin.Context, err error) {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		ctx.JSON(http.StatusUnprocessableEntity, models.NewAPIError(models.ErrCodeValidationFailed, ve.Error()))
	case errors.Is(err, models.ErrNotFound):
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrCodeNotFound, "not found"))
	case errors.Is(err, models.ErrForbidden):
		ctx.JSON(http.StatusForbidden, models.NewAPIError(models.ErrCodeForbidden, "not authorized"))
	case errors.Is(err, models.ErrInvalidArgument):
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrCodeBadRequest, "invalid argument"))
	case errors.Is(err, models.ErrConflictingEmail):
		ctx.JSON(http.StatusConflict, models.NewAPIError(models.ErrCodeConflict, "email already registered"))
	default:
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrCodeInternalServer, "internal server error"))
	}
}

// currentUser reads the authenticated user's id and role from the context
// set by the JWTAuth middleware.
func currentUser(ctx *gin.Context) (uuid.UUID, string, bool) {
	rawID, exists := ctx.Get(middleware.ContextUserID)
	if !exists {
		return uuid.Nil, "", false
	}
	userID, ok := rawID.(uuid.UUID)
	if !ok {
		return uuid.Nil, "", false
	}

	rawRole, exists := ctx.Get(middleware.ContextUserRole)
	if !exists {
		return uuid.Nil, "", false
	}
	role, ok := rawRole.(string)
	if !ok {
		return uuid.Nil, "", false
	}

	return userID, role, true
}
