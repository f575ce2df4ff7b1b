package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mealshare/gin-meal-api/internal/models"
	"github.com/mealshare/gin-meal-api/internal/services"
)

// UserController handles HTTP requests related to user administration
type UserController interface {
	// GetMe retrieves the authenticated user's profile
	GetMe(c *gin.Context)
	// UpdateUserRole changes a user's role
	UpdateUserRole(c *gin.Context)
}

type userController struct {
	service services.UserService
}

// NewUserController creates a new instance of UserController
func NewUserController(service services.UserService) *userController {
	return &userController{service: service}
}

// GetMe godoc
// @Summary Get own profile
// @Description Get the authenticated user's profile
// @Tags users
// @Accept json
// @Produce json
// @Success 200 {object} models.UserDTO
// @Failure 401 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/users/me [get]
func (c *userController) GetMe(ctx *gin.Context) {
	userID, _, ok := currentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrCodeUnauthorized, "user not authenticated"))
		return
	}

	user, err := c.service.GetUserByID(userID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, models.NewUserDTO(*user))
}

// UpdateUserRole godoc
// @Summary Change a user's role
// @Description Set a user's role to ADMIN or USER
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param body body object true "New role"
// @Success 200 {object} models.UserDTO
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/admin/users/{id}/role [put]
func (c *userController) UpdateUserRole(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrCodeBadRequest, "invalid user ID"))
		return
	}

	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrCodeBadRequest, "invalid request body"))
		return
	}

	user, err := c.service.UpdateRole(id, req.Role)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, models.NewUserDTO(*user))
}
