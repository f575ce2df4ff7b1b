package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mealshare/gin-meal-api/internal/models"
	"github.com/mealshare/gin-meal-api/internal/services"
)

// CommentController handles HTTP requests related to comments
type CommentController interface {
	// CreateComment adds a comment to a recipe
	CreateComment(c *gin.Context)
	// GetCommentByID retrieves a single comment
	GetCommentByID(c *gin.Context)
	// GetCommentsByRecipe retrieves all comments for a recipe
	GetCommentsByRecipe(c *gin.Context)
	// GetCommentsByUser retrieves all comments made by a user
	GetCommentsByUser(c *gin.Context)
	// UpdateComment updates an existing comment
	UpdateComment(c *gin.Context)
	// DeleteComment deletes a comment by its ID
	DeleteComment(c *gin.Context)
}

type commentController struct {
	service services.CommentService
}

// NewCommentController creates a new instance of CommentController
func NewCommentController(service services.CommentService) *commentController {
	return &commentController{service: service}
}

// CreateComment godoc
// @Summary Create a comment
// @Description Add a comment to a recipe, optionally with a 1-5 rating
// @Tags comments
// @Accept json
// @Produce json
// @Param comment body models.CommentCreate true "Comment object"
// @Success 201 {object} models.CommentDTO
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Failure 422 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/comments [post]
func (c *commentController) CreateComment(ctx *gin.Context) {
	var in models.CommentCreate
	if err := ctx.ShouldBindJSON(&in); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrCodeBadRequest, "invalid request body"))
		return
	}

	userID, _, ok := currentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrCodeUnauthorized, "user not authenticated"))
		return
	}

	comment, err := c.service.Create(in, userID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, comment)
}

// GetCommentByID godoc
// @Summary Get comment by ID
// @Description Get a single comment by its ID
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Comment ID"
// @Success 200 {object} models.CommentDTO
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/v1/comments/{id} [get]
func (c *commentController) GetCommentByID(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	comment, err := c.service.GetByID(id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, comment)
}

// GetCommentsByRecipe godoc
// @Summary Get comments for a recipe
// @Description Get all comments for the given recipe
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {array} models.CommentDTO
// @Failure 400 {object} models.APIError
// @Router /api/v1/recipes/{id}/comments [get]
func (c *commentController) GetCommentsByRecipe(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	comments, err := c.service.GetByRecipe(id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, comments)
}

// GetCommentsByUser godoc
// @Summary Get comments by user
// @Description Get all comments made by the given user; restricted to the user themselves or an admin
// @Tags comments
// @Accept json
// @Produce json
// @Param user path string true "User ID"
// @Success 200 {array} models.CommentDTO
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Failure 403 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/users/{user}/comments [get]
func (c *commentController) GetCommentsByUser(ctx *gin.Context) {
	target, err := uuid.Parse(ctx.Param("user"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrCodeBadRequest, "invalid user ID"))
		return
	}

	userID, role, ok := currentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrCodeUnauthorized, "user not authenticated"))
		return
	}
	if !services.Allow(role, userID, target) {
		ctx.JSON(http.StatusForbidden, models.NewAPIError(models.ErrCodeForbidden, "not authorized"))
		return
	}

	comments, err := c.service.GetByUser(target)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, comments)
}

// UpdateComment godoc
// @Summary Update a comment
// @Description Update a comment's content and rating; only the author or an admin may update
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Comment ID"
// @Param comment body models.CommentIn true "Comment object"
// @Success 200 {object} models.CommentDTO
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Failure 422 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/comments/{id} [put]
func (c *commentController) UpdateComment(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var in models.CommentIn
	if err := ctx.ShouldBindJSON(&in); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrCodeBadRequest, "invalid request body"))
		return
	}

	userID, role, okUser := currentUser(ctx)
	if !okUser {
		ctx.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrCodeUnauthorized, "user not authenticated"))
		return
	}

	comment, err := c.service.Update(id, in, userID, role)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, comment)
}

// DeleteComment godoc
// @Summary Delete a comment
// @Description Delete a comment and its linked rating; only the author or an admin may delete
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Comment ID"
// @Success 204 "No Content"
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/comments/{id} [delete]
func (c *commentController) DeleteComment(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	userID, role, okUser := currentUser(ctx)
	if !okUser {
		ctx.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrCodeUnauthorized, "user not authenticated"))
		return
	}

	if err := c.service.Delete(id, userID, role); err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
