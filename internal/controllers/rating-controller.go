package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mealshare/gin-meal-api/internal/models"
	"github.com/mealshare/gin-meal-api/internal/services"
)

// RatingController handles HTTP requests related to ratings
type RatingController interface {
	// UpsertRating creates or updates the caller's rating for a recipe
	UpsertRating(c *gin.Context)
	// GetRatingsByRecipe retrieves all ratings for a recipe
	GetRatingsByRecipe(c *gin.Context)
	// DeleteRating deletes a rating by its ID
	DeleteRating(c *gin.Context)
}

type ratingController struct {
	service services.RatingService
}

// NewRatingController creates a new instance of RatingController
func NewRatingController(service services.RatingService) *ratingController {
	return &ratingController{service: service}
}

// UpsertRating godoc
// @Summary Rate a recipe
// @Description Create or update the caller's rating for a recipe; each user holds at most one rating per recipe
// @Tags ratings
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Param rating body models.RatingIn true "Rating value (1-5)"
// @Success 200 {object} models.RatingDTO
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Failure 422 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/recipes/{id}/rating [put]
func (c *ratingController) UpsertRating(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var in models.RatingIn
	if err := ctx.ShouldBindJSON(&in); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrCodeBadRequest, "invalid request body"))
		return
	}

	userID, _, okUser := currentUser(ctx)
	if !okUser {
		ctx.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrCodeUnauthorized, "user not authenticated"))
		return
	}

	rating, err := c.service.Upsert(id, in.Value, userID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, rating)
}

// GetRatingsByRecipe godoc
// @Summary Get ratings for a recipe
// @Description Get all ratings for the given recipe
// @Tags ratings
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {array} models.RatingDTO
// @Failure 400 {object} models.APIError
// @Router /api/v1/recipes/{id}/ratings [get]
func (c *ratingController) GetRatingsByRecipe(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	ratings, err := c.service.GetByRecipe(id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, ratings)
}

// DeleteRating godoc
// @Summary Delete a rating
// @Description Delete a rating; only the author or an admin may delete
// @Tags ratings
// @Accept json
// @Produce json
// @Param id path int true "Rating ID"
// @Success 204 "No Content"
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/ratings/{id} [delete]
func (c *ratingController) DeleteRating(ctx *gin.Context) {
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
