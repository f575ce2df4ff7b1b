package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mealshare/gin-meal-api/internal/models"
	"github.com/mealshare/gin-meal-api/internal/services"
)

// RecipeController handles HTTP requests related to recipes
type RecipeController interface {
	// GetAllRecipes retrieves all recipes
	GetAllRecipes(c *gin.Context)
	// GetRecipeByID retrieves a recipe by its ID
	GetRecipeByID(c *gin.Context)
	// SearchByName retrieves recipes by name fragment
	SearchByName(c *gin.Context)
	// SearchByCategory retrieves recipes by category
	SearchByCategory(c *gin.Context)
	// SearchByTag retrieves recipes carrying a tag
	SearchByTag(c *gin.Context)
	// SearchByPreparationTime retrieves recipes by preparation time
	SearchByPreparationTime(c *gin.Context)
	// SearchByRating retrieves recipes with at least the given average rating
	SearchByRating(c *gin.Context)
	// SearchByAuthor retrieves recipes created by a user
	SearchByAuthor(c *gin.Context)
	// SearchByIngredients retrieves recipes matching available ingredients
	SearchByIngredients(c *gin.Context)
	// CreateRecipe creates a new recipe
	CreateRecipe(c *gin.Context)
	// UpdateRecipe updates an existing recipe
	UpdateRecipe(c *gin.Context)
	// DeleteRecipe deletes a recipe by its ID
	DeleteRecipe(c *gin.Context)
}

type recipeController struct {
	service services.RecipeService
}

// NewRecipeController creates a new instance of RecipeController
func NewRecipeController(service services.RecipeService) *recipeController {
	return &recipeController{service: service}
}

// GetAllRecipes godoc
// @Summary Get all recipes
// @Description Get a list of all recipes with comments, ratings and average rating attached
// @Tags recipes
// @Accept json
// @Produce json
// @Success 200 {array} models.RecipeDTO
// @Failure 500 {object} models.APIError
// @Router /api/v1/recipes [get]
func (c *recipeController) GetAllRecipes(ctx *gin.Context) {
	recipes, err := c.service.GetAllRecipes()
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, recipes)
}

// GetRecipeByID godoc
// @Summary Get recipe by ID
// @Description Get a single recipe by its ID
// @Tags recipes
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} models.RecipeDTO
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/v1/recipes/{id} [get]
func (c *recipeController) GetRecipeByID(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	recipe, err := c.service.GetRecipeByID(id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, recipe)
}

// SearchByName godoc
// @Summary Search recipes by name
// @Description Get recipes whose name contains the given fragment
// @Tags recipes
// @Accept json
// @Produce json
// @Param name path string true "Name fragment"
// @Success 200 {array} models.RecipeDTO
// @Failure 404 {object} models.APIError
// @Router /api/v1/recipes/name/{name} [get]
func (c *recipeController) SearchByName(ctx *gin.Context) {
	recipes, err := c.service.GetByName(ctx.Param("name"))
	c.respondList(ctx, recipes, err)
}

// SearchByCategory godoc
// @Summary Search recipes by category
// @Description Get recipes in the given category
// @Tags recipes
// @Accept json
// @Produce json
// @Param category path string true "Category"
// @Success 200 {array} models.RecipeDTO
// @Failure 404 {object} models.APIError
// @Router /api/v1/recipes/category/{category} [get]
func (c *recipeController) SearchByCategory(ctx *gin.Context) {
	recipes, err := c.service.GetByCategory(ctx.Param("category"))
	c.respondList(ctx, recipes, err)
}

// SearchByTag godoc
// @Summary Search recipes by tag
// @Description Get recipes carrying the given tag
// @Tags recipes
// @Accept json
// @Produce json
// @Param tag path string true "Tag"
// @Success 200 {array} models.RecipeDTO
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/v1/recipes/tag/{tag} [get]
func (c *recipeController) SearchByTag(ctx *gin.Context) {
	recipes, err := c.service.GetByTag(ctx.Param("tag"))
	c.respondList(ctx, recipes, err)
}

// SearchByPreparationTime godoc
// @Summary Search recipes by preparation time
// @Description Get recipes with exactly the given preparation time in minutes
// @Tags recipes
// @Accept json
// @Produce json
// @Param minutes path int true "Preparation time in minutes"
// @Success 200 {array} models.RecipeDTO
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/v1/recipes/preparation_time/{minutes} [get]
func (c *recipeController) SearchByPreparationTime(ctx *gin.Context) {
	minutes, err := strconv.Atoi(ctx.Param("minutes"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrCodeBadRequest, "invalid preparation time"))
		return
	}

	recipes, err := c.service.GetByPreparationTime(minutes)
	c.respondList(ctx, recipes, err)
}

// SearchByRating godoc
// @Summary Search recipes by minimum average rating
// @Description Get recipes whose average rating is at least the given value (0-5)
// @Tags recipes
// @Accept json
// @Produce json
// @Param rating path number true "Minimum average rating"
// @Success 200 {array} models.RecipeDTO
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/v1/recipes/rating/{rating} [get]
func (c *recipeController) SearchByRating(ctx *gin.Context) {
	min, err := strconv.ParseFloat(ctx.Param("rating"), 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrCodeBadRequest, "invalid rating"))
		return
	}

	recipes, err := c.service.GetByMinimumRating(min)
	c.respondList(ctx, recipes, err)
}

// SearchByAuthor godoc
// @Summary Search recipes by author
// @Description Get all recipes created by the given user
// @Tags recipes
// @Accept json
// @Produce json
// @Param author path string true "Author user ID"
// @Success 200 {array} models.RecipeDTO
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/v1/recipes/author/{author} [get]
func (c *recipeController) SearchByAuthor(ctx *gin.Context) {
	author, err := uuid.Parse(ctx.Param("author"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrCodeBadRequest, "invalid author ID"))
		return
	}

	recipes, err := c.service.GetByAuthor(author)
	c.respondList(ctx, recipes, err)
}

// SearchByIngredients godoc
// @Summary Search recipes by available ingredients
// @Description Get recipes whose ingredients are covered by the given comma-separated list, best match first
// @Tags recipes
// @Accept json
// @Produce json
// @Param ingredients query string true "Comma-separated ingredient names"
// @Param min_match query number false "Match threshold between 0 and 1 (default 0.5)"
// @Success 200 {array} models.RecipeDTO
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/v1/recipes/by-ingredients [get]
func (c *recipeController) SearchByIngredients(ctx *gin.Context) {
	raw := ctx.Query("ingredients")
	ingredients := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			ingredients = append(ingredients, part)
		}
	}

	minMatch := 0.5
	if v := ctx.Query("min_match"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrCodeBadRequest, "invalid min_match"))
			return
		}
		minMatch = parsed
	}

	recipes, err := c.service.GetByIngredients(ingredients, minMatch)
	c.respondList(ctx, recipes, err)
}

// CreateRecipe godoc
// @Summary Create a new recipe
// @Description Create a new recipe with the input payload
// @Tags recipes
// @Accept json
// @Produce json
// @Param recipe body models.RecipeIn true "Recipe object"
// @Success 201 {object} models.RecipeDTO
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Failure 422 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/recipes [post]
func (c *recipeController) CreateRecipe(ctx *gin.Context) {
	var in models.RecipeIn
	if err := ctx.ShouldBindJSON(&in); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrCodeBadRequest, "invalid request body"))
		return
	}

	userID, _, ok := currentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrCodeUnauthorized, "user not authenticated"))
		return
	}

	recipe, err := c.service.CreateRecipe(ctx.Request.Context(), in, userID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, recipe)
}

// UpdateRecipe godoc
// @Summary Update an existing recipe
// @Description Update a recipe; only the author or an admin may update
// @Tags recipes
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Param recipe body models.RecipeIn true "Recipe object"
// @Success 200 {object} models.RecipeDTO
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Failure 422 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/recipes/{id} [put]
func (c *recipeController) UpdateRecipe(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var in models.RecipeIn
	if err := ctx.ShouldBindJSON(&in); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrCodeBadRequest, "invalid request body"))
		return
	}

	userID, role, okUser := currentUser(ctx)
	if !okUser {
		ctx.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrCodeUnauthorized, "user not authenticated"))
		return
	}

	recipe, err := c.service.UpdateRecipe(ctx.Request.Context(), id, in, userID, role)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, recipe)
}

// DeleteRecipe godoc
// @Summary Delete a recipe
// @Description Delete a recipe and its comments and ratings; only the author or an admin may delete
// @Tags recipes
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 204 "No Content"
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/recipes/{id} [delete]
func (c *recipeController) DeleteRecipe(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	userID, role, okUser := currentUser(ctx)
	if !okUser {
		ctx.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrCodeUnauthorized, "user not authenticated"))
		return
	}

	if err := c.service.DeleteRecipe(id, userID, role); err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// respondList sends a recipe list, mapping an empty result to 404 so search
// endpoints distinguish "nothing matched" from an empty collection.
func (c *recipeController) respondList(ctx *gin.Context, recipes []models.RecipeDTO, err error) {
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	if len(recipes) == 0 {
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrCodeNotFound, "no recipes found"))
		return
	}
	ctx.JSON(http.StatusOK, recipes)
}

// pathID parses the numeric :id path parameter, responding 400 on failure.
func pathID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrCodeBadRequest, "invalid ID format"))
		return 0, false
	}
	return uint(id), true
}
