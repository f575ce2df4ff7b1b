package services

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/mealshare/gin-meal-api/internal/models"
	"github.com/mealshare/gin-meal-api/internal/normalize"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RecipeService provides recipe queries and mutations. Every read attaches
// the recipe's comments and ratings and computes the average rating.
type RecipeService interface {
	// GetAllRecipes retrieves all recipes
	GetAllRecipes() ([]models.RecipeDTO, error)
	// GetRecipeByID retrieves a recipe by its ID
	GetRecipeByID(id uint) (models.RecipeDTO, error)
	// GetByName retrieves recipes whose name contains the given fragment (case-insensitive)
	GetByName(name string) ([]models.RecipeDTO, error)
	// GetByCategory retrieves recipes in the given category (case-insensitive)
	GetByCategory(category string) ([]models.RecipeDTO, error)
	// GetByTag retrieves recipes carrying the tag (exact normalized match)
	GetByTag(tag string) ([]models.RecipeDTO, error)
	// GetByPreparationTime retrieves recipes with exactly the given preparation time
	GetByPreparationTime(minutes int) ([]models.RecipeDTO, error)
	// GetByMinimumRating retrieves recipes whose average rating is at least min
	GetByMinimumRating(min float64) ([]models.RecipeDTO, error)
	// GetByAuthor retrieves all recipes created by the given user
	GetByAuthor(author uuid.UUID) ([]models.RecipeDTO, error)
	// GetByIngredients retrieves recipes whose ingredient lists are covered by
	// the given ingredients at or above the match threshold, best match first
	GetByIngredients(ingredients []string, minMatch float64) ([]models.RecipeDTO, error)
	// CreateRecipe validates and stores a new recipe for the author
	CreateRecipe(ctx context.Context, in models.RecipeIn, author uuid.UUID) (models.RecipeDTO, error)
	// UpdateRecipe validates and updates an existing recipe (author or admin)
	UpdateRecipe(ctx context.Context, id uint, in models.RecipeIn, actorID uuid.UUID, actorRole string) (models.RecipeDTO, error)
	// DeleteRecipe removes a recipe and its comments and ratings (author or admin)
	DeleteRecipe(id uint, actorID uuid.UUID, actorRole string) error
}

// recipeService is the implementation of the RecipeService interface
type recipeService struct {
	db       *gorm.DB
	detector AiTextDetector
}

// NewRecipeService creates a new instance of RecipeService
func NewRecipeService(db *gorm.DB, detector AiTextDetector) RecipeService {
	return &recipeService{db: db, detector: detector}
}

func (s *recipeService) GetAllRecipes() ([]models.RecipeDTO, error) {
	var recipes []models.Recipe
	if err := s.db.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return s.attach(recipes)
}

func (s *recipeService) GetRecipeByID(id uint) (models.RecipeDTO, error) {
	var recipe models.Recipe
	if err := s.db.First(&recipe, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RecipeDTO{}, models.ErrNotFound
		}
		return models.RecipeDTO{}, err
	}

	dtos, err := s.attach([]models.Recipe{recipe})
	if err != nil {
		return models.RecipeDTO{}, err
	}
	return dtos[0], nil
}

func (s *recipeService) GetByName(name string) ([]models.RecipeDTO, error) {
	var recipes []models.Recipe
	pattern := "%" + strings.ToLower(name) + "%"
	if err := s.db.Where("LOWER(name) LIKE ?", pattern).Find(&recipes).Error; err != nil {
		return nil, err
	}
	return s.attach(recipes)
}

func (s *recipeService) GetByCategory(category string) ([]models.RecipeDTO, error) {
	var recipes []models.Recipe
	pattern := "%" + strings.ToLower(category) + "%"
	if err := s.db.Where("LOWER(category) LIKE ?", pattern).Find(&recipes).Error; err != nil {
		return nil, err
	}
	return s.attach(recipes)
}

// GetByTag compares against stored tags, which are already normalized at
// write time; normalizing the query here keeps lookups round-trip consistent.
func (s *recipeService) GetByTag(tag string) ([]models.RecipeDTO, error) {
	wanted := normalize.String(strings.TrimSpace(tag))
	if wanted == "" {
		return nil, models.ErrInvalidArgument
	}

	var recipes []models.Recipe
	if err := s.db.Find(&recipes).Error; err != nil {
		return nil, err
	}

	var matched []models.Recipe
	for _, recipe := range recipes {
		for _, t := range recipe.Tags {
			if t == wanted {
				matched = append(matched, recipe)
				break
			}
		}
	}
	return s.attach(matched)
}

func (s *recipeService) GetByPreparationTime(minutes int) ([]models.RecipeDTO, error) {
	if minutes <= 0 {
		return nil, models.ErrInvalidArgument
	}

	var recipes []models.Recipe
	if err := s.db.Where("preparation_time = ?", minutes).Find(&recipes).Error; err != nil {
		return nil, err
	}
	return s.attach(recipes)
}

func (s *recipeService) GetByMinimumRating(min float64) ([]models.RecipeDTO, error) {
	if min < 0 || min > 5 {
		return nil, models.ErrInvalidArgument
	}

	var recipes []models.Recipe
	if err := s.db.Find(&recipes).Error; err != nil {
		return nil, err
	}

	dtos, err := s.attach(recipes)
	if err != nil {
		return nil, err
	}

	result := make([]models.RecipeDTO, 0, len(dtos))
	for _, dto := range dtos {
		// unrated recipes never satisfy a minimum rating
		if dto.AverageRating != nil && *dto.AverageRating >= min {
			result = append(result, dto)
		}
	}
	return result, nil
}

func (s *recipeService) GetByAuthor(author uuid.UUID) ([]models.RecipeDTO, error) {
	var recipes []models.Recipe
	if err := s.db.Where("author = ?", author).Find(&recipes).Error; err != nil {
		return nil, err
	}
	return s.attach(recipes)
}

func (s *recipeService) GetByIngredients(ingredients []string, minMatch float64) ([]models.RecipeDTO, error) {
	if len(ingredients) == 0 {
		return nil, models.ErrInvalidArgument
	}
	if minMatch < 0 || minMatch > 1 {
		return nil, models.ErrInvalidArgument
	}

	available := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		if n := normalize.String(strings.TrimSpace(ing)); n != "" {
			available = append(available, n)
		}
	}
	if len(available) == 0 {
		return nil, models.ErrInvalidArgument
	}

	var recipes []models.Recipe
	if err := s.db.Find(&recipes).Error; err != nil {
		return nil, err
	}

	type scored struct {
		recipe models.Recipe
		match  float64
	}
	var matches []scored
	for _, recipe := range recipes {
		match, ok := matchFraction(recipe.Ingredients, available)
		if ok && match >= minMatch {
			matches = append(matches, scored{recipe: recipe, match: match})
		}
	}

	// best match first; stable so equal fractions keep their storage order
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].match > matches[j].match
	})

	matched := make([]models.Recipe, 0, len(matches))
	for _, m := range matches {
		matched = append(matched, m.recipe)
	}
	result, err := s.attach(matched)
	if err != nil {
		return nil, err
	}
	// attach preserves input order, so fractions line up by index
	for i := range result {
		match := matches[i].match
		result[i].MatchPercentage = &match
	}
	return result, nil
}

// matchFraction computes the fraction of recipe ingredients covered by the
// normalized available ingredients. An available ingredient covers a recipe
// ingredient when it is a substring of the normalized recipe-ingredient
// name ("egg" covers "egg yolk", not the other way around). Recipes with no
// normalizable ingredients report ok=false and are excluded from results.
func matchFraction(recipeIngredients, available []string) (fraction float64, ok bool) {
	names := make([]string, 0, len(recipeIngredients))
	for _, entry := range recipeIngredients {
		if n := normalize.String(normalize.IngredientName(entry)); n != "" {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return 0, false
	}

	matched := 0
	for _, name := range names {
		for _, have := range available {
			if strings.Contains(name, have) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(names)), true
}

func (s *recipeService) CreateRecipe(ctx context.Context, in models.RecipeIn, author uuid.UUID) (models.RecipeDTO, error) {
	if err := ValidateRecipe(in); err != nil {
		return models.RecipeDTO{}, err
	}

	score := s.detectAI(ctx, in.Instructions)
	recipe := recipeFromInput(in)
	recipe.Author = author
	recipe.AIDetected = &score

	if err := s.db.Create(&recipe).Error; err != nil {
		return models.RecipeDTO{}, err
	}

	dto := baseDTO(recipe)
	dto.Comments = []models.CommentDTO{}
	dto.Ratings = []models.RatingDTO{}
	return dto, nil
}

func (s *recipeService) UpdateRecipe(ctx context.Context, id uint, in models.RecipeIn, actorID uuid.UUID, actorRole string) (models.RecipeDTO, error) {
	var existing models.Recipe
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RecipeDTO{}, models.ErrNotFound
		}
		return models.RecipeDTO{}, err
	}

	if !Allow(actorRole, actorID, existing.Author) {
		return models.RecipeDTO{}, models.ErrForbidden
	}

	if err := ValidateRecipe(in); err != nil {
		return models.RecipeDTO{}, err
	}

	score := s.detectAI(ctx, in.Instructions)
	updated := recipeFromInput(in)
	updated.ID = existing.ID
	updated.Author = existing.Author
	updated.CreatedAt = existing.CreatedAt
	updated.AIDetected = &score

	if err := s.db.Save(&updated).Error; err != nil {
		return models.RecipeDTO{}, err
	}
	return s.GetRecipeByID(updated.ID)
}

func (s *recipeService) DeleteRecipe(id uint, actorID uuid.UUID, actorRole string) error {
	var existing models.Recipe
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrNotFound
		}
		return err
	}

	if !Allow(actorRole, actorID, existing.Author) {
		return models.ErrForbidden
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, id).Error
	})
}

// detectAI scores the instructions text, substituting the neutral default
// when the external service is unreachable. Detector failure is logged and
// tolerated; it never blocks the mutation.
func (s *recipeService) detectAI(ctx context.Context, text string) float64 {
	score, err := s.detector.Detect(ctx, text)
	if err != nil {
		log.WithError(err).Warn("AI text detection degraded, using default score")
		return DefaultAIScore
	}
	return score
}

// recipeFromInput maps validated input onto a storable recipe row: name and
// category lowercased, ingredients lowercased and trimmed, tags normalized.
func recipeFromInput(in models.RecipeIn) models.Recipe {
	ingredients := make([]string, 0, len(in.Ingredients))
	for _, ing := range in.Ingredients {
		ingredients = append(ingredients, strings.ToLower(strings.TrimSpace(ing)))
	}

	tags := make([]string, 0, len(in.Tags))
	seen := make(map[string]bool, len(in.Tags))
	for _, tag := range in.Tags {
		n := normalize.String(strings.TrimSpace(tag))
		if n != "" && !seen[n] {
			seen[n] = true
			tags = append(tags, n)
		}
	}

	return models.Recipe{
		Name:            strings.ToLower(in.Name),
		Description:     in.Description,
		Instructions:    in.Instructions,
		Category:        strings.ToLower(in.Category),
		Ingredients:     ingredients,
		PreparationTime: in.PreparationTime,
		Servings:        in.Servings,
		Difficulty:      in.Difficulty,
		Steps:           in.Steps,
		Tags:            tags,
	}
}

// attach loads comments and ratings for the given recipes in two queries,
// groups them per recipe and builds DTOs with the computed average rating.
// Attachment completes before averaging, averaging before assembly.
func (s *recipeService) attach(recipes []models.Recipe) ([]models.RecipeDTO, error) {
	if len(recipes) == 0 {
		return []models.RecipeDTO{}, nil
	}

	ids := make([]uint, 0, len(recipes))
	for _, r := range recipes {
		ids = append(ids, r.ID)
	}

	var ratings []models.Rating
	if err := s.db.Where("recipe_id IN ?", ids).Find(&ratings).Error; err != nil {
		return nil, err
	}
	var comments []models.Comment
	if err := s.db.Where("recipe_id IN ?", ids).Find(&comments).Error; err != nil {
		return nil, err
	}

	ratingsByRecipe := make(map[uint][]models.Rating)
	ratingByID := make(map[uint]models.Rating)
	for _, r := range ratings {
		ratingsByRecipe[r.RecipeID] = append(ratingsByRecipe[r.RecipeID], r)
		ratingByID[r.ID] = r
	}
	commentsByRecipe := make(map[uint][]models.Comment)
	for _, c := range comments {
		commentsByRecipe[c.RecipeID] = append(commentsByRecipe[c.RecipeID], c)
	}

	result := make([]models.RecipeDTO, 0, len(recipes))
	for _, recipe := range recipes {
		dto := baseDTO(recipe)

		recipeRatings := ratingsByRecipe[recipe.ID]
		dto.Ratings = make([]models.RatingDTO, 0, len(recipeRatings))
		for _, r := range recipeRatings {
			dto.Ratings = append(dto.Ratings, models.NewRatingDTO(r))
		}
		dto.AverageRating = AverageRating(recipeRatings)

		recipeComments := commentsByRecipe[recipe.ID]
		dto.Comments = make([]models.CommentDTO, 0, len(recipeComments))
		for _, c := range recipeComments {
			cdto := models.CommentDTO{
				ID:        c.ID,
				Content:   c.Content,
				RecipeID:  c.RecipeID,
				Author:    c.Author,
				CreatedAt: c.CreatedAt,
			}
			if c.RatingID != nil {
				if r, ok := ratingByID[*c.RatingID]; ok {
					rdto := models.NewRatingDTO(r)
					cdto.Rating = &rdto
				}
			}
			dto.Comments = append(dto.Comments, cdto)
		}

		result = append(result, dto)
	}
	return result, nil
}

// AverageRating computes the arithmetic mean of the rating values rounded
// to two decimal places. Nil when there are no ratings: values are 1-5, so
// a nil average unambiguously means "no ratings yet" and is never zero.
func AverageRating(ratings []models.Rating) *float64 {
	if len(ratings) == 0 {
		return nil
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Value
	}
	avg := math.Round(float64(sum)/float64(len(ratings))*100) / 100
	return &avg
}

func baseDTO(recipe models.Recipe) models.RecipeDTO {
	return models.RecipeDTO{
		ID:              recipe.ID,
		Name:            recipe.Name,
		Description:     recipe.Description,
		Instructions:    recipe.Instructions,
		Category:        recipe.Category,
		Ingredients:     recipe.Ingredients,
		PreparationTime: recipe.PreparationTime,
		Servings:        recipe.Servings,
		Difficulty:      recipe.Difficulty,
		Steps:           recipe.Steps,
		Tags:            recipe.Tags,
		AIDetected:      recipe.AIDetected,
		Author:          recipe.Author,
		CreatedAt:       recipe.CreatedAt,
	}
}
