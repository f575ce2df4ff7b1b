package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/mealshare/gin-meal-api/internal/models"
	"gorm.io/gorm"
)

// RatingService manages per-user recipe ratings. One rating per
// (author, recipe): a repeated submission updates the existing row.
type RatingService interface {
	// Upsert creates or updates the author's rating for a recipe
	Upsert(recipeID uint, value int, author uuid.UUID) (models.RatingDTO, error)
	// GetByRecipe retrieves all ratings for a recipe
	GetByRecipe(recipeID uint) ([]models.RatingDTO, error)
	// Delete removes the rating (author or admin)
	Delete(ratingID uint, actorID uuid.UUID, actorRole string) error
}

type ratingService struct {
	db *gorm.DB
}

// NewRatingService creates a new instance of RatingService
func NewRatingService(db *gorm.DB) RatingService {
	return &ratingService{db: db}
}

func (s *ratingService) Upsert(recipeID uint, value int, author uuid.UUID) (models.RatingDTO, error) {
	if err := ValidateRatingValue(value); err != nil {
		return models.RatingDTO{}, err
	}

	var recipe models.Recipe
	if err := s.db.First(&recipe, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RatingDTO{}, models.ErrNotFound
		}
		return models.RatingDTO{}, err
	}

	var rating models.Rating
	err := s.db.Where("recipe_id = ? AND author = ?", recipeID, author).First(&rating).Error
	switch {
	case err == nil:
		rating.Value = value
		if err := s.db.Save(&rating).Error; err != nil {
			return models.RatingDTO{}, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		rating = models.Rating{Value: value, RecipeID: recipeID, Author: author}
		if err := s.db.Create(&rating).Error; err != nil {
			return models.RatingDTO{}, err
		}
	default:
		return models.RatingDTO{}, err
	}

	return models.NewRatingDTO(rating), nil
}

func (s *ratingService) GetByRecipe(recipeID uint) ([]models.RatingDTO, error) {
	var ratings []models.Rating
	if err := s.db.Where("recipe_id = ?", recipeID).Find(&ratings).Error; err != nil {
		return nil, err
	}

	result := make([]models.RatingDTO, 0, len(ratings))
	for _, r := range ratings {
		result = append(result, models.NewRatingDTO(r))
	}
	return result, nil
}

func (s *ratingService) Delete(ratingID uint, actorID uuid.UUID, actorRole string) error {
	var rating models.Rating
	if err := s.db.First(&rating, ratingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrNotFound
		}
		return err
	}

	if !Allow(actorRole, actorID, rating.Author) {
		return models.ErrForbidden
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		// unlink any comment that carried this rating
		if err := tx.Model(&models.Comment{}).
			Where("rating_id = ?", ratingID).
			Update("rating_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Rating{}, ratingID).Error
	})
}
