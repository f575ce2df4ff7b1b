package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/mealshare/gin-meal-api/internal/models"
	"gorm.io/gorm"
)

// CommentService manages recipe comments. A comment can carry a rating; the
// rating is stored through the same upsert path as standalone ratings, so a
// commenting author still holds at most one rating per recipe.
type CommentService interface {
	// Create adds a comment to a recipe, optionally with a rating
	Create(in models.CommentCreate, author uuid.UUID) (models.CommentDTO, error)
	// GetByID retrieves a single comment
	GetByID(commentID uint) (models.CommentDTO, error)
	// GetByRecipe retrieves all comments for a recipe
	GetByRecipe(recipeID uint) ([]models.CommentDTO, error)
	// GetByUser retrieves all comments made by a user
	GetByUser(userID uuid.UUID) ([]models.CommentDTO, error)
	// Update changes a comment's content and rating (author or admin)
	Update(commentID uint, in models.CommentIn, actorID uuid.UUID, actorRole string) (models.CommentDTO, error)
	// Delete removes a comment and its linked rating (author or admin)
	Delete(commentID uint, actorID uuid.UUID, actorRole string) error
}

type commentService struct {
	db      *gorm.DB
	ratings RatingService
}

// NewCommentService creates a new instance of CommentService
func NewCommentService(db *gorm.DB, ratings RatingService) CommentService {
	return &commentService{db: db, ratings: ratings}
}

func (s *commentService) Create(in models.CommentCreate, author uuid.UUID) (models.CommentDTO, error) {
	if err := ValidateCommentContent(in.Content); err != nil {
		return models.CommentDTO{}, err
	}
	if in.Rating != nil {
		if err := ValidateRatingValue(*in.Rating); err != nil {
			return models.CommentDTO{}, err
		}
	}

	var recipe models.Recipe
	if err := s.db.First(&recipe, in.RecipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.CommentDTO{}, models.ErrNotFound
		}
		return models.CommentDTO{}, err
	}

	comment := models.Comment{
		Content:  in.Content,
		RecipeID: in.RecipeID,
		Author:   author,
	}

	if in.Rating != nil {
		rating, err := s.ratings.Upsert(in.RecipeID, *in.Rating, author)
		if err != nil {
			return models.CommentDTO{}, err
		}
		comment.RatingID = &rating.ID
	}

	if err := s.db.Create(&comment).Error; err != nil {
		return models.CommentDTO{}, err
	}
	return s.GetByID(comment.ID)
}

func (s *commentService) GetByID(commentID uint) (models.CommentDTO, error) {
	var comment models.Comment
	if err := s.db.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.CommentDTO{}, models.ErrNotFound
		}
		return models.CommentDTO{}, err
	}
	return s.toDTO(comment)
}

func (s *commentService) GetByRecipe(recipeID uint) ([]models.CommentDTO, error) {
	var comments []models.Comment
	if err := s.db.Where("recipe_id = ?", recipeID).Find(&comments).Error; err != nil {
		return nil, err
	}
	return s.toDTOs(comments)
}

func (s *commentService) GetByUser(userID uuid.UUID) ([]models.CommentDTO, error) {
	var comments []models.Comment
	if err := s.db.Where("author = ?", userID).Find(&comments).Error; err != nil {
		return nil, err
	}
	return s.toDTOs(comments)
}

func (s *commentService) Update(commentID uint, in models.CommentIn, actorID uuid.UUID, actorRole string) (models.CommentDTO, error) {
	var comment models.Comment
	if err := s.db.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.CommentDTO{}, models.ErrNotFound
		}
		return models.CommentDTO{}, err
	}

	if !Allow(actorRole, actorID, comment.Author) {
		return models.CommentDTO{}, models.ErrForbidden
	}

	if err := ValidateCommentContent(in.Content); err != nil {
		return models.CommentDTO{}, err
	}
	if in.Rating != nil {
		if err := ValidateRatingValue(*in.Rating); err != nil {
			return models.CommentDTO{}, err
		}
	}

	comment.Content = in.Content
	if in.Rating != nil {
		// the rating belongs to the comment's author even when an admin edits
		rating, err := s.ratings.Upsert(comment.RecipeID, *in.Rating, comment.Author)
		if err != nil {
			return models.CommentDTO{}, err
		}
		comment.RatingID = &rating.ID
	}

	if err := s.db.Save(&comment).Error; err != nil {
		return models.CommentDTO{}, err
	}
	return s.GetByID(comment.ID)
}

func (s *commentService) Delete(commentID uint, actorID uuid.UUID, actorRole string) error {
	var comment models.Comment
	if err := s.db.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrNotFound
		}
		return err
	}

	if !Allow(actorRole, actorID, comment.Author) {
		return models.ErrForbidden
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if comment.RatingID != nil {
			if err := tx.Delete(&models.Rating{}, *comment.RatingID).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Comment{}, commentID).Error
	})
}

func (s *commentService) toDTO(comment models.Comment) (models.CommentDTO, error) {
	dto := models.CommentDTO{
		ID:        comment.ID,
		Content:   comment.Content,
		RecipeID:  comment.RecipeID,
		Author:    comment.Author,
		CreatedAt: comment.CreatedAt,
	}
	if comment.RatingID != nil {
		var rating models.Rating
		err := s.db.First(&rating, *comment.RatingID).Error
		if err == nil {
			rdto := models.NewRatingDTO(rating)
			dto.Rating = &rdto
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return models.CommentDTO{}, err
		}
	}
	return dto, nil
}

func (s *commentService) toDTOs(comments []models.Comment) ([]models.CommentDTO, error) {
	result := make([]models.CommentDTO, 0, len(comments))
	for _, c := range comments {
		dto, err := s.toDTO(c)
		if err != nil {
			return nil, err
		}
		result = append(result, dto)
	}
	return result, nil
}
