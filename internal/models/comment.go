package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is user feedback on a recipe, optionally carrying a rating.
// RatingID links the rating created alongside the comment, if any.
type Comment struct {
	ID        uint      `gorm:"primaryKey"`
	Content   string    `gorm:"not null"`
	RecipeID  uint      `gorm:"not null;index"`
	Author    uuid.UUID `gorm:"type:uuid;not null;index"`
	RatingID  *uint
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CommentCreate carries the payload for creating a comment.
type CommentCreate struct {
	RecipeID uint   `json:"recipe_id" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Rating   *int   `json:"rating"`
}

// CommentIn carries the payload for updating an existing comment.
type CommentIn struct {
	Content string `json:"content" binding:"required"`
	Rating  *int   `json:"rating"`
}
