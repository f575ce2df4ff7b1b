package models

import (
	"time"

	"github.com/google/uuid"
)

// Rating is a single 1-5 score a user gave a recipe. One rating per
// (author, recipe); a later submission updates the existing row.
type Rating struct {
	ID        uint      `gorm:"primaryKey"`
	Value     int       `gorm:"not null"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_rating_recipe_author"`
	Author    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rating_recipe_author"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RatingIn carries a client-supplied rating value.
type RatingIn struct {
	Value int `json:"value" binding:"required"`
}
