package models

import (
	"time"

	"github.com/google/uuid"
)

// Recipe difficulty levels. Polish variants are accepted alongside the
// English ones; users enter both.
var AllowedDifficulties = map[string]bool{
	"easy":   true,
	"medium": true,
	"hard":   true,
	"łatwy":  true,
	"średni": true,
	"trudny": true,
}

// Recipe is the central entity users create, rate and comment on.
// Ingredients are stored as "amount:name" strings, lowercased and trimmed.
// Tags are normalized (diacritics stripped, lowercased) before storage so
// tag search can compare exact normalized values.
type Recipe struct {
	ID              uint      `gorm:"primaryKey"`
	Name            string    `gorm:"not null;index"`
	Description     string
	Instructions    string   `gorm:"not null"`
	Category        string   `gorm:"not null;index"`
	Ingredients     []string `gorm:"serializer:json;not null"`
	PreparationTime int      `gorm:"not null"`
	Servings        *int
	Difficulty      *string
	Steps           []string  `gorm:"serializer:json"`
	Tags            []string  `gorm:"serializer:json"`
	Author          uuid.UUID `gorm:"type:uuid;not null;index"`
	AIDetected      *float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RecipeIn carries the client-supplied recipe attributes for create/update.
type RecipeIn struct {
	Name            string   `json:"name" binding:"required"`
	Description     string   `json:"description"`
	Instructions    string   `json:"instructions" binding:"required"`
	Category        string   `json:"category" binding:"required"`
	Ingredients     []string `json:"ingredients" binding:"required"`
	PreparationTime int      `json:"preparation_time" binding:"required"`
	Servings        *int     `json:"servings"`
	Difficulty      *string  `json:"difficulty"`
	Steps           []string `json:"steps"`
	Tags            []string `json:"tags"`
}
