package models

import (
	"time"

	"github.com/google/uuid"
)

// Response shapes returned by the API. Wire names are stable; existing
// clients depend on them.

type RatingDTO struct {
	ID        uint      `json:"id"`
	Value     int       `json:"value"`
	RecipeID  uint      `json:"recipe_id"`
	Author    uuid.UUID `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

type CommentDTO struct {
	ID        uint       `json:"id"`
	Content   string     `json:"content"`
	RecipeID  uint       `json:"recipe_id"`
	Author    uuid.UUID  `json:"author"`
	CreatedAt time.Time  `json:"created_at"`
	Rating    *RatingDTO `json:"rating,omitempty"`
}

// RecipeDTO is a recipe with its comments and ratings attached and the
// average rating computed. AverageRating is null when the recipe has no
// ratings yet; MatchPercentage is only set on ingredient-search responses.
type RecipeDTO struct {
	ID              uint         `json:"id"`
	Name            string       `json:"name"`
	Description     string       `json:"description"`
	Instructions    string       `json:"instructions"`
	Category        string       `json:"category"`
	Ingredients     []string     `json:"ingredients"`
	PreparationTime int          `json:"preparation_time"`
	Servings        *int         `json:"servings"`
	Difficulty      *string      `json:"difficulty"`
	Steps           []string     `json:"steps"`
	Tags            []string     `json:"tags"`
	AverageRating   *float64     `json:"average_rating"`
	AIDetected      *float64     `json:"ai_detected,omitempty"`
	Author          uuid.UUID    `json:"author"`
	CreatedAt       time.Time    `json:"created_at"`
	Comments        []CommentDTO `json:"comments"`
	Ratings         []RatingDTO  `json:"ratings"`
	MatchPercentage *float64     `json:"match_percentage,omitempty"`
}

type ReportDTO struct {
	ID             uint       `json:"id"`
	ReporterID     uuid.UUID  `json:"reporter_id"`
	RecipeID       *uint      `json:"recipe_id,omitempty"`
	CommentID      *uint      `json:"comment_id,omitempty"`
	Reason         string     `json:"reason"`
	Description    string     `json:"description"`
	Status         string     `json:"status"`
	ResolvedBy     *uuid.UUID `json:"resolved_by,omitempty"`
	ResolutionNote *string    `json:"resolution_note,omitempty"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type UserDTO struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

// NewRatingDTO maps a rating row to its response shape.
func NewRatingDTO(r Rating) RatingDTO {
	return RatingDTO{
		ID:        r.ID,
		Value:     r.Value,
		RecipeID:  r.RecipeID,
		Author:    r.Author,
		CreatedAt: r.CreatedAt,
	}
}

// NewReportDTO maps a report row to its response shape.
func NewReportDTO(r Report) ReportDTO {
	return ReportDTO{
		ID:             r.ID,
		ReporterID:     r.ReporterID,
		RecipeID:       r.RecipeID,
		CommentID:      r.CommentID,
		Reason:         r.Reason,
		Description:    r.Description,
		Status:         r.Status,
		ResolvedBy:     r.ResolvedBy,
		ResolutionNote: r.ResolutionNote,
		ResolvedAt:     r.ResolvedAt,
		CreatedAt:      r.CreatedAt,
	}
}

// NewUserDTO maps a user row to its response shape.
func NewUserDTO(u User) UserDTO {
	return UserDTO{ID: u.ID, Email: u.Email, Role: u.Role}
}
