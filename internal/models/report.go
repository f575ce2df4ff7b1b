package models

import (
	"time"

	"github.com/google/uuid"
)

// Report status lifecycle: pending is the only non-terminal state.
const (
	ReportStatusPending  = "pending"
	ReportStatusResolved = "resolved"
	ReportStatusRejected = "rejected"
)

// Reasons a user can give when reporting content.
const (
	ReportReasonInappropriate = "inappropriate_content"
	ReportReasonSpam          = "spam"
	ReportReasonHarassment    = "harassment"
	ReportReasonOther         = "other"
)

var AllowedReportReasons = map[string]bool{
	ReportReasonInappropriate: true,
	ReportReasonSpam:          true,
	ReportReasonHarassment:    true,
	ReportReasonOther:         true,
}

var AllowedReportStatuses = map[string]bool{
	ReportStatusPending:  true,
	ReportStatusResolved: true,
	ReportStatusRejected: true,
}

// Report flags a recipe or a comment for moderation. At least one of
// RecipeID/CommentID must be set.
type Report struct {
	ID             uint      `gorm:"primaryKey"`
	ReporterID     uuid.UUID `gorm:"type:uuid;not null;index"`
	RecipeID       *uint     `gorm:"index"`
	CommentID      *uint     `gorm:"index"`
	Reason         string    `gorm:"not null"`
	Description    string
	Status         string `gorm:"not null;default:'pending';index"`
	ResolvedBy     *uuid.UUID `gorm:"type:uuid"`
	ResolutionNote *string
	ResolvedAt     *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ReportIn carries the payload for creating a report.
type ReportIn struct {
	RecipeID    *uint  `json:"recipe_id"`
	CommentID   *uint  `json:"comment_id"`
	Reason      string `json:"reason" binding:"required"`
	Description string `json:"description"`
}

// ReportStatusIn carries the payload for a moderation decision.
type ReportStatusIn struct {
	Status         string  `json:"status" binding:"required"`
	ResolutionNote *string `json:"resolution_note"`
}
