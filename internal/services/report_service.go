package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mealshare/gin-meal-api/internal/models"
	"gorm.io/gorm"
)

// ReportService manages abuse reports and their moderation lifecycle.
// Pending is the only non-terminal status: once a report is resolved or
// rejected its status can no longer change.
type ReportService interface {
	// Create files a report against a recipe and/or a comment
	Create(in models.ReportIn, reporter uuid.UUID) (models.ReportDTO, error)
	// GetAll retrieves every report, newest first
	GetAll() ([]models.ReportDTO, error)
	// GetByID retrieves a single report
	GetByID(reportID uint) (models.ReportDTO, error)
	// GetByStatus retrieves reports with the given status
	GetByStatus(status string) ([]models.ReportDTO, error)
	// GetByRecipe retrieves reports filed against a recipe
	GetByRecipe(recipeID uint) ([]models.ReportDTO, error)
	// GetByComment retrieves reports filed against a comment
	GetByComment(commentID uint) ([]models.ReportDTO, error)
	// GetByReporter retrieves reports filed by a user
	GetByReporter(reporter uuid.UUID) ([]models.ReportDTO, error)
	// UpdateStatus applies a moderation decision to a pending report
	UpdateStatus(reportID uint, in models.ReportStatusIn, resolver uuid.UUID) (models.ReportDTO, error)
	// Delete removes a report
	Delete(reportID uint) error
}

type reportService struct {
	db *gorm.DB
}

// NewReportService creates a new instance of ReportService
func NewReportService(db *gorm.DB) ReportService {
	return &reportService{db: db}
}

func (s *reportService) Create(in models.ReportIn, reporter uuid.UUID) (models.ReportDTO, error) {
	// at least one target must be named
	if in.RecipeID == nil && in.CommentID == nil {
		return models.ReportDTO{}, models.NewValidationError("target", "a report must reference a recipe or a comment")
	}
	if !models.AllowedReportReasons[in.Reason] {
		return models.ReportDTO{}, models.NewValidationError("reason", "unknown report reason")
	}

	if in.RecipeID != nil {
		var recipe models.Recipe
		if err := s.db.First(&recipe, *in.RecipeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ReportDTO{}, models.ErrNotFound
			}
			return models.ReportDTO{}, err
		}
	}
	if in.CommentID != nil {
		var comment models.Comment
		if err := s.db.First(&comment, *in.CommentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ReportDTO{}, models.ErrNotFound
			}
			return models.ReportDTO{}, err
		}
	}

	report := models.Report{
		ReporterID:  reporter,
		RecipeID:    in.RecipeID,
		CommentID:   in.CommentID,
		Reason:      in.Reason,
		Description: in.Description,
		Status:      models.ReportStatusPending,
	}
	if err := s.db.Create(&report).Error; err != nil {
		return models.ReportDTO{}, err
	}
	return models.NewReportDTO(report), nil
}

func (s *reportService) GetAll() ([]models.ReportDTO, error) {
	var reports []models.Report
	if err := s.db.Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, err
	}
	return toReportDTOs(reports), nil
}

func (s *reportService) GetByID(reportID uint) (models.ReportDTO, error) {
	var report models.Report
	if err := s.db.First(&report, reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ReportDTO{}, models.ErrNotFound
		}
		return models.ReportDTO{}, err
	}
	return models.NewReportDTO(report), nil
}

func (s *reportService) GetByStatus(status string) ([]models.ReportDTO, error) {
	if !models.AllowedReportStatuses[status] {
		return nil, models.ErrInvalidArgument
	}
	var reports []models.Report
	if err := s.db.Where("status = ?", status).Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, err
	}
	return toReportDTOs(reports), nil
}

func (s *reportService) GetByRecipe(recipeID uint) ([]models.ReportDTO, error) {
	var reports []models.Report
	if err := s.db.Where("recipe_id = ?", recipeID).Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, err
	}
	return toReportDTOs(reports), nil
}

func (s *reportService) GetByComment(commentID uint) ([]models.ReportDTO, error) {
	var reports []models.Report
	if err := s.db.Where("comment_id = ?", commentID).Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, err
	}
	return toReportDTOs(reports), nil
}

func (s *reportService) GetByReporter(reporter uuid.UUID) ([]models.ReportDTO, error) {
	var reports []models.Report
	if err := s.db.Where("reporter_id = ?", reporter).Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, err
	}
	return toReportDTOs(reports), nil
}

func (s *reportService) UpdateStatus(reportID uint, in models.ReportStatusIn, resolver uuid.UUID) (models.ReportDTO, error) {
	if !models.AllowedReportStatuses[in.Status] {
		return models.ReportDTO{}, models.ErrInvalidArgument
	}

	var report models.Report
	if err := s.db.First(&report, reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ReportDTO{}, models.ErrNotFound
		}
		return models.ReportDTO{}, err
	}

	// resolved and rejected are terminal
	if report.Status != models.ReportStatusPending {
		return models.ReportDTO{}, models.NewValidationError("status", "report has already been "+report.Status)
	}
	if in.Status == models.ReportStatusPending {
		return models.ReportDTO{}, models.NewValidationError("status", "a pending report cannot transition to pending")
	}
	if in.Status == models.ReportStatusResolved && resolver == uuid.Nil {
		return models.ReportDTO{}, models.NewValidationError("resolved_by", "resolving a report requires a resolver")
	}

	report.Status = in.Status
	report.ResolutionNote = in.ResolutionNote
	// only a resolution records who acted and when; a rejection leaves the
	// resolver fields empty
	if in.Status == models.ReportStatusResolved {
		now := time.Now().UTC()
		report.ResolvedBy = &resolver
		report.ResolvedAt = &now
	}

	if err := s.db.Save(&report).Error; err != nil {
		return models.ReportDTO{}, err
	}
	return models.NewReportDTO(report), nil
}

func (s *reportService) Delete(reportID uint) error {
	result := s.db.Delete(&models.Report{}, reportID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

func toReportDTOs(reports []models.Report) []models.ReportDTO {
	result := make([]models.ReportDTO, 0, len(reports))
	for _, r := range reports {
		result = append(result, models.NewReportDTO(r))
	}
	return result
}
