package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mealshare/gin-meal-api/internal/models"
	"github.com/mealshare/gin-meal-api/internal/services"
)

// ReportController handles HTTP requests related to abuse reports.
// Listing, status updates and deletion are admin-only; filing a report and
// listing one's own reports are open to any authenticated user.
type ReportController interface {
	// CreateReport files a report against a recipe or comment
	CreateReport(c *gin.Context)
	// GetMyReports retrieves the caller's own reports
	GetMyReports(c *gin.Context)
	// GetAllReports retrieves all reports
	GetAllReports(c *gin.Context)
	// GetReportByID retrieves a single report
	GetReportByID(c *gin.Context)
	// GetReportsByRecipe retrieves reports filed against a recipe
	GetReportsByRecipe(c *gin.Context)
	// GetReportsByComment retrieves reports filed against a comment
	GetReportsByComment(c *gin.Context)
	// UpdateReportStatus applies a moderation decision
	UpdateReportStatus(c *gin.Context)
	// DeleteReport deletes a report
	DeleteReport(c *gin.Context)
}

type reportController struct {
	service services.ReportService
}

// NewReportController creates a new instance of ReportController
func NewReportController(service services.ReportService) *reportController {
	return &reportController{service: service}
}

// CreateReport godoc
// @Summary File a report
// @Description Report a recipe or a comment for moderation; at least one target must be given
// @Tags reports
// @Accept json
// @Produce json
// @Param report body models.ReportIn true "Report object"
// @Success 201 {object} models.ReportDTO
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Failure 422 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/reports [post]
func (c *reportController) CreateReport(ctx *gin.Context) {
	var in models.ReportIn
	if err := ctx.ShouldBindJSON(&in); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrCodeBadRequest, "invalid request body"))
		return
	}

	userID, _, ok := currentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrCodeUnauthorized, "user not authenticated"))
		return
	}

	report, err := c.service.Create(in, userID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, report)
}

// GetMyReports godoc
// @Summary Get own reports
// @Description Get all reports filed by the caller, newest first
// @Tags reports
// @Accept json
// @Produce json
// @Success 200 {array} models.ReportDTO
// @Failure 401 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/reports/my [get]
func (c *reportController) GetMyReports(ctx *gin.Context) {
	userID, _, ok := currentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrCodeUnauthorized, "user not authenticated"))
		return
	}

	reports, err := c.service.GetByReporter(userID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, reports)
}

// GetAllReports godoc
// @Summary Get all reports
// @Description Get all reports, optionally filtered by status
// @Tags reports
// @Accept json
// @Produce json
// @Param status query string false "Filter by status: pending, resolved or rejected"
// @Success 200 {array} models.ReportDTO
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Failure 403 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/admin/reports [get]
func (c *reportController) GetAllReports(ctx *gin.Context) {
	var reports []models.ReportDTO
	var err error

	if status := ctx.Query("status"); status != "" {
		reports, err = c.service.GetByStatus(status)
	} else {
		reports, err = c.service.GetAll()
	}
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, reports)
}

// GetReportByID godoc
// @Summary Get report by ID
// @Description Get a single report by its ID
// @Tags reports
// @Accept json
// @Produce json
// @Param id path int true "Report ID"
// @Success 200 {object} models.ReportDTO
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/admin/reports/{id} [get]
func (c *reportController) GetReportByID(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	report, err := c.service.GetByID(id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, report)
}

// GetReportsByRecipe godoc
// @Summary Get reports for a recipe
// @Description Get all reports filed against the given recipe
// @Tags reports
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {array} models.ReportDTO
// @Failure 400 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/admin/reports/recipe/{id} [get]
func (c *reportController) GetReportsByRecipe(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	reports, err := c.service.GetByRecipe(id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, reports)
}

// GetReportsByComment godoc
// @Summary Get reports for a comment
// @Description Get all reports filed against the given comment
// @Tags reports
// @Accept json
// @Produce json
// @Param id path int true "Comment ID"
// @Success 200 {array} models.ReportDTO
// @Failure 400 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/admin/reports/comment/{id} [get]
func (c *reportController) GetReportsByComment(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	reports, err := c.service.GetByComment(id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, reports)
}

// UpdateReportStatus godoc
// @Summary Resolve or reject a report
// @Description Apply a moderation decision to a pending report; resolved and rejected are terminal
// @Tags reports
// @Accept json
// @Produce json
// @Param id path int true "Report ID"
// @Param decision body models.ReportStatusIn true "Status decision"
// @Success 200 {object} models.ReportDTO
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Failure 422 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/admin/reports/{id}/status [put]
func (c *reportController) UpdateReportStatus(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var in models.ReportStatusIn
	if err := ctx.ShouldBindJSON(&in); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrCodeBadRequest, "invalid request body"))
		return
	}

	userID, _, okUser := currentUser(ctx)
	if !okUser {
		ctx.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrCodeUnauthorized, "user not authenticated"))
		return
	}

	report, err := c.service.UpdateStatus(id, in, userID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, report)
}

// DeleteReport godoc
// @Summary Delete a report
// @Description Delete a report by its ID
// @Tags reports
// @Accept json
// @Produce json
// @Param id path int true "Report ID"
// @Success 204 "No Content"
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/admin/reports/{id} [delete]
func (c *reportController) DeleteReport(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	if err := c.service.Delete(id); err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
