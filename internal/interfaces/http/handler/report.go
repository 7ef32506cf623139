package handler

import (
	appreport "github.com/alexrentacar/backoffice/internal/application/report"
	"github.com/gin-gonic/gin"
)

// ReportHandler serves the dashboard and summary reports
type ReportHandler struct {
	BaseHandler
	reportService *appreport.Service
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *appreport.Service) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// IncomeQuery selects the year of the monthly income series
type IncomeQuery struct {
	Year int `form:"year" binding:"omitempty,min=2000,max=2100" example:"2026"`
}

// Dashboard godoc
// @Summary      Dashboard counters
// @Description  Served from cache when one is configured
// @Tags         reports
// @Produce      json
// @Success      200 {object} APIResponse[report.Dashboard]
// @Security     BearerAuth
// @Router       /reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	dash, err := h.reportService.Dashboard(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dash)
}

// RefreshDashboard godoc
// @Summary      Drop the cached dashboard
// @Tags         reports
// @Success      204
// @Security     BearerAuth
// @Router       /reports/dashboard/refresh [post]
func (h *ReportHandler) RefreshDashboard(c *gin.Context) {
	if err := h.reportService.InvalidateDashboard(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Income godoc
// @Summary      Monthly income of a year
// @Tags         reports
// @Produce      json
// @Param        year query int false "Year, defaults to the current one"
// @Success      200 {object} APIResponse[[]report.MonthlyIncome]
// @Failure      400 {object} ValidationErrorResponse
// @Security     BearerAuth
// @Router       /reports/income [get]
func (h *ReportHandler) Income(c *gin.Context) {
	var q IncomeQuery
	if !h.bindQuery(c, &q) {
		return
	}
	series, err := h.reportService.IncomeByMonth(c.Request.Context(), q.Year)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, series)
}

// Owners godoc
// @Summary      Owners with vehicle counts
// @Tags         reports
// @Produce      json
// @Success      200 {object} APIResponse[[]report.OwnerSummary]
// @Security     BearerAuth
// @Router       /reports/owners [get]
func (h *ReportHandler) Owners(c *gin.Context) {
	rows, err := h.reportService.OwnerSummaries(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if rows == nil {
		h.Success(c, []any{})
		return
	}
	h.Success(c, rows)
}

// Tenants godoc
// @Summary      Tenants with rentals and pending debt
// @Tags         reports
// @Produce      json
// @Success      200 {object} APIResponse[[]report.TenantSummary]
// @Security     BearerAuth
// @Router       /reports/tenants [get]
func (h *ReportHandler) Tenants(c *gin.Context) {
	rows, err := h.reportService.TenantSummaries(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if rows == nil {
		h.Success(c, []any{})
		return
	}
	h.Success(c, rows)
}
