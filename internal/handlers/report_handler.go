package handlers

import (
	"strings"

	"ledger-reports/internal/dto"
	"ledger-reports/internal/services"

	"github.com/labstack/echo/v4"
)

// ReportHandler serves the income/expense reports
type ReportHandler struct {
	reportService services.ReportServiceInterface
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService services.ReportServiceInterface) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RegisterRoutes mounts the report endpoints on g
func (h *ReportHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/monthly", h.MonthlySummaries)
	g.GET("/monthly/:year/:month", h.MonthSummary)
	g.GET("/yearly", h.YearlySummaries)
	g.GET("/daily/:year/:month", h.DailyChart)
	g.GET("/categories/:year/:month", h.CategoryChart)
	g.GET("/dashboard/:year/:month", h.Dashboard)
}

// MonthlySummaries lists income, expense and net profit per month
// @Summary Monthly summaries
// @Tags Reports
// @Produce json
// @Success 200 {object} SuccessResponse{data=[]models.PeriodSummary}
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /reports/monthly [get]
func (h *ReportHandler) MonthlySummaries(c echo.Context) error {
	summaries, err := h.reportService.MonthlySummaries(c.Request().Context())
	if err != nil {
		return handleServiceError(c, err)
	}

	return SendData(c, summaries)
}

// MonthSummary returns a single month's totals, zero-filled when the month is empty
// @Summary Month summary
// @Tags Reports
// @Produce json
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Success 200 {object} SuccessResponse{data=models.PeriodSummary}
// @Failure 400 {object} errors.ErrorResponse "REPORT_001 - Invalid period"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /reports/monthly/{year}/{month} [get]
func (h *ReportHandler) MonthSummary(c echo.Context) error {
	var req dto.PeriodRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	summary, err := h.reportService.MonthSummary(c.Request().Context(), req.Year, req.Month)
	if err != nil {
		return handleServiceError(c, err)
	}

	return SendData(c, summary)
}

// YearlySummaries lists income, expense and net profit per year
// @Summary Yearly summaries
// @Tags Reports
// @Produce json
// @Success 200 {object} SuccessResponse{data=[]models.YearSummary}
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /reports/yearly [get]
func (h *ReportHandler) YearlySummaries(c echo.Context) error {
	summaries, err := h.reportService.YearlySummaries(c.Request().Context())
	if err != nil {
		return handleServiceError(c, err)
	}

	return SendData(c, summaries)
}

// DailyChart returns one point per day of the month
// @Summary Daily chart
// @Tags Reports
// @Produce json
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Param metric query string false "Plotted metric" Enums(expense, income, net) default(expense)
// @Success 200 {object} SuccessResponse{data=[]models.DailyValue}
// @Failure 400 {object} errors.ErrorResponse "REPORT_001 - Invalid period or REPORT_002 - Invalid metric"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /reports/daily/{year}/{month} [get]
func (h *ReportHandler) DailyChart(c echo.Context) error {
	var req dto.DailyChartRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	metric := strings.ToLower(strings.TrimSpace(req.Metric))
	values, err := h.reportService.DailyChart(c.Request().Context(), req.Year, req.Month, metric)
	if err != nil {
		return handleServiceError(c, err)
	}

	return SendData(c, values)
}

// CategoryChart returns the month's expense split by category
// @Summary Category chart
// @Tags Reports
// @Produce json
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Param details query bool false "Include the transactions behind each category"
// @Success 200 {object} SuccessResponse{data=[]models.CategoryShare}
// @Failure 400 {object} errors.ErrorResponse "REPORT_001 - Invalid period"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /reports/categories/{year}/{month} [get]
func (h *ReportHandler) CategoryChart(c echo.Context) error {
	var req dto.CategoryChartRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	shares, err := h.reportService.CategoryChart(c.Request().Context(), req.Year, req.Month, req.Details)
	if err != nil {
		return handleServiceError(c, err)
	}

	return SendData(c, shares)
}

// Dashboard bundles the month summary, daily expense and categories
// @Summary Month dashboard
// @Tags Reports
// @Produce json
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Success 200 {object} SuccessResponse{data=models.MonthDashboard}
// @Failure 400 {object} errors.ErrorResponse "REPORT_001 - Invalid period"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /reports/dashboard/{year}/{month} [get]
func (h *ReportHandler) Dashboard(c echo.Context) error {
	var req dto.PeriodRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	dashboard, err := h.reportService.Dashboard(c.Request().Context(), req.Year, req.Month)
	if err != nil {
		return handleServiceError(c, err)
	}

	return SendData(c, dashboard)
}
