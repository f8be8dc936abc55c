package handlers

import (
	"strings"
	"time"

	"ledger-reports/internal/dto"
	"ledger-reports/internal/services"

	"github.com/labstack/echo/v4"
)

// TransactionHandler serves the transaction listing endpoints
type TransactionHandler struct {
	reportService services.ReportServiceInterface
	location      *time.Location
}

// NewTransactionHandler creates a new transaction handler. Times in responses are rendered in loc.
func NewTransactionHandler(reportService services.ReportServiceInterface, loc *time.Location) *TransactionHandler {
	if loc == nil {
		loc = time.UTC
	}

	return &TransactionHandler{
		reportService: reportService,
		location:      loc,
	}
}

// RegisterRoutes mounts the transaction endpoints on g
func (h *TransactionHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/periods", h.AvailablePeriods)
	g.GET("/month/:year/:month", h.MonthTransactions)
	g.GET("/:id", h.GetTransaction)
}

// AvailablePeriods lists the years and months that contain transactions
// @Summary Available periods
// @Tags Transactions
// @Produce json
// @Success 200 {object} SuccessResponse{data=[]models.AvailablePeriod}
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /transactions/periods [get]
func (h *TransactionHandler) AvailablePeriods(c echo.Context) error {
	periods, err := h.reportService.AvailablePeriods(c.Request().Context())
	if err != nil {
		return handleServiceError(c, err)
	}

	return SendData(c, periods)
}

// MonthTransactions lists a month's transactions newest first, offsetting pairs removed
// @Summary Month transactions
// @Tags Transactions
// @Produce json
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Success 200 {object} SuccessResponse{data=dto.MonthTransactionsResponse}
// @Failure 400 {object} errors.ErrorResponse "REPORT_001 - Invalid period"
// @Failure 422 {object} errors.ErrorResponse "TRANSACTION_003 - Stored transaction data is incomplete"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /transactions/month/{year}/{month} [get]
func (h *TransactionHandler) MonthTransactions(c echo.Context) error {
	var req dto.PeriodRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	transactions, err := h.reportService.MonthTransactions(c.Request().Context(), req.Year, req.Month)
	if err != nil {
		return handleServiceError(c, err)
	}

	return SendData(c, dto.NewMonthTransactionsResponse(req.Year, req.Month, transactions, h.location))
}

// GetTransaction returns one stored transaction
// @Summary Get transaction by ID
// @Tags Transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} SuccessResponse{data=dto.TransactionResponse}
// @Failure 400 {object} errors.ErrorResponse "TRANSACTION_002 - Invalid transaction ID"
// @Failure 404 {object} errors.ErrorResponse "TRANSACTION_001 - Transaction not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	var req dto.TransactionIDRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	transaction, err := h.reportService.TransactionByID(c.Request().Context(), strings.TrimSpace(req.ID))
	if err != nil {
		return handleServiceError(c, err)
	}

	return SendData(c, dto.NewTransactionResponse(transaction, h.location))
}
