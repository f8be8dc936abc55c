package services

import (
	"context"
	"time"

	"ledger-reports/internal/models"
)

// ReportServiceInterface builds the income/expense reports served by the API
type ReportServiceInterface interface {
	// MonthlySummaries returns one summary per month that has data, newest first
	MonthlySummaries(ctx context.Context) ([]models.PeriodSummary, error)

	// YearlySummaries returns one summary per year that has data, newest first
	YearlySummaries(ctx context.Context) ([]models.YearSummary, error)

	// MonthSummary returns the totals of a single month, zero-filled when it has no data
	MonthSummary(ctx context.Context, year, month int) (*models.PeriodSummary, error)

	// MonthTransactions lists a month's transactions without offsetting pairs, newest first
	MonthTransactions(ctx context.Context, year, month int) ([]models.Transaction, error)

	// DailyChart returns one value per calendar day of the month for the given metric
	DailyChart(ctx context.Context, year, month int, metric string) ([]models.DailyValue, error)

	// CategoryChart returns the month's expense per category, largest first
	CategoryChart(ctx context.Context, year, month int, withDetails bool) ([]models.CategoryShare, error)

	// Dashboard combines summary, daily expense and categories of a month
	Dashboard(ctx context.Context, year, month int) (*models.MonthDashboard, error)

	AvailablePeriods(ctx context.Context) ([]models.AvailablePeriod, error)
	TransactionByID(ctx context.Context, id string) (*models.Transaction, error)
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}

type CircuitBreakerInterface interface {
	IsOpen() bool
	RecordSuccess()
	RecordFailure()
	GetState() BreakerState
	Reset()
	GetFailureCount() int
}
