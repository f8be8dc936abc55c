package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"ledger-reports/internal/ledger"
	"ledger-reports/internal/models"
	"ledger-reports/internal/repositories"

	"golang.org/x/sync/errgroup"
)

const (
	ReportMonthly      = "monthly"
	ReportYearly       = "yearly"
	ReportMonthSummary = "month_summary"
	ReportListing      = "listing"
	ReportDaily        = "daily"
	ReportCategories   = "categories"
	ReportDashboard    = "dashboard"
	ReportPeriods      = "periods"
)

var ErrMissingTransactionID = fmt.Errorf("%w: transaction id is required", ledger.ErrInvalidInput)

// ReportPolicies selects the cleaning policy of each report family. MonthlySummaries,
// YearlySummaries and MonthSummary share Summary so their totals always agree.
type ReportPolicies struct {
	Summary  ledger.Policy
	Listing  ledger.Policy
	Category ledger.Policy
	Daily    ledger.Policy
}

type reportService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	engine          *ledger.Engine
	policies        ReportPolicies
	metrics         MetricsRecorderInterface
}

func NewReportService(
	transactionRepo repositories.TransactionRepositoryInterface,
	engine *ledger.Engine,
	policies ReportPolicies,
	metrics MetricsRecorderInterface,
) ReportServiceInterface {
	return &reportService{
		transactionRepo: transactionRepo,
		engine:          engine,
		policies:        policies,
		metrics:         metrics,
	}
}

func (s *reportService) MonthlySummaries(ctx context.Context) (summaries []models.PeriodSummary, err error) {
	defer s.track(ReportMonthly, time.Now(), &err)

	transactions, err := s.loadAll(ctx, ReportMonthly, s.policies.Summary)
	if err != nil {
		return nil, err
	}

	return ledger.PeriodSummaries(s.engine.ByMonth(transactions)), nil
}

func (s *reportService) YearlySummaries(ctx context.Context) (summaries []models.YearSummary, err error) {
	defer s.track(ReportYearly, time.Now(), &err)

	transactions, err := s.loadAll(ctx, ReportYearly, s.policies.Summary)
	if err != nil {
		return nil, err
	}

	return ledger.YearSummaries(s.engine.ByYear(transactions)), nil
}

func (s *reportService) MonthSummary(ctx context.Context, year, month int) (summary *models.PeriodSummary, err error) {
	defer s.track(ReportMonthSummary, time.Now(), &err)

	period, transactions, err := s.loadMonth(ctx, ReportMonthSummary, year, month)
	if err != nil {
		return nil, err
	}

	summary, stats, err := s.monthSummary(period, transactions)
	if err != nil {
		return nil, err
	}
	s.recordStats(ReportMonthSummary, stats)

	return summary, nil
}

func (s *reportService) MonthTransactions(ctx context.Context, year, month int) (transactions []models.Transaction, err error) {
	defer s.track(ReportListing, time.Now(), &err)

	_, raw, err := s.loadMonth(ctx, ReportListing, year, month)
	if err != nil {
		return nil, err
	}

	transactions, stats, err := s.clean(ReportListing, s.policies.Listing, raw)
	if err != nil {
		return nil, err
	}
	s.recordStats(ReportListing, stats)

	return transactions, nil
}

func (s *reportService) DailyChart(ctx context.Context, year, month int, metric string) (values []models.DailyValue, err error) {
	defer s.track(ReportDaily, time.Now(), &err)

	dailyMetric, err := ledger.ParseDailyMetric(metric)
	if err != nil {
		return nil, err
	}

	period, transactions, err := s.loadMonth(ctx, ReportDaily, year, month)
	if err != nil {
		return nil, err
	}

	values, stats, err := s.dailyChart(period, transactions, dailyMetric)
	if err != nil {
		return nil, err
	}
	s.recordStats(ReportDaily, stats)

	return values, nil
}

func (s *reportService) CategoryChart(ctx context.Context, year, month int, withDetails bool) (shares []models.CategoryShare, err error) {
	defer s.track(ReportCategories, time.Now(), &err)

	_, transactions, err := s.loadMonth(ctx, ReportCategories, year, month)
	if err != nil {
		return nil, err
	}

	shares, stats, err := s.categoryChart(transactions, withDetails)
	if err != nil {
		return nil, err
	}
	s.recordStats(ReportCategories, stats)

	return shares, nil
}

// Dashboard reads the month once and builds summary, daily expense and categories
// concurrently from that snapshot; the first failure wins.
func (s *reportService) Dashboard(ctx context.Context, year, month int) (dashboard *models.MonthDashboard, err error) {
	defer s.track(ReportDashboard, time.Now(), &err)

	period, transactions, err := s.loadMonth(ctx, ReportDashboard, year, month)
	if err != nil {
		return nil, err
	}

	var (
		summary      *models.PeriodSummary
		summaryStats ledger.CleanStats
		daily        []models.DailyValue
		categories   []models.CategoryShare
	)

	var g errgroup.Group
	g.Go(func() error {
		var err error
		summary, summaryStats, err = s.monthSummary(period, transactions)
		return err
	})
	g.Go(func() error {
		var err error
		daily, _, err = s.dailyChart(period, transactions, ledger.DailyExpense)
		return err
	})
	g.Go(func() error {
		var err error
		categories, _, err = s.categoryChart(transactions, false)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// one scan per dashboard, counted against the summary policy
	s.recordStats(ReportDashboard, summaryStats)

	return &models.MonthDashboard{
		Summary:    *summary,
		Daily:      daily,
		Categories: categories,
	}, nil
}

func (s *reportService) monthSummary(period ledger.Period, raw []models.Transaction) (*models.PeriodSummary, ledger.CleanStats, error) {
	transactions, stats, err := s.clean(ReportMonthSummary, s.policies.Summary, raw)
	if err != nil {
		return nil, stats, err
	}

	summary := ledger.PeriodSummaryOf(period, s.engine.Month(transactions, period))
	return &summary, stats, nil
}

func (s *reportService) dailyChart(period ledger.Period, raw []models.Transaction, metric ledger.DailyMetric) ([]models.DailyValue, ledger.CleanStats, error) {
	transactions, stats, err := s.clean(ReportDaily, s.policies.Daily, raw)
	if err != nil {
		return nil, stats, err
	}

	return ledger.DailyValues(s.engine.ByDay(transactions, period), metric), stats, nil
}

func (s *reportService) categoryChart(raw []models.Transaction, withDetails bool) ([]models.CategoryShare, ledger.CleanStats, error) {
	transactions, stats, err := s.clean(ReportCategories, s.policies.Category, raw)
	if err != nil {
		return nil, stats, err
	}

	return ledger.CategoryShares(s.engine.ByCategory(transactions), withDetails), stats, nil
}

// AvailablePeriods lists the years with data, newest first, each with its months newest first.
func (s *reportService) AvailablePeriods(ctx context.Context) (periods []models.AvailablePeriod, err error) {
	defer s.track(ReportPeriods, time.Now(), &err)

	times, err := s.transactionRepo.GetOperationTimes(ctx)
	if err != nil {
		slog.Error("failed to fetch operation times", "error", err)
		return nil, fmt.Errorf("failed to fetch operation times: %w", err)
	}

	months := make(map[int]map[int]struct{})
	for _, t := range times {
		period := ledger.PeriodOf(t, s.engine.Location())
		if months[period.Year] == nil {
			months[period.Year] = make(map[int]struct{})
		}
		months[period.Year][int(period.Month)] = struct{}{}
	}

	periods = make([]models.AvailablePeriod, 0, len(months))
	for year, set := range months {
		list := make([]int, 0, len(set))
		for month := range set {
			list = append(list, month)
		}
		sort.Sort(sort.Reverse(sort.IntSlice(list)))
		periods = append(periods, models.AvailablePeriod{Year: year, Months: list})
	}

	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Year > periods[j].Year
	})

	return periods, nil
}

func (s *reportService) TransactionByID(ctx context.Context, id string) (*models.Transaction, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrMissingTransactionID
	}

	transaction, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return transaction, nil
}

func (s *reportService) loadAll(ctx context.Context, report string, policy ledger.Policy) ([]models.Transaction, error) {
	raw, err := s.transactionRepo.GetAll(ctx)
	if err != nil {
		slog.Error("failed to fetch transactions", "report", report, "error", err)
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	transactions, stats, err := s.clean(report, policy, raw)
	if err != nil {
		return nil, err
	}
	s.recordStats(report, stats)

	return transactions, nil
}

// loadMonth returns the raw transactions of the month; callers clean them with their own policy.
func (s *reportService) loadMonth(ctx context.Context, report string, year, month int) (ledger.Period, []models.Transaction, error) {
	period, err := ledger.NewPeriod(year, month)
	if err != nil {
		return ledger.Period{}, nil, err
	}

	loc := s.engine.Location()
	transactions, err := s.transactionRepo.GetByPeriod(ctx, period.Start(loc), period.End(loc))
	if err != nil {
		slog.Error("failed to fetch transactions for period",
			"report", report,
			"period", period.String(),
			"error", err)
		return ledger.Period{}, nil, fmt.Errorf("failed to fetch transactions for %s: %w", period, err)
	}

	return period, transactions, nil
}

func (s *reportService) clean(report string, policy ledger.Policy, transactions []models.Transaction) ([]models.Transaction, ledger.CleanStats, error) {
	cleaned, stats, err := policy.Clean(transactions)
	if err != nil {
		slog.Error("failed to clean transactions", "report", report, "policy", policy.Name, "error", err)
		return nil, stats, err
	}

	return cleaned, stats, nil
}

func (s *reportService) recordStats(report string, stats ledger.CleanStats) {
	tags := map[string]string{"report": report}
	s.metrics.RecordGauge(metricTransactionsScanned, float64(stats.Input), tags)
	s.metrics.RecordGauge(metricExcludedRemoved, float64(stats.Excluded), tags)
	s.metrics.RecordGauge(metricOffsettingRemoved, float64(stats.Offsetting), tags)
}

func (s *reportService) track(report string, started time.Time, err *error) {
	status := "success"
	if *err != nil {
		status = "failed"
	}

	s.metrics.IncrementCounter(metricReportGenerated, map[string]string{"report": report, "status": status})
	s.metrics.RecordProcessingTime(report, time.Since(started))
}
