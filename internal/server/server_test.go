package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ledger-reports/internal/config"
	"ledger-reports/internal/database"
	"ledger-reports/internal/models"
	"ledger-reports/internal/repositories"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ServerTestSuite struct {
	suite.Suite
	cfg     *config.Config
	handler http.Handler
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func testConfig() *config.Config {
	defaults := []string{"Перевод между счетами", "Закрытие вклада Тинькофф Банк"}

	return &config.Config{
		Server: config.ServerConfig{
			Port:             "0",
			Host:             "127.0.0.1",
			Environment:      "testing",
			ReadTimeout:      time.Second,
			WriteTimeout:     time.Second,
			ShutdownTimeout:  time.Second,
			CORSAllowOrigins: []string{"*"},
		},
		Reports: config.ReportsConfig{
			Timezone: "UTC",
			Summary:  config.PolicyConfig{ExcludedDescriptions: defaults, Tolerance: 30 * time.Minute, MatchMode: "any"},
			Listing:  config.PolicyConfig{ExcludedDescriptions: defaults, Deduplicate: true, Tolerance: 30 * time.Minute, MatchMode: "any"},
			Category: config.PolicyConfig{ExcludedDescriptions: defaults, Tolerance: 30 * time.Minute, MatchMode: "any"},
			Daily:    config.PolicyConfig{ExcludedDescriptions: defaults, Tolerance: 30 * time.Minute, MatchMode: "any"},
		},
		RateLimit: config.RateLimitConfig{RequestsPerSecond: 100, Burst: 100, ExpiresIn: time.Minute},
	}
}

func txn(id string, at time.Time, amount, status, category, description string) models.Transaction {
	return models.Transaction{
		ID:            id,
		OperationTime: at,
		Status:        status,
		Amount:        decimal.RequireFromString(amount),
		Category:      category,
		Description:   description,
	}
}

func (s *ServerTestSuite) SetupTest() {
	db := database.SetupTestDB(s.T())

	jan := func(day, hour, minute int) time.Time {
		return time.Date(2024, time.January, day, hour, minute, 0, 0, time.UTC)
	}
	database.SeedTransactions(s.T(), db, []models.Transaction{
		txn("salary", jan(5, 10, 0), "1000", "OK", "Зарплата", "ООО Ромашка"),
		txn("groceries", jan(6, 18, 0), "-200", "OK", "Супермаркеты", "Магнит"),
		txn("transfer", jan(7, 9, 0), "-500", "OK", "Переводы", "Перевод между счетами"),
		txn("declined", jan(8, 9, 0), "-50", "FAILED", "Супермаркеты", "Пятерочка"),
		txn("refund-out", jan(9, 12, 0), "-30", "OK", "Кафе", "Кофейня"),
		txn("refund-in", jan(9, 12, 10), "30", "OK", "Кафе", "Кофейня"),
	})

	s.cfg = testConfig()
	registry := prometheus.NewRegistry()

	srv, err := New(s.cfg, Dependencies{
		Health:          db,
		TransactionRepo: repositories.NewTransactionRepository(db.DB),
		Registerer:      registry,
		Gatherer:        registry,
	})
	s.Require().NoError(err)
	s.handler = srv.Handler()
}

func (s *ServerTestSuite) get(path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func (s *ServerTestSuite) TestHealth() {
	rec := s.get("/health")

	s.Equal(http.StatusOK, rec.Code)
	s.NotEmpty(rec.Header().Get("X-Trace-ID"))
}

func (s *ServerTestSuite) TestMonthSummaryEndToEnd() {
	rec := s.get("/api/v1/reports/monthly/2024/1")

	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.JSONEq(`{"data":{"year":2024,"month":1,"total_income":"1030.00","total_expense":"230.00","net_profit":"800.00"}}`, rec.Body.String())
}

func (s *ServerTestSuite) TestMonthListingDropsOffsettingPair() {
	rec := s.get("/api/v1/transactions/month/2024/1")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Data struct {
			Count        int `json:"count"`
			Transactions []struct {
				ID string `json:"transaction_id"`
			} `json:"transactions"`
		} `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))

	ids := make([]string, 0, len(body.Data.Transactions))
	for _, t := range body.Data.Transactions {
		ids = append(ids, t.ID)
	}
	s.Equal([]string{"groceries", "salary"}, ids)
	s.Equal(2, body.Data.Count)
}

func (s *ServerTestSuite) TestAvailablePeriods() {
	rec := s.get("/api/v1/transactions/periods")

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"data":[{"year":2024,"months":[1]}]}`, rec.Body.String())
}

func (s *ServerTestSuite) TestTransactionByID() {
	s.Equal(http.StatusOK, s.get("/api/v1/transactions/salary").Code)
	s.Equal(http.StatusNotFound, s.get("/api/v1/transactions/nope").Code)
}

func (s *ServerTestSuite) TestInvalidPeriod() {
	rec := s.get("/api/v1/reports/daily/2024/13")

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "REPORT_001")
}

func (s *ServerTestSuite) TestUnknownRoute() {
	rec := s.get("/api/v2/reports")

	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(rec.Body.String(), "SYSTEM_007")
}

func (s *ServerTestSuite) TestMetricsExposeReportCounters() {
	s.Equal(http.StatusOK, s.get("/api/v1/reports/yearly").Code)

	rec := s.get("/metrics")

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `ledger_reports_generated_total{report="yearly",status="success"} 1`)
}

func (s *ServerTestSuite) TestPoliciesRejectUnknownMatchMode() {
	cfg := testConfig()
	cfg.Reports.Daily.MatchMode = "nearest"

	_, err := Policies(cfg.Reports)

	s.Error(err)
	s.Contains(err.Error(), "daily")
}

func (s *ServerTestSuite) TestNewRejectsBadTimezone() {
	cfg := testConfig()
	cfg.Reports.Timezone = "Mars/Olympus"

	_, err := New(cfg, Dependencies{})

	s.Error(err)
}
