package ledger

import (
	"testing"
	"time"

	"ledger-reports/internal/models"

	"github.com/stretchr/testify/suite"
)

type PolicyTestSuite struct {
	suite.Suite
	policy Policy
}

func TestPolicyTestSuite(t *testing.T) {
	suite.Run(t, new(PolicyTestSuite))
}

func (s *PolicyTestSuite) SetupTest() {
	s.policy = Policy{
		Name:                 "listing",
		ExcludedDescriptions: []string{"Перевод между счетами", "Закрытие вклада Тинькофф Банк"},
		Deduplicate:          true,
		Tolerance:            30 * time.Minute,
		MatchMode:            MatchAny,
	}
}

func (s *PolicyTestSuite) TestExcludes_FailedStatusAnyCase() {
	txn := newTxn("a", "-10", baseTime)

	for _, status := range []string{"FAILED", "failed", " Failed "} {
		txn.Status = status
		s.True(s.policy.Excludes(&txn), status)
	}

	txn.Status = models.TransactionStatusOK
	s.False(s.policy.Excludes(&txn))
}

func (s *PolicyTestSuite) TestExcludes_DescriptionSet() {
	txn := newTxn("a", "-10", baseTime)
	txn.Description = " Перевод между счетами"

	s.True(s.policy.Excludes(&txn))

	txn.Description = "Перевод между счетами и картами"
	s.False(s.policy.Excludes(&txn))
}

func (s *PolicyTestSuite) TestClean_ExcludesThenDeduplicates() {
	failedReversal := newTxn("failed", "500", baseTime.Add(time.Minute))
	failedReversal.Status = models.TransactionStatusFailed
	transfer := newTxn("transfer", "-1000", baseTime)
	transfer.Description = "Перевод между счетами"

	transactions := []models.Transaction{
		newTxn("charge", "-500", baseTime),
		failedReversal,
		transfer,
		newTxn("refund", "200", baseTime.Add(2*time.Minute)),
		newTxn("purchase", "-200", baseTime.Add(3*time.Minute)),
		newTxn("coffee", "-4", baseTime.Add(4*time.Minute)),
	}

	cleaned, stats, err := s.policy.Clean(transactions)

	s.Require().NoError(err)
	// The failed reversal is excluded first, so the charge stays.
	s.Equal([]string{"charge", "coffee"}, ids(cleaned))
	s.Equal(CleanStats{Input: 6, Excluded: 2, Offsetting: 2, Kept: 2}, stats)
}

func (s *PolicyTestSuite) TestClean_DeduplicationDisabled() {
	s.policy.Deduplicate = false
	transactions := []models.Transaction{
		newTxn("a", "500", baseTime),
		newTxn("b", "-500", baseTime.Add(time.Minute)),
	}

	cleaned, stats, err := s.policy.Clean(transactions)

	s.Require().NoError(err)
	s.Len(cleaned, 2)
	s.Equal(0, stats.Offsetting)
}

func (s *PolicyTestSuite) TestClean_InvalidTransaction() {
	transactions := []models.Transaction{
		newTxn("a", "500", baseTime),
		newTxn("b", "-5", time.Time{}),
	}

	cleaned, _, err := s.policy.Clean(transactions)

	s.Nil(cleaned)
	s.ErrorIs(err, ErrInvalidTransaction)
	s.ErrorIs(err, ErrInvalidInput)
	s.Contains(err.Error(), `"b"`)
}

func (s *PolicyTestSuite) TestClean_InvalidPolicy() {
	s.policy.Tolerance = -time.Second

	_, _, err := s.policy.Clean(nil)

	s.ErrorIs(err, ErrInvalidTolerance)
}

func (s *PolicyTestSuite) TestValidate_UnknownMatchMode() {
	s.policy.MatchMode = "fuzzy"

	s.ErrorIs(s.policy.Validate(), ErrInvalidMatchMode)
}

func (s *PolicyTestSuite) TestClean_FailedNeverReachesTotals() {
	failed := newTxn("failed", "9999", baseTime)
	failed.Status = models.TransactionStatusFailed
	s.policy.Deduplicate = false

	cleaned, _, err := s.policy.Clean([]models.Transaction{failed, newTxn("ok", "-1", baseTime)})
	s.Require().NoError(err)

	totals := Overall(cleaned)
	s.True(totals.Income.IsZero())
	s.Equal(1, totals.Count)
}

func (s *PolicyTestSuite) TestNewPeriod_Bounds() {
	_, err := NewPeriod(2024, 13)
	s.ErrorIs(err, ErrInvalidPeriod)

	_, err = NewPeriod(0, 1)
	s.ErrorIs(err, ErrInvalidPeriod)

	period, err := NewPeriod(2024, 12)
	s.Require().NoError(err)
	s.Equal(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), period.End(time.UTC))
	s.Equal("2024-12", period.String())
}
