package ledger

import (
	"fmt"
	"strings"
	"time"

	"ledger-reports/internal/models"
)

// Policy is the per-report cleaning rule set: which transactions are left out before
// bucketing and whether offsetting pairs are removed.
type Policy struct {
	Name                 string
	ExcludedDescriptions []string
	Deduplicate          bool
	Tolerance            time.Duration
	MatchMode            MatchMode
}

// CleanStats describes what Clean removed
type CleanStats struct {
	Input      int
	Excluded   int
	Offsetting int
	Kept       int
}

// Validate checks the policy parameters
func (p Policy) Validate() error {
	if p.Tolerance < 0 {
		return fmt.Errorf("%w: policy %q: %s", ErrInvalidTolerance, p.Name, p.Tolerance)
	}
	if _, err := ParseMatchMode(string(p.MatchMode)); err != nil {
		return fmt.Errorf("policy %q: %w", p.Name, err)
	}
	return nil
}

// Excludes reports whether a transaction is left out of this report: FAILED operations always
// are, and so is any transaction whose description is in the excluded set.
func (p Policy) Excludes(txn *models.Transaction) bool {
	if txn.IsFailed() {
		return true
	}

	description := strings.TrimSpace(txn.Description)
	for _, excluded := range p.ExcludedDescriptions {
		if description == strings.TrimSpace(excluded) {
			return true
		}
	}
	return false
}

// Clean validates the input, applies the exclusion set and then, when enabled, removes
// offsetting pairs. The returned slice is new; the input is left untouched.
func (p Policy) Clean(transactions []models.Transaction) ([]models.Transaction, CleanStats, error) {
	stats := CleanStats{Input: len(transactions)}

	if err := p.Validate(); err != nil {
		return nil, stats, err
	}

	if err := ValidateTransactions(transactions); err != nil {
		return nil, stats, err
	}

	included := make([]models.Transaction, 0, len(transactions))
	for i := range transactions {
		if p.Excludes(&transactions[i]) {
			stats.Excluded++
			continue
		}
		included = append(included, transactions[i])
	}

	if p.Deduplicate {
		dedup, err := NewDeduplicator(p.Tolerance, p.MatchMode)
		if err != nil {
			return nil, stats, err
		}
		filtered := dedup.Filter(included)
		stats.Offsetting = len(included) - len(filtered)
		included = filtered
	}

	stats.Kept = len(included)
	return included, stats, nil
}

// ValidateTransactions fails on the first transaction the engine cannot place in a bucket.
func ValidateTransactions(transactions []models.Transaction) error {
	for i := range transactions {
		if err := transactions[i].Validate(); err != nil {
			return fmt.Errorf("%w: index %d (id %q): %v", ErrInvalidTransaction, i, transactions[i].ID, err)
		}
	}
	return nil
}
