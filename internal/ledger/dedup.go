package ledger

import (
	"fmt"
	"sort"
	"time"

	"ledger-reports/internal/models"
)

// MatchMode selects how offsetting candidates are resolved.
type MatchMode string

const (
	// MatchAny drops every transaction that has at least one offsetting counterpart.
	MatchAny MatchMode = "any"
	// MatchPairwise pairs each transaction with at most one counterpart, nearest in time first.
	MatchPairwise MatchMode = "pairwise"
)

// ParseMatchMode maps a configuration value to a MatchMode. Empty means MatchAny.
func ParseMatchMode(value string) (MatchMode, error) {
	switch MatchMode(value) {
	case "", MatchAny:
		return MatchAny, nil
	case MatchPairwise:
		return MatchPairwise, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMatchMode, value)
	}
}

// Deduplicator removes charge/reversal pairs: two transactions with different IDs whose
// amounts sum to zero and whose operation times are at most the tolerance apart.
type Deduplicator struct {
	tolerance time.Duration
	mode      MatchMode
}

// NewDeduplicator creates a filter for the given tolerance window and match mode
func NewDeduplicator(tolerance time.Duration, mode MatchMode) (*Deduplicator, error) {
	if tolerance < 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTolerance, tolerance)
	}

	mode, err := ParseMatchMode(string(mode))
	if err != nil {
		return nil, err
	}

	return &Deduplicator{
		tolerance: tolerance,
		mode:      mode,
	}, nil
}

// Tolerance returns the configured window
func (d *Deduplicator) Tolerance() time.Duration {
	return d.tolerance
}

// Filter returns the transactions that are not part of an offsetting pair, in input order.
// The input slice is never modified.
func (d *Deduplicator) Filter(transactions []models.Transaction) []models.Transaction {
	excluded := d.Offsetting(transactions)

	kept := make([]models.Transaction, 0, len(transactions))
	for i := range transactions {
		if !excluded[i] {
			kept = append(kept, transactions[i])
		}
	}
	return kept
}

// Offsetting marks, by input index, the transactions the filter would drop.
func (d *Deduplicator) Offsetting(transactions []models.Transaction) []bool {
	order := chronological(transactions)

	if d.mode == MatchPairwise {
		return d.matchPairwise(transactions, order)
	}
	return d.matchAny(transactions, order)
}

// matchAny walks a sliding window over the time-ordered transactions. The offset relation is
// symmetric, so marking both sides of every match gives the same result as checking each
// transaction against every other one.
func (d *Deduplicator) matchAny(transactions []models.Transaction, order []int) []bool {
	excluded := make([]bool, len(transactions))

	for pos, i := range order {
		for _, j := range order[pos+1:] {
			if !d.withinWindow(&transactions[i], &transactions[j]) {
				break
			}
			if offsets(&transactions[i], &transactions[j]) {
				excluded[i] = true
				excluded[j] = true
			}
		}
	}

	return excluded
}

func (d *Deduplicator) matchPairwise(transactions []models.Transaction, order []int) []bool {
	paired := make([]bool, len(transactions))

	for pos, i := range order {
		if paired[i] {
			continue
		}
		for _, j := range order[pos+1:] {
			if !d.withinWindow(&transactions[i], &transactions[j]) {
				break
			}
			if !paired[j] && offsets(&transactions[i], &transactions[j]) {
				paired[i] = true
				paired[j] = true
				break
			}
		}
	}

	return paired
}

// withinWindow expects later to not precede earlier.
func (d *Deduplicator) withinWindow(earlier, later *models.Transaction) bool {
	return later.OperationTime.Sub(earlier.OperationTime) <= d.tolerance
}

func offsets(a, b *models.Transaction) bool {
	return a.ID != b.ID && a.Amount.Add(b.Amount).IsZero()
}

// chronological returns input indexes ordered by operation time, ties kept in input order.
func chronological(transactions []models.Transaction) []int {
	order := make([]int, len(transactions))
	for i := range order {
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool {
		return transactions[order[a]].OperationTime.Before(transactions[order[b]].OperationTime)
	})

	return order
}
