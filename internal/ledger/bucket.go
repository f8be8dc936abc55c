package ledger

import (
	"sort"
	"time"

	"ledger-reports/internal/models"

	"github.com/shopspring/decimal"
)

// Totals accumulates one bucket. Expense is kept as a magnitude, so Net == Income - Expense.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
	Count   int
}

// Add folds a transaction into the totals
func (t *Totals) Add(txn *models.Transaction) {
	switch {
	case txn.Amount.IsPositive():
		t.Income = t.Income.Add(txn.Amount)
	case txn.Amount.IsNegative():
		t.Expense = t.Expense.Add(txn.Amount.Abs())
	}
	t.Net = t.Net.Add(txn.Amount)
	t.Count++
}

// Merge adds other into t
func (t *Totals) Merge(other Totals) {
	t.Income = t.Income.Add(other.Income)
	t.Expense = t.Expense.Add(other.Expense)
	t.Net = t.Net.Add(other.Net)
	t.Count += other.Count
}

// MonthBucket holds the totals of one calendar month
type MonthBucket struct {
	Period Period
	Totals Totals
}

// YearBucket holds the totals of one calendar year
type YearBucket struct {
	Year   int
	Totals Totals
}

// DayBucket holds the totals of one day of a month
type DayBucket struct {
	Day    int
	Totals Totals
}

// CategoryBucket holds the expense magnitude of one category and the transactions behind it.
type CategoryBucket struct {
	Name    string
	Total   decimal.Decimal
	Members []models.Transaction
}

// Engine groups cleaned transactions. Calendar keys are read in the engine's location.
type Engine struct {
	loc *time.Location
}

// NewEngine creates a bucketing engine; a nil location means UTC.
func NewEngine(loc *time.Location) *Engine {
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{loc: loc}
}

// Location returns the calendar location
func (e *Engine) Location() *time.Location {
	return e.loc
}

// ByMonth groups by (year, month), most recent month first.
func (e *Engine) ByMonth(transactions []models.Transaction) []MonthBucket {
	index := make(map[Period]int)
	buckets := make([]MonthBucket, 0)

	for i := range transactions {
		key := PeriodOf(transactions[i].OperationTime, e.loc)
		pos, ok := index[key]
		if !ok {
			pos = len(buckets)
			index[key] = pos
			buckets = append(buckets, MonthBucket{Period: key})
		}
		buckets[pos].Totals.Add(&transactions[i])
	}

	sort.Slice(buckets, func(a, b int) bool {
		return buckets[b].Period.Before(buckets[a].Period)
	})

	return buckets
}

// ByYear groups by calendar year, most recent year first.
func (e *Engine) ByYear(transactions []models.Transaction) []YearBucket {
	months := e.ByMonth(transactions)

	buckets := make([]YearBucket, 0)
	for _, month := range months {
		if n := len(buckets); n > 0 && buckets[n-1].Year == month.Period.Year {
			buckets[n-1].Totals.Merge(month.Totals)
			continue
		}
		buckets = append(buckets, YearBucket{Year: month.Period.Year, Totals: month.Totals})
	}

	return buckets
}

// Month reduces the transactions of a single period. The zero Totals is returned when
// nothing falls in it.
func (e *Engine) Month(transactions []models.Transaction, period Period) Totals {
	var totals Totals
	for i := range transactions {
		if period.Contains(transactions[i].OperationTime, e.loc) {
			totals.Add(&transactions[i])
		}
	}
	return totals
}

// ByDay returns one bucket per calendar day of the period, in day order, including days
// without transactions.
func (e *Engine) ByDay(transactions []models.Transaction, period Period) []DayBucket {
	buckets := make([]DayBucket, period.Days())
	for i := range buckets {
		buckets[i].Day = i + 1
	}

	for i := range transactions {
		local := transactions[i].OperationTime.In(e.loc)
		if local.Year() != period.Year || local.Month() != period.Month {
			continue
		}
		buckets[local.Day()-1].Totals.Add(&transactions[i])
	}

	return buckets
}

// ByCategory sums outflow magnitudes per effective category. Buckets are ordered by total,
// largest first, with equal totals kept in the order their category was first seen.
func (e *Engine) ByCategory(transactions []models.Transaction) []CategoryBucket {
	index := make(map[string]int)
	buckets := make([]CategoryBucket, 0)

	for i := range transactions {
		txn := &transactions[i]
		if !txn.IsExpense() {
			continue
		}

		name := txn.EffectiveCategory()
		pos, ok := index[name]
		if !ok {
			pos = len(buckets)
			index[name] = pos
			buckets = append(buckets, CategoryBucket{Name: name})
		}
		buckets[pos].Total = buckets[pos].Total.Add(txn.Amount.Abs())
		buckets[pos].Members = append(buckets[pos].Members, *txn)
	}

	sort.SliceStable(buckets, func(a, b int) bool {
		return buckets[a].Total.GreaterThan(buckets[b].Total)
	})

	return buckets
}

// Overall reduces every transaction into a single Totals.
func Overall(transactions []models.Transaction) Totals {
	var totals Totals
	for i := range transactions {
		totals.Add(&transactions[i])
	}
	return totals
}
