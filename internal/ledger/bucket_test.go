package ledger

import (
	"testing"
	"time"

	"ledger-reports/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalsAdd_SignConvention(t *testing.T) {
	var totals Totals
	for _, txn := range []models.Transaction{
		newTxn("a", "1000.10", baseTime),
		newTxn("b", "-250.05", baseTime),
		newTxn("c", "0", baseTime),
		newTxn("d", "-0.05", baseTime),
	} {
		totals.Add(&txn)
	}

	assert.True(t, totals.Income.Equal(decimal.RequireFromString("1000.10")))
	assert.True(t, totals.Expense.Equal(decimal.RequireFromString("250.10")))
	assert.True(t, totals.Net.Equal(decimal.RequireFromString("750.00")))
	assert.Equal(t, 4, totals.Count)
}

func TestByMonth_DescendingOrder(t *testing.T) {
	engine := NewEngine(time.UTC)
	transactions := []models.Transaction{
		newTxn("jan", "100", time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)),
		newTxn("dec", "-40", time.Date(2023, time.December, 31, 23, 59, 0, 0, time.UTC)),
		newTxn("mar", "-10", time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)),
		newTxn("jan-2", "-30", time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC)),
	}

	buckets := engine.ByMonth(transactions)

	require.Len(t, buckets, 3)
	assert.Equal(t, Period{Year: 2024, Month: time.March}, buckets[0].Period)
	assert.Equal(t, Period{Year: 2024, Month: time.January}, buckets[1].Period)
	assert.Equal(t, Period{Year: 2023, Month: time.December}, buckets[2].Period)
	assert.Equal(t, 2, buckets[1].Totals.Count)
	assert.True(t, buckets[1].Totals.Net.Equal(decimal.NewFromInt(70)))
}

func TestByMonth_UsesEngineLocation(t *testing.T) {
	moscow := time.FixedZone("MSK", 3*60*60)
	engine := NewEngine(moscow)
	// 22:30 UTC on the 31st is already the 1st of the next month in Moscow.
	transactions := []models.Transaction{
		newTxn("late", "-10", time.Date(2024, time.January, 31, 22, 30, 0, 0, time.UTC)),
	}

	buckets := engine.ByMonth(transactions)

	require.Len(t, buckets, 1)
	assert.Equal(t, Period{Year: 2024, Month: time.February}, buckets[0].Period)
}

func TestByYear_MergesMonths(t *testing.T) {
	engine := NewEngine(nil)
	transactions := []models.Transaction{
		newTxn("a", "100", time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC)),
		newTxn("b", "-30", time.Date(2023, time.November, 1, 0, 0, 0, 0, time.UTC)),
		newTxn("c", "-5", time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)),
	}

	buckets := engine.ByYear(transactions)

	require.Len(t, buckets, 2)
	assert.Equal(t, 2024, buckets[0].Year)
	assert.Equal(t, 2023, buckets[1].Year)
	assert.True(t, buckets[1].Totals.Income.Equal(decimal.NewFromInt(100)))
	assert.True(t, buckets[1].Totals.Expense.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, 2, buckets[1].Totals.Count)
}

func TestMonth_ZeroWhenEmpty(t *testing.T) {
	engine := NewEngine(time.UTC)
	period, err := NewPeriod(2024, 2)
	require.NoError(t, err)

	totals := engine.Month([]models.Transaction{
		newTxn("march", "-10", time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)),
	}, period)

	assert.True(t, totals.Income.IsZero())
	assert.True(t, totals.Expense.IsZero())
	assert.True(t, totals.Net.IsZero())
	assert.Equal(t, 0, totals.Count)
}

func TestMonth_IncludesLastDayOfMonth(t *testing.T) {
	engine := NewEngine(time.UTC)
	period, err := NewPeriod(2024, 2)
	require.NoError(t, err)

	totals := engine.Month([]models.Transaction{
		newTxn("leap-day", "-10", time.Date(2024, time.February, 29, 18, 0, 0, 0, time.UTC)),
	}, period)

	assert.Equal(t, 1, totals.Count)
}

func TestByDay_FillsEveryDay(t *testing.T) {
	engine := NewEngine(time.UTC)
	period, err := NewPeriod(2024, 4)
	require.NoError(t, err)
	transactions := []models.Transaction{
		newTxn("first", "-100", time.Date(2024, time.April, 1, 9, 0, 0, 0, time.UTC)),
		newTxn("mid", "-50.25", time.Date(2024, time.April, 15, 9, 0, 0, 0, time.UTC)),
		newTxn("mid-2", "-0.75", time.Date(2024, time.April, 15, 21, 0, 0, 0, time.UTC)),
	}

	buckets := engine.ByDay(transactions, period)

	require.Len(t, buckets, 30)
	for i, bucket := range buckets {
		assert.Equal(t, i+1, bucket.Day)
		switch bucket.Day {
		case 1:
			assert.True(t, bucket.Totals.Expense.Equal(decimal.NewFromInt(100)))
		case 15:
			assert.True(t, bucket.Totals.Expense.Equal(decimal.NewFromInt(51)))
			assert.Equal(t, 2, bucket.Totals.Count)
		default:
			assert.True(t, bucket.Totals.Expense.IsZero(), "day %d", bucket.Day)
			assert.Equal(t, 0, bucket.Totals.Count)
		}
	}
}

func TestByDay_DaysInMonth(t *testing.T) {
	engine := NewEngine(time.UTC)
	cases := map[Period]int{
		{Year: 2024, Month: time.February}: 29,
		{Year: 2023, Month: time.February}: 28,
		{Year: 2024, Month: time.December}: 31,
		{Year: 2024, Month: time.June}:     30,
	}

	for period, days := range cases {
		assert.Len(t, engine.ByDay(nil, period), days, period.String())
	}
}

func TestByCategory_OrderingAndOverride(t *testing.T) {
	engine := NewEngine(time.UTC)
	override := "Groceries"
	groceries := withCategory(newTxn("g", "-300", baseTime), "Supermarkets")
	groceries.OverrideCategory = &override
	transactions := []models.Transaction{
		withCategory(newTxn("t1", "-100", baseTime), "Transport"),
		withCategory(newTxn("r1", "-100", baseTime), "Restaurants"),
		withCategory(newTxn("salary", "5000", baseTime), "Salary"),
		groceries,
		withCategory(newTxn("s1", "-50", baseTime), "Supermarkets"),
		withCategory(newTxn("blank", "-1", baseTime), ""),
	}

	buckets := engine.ByCategory(transactions)

	require.Len(t, buckets, 5)
	assert.Equal(t, "Groceries", buckets[0].Name)
	// Equal totals keep first-seen order.
	assert.Equal(t, "Transport", buckets[1].Name)
	assert.Equal(t, "Restaurants", buckets[2].Name)
	assert.Equal(t, "Supermarkets", buckets[3].Name)
	assert.Equal(t, models.CategoryUncategorized, buckets[4].Name)
	assert.True(t, buckets[0].Total.Equal(decimal.NewFromInt(300)))
	assert.Len(t, buckets[0].Members, 1)
}

func TestConservation_RandomLedger(t *testing.T) {
	gofakeit.Seed(7)
	engine := NewEngine(time.UTC)
	transactions := randomLedger(500, 2024)

	overall := Overall(transactions)
	assert.True(t, overall.Net.Equal(overall.Income.Sub(overall.Expense)))

	var union Totals
	for _, bucket := range engine.ByMonth(transactions) {
		assert.True(t, bucket.Totals.Net.Equal(bucket.Totals.Income.Sub(bucket.Totals.Expense)), bucket.Period.String())
		assert.False(t, bucket.Totals.Income.IsNegative())
		assert.False(t, bucket.Totals.Expense.IsNegative())
		union.Merge(bucket.Totals)
	}

	assert.True(t, union.Net.Equal(overall.Net))
	assert.True(t, union.Income.Equal(overall.Income))
	assert.True(t, union.Expense.Equal(overall.Expense))
	assert.Equal(t, len(transactions), union.Count)
}

func TestPartition_EveryTransactionInOneDayBucket(t *testing.T) {
	gofakeit.Seed(11)
	engine := NewEngine(time.UTC)
	period := Period{Year: 2024, Month: time.July}
	start := period.Start(time.UTC)

	transactions := make([]models.Transaction, 0, 100)
	for i := 0; i < 100; i++ {
		at := gofakeit.DateRange(start, period.End(time.UTC).Add(-time.Second)).UTC()
		transactions = append(transactions, newTxn(gofakeit.UUID(), "-1", at))
	}

	count := 0
	for _, bucket := range engine.ByDay(transactions, period) {
		count += bucket.Totals.Count
	}

	assert.Equal(t, 100, count)
}
