package ledger

import (
	"fmt"

	"ledger-reports/internal/models"

	"github.com/shopspring/decimal"
)

const moneyPlaces = 2

var hundred = decimal.NewFromInt(100)

// DailyMetric selects which total a day-of-month chart plots.
type DailyMetric string

const (
	DailyExpense DailyMetric = "expense"
	DailyIncome  DailyMetric = "income"
	DailyNet     DailyMetric = "net"
)

// ParseDailyMetric maps a request value to a DailyMetric. Empty means DailyExpense.
func ParseDailyMetric(value string) (DailyMetric, error) {
	switch DailyMetric(value) {
	case "", DailyExpense:
		return DailyExpense, nil
	case DailyIncome:
		return DailyIncome, nil
	case DailyNet:
		return DailyNet, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMetric, value)
	}
}

// FormatMoney renders an amount with exactly two decimal places.
func FormatMoney(amount decimal.Decimal) string {
	return amount.StringFixed(moneyPlaces)
}

// FormatPercentage renders part/total as a two-decimal percentage with a trailing "%".
// A zero total yields "0.00%".
func FormatPercentage(part, total decimal.Decimal) string {
	if total.IsZero() {
		return decimal.Zero.StringFixed(moneyPlaces) + "%"
	}
	return part.Mul(hundred).Div(total).StringFixed(moneyPlaces) + "%"
}

// PeriodSummaryOf formats the totals of one month.
func PeriodSummaryOf(period Period, totals Totals) models.PeriodSummary {
	return models.PeriodSummary{
		Year:         period.Year,
		Month:        int(period.Month),
		TotalIncome:  FormatMoney(totals.Income),
		TotalExpense: FormatMoney(totals.Expense),
		NetProfit:    FormatMoney(totals.Net),
	}
}

// PeriodSummaries formats month buckets, keeping their order.
func PeriodSummaries(buckets []MonthBucket) []models.PeriodSummary {
	summaries := make([]models.PeriodSummary, 0, len(buckets))
	for _, bucket := range buckets {
		summaries = append(summaries, PeriodSummaryOf(bucket.Period, bucket.Totals))
	}
	return summaries
}

// YearSummaries formats year buckets, keeping their order.
func YearSummaries(buckets []YearBucket) []models.YearSummary {
	summaries := make([]models.YearSummary, 0, len(buckets))
	for _, bucket := range buckets {
		summaries = append(summaries, models.YearSummary{
			Year:         bucket.Year,
			TotalIncome:  FormatMoney(bucket.Totals.Income),
			TotalExpense: FormatMoney(bucket.Totals.Expense),
			NetProfit:    FormatMoney(bucket.Totals.Net),
		})
	}
	return summaries
}

// DailyValues formats day buckets with the chosen metric.
func DailyValues(buckets []DayBucket, metric DailyMetric) []models.DailyValue {
	values := make([]models.DailyValue, 0, len(buckets))
	for _, bucket := range buckets {
		var value decimal.Decimal
		switch metric {
		case DailyIncome:
			value = bucket.Totals.Income
		case DailyNet:
			value = bucket.Totals.Net
		default:
			value = bucket.Totals.Expense
		}
		values = append(values, models.DailyValue{Day: bucket.Day, Value: FormatMoney(value)})
	}
	return values
}

// CategoryShares formats category buckets with their share of the overall expense.
func CategoryShares(buckets []CategoryBucket, withDetails bool) []models.CategoryShare {
	total := decimal.Zero
	for _, bucket := range buckets {
		total = total.Add(bucket.Total)
	}

	shares := make([]models.CategoryShare, 0, len(buckets))
	for _, bucket := range buckets {
		share := models.CategoryShare{
			Name:       bucket.Name,
			Total:      FormatMoney(bucket.Total),
			Percentage: FormatPercentage(bucket.Total, total),
		}

		if withDetails {
			share.Transactions = make([]models.CategoryDetail, 0, len(bucket.Members))
			for i := range bucket.Members {
				member := &bucket.Members[i]
				share.Transactions = append(share.Transactions, models.CategoryDetail{
					TransactionID: member.ID,
					Category:      bucket.Name,
					Amount:        FormatMoney(member.Amount.Abs()),
					Description:   member.Description,
				})
			}
		}

		shares = append(shares, share)
	}
	return shares
}
