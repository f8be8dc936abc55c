package ledger

import (
	"time"

	"ledger-reports/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var baseTime = time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

func newTxn(id, amount string, at time.Time) models.Transaction {
	return models.Transaction{
		ID:            id,
		OperationTime: at,
		Status:        models.TransactionStatusOK,
		Amount:        decimal.RequireFromString(amount),
		Category:      "Supermarkets",
		Description:   "Card purchase",
	}
}

func withCategory(txn models.Transaction, category string) models.Transaction {
	txn.Category = category
	return txn
}

func ids(transactions []models.Transaction) []string {
	result := make([]string, 0, len(transactions))
	for i := range transactions {
		result = append(result, transactions[i].ID)
	}
	return result
}

// randomLedger builds n transactions spread over the given year with two-decimal amounts.
func randomLedger(n int, year int) []models.Transaction {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)
	categories := []string{"Supermarkets", "Restaurants", "Transport", "Pharmacy", "Fuel"}

	transactions := make([]models.Transaction, 0, n)
	for i := 0; i < n; i++ {
		amount := decimal.NewFromFloat(gofakeit.Float64Range(-5000, 5000)).Round(2)
		transactions = append(transactions, models.Transaction{
			ID:            uuid.NewString(),
			OperationTime: gofakeit.DateRange(start, end).UTC(),
			Status:        models.TransactionStatusOK,
			Amount:        amount,
			Category:      gofakeit.RandomString(categories),
			Description:   gofakeit.Company(),
		})
	}
	return transactions
}
