package dto

import (
	"time"

	"ledger-reports/internal/ledger"
	"ledger-reports/internal/models"
)

// PeriodRequest addresses one calendar month
type PeriodRequest struct {
	Year  int `param:"year" validate:"report_year"`
	Month int `param:"month" validate:"report_month"`
}

// DailyChartRequest selects the month and the plotted metric
type DailyChartRequest struct {
	Year   int    `param:"year" validate:"report_year"`
	Month  int    `param:"month" validate:"report_month"`
	Metric string `query:"metric" validate:"daily_metric"`
}

// CategoryChartRequest selects the month and whether to include the drill-down lines
type CategoryChartRequest struct {
	Year    int  `param:"year" validate:"report_year"`
	Month   int  `param:"month" validate:"report_month"`
	Details bool `query:"details"`
}

// TransactionIDRequest addresses a single stored transaction
type TransactionIDRequest struct {
	ID string `param:"id" validate:"transaction_id"`
}

// TransactionResponse is the API view of a stored transaction with money
// rendered to two decimal places
type TransactionResponse struct {
	ID                      string     `json:"transaction_id"`
	OperationTime           time.Time  `json:"date_of_operation"`
	PaymentTime             *time.Time `json:"date_of_payment,omitempty"`
	CardNumber              string     `json:"card_number,omitempty"`
	Status                  string     `json:"status"`
	Amount                  string     `json:"operation_amount"`
	OperationCurrency       string     `json:"operation_currency,omitempty"`
	PaymentAmount           string     `json:"payment_amount"`
	PaymentCurrency         string     `json:"payment_currency,omitempty"`
	Cashback                string     `json:"cashback"`
	Category                string     `json:"category"`
	OverrideCategory        *string    `json:"my_category,omitempty"`
	EffectiveCategory       string     `json:"effective_category"`
	MCC                     string     `json:"mcc,omitempty"`
	Description             string     `json:"description"`
	Bonuses                 string     `json:"bonuses"`
	Rounding                string     `json:"rounding"`
	TotalAmountWithRounding string     `json:"total_amount_with_rounding"`
	Comment                 string     `json:"my_comment,omitempty"`
}

// MonthTransactionsResponse is the listing of one month
type MonthTransactionsResponse struct {
	Year         int                   `json:"year"`
	Month        int                   `json:"month"`
	Count        int                   `json:"count"`
	Transactions []TransactionResponse `json:"transactions"`
}

// NewTransactionResponse converts a stored transaction, reading times in loc
func NewTransactionResponse(t *models.Transaction, loc *time.Location) TransactionResponse {
	resp := TransactionResponse{
		ID:                      t.ID,
		OperationTime:           t.OperationTime.In(loc),
		CardNumber:              t.CardNumber,
		Status:                  t.Status,
		Amount:                  ledger.FormatMoney(t.Amount),
		OperationCurrency:       t.OperationCurrency,
		PaymentAmount:           ledger.FormatMoney(t.PaymentAmount),
		PaymentCurrency:         t.PaymentCurrency,
		Cashback:                ledger.FormatMoney(t.Cashback),
		Category:                t.Category,
		OverrideCategory:        t.OverrideCategory,
		EffectiveCategory:       t.EffectiveCategory(),
		MCC:                     t.MCC,
		Description:             t.Description,
		Bonuses:                 ledger.FormatMoney(t.Bonuses),
		Rounding:                ledger.FormatMoney(t.Rounding),
		TotalAmountWithRounding: ledger.FormatMoney(t.TotalAmountWithRounding),
		Comment:                 t.Comment,
	}

	if t.PaymentTime != nil {
		paid := t.PaymentTime.In(loc)
		resp.PaymentTime = &paid
	}

	return resp
}

// NewMonthTransactionsResponse converts a month listing keeping its order
func NewMonthTransactionsResponse(year, month int, transactions []models.Transaction, loc *time.Location) MonthTransactionsResponse {
	items := make([]TransactionResponse, 0, len(transactions))
	for i := range transactions {
		items = append(items, NewTransactionResponse(&transactions[i], loc))
	}

	return MonthTransactionsResponse{
		Year:         year,
		Month:        month,
		Count:        len(items),
		Transactions: items,
	}
}
