package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TransactionStatusOK        = "OK"
	TransactionStatusCompleted = "COMPLETED"
	TransactionStatusFailed    = "FAILED"

	// CategoryUncategorized is the bucket name for transactions that carry neither a
	// bank category nor an override.
	CategoryUncategorized = "Uncategorized"
)

var (
	ErrMissingTransactionID = errors.New("transaction ID is required")
	ErrMissingOperationTime = errors.New("operation time is required")
	ErrMissingStatus        = errors.New("transaction status is required")
)

// Transaction is a single bank-card operation as exported by the card issuer.
type Transaction struct {
	ID                      string          `gorm:"column:transaction_id;type:varchar(64);primaryKey" json:"transaction_id"`
	OperationTime           time.Time       `gorm:"column:date_of_operation;not null;index:idx_transactions_date_of_operation" json:"date_of_operation"`
	PaymentTime             *time.Time      `gorm:"column:date_of_payment" json:"date_of_payment,omitempty"`
	CardNumber              string          `gorm:"column:card_number;type:varchar(32)" json:"card_number"`
	Status                  string          `gorm:"column:status;type:varchar(20);not null;index:idx_transactions_status" json:"status"`
	Amount                  decimal.Decimal `gorm:"column:operation_amount;type:decimal(15,2);not null" json:"operation_amount"`
	OperationCurrency       string          `gorm:"column:operation_currency;type:varchar(3)" json:"operation_currency"`
	PaymentAmount           decimal.Decimal `gorm:"column:payment_amount;type:decimal(15,2);default:0" json:"payment_amount"`
	PaymentCurrency         string          `gorm:"column:payment_currency;type:varchar(3)" json:"payment_currency"`
	Cashback                decimal.Decimal `gorm:"column:cashback;type:decimal(15,2);default:0" json:"cashback"`
	Category                string          `gorm:"column:category;type:varchar(100)" json:"category"`
	OverrideCategory        *string         `gorm:"column:my_category;type:varchar(100)" json:"my_category,omitempty"`
	MCC                     string          `gorm:"column:mcc;type:varchar(10)" json:"mcc"`
	Description             string          `gorm:"column:description;type:text" json:"description"`
	Bonuses                 decimal.Decimal `gorm:"column:bonuses;type:decimal(15,2);default:0" json:"bonuses"`
	Rounding                decimal.Decimal `gorm:"column:rounding;type:decimal(15,2);default:0" json:"rounding"`
	TotalAmountWithRounding decimal.Decimal `gorm:"column:total_amount_with_rounding;type:decimal(15,2);default:0" json:"total_amount_with_rounding"`
	Comment                 string          `gorm:"column:my_comment;type:text" json:"my_comment"`
}

// BeforeCreate hook for Transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.Status == "" {
		t.Status = TransactionStatusOK
	}
	return t.Validate()
}

// Validate checks the fields every report relies on.
func (t *Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrMissingTransactionID
	}

	if t.OperationTime.IsZero() {
		return ErrMissingOperationTime
	}

	if strings.TrimSpace(t.Status) == "" {
		return ErrMissingStatus
	}

	return nil
}

// IsFailed reports whether the bank rejected the operation.
func (t *Transaction) IsFailed() bool {
	return strings.EqualFold(strings.TrimSpace(t.Status), TransactionStatusFailed)
}

// IsIncome returns true for inflows
func (t *Transaction) IsIncome() bool {
	return t.Amount.IsPositive()
}

// IsExpense returns true for outflows
func (t *Transaction) IsExpense() bool {
	return t.Amount.IsNegative()
}

// EffectiveCategory returns the user override when set, otherwise the bank category.
func (t *Transaction) EffectiveCategory() string {
	if t.OverrideCategory != nil {
		if override := strings.TrimSpace(*t.OverrideCategory); override != "" {
			return override
		}
	}

	if category := strings.TrimSpace(t.Category); category != "" {
		return category
	}

	return CategoryUncategorized
}
