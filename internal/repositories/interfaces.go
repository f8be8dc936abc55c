package repositories

import (
	"context"
	"time"

	"ledger-reports/internal/models"
)

// TransactionRepositoryInterface defines the contract for transaction repository operations
type TransactionRepositoryInterface interface {
	Create(ctx context.Context, transaction *models.Transaction) error
	CreateBatch(ctx context.Context, transactions []models.Transaction) error
	GetByID(ctx context.Context, id string) (*models.Transaction, error)

	// GetByPeriod returns transactions with start <= operation time < end, newest first.
	GetByPeriod(ctx context.Context, start, end time.Time) ([]models.Transaction, error)
	GetAll(ctx context.Context) ([]models.Transaction, error)
	GetOperationTimes(ctx context.Context) ([]time.Time, error)
}
