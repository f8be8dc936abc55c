package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ledger-reports/internal/models"

	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidPeriodBounds = errors.New("period end must be after start")
	ErrNilTransaction      = errors.New("transaction cannot be nil")
)

const createBatchSize = 500

// transactionRepository implements TransactionRepository interface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction
func (r *transactionRepository) Create(ctx context.Context, transaction *models.Transaction) error {
	if transaction == nil {
		return ErrNilTransaction
	}
	if err := r.db.WithContext(ctx).Create(transaction).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// CreateBatch creates multiple transactions in batches
func (r *transactionRepository) CreateBatch(ctx context.Context, transactions []models.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).CreateInBatches(&transactions, createBatchSize).Error; err != nil {
		return fmt.Errorf("failed to create transactions batch: %w", err)
	}
	return nil
}

// GetByID retrieves a transaction by ID
func (r *transactionRepository) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := r.db.WithContext(ctx).Where("transaction_id = ?", id).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &transaction, nil
}

// GetByPeriod retrieves transactions in the half-open range [start, end)
func (r *transactionRepository) GetByPeriod(ctx context.Context, start, end time.Time) ([]models.Transaction, error) {
	if !end.After(start) {
		return nil, ErrInvalidPeriodBounds
	}

	transactions := make([]models.Transaction, 0)
	if err := r.db.WithContext(ctx).
		Where("date_of_operation >= ? AND date_of_operation < ?", start.UTC(), end.UTC()).
		Order("date_of_operation DESC").
		Order("transaction_id").
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get transactions by period: %w", err)
	}

	return transactions, nil
}

// GetAll retrieves every stored transaction, newest first
func (r *transactionRepository) GetAll(ctx context.Context) ([]models.Transaction, error) {
	transactions := make([]models.Transaction, 0)
	if err := r.db.WithContext(ctx).
		Order("date_of_operation DESC").
		Order("transaction_id").
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}

	return transactions, nil
}

// GetOperationTimes returns the operation time of every transaction that did not fail
func (r *transactionRepository) GetOperationTimes(ctx context.Context) ([]time.Time, error) {
	times := make([]time.Time, 0)
	if err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("UPPER(status) <> ?", models.TransactionStatusFailed).
		Order("date_of_operation DESC").
		Pluck("date_of_operation", &times).Error; err != nil {
		return nil, fmt.Errorf("failed to get operation times: %w", err)
	}

	return times, nil
}
