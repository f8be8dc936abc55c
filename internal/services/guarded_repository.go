package services

import (
	"context"
	"errors"
	"time"

	"ledger-reports/internal/models"
	"ledger-reports/internal/repositories"
)

// guardedTransactionRepository fails fast with ErrCircuitBreakerOpen while storage keeps failing
type guardedTransactionRepository struct {
	next    repositories.TransactionRepositoryInterface
	breaker CircuitBreakerInterface
	metrics MetricsRecorderInterface
}

// NewGuardedTransactionRepository wraps next so storage outages trip breaker.
// Not-found results, bad arguments and cancelled requests are not counted as failures.
func NewGuardedTransactionRepository(
	next repositories.TransactionRepositoryInterface,
	breaker CircuitBreakerInterface,
	metrics MetricsRecorderInterface,
) repositories.TransactionRepositoryInterface {
	return &guardedTransactionRepository{
		next:    next,
		breaker: breaker,
		metrics: metrics,
	}
}

func (r *guardedTransactionRepository) Create(ctx context.Context, transaction *models.Transaction) error {
	return r.call(func() error {
		return r.next.Create(ctx, transaction)
	})
}

func (r *guardedTransactionRepository) CreateBatch(ctx context.Context, transactions []models.Transaction) error {
	return r.call(func() error {
		return r.next.CreateBatch(ctx, transactions)
	})
}

func (r *guardedTransactionRepository) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	var transaction *models.Transaction
	err := r.call(func() error {
		var err error
		transaction, err = r.next.GetByID(ctx, id)
		return err
	})
	return transaction, err
}

func (r *guardedTransactionRepository) GetByPeriod(ctx context.Context, start, end time.Time) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := r.call(func() error {
		var err error
		transactions, err = r.next.GetByPeriod(ctx, start, end)
		return err
	})
	return transactions, err
}

func (r *guardedTransactionRepository) GetAll(ctx context.Context) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := r.call(func() error {
		var err error
		transactions, err = r.next.GetAll(ctx)
		return err
	})
	return transactions, err
}

func (r *guardedTransactionRepository) GetOperationTimes(ctx context.Context) ([]time.Time, error) {
	var times []time.Time
	err := r.call(func() error {
		var err error
		times, err = r.next.GetOperationTimes(ctx)
		return err
	})
	return times, err
}

func (r *guardedTransactionRepository) call(fn func() error) error {
	if r.breaker.IsOpen() {
		r.metrics.IncrementCounter(metricCircuitOpen, map[string]string{"dependency": "transactions"})
		return ErrCircuitBreakerOpen
	}

	err := fn()
	if countsAsFailure(err) {
		r.breaker.RecordFailure()
		return err
	}

	r.breaker.RecordSuccess()
	return err
}

func countsAsFailure(err error) bool {
	if err == nil {
		return false
	}

	switch {
	case errors.Is(err, repositories.ErrTransactionNotFound),
		errors.Is(err, repositories.ErrInvalidPeriodBounds),
		errors.Is(err, repositories.ErrNilTransaction),
		errors.Is(err, models.ErrMissingTransactionID),
		errors.Is(err, models.ErrMissingOperationTime),
		errors.Is(err, models.ErrMissingStatus),
		errors.Is(err, context.Canceled):
		return false
	default:
		return true
	}
}
