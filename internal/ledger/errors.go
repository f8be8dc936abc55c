package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is the root of every input error the engine reports.
	ErrInvalidInput = errors.New("invalid input")

	ErrInvalidPeriod      = fmt.Errorf("%w: invalid period", ErrInvalidInput)
	ErrInvalidTolerance   = fmt.Errorf("%w: tolerance window must not be negative", ErrInvalidInput)
	ErrInvalidMatchMode   = fmt.Errorf("%w: unknown match mode", ErrInvalidInput)
	ErrInvalidMetric      = fmt.Errorf("%w: unknown daily metric", ErrInvalidInput)
	ErrInvalidTransaction = fmt.Errorf("%w: invalid transaction", ErrInvalidInput)
)
