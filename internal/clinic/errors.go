package clinic

import (
	"errors"
	"fmt"
)

// Domain errors for the visit workflow. Handlers translate these into HTTP
// responses; anything else is treated as an infrastructure failure.
var (
	ErrNotFound         = errors.New("record not found")
	ErrValidation       = errors.New("validation failed")
	ErrInvalidStatus    = errors.New("unrecognized visit status")
	ErrAlreadyFulfilled = errors.New("prescription already fulfilled")
	ErrDuplicatePayment = errors.New("payment already recorded for this examination")
)

// InsufficientStockError reports a fulfillment rejected because the drug's
// stock cannot cover the prescribed quantity. It carries enough detail for a
// human-readable message.
type InsufficientStockError struct {
	DrugID    uint
	DrugName  string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: need %d, have %d",
		e.DrugName, e.Requested, e.Available)
}

// IsInsufficientStock reports whether err is an InsufficientStockError.
func IsInsufficientStock(err error) bool {
	var target *InsufficientStockError
	return errors.As(err, &target)
}

func notFoundf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}
