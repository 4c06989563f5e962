package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is matched by every "unknown id" error of the core.
	ErrNotFound = errors.New("not found")

	ErrHabitNotFound = fmt.Errorf("habit %w", ErrNotFound)
	ErrItemNotFound  = fmt.Errorf("store item %w", ErrNotFound)
	ErrGroupNotFound = fmt.Errorf("group %w", ErrNotFound)

	ErrInvalidAmount     = errors.New("amount must be a positive integer")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrItemUnavailable   = errors.New("store item is not available")
	ErrDuplicateID       = errors.New("duplicate id")
)

// InsufficientFundsError reports how many points were missing for a debit.
type InsufficientFundsError struct {
	Required  int
	Available int
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: need %d, have %d (short by %d)", e.Required, e.Available, e.Shortfall())
}

func (e *InsufficientFundsError) Shortfall() int {
	return e.Required - e.Available
}

func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}
