package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound  = fmt.Errorf("user %w", ErrNotFound)
	ErrUserInvalidID = errors.New("invalid user id")
)
