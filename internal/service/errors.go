package service

import (
	"errors"
	"fmt"

	"shareit/internal/domain"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrItemNotFound    = errors.New("item not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrRequestNotFound = errors.New("item request not found")

	ErrAccessDenied               = errors.New("access denied")
	ErrUpdateNotAvailable         = errors.New("update not available")
	ErrBookingByOwnerNotAvailable = errors.New("owner cannot book own item")
	ErrBookingNotAvailable        = errors.New("item is not available for booking")
	ErrInvalidDateRange           = errors.New("booking start must be before end")
	ErrStatusChangeNotAvailable   = errors.New("booking status has already been decided")
	ErrCommentNotAvailable        = errors.New("comment requires a completed approved booking")
	ErrUnsupportedStatus          = errors.New("UNSUPPORTED_STATUS")
	ErrEmailNotUnique             = errors.New("email is already registered")
	ErrValidation                 = errors.New("validation failed")
)

// storeError maps a repository error onto kind when the record is missing and
// wraps anything else as an internal failure of op.
func storeError(err error, kind error, op string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: %v", kind, err)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
