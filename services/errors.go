package services

import "errors"

var (
	// ErrAlreadySigned reports that a sign-in for the (user, date) pair was
	// already recorded. It is an idempotent outcome, not a fault: nothing
	// was written.
	ErrAlreadySigned = errors.New("already signed in for this date")

	// ErrInvalidDate reports a malformed or future date. Rejected before any
	// storage access.
	ErrInvalidDate = errors.New("invalid sign-in date")
)
