package store

import "errors"

var (
	// ErrNotFound is returned when an identifier resolves to no record.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists is returned for duplicate user sign-ups.
	ErrAlreadyExists = errors.New("record already exists")
	// ErrAlreadyRequested is returned for a duplicate manager application or
	// a repeated membership request for the same club.
	ErrAlreadyRequested = errors.New("request already exists")
	// ErrDuplicateTransaction is returned when a payment insert hits the
	// unique transactionId index.
	ErrDuplicateTransaction = errors.New("transaction already recorded")
	// ErrBadTransition is returned for an illegal membership status move.
	ErrBadTransition = errors.New("illegal status transition")
)
