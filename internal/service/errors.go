package service

import "errors"

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when there's a conflict (e.g., duplicate)
	ErrConflict = errors.New("resource conflict")

	// ErrUnauthorized is returned when user is not authenticated
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidCredentials is returned when email or password is wrong
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidPIN is returned when PIN verification fails
	ErrInvalidPIN = errors.New("invalid pin")

	// ErrUserInactive is returned when a deactivated user attempts to log in
	ErrUserInactive = errors.New("user account is deactivated")

	// ErrAccountInUse is returned when deleting an account that has ledger entries
	ErrAccountInUse = errors.New("account has transactions and cannot be deleted")

	// ErrOccurrenceFinal is returned when mutating a completed or skipped occurrence
	ErrOccurrenceFinal = errors.New("occurrence is already completed or skipped")

	// ErrAllocationCeiling is returned when active rule percentages for a source
	// would exceed 100
	ErrAllocationCeiling = errors.New("active allocation percentages cannot exceed 100")

	// ErrNotRecurring is returned for recurrence operations on a non-recurring expense
	ErrNotRecurring = errors.New("expense is not recurring")
)
