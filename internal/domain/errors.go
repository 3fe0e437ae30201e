package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound       = errors.New("account not found")
	ErrInvalidAccountName    = errors.New("account name must not be empty")
	ErrInvalidInitialBalance = errors.New("initial balance must not be negative")
	ErrInsufficientBalance   = errors.New("insufficient balance for outbound movement")

	// Entry errors
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrInvalidDirection = errors.New("direction must be Inbound or Outbound")

	// Store errors
	ErrConcurrencyConflict = errors.New("concurrent update conflict, retry the operation")
)
