package service

import "errors"

// Ledger failures, surfaced to the caller as distinct user-displayable
// messages. Controllers map them to HTTP statuses with errors.Is.
var (
	ErrStudentNotFound  = errors.New("student not found")
	ErrInvalidComponent = errors.New("unknown fee component")
	ErrInvalidAmount    = errors.New("payment amount must be a positive whole amount")
	ErrOverpayment      = errors.New("payment exceeds the remaining amount for a component")
	ErrConflict         = errors.New("concurrent update, please retry")
	ErrPersistence      = errors.New("storage unavailable")
)
