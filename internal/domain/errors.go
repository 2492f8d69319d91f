package domain

import "errors"

var (
	// Instrument errors
	ErrInstrumentNotFound  = errors.New("instrument not found")
	ErrDuplicateInstrument = errors.New("instrument already exists")
	ErrInstrumentClosed    = errors.New("instrument is closed")
	ErrPendingInstallments = errors.New("instrument has pending installments")
	ErrCategoryRequired    = errors.New("category is required for split instruments")
	ErrInvalidKind         = errors.New("unknown instrument kind")

	// Schedule errors
	ErrInvalidAmount           = errors.New("amount must be positive")
	ErrInvalidInstallmentCount = errors.New("number of installments must be at least one")
	ErrInvalidFrequency        = errors.New("unknown schedule frequency")
	ErrInvalidCustomDays       = errors.New("custom frequency requires a positive day count")

	// Installment errors
	ErrInstallmentNotFound = errors.New("installment not found")
	ErrInvalidStatus       = errors.New("unknown target status")

	// Instrument edit errors
	ErrAmountBelowPaid    = errors.New("amount cannot be less than total paid amount")
	ErrCountBelowPaid     = errors.New("installment count cannot be less than completed count")
	ErrNoPendingToAdjust  = errors.New("installment count leaves no pending installment to carry the remaining amount")
	ErrStartAfterPaidDate = errors.New("start date cannot be on or after a paid installment date")

	// Auth errors
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")

	// Ledger errors
	ErrTransactionNotFound = errors.New("ledger transaction not found")
	ErrInvalidType         = errors.New("unknown transaction type")
	ErrStatusLocked        = errors.New("received and paid transactions cannot change status")
	ErrAlreadyDeleted      = errors.New("transaction is already deleted")
	ErrNotDeleted          = errors.New("transaction is not deleted")
)
