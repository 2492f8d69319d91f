package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidName         = errors.New("invalid name")
	ErrInvalidCounterparty = errors.New("invalid counterparty name")
	ErrAmountTooLarge      = errors.New("amount exceeds maximum allowed")
)

// Validation constants
const (
	MaxNameLength        = 100
	MaxDescriptionLength = 255
	MaxAmount            = "999999999999999" // 15 digits, matches numeric(15,2)
)

// ValidateName validates an instrument name.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	}

	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidName, MaxNameLength)
	}

	return nil
}

// ValidateCounterparty validates a counterparty name.
func ValidateCounterparty(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: counterparty cannot be empty", ErrInvalidCounterparty)
	}

	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: counterparty exceeds %d characters", ErrInvalidCounterparty, MaxNameLength)
	}

	return nil
}

// ValidateAmount validates a monetary amount against storage bounds.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxAmount)
	}

	return nil
}
