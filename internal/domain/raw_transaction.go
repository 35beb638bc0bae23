package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// RawTransactionType is the kind of an incoming transaction record.
type RawTransactionType string

const (
	RawTransactionTypeDeposit    RawTransactionType = "deposit"
	RawTransactionTypeWithdrawal RawTransactionType = "withdrawal"
	RawTransactionTypeDispute    RawTransactionType = "dispute"
	RawTransactionTypeResolve    RawTransactionType = "resolve"
	RawTransactionTypeChargeback RawTransactionType = "chargeback"
)

// ParseRawTransactionType parses a record type, ignoring case and surrounding whitespace.
func ParseRawTransactionType(s string) (RawTransactionType, error) {
	t := RawTransactionType(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case RawTransactionTypeDeposit,
		RawTransactionTypeWithdrawal,
		RawTransactionTypeDispute,
		RawTransactionTypeResolve,
		RawTransactionTypeChargeback:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTransactionType, s)
	}
}

// RawTransaction is one parsed input record.
type RawTransaction struct {
	Type   RawTransactionType
	Client uint16
	Tx     uint32
	Amount decimal.NullDecimal
}

// AmountOrZero returns the record amount, or zero when the field was empty.
func (r RawTransaction) AmountOrZero() decimal.Decimal {
	if !r.Amount.Valid {
		return decimal.Zero
	}
	return r.Amount.Decimal
}
