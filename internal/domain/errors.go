package domain

import (
	"errors"
	"fmt"
)

var (
	// Account errors
	ErrAccountIsLocked   = errors.New("account is locked")
	ErrInsufficientFunds = errors.New("insufficient funds for transaction")

	// Dispute lifecycle errors
	ErrCannotDisputeNonDeposit     = errors.New("cannot dispute non-deposit transaction")
	ErrInvalidDisputeTransition    = errors.New("invalid transition for dispute")
	ErrInvalidResolveTransition    = errors.New("invalid transition for resolve")
	ErrInvalidChargebackTransition = errors.New("invalid transition for chargeback")

	// Ledger errors
	ErrAccountNotFound        = errors.New("account not found")
	ErrMalformedRecord        = errors.New("malformed transaction record")
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrDuplicateTransaction   = errors.New("duplicate transaction id")
	ErrUnknownTransactionType = errors.New("unknown transaction type")
	ErrInvariantViolation     = errors.New("ledger invariant violated")
)

// TransactionNotFoundError reports a dispute, resolve or chargeback that
// references a transaction id the account has never stored.
type TransactionNotFoundError struct {
	TxID uint32
}

func (e *TransactionNotFoundError) Error() string {
	return fmt.Sprintf("transaction not found: %d", e.TxID)
}

// Is makes errors.Is(err, ErrTransactionNotFound) match.
func (e *TransactionNotFoundError) Is(target error) bool {
	return target == ErrTransactionNotFound
}

// ErrorKind returns a stable label for err, suitable for metrics and logs.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrAccountIsLocked):
		return "account_locked"
	case errors.Is(err, ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, ErrCannotDisputeNonDeposit):
		return "cannot_dispute_non_deposit"
	case errors.Is(err, ErrInvalidDisputeTransition):
		return "invalid_dispute_transition"
	case errors.Is(err, ErrInvalidResolveTransition):
		return "invalid_resolve_transition"
	case errors.Is(err, ErrInvalidChargebackTransition):
		return "invalid_chargeback_transition"
	case errors.Is(err, ErrTransactionNotFound):
		return "transaction_not_found"
	case errors.Is(err, ErrDuplicateTransaction):
		return "duplicate_transaction"
	case errors.Is(err, ErrUnknownTransactionType):
		return "unknown_transaction_type"
	case errors.Is(err, ErrInvariantViolation):
		return "invariant_violation"
	case errors.Is(err, ErrAccountNotFound):
		return "account_not_found"
	case errors.Is(err, ErrMalformedRecord):
		return "malformed_record"
	default:
		return "unknown"
	}
}
