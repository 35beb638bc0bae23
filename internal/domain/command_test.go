package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewTransactionCommand(t *testing.T) {
	amount := decimal.NewNullDecimal(decimal.RequireFromString("2.5"))

	tests := []struct {
		name   string
		raw    RawTransaction
		assert func(t *testing.T, cmd TransactionCommand)
	}{
		{
			name: "deposit carries stored transaction",
			raw:  RawTransaction{Type: RawTransactionTypeDeposit, Client: 1, Tx: 10, Amount: amount},
			assert: func(t *testing.T, cmd TransactionCommand) {
				c, ok := cmd.(DepositCommand)
				if !ok {
					t.Fatalf("expected DepositCommand, got %T", cmd)
				}
				if c.Transaction.ID() != 10 || c.Transaction.Client() != 1 {
					t.Fatalf("unexpected transaction ids")
				}
				if !c.Transaction.Amount().Equal(decimal.RequireFromString("2.5")) {
					t.Fatalf("unexpected amount %s", c.Transaction.Amount())
				}
				if c.Transaction.Kind() != RawTransactionTypeDeposit {
					t.Fatalf("unexpected kind %s", c.Transaction.Kind())
				}
			},
		},
		{
			name: "withdrawal without amount defaults to zero",
			raw:  RawTransaction{Type: RawTransactionTypeWithdrawal, Client: 2, Tx: 11},
			assert: func(t *testing.T, cmd TransactionCommand) {
				c, ok := cmd.(WithdrawalCommand)
				if !ok {
					t.Fatalf("expected WithdrawalCommand, got %T", cmd)
				}
				if !c.Transaction.Amount().IsZero() {
					t.Fatalf("expected zero amount, got %s", c.Transaction.Amount())
				}
			},
		},
		{
			name: "dispute",
			raw:  RawTransaction{Type: RawTransactionTypeDispute, Client: 1, Tx: 12, Amount: amount},
			assert: func(t *testing.T, cmd TransactionCommand) {
				if c, ok := cmd.(DisputeCommand); !ok || c.TxID != 12 {
					t.Fatalf("expected DisputeCommand{12}, got %#v", cmd)
				}
			},
		},
		{
			name: "resolve",
			raw:  RawTransaction{Type: RawTransactionTypeResolve, Client: 1, Tx: 13},
			assert: func(t *testing.T, cmd TransactionCommand) {
				if c, ok := cmd.(ResolveCommand); !ok || c.TxID != 13 {
					t.Fatalf("expected ResolveCommand{13}, got %#v", cmd)
				}
			},
		},
		{
			name: "chargeback",
			raw:  RawTransaction{Type: RawTransactionTypeChargeback, Client: 1, Tx: 14},
			assert: func(t *testing.T, cmd TransactionCommand) {
				if c, ok := cmd.(ChargebackCommand); !ok || c.TxID != 14 {
					t.Fatalf("expected ChargebackCommand{14}, got %#v", cmd)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := NewTransactionCommand(tt.raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.assert(t, cmd)
		})
	}
}

func TestNewTransactionCommand_UnknownType(t *testing.T) {
	_, err := NewTransactionCommand(RawTransaction{Type: "transfer"})
	if !errors.Is(err, ErrUnknownTransactionType) {
		t.Fatalf("expected ErrUnknownTransactionType, got %v", err)
	}
}

func TestParseRawTransactionType(t *testing.T) {
	tests := []struct {
		input   string
		want    RawTransactionType
		wantErr bool
	}{
		{input: "deposit", want: RawTransactionTypeDeposit},
		{input: " Withdrawal ", want: RawTransactionTypeWithdrawal},
		{input: "DISPUTE", want: RawTransactionTypeDispute},
		{input: "resolve", want: RawTransactionTypeResolve},
		{input: "chargeBack", want: RawTransactionTypeChargeback},
		{input: "refund", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseRawTransactionType(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownTransactionType) {
				t.Fatalf("ParseRawTransactionType(%q) expected error, got %v", tt.input, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("ParseRawTransactionType(%q) = %q, %v; want %q", tt.input, got, err, tt.want)
		}
	}
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "none"},
		{ErrAccountIsLocked, "account_locked"},
		{ErrInsufficientFunds, "insufficient_funds"},
		{ErrCannotDisputeNonDeposit, "cannot_dispute_non_deposit"},
		{ErrInvalidDisputeTransition, "invalid_dispute_transition"},
		{ErrInvalidResolveTransition, "invalid_resolve_transition"},
		{ErrInvalidChargebackTransition, "invalid_chargeback_transition"},
		{&TransactionNotFoundError{TxID: 4}, "transaction_not_found"},
		{ErrDuplicateTransaction, "duplicate_transaction"},
		{ErrUnknownTransactionType, "unknown_transaction_type"},
		{ErrInvariantViolation, "invariant_violation"},
		{ErrAccountNotFound, "account_not_found"},
		{fmt.Errorf("line 3: %w", ErrMalformedRecord), "malformed_record"},
		{errors.New("boom"), "unknown"},
	}

	for _, tt := range tests {
		if got := ErrorKind(tt.err); got != tt.want {
			t.Fatalf("ErrorKind(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestTransactionNotFoundError_Message(t *testing.T) {
	err := &TransactionNotFoundError{TxID: 17}
	if err.Error() != "transaction not found: 17" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
