package usecase

import (
	"github.com/iho/paymentsengine/internal/domain"
)

// Engine routes raw transactions to per-client accounts.
type Engine interface {
	ProcessTransaction(raw domain.RawTransaction) error
	// Accounts returns every account ordered by client id.
	Accounts() []*domain.Account
	Account(client uint16) (*domain.Account, bool)
}

// TransactionSource yields raw transactions in input order. Next returns
// io.EOF when the input is exhausted and an error wrapping
// domain.ErrMalformedRecord for a record that could not be parsed; any other
// error aborts ingestion.
type TransactionSource interface {
	Next() (domain.RawTransaction, error)
}

// AccountSink receives the final account table.
type AccountSink interface {
	Write(account *domain.Account) error
	Flush() error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}
