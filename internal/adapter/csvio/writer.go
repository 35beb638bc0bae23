package csvio

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/iho/paymentsengine/internal/domain"
)

var accountHeader = []string{"client", "available", "held", "total", "locked"}

// AccountWriter writes the account table as CSV. The header row is emitted
// before the first account, or on Flush when no account was written.
type AccountWriter struct {
	csv           *csv.Writer
	headerWritten bool
}

// NewAccountWriter creates an AccountWriter over w.
func NewAccountWriter(w io.Writer) *AccountWriter {
	return &AccountWriter{csv: csv.NewWriter(w)}
}

// Write appends one account row.
func (w *AccountWriter) Write(account *domain.Account) error {
	if err := w.writeHeader(); err != nil {
		return err
	}

	return w.csv.Write([]string{
		strconv.FormatUint(uint64(account.Client()), 10),
		account.Available().String(),
		account.Held().String(),
		account.Total().String(),
		strconv.FormatBool(account.Locked()),
	})
}

// Flush writes any buffered data and reports the first write error.
func (w *AccountWriter) Flush() error {
	if err := w.writeHeader(); err != nil {
		return err
	}

	w.csv.Flush()
	return w.csv.Error()
}

func (w *AccountWriter) writeHeader() error {
	if w.headerWritten {
		return nil
	}
	w.headerWritten = true
	return w.csv.Write(accountHeader)
}
