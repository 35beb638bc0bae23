package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/paymentsengine/internal/domain"
)

// ErrInvalidHeader is returned when the header row is missing or lacks a required column.
var ErrInvalidHeader = errors.New("invalid transaction header")

const (
	columnType   = "type"
	columnClient = "client"
	columnTx     = "tx"
	columnAmount = "amount"
)

// TransactionReader reads raw transactions from CSV input with a header row.
// Columns are matched by name; the amount column and trailing empty amount
// fields may be omitted.
type TransactionReader struct {
	csv     *csv.Reader
	columns map[string]int
	line    int
}

// NewTransactionReader creates a TransactionReader over r.
func NewTransactionReader(r io.Reader) *TransactionReader {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	return &TransactionReader{csv: reader}
}

// Next returns the next record. It returns io.EOF at the end of input, an
// error wrapping domain.ErrMalformedRecord for a row that cannot be parsed,
// and ErrInvalidHeader when the header is unusable.
func (r *TransactionReader) Next() (domain.RawTransaction, error) {
	if r.columns == nil {
		if err := r.readHeader(); err != nil {
			return domain.RawTransaction{}, err
		}
	}

	for {
		record, err := r.csv.Read()
		if err == io.EOF {
			return domain.RawTransaction{}, io.EOF
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return domain.RawTransaction{}, fmt.Errorf("%w: line %d: %v", domain.ErrMalformedRecord, parseErr.Line, parseErr.Err)
			}
			return domain.RawTransaction{}, err
		}

		r.line, _ = r.csv.FieldPos(0)

		if isBlank(record) {
			continue
		}

		raw, err := r.parse(record)
		if err != nil {
			return domain.RawTransaction{}, fmt.Errorf("%w: line %d: %v", domain.ErrMalformedRecord, r.line, err)
		}
		return raw, nil
	}
}

func (r *TransactionReader) readHeader() error {
	header, err := r.csv.Read()
	if err == io.EOF {
		return fmt.Errorf("%w: empty input", ErrInvalidHeader)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidHeader, err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimPrefix(name, "\ufeff")
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, required := range []string{columnType, columnClient, columnTx} {
		if _, ok := columns[required]; !ok {
			return fmt.Errorf("%w: missing column %q", ErrInvalidHeader, required)
		}
	}

	r.columns = columns
	return nil
}

func (r *TransactionReader) parse(record []string) (domain.RawTransaction, error) {
	var raw domain.RawTransaction

	typ, err := domain.ParseRawTransactionType(r.field(record, columnType))
	if err != nil {
		return raw, err
	}

	client, err := strconv.ParseUint(r.field(record, columnClient), 10, 16)
	if err != nil {
		return raw, fmt.Errorf("invalid client: %w", err)
	}

	tx, err := strconv.ParseUint(r.field(record, columnTx), 10, 32)
	if err != nil {
		return raw, fmt.Errorf("invalid tx: %w", err)
	}

	raw.Type = typ
	raw.Client = uint16(client)
	raw.Tx = uint32(tx)

	if amount := r.field(record, columnAmount); amount != "" {
		value, err := decimal.NewFromString(amount)
		if err != nil {
			return raw, fmt.Errorf("invalid amount %q: %w", amount, err)
		}
		if value.IsNegative() {
			return raw, fmt.Errorf("negative amount %s", value)
		}
		raw.Amount = decimal.NewNullDecimal(value)
	}

	return raw, nil
}

// field returns the trimmed value of column, or "" when the row is too short
// or the header has no such column.
func (r *TransactionReader) field(record []string, column string) string {
	i, ok := r.columns[column]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
