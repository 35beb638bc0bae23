package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Account is the ledger state of one client.
type Account struct {
	client       uint16
	available    decimal.Decimal
	held         decimal.Decimal
	total        decimal.Decimal
	locked       bool
	transactions map[uint32]*StoredTransaction
}

// NewAccount creates an empty, unlocked account.
func NewAccount(client uint16) *Account {
	return &Account{
		client:       client,
		available:    decimal.Zero,
		held:         decimal.Zero,
		total:        decimal.Zero,
		transactions: make(map[uint32]*StoredTransaction),
	}
}

func (a *Account) Client() uint16 { return a.client }

func (a *Account) Available() decimal.Decimal { return a.available }

func (a *Account) Held() decimal.Decimal { return a.held }

func (a *Account) Total() decimal.Decimal { return a.total }

func (a *Account) Locked() bool { return a.locked }

// Transaction looks up a stored deposit or withdrawal by id.
func (a *Account) Transaction(txID uint32) (*StoredTransaction, bool) {
	tx, ok := a.transactions[txID]
	return tx, ok
}

// ProcessTransaction applies cmd to the account. On error the account is left
// exactly as it was.
func (a *Account) ProcessTransaction(cmd TransactionCommand) error {
	if a.locked {
		return ErrAccountIsLocked
	}

	switch c := cmd.(type) {
	case DepositCommand:
		a.available = a.available.Add(c.Transaction.Amount())
		a.updateTotal()
		a.transactions[c.Transaction.ID()] = c.Transaction

	case WithdrawalCommand:
		amount := c.Transaction.Amount()
		if amount.GreaterThan(a.available) {
			return ErrInsufficientFunds
		}
		a.available = a.available.Sub(amount)
		a.updateTotal()
		a.transactions[c.Transaction.ID()] = c.Transaction

	case DisputeCommand:
		tx, err := a.lookup(c.TxID)
		if err != nil {
			return err
		}
		if err := tx.canDispute(); err != nil {
			return err
		}
		// Holding more than is available would drive available negative.
		if tx.Amount().GreaterThan(a.available) {
			return ErrInsufficientFunds
		}
		if err := tx.Dispute(); err != nil {
			return err
		}
		a.available = a.available.Sub(tx.Amount())
		a.held = a.held.Add(tx.Amount())
		a.updateTotal()

	case ResolveCommand:
		tx, err := a.lookup(c.TxID)
		if err != nil {
			return err
		}
		if err := tx.Resolve(); err != nil {
			return err
		}
		a.held = a.held.Sub(tx.Amount())
		a.available = a.available.Add(tx.Amount())
		a.updateTotal()

	case ChargebackCommand:
		tx, err := a.lookup(c.TxID)
		if err != nil {
			return err
		}
		if err := tx.Chargeback(); err != nil {
			return err
		}
		a.held = a.held.Sub(tx.Amount())
		a.locked = true
		a.updateTotal()

	default:
		return fmt.Errorf("%w: %T", ErrUnknownTransactionType, cmd)
	}

	return nil
}

// Verify checks the balance invariants of the account.
func (a *Account) Verify() error {
	if !a.total.Equal(a.available.Add(a.held)) {
		return fmt.Errorf("%w: client %d total %s != available %s + held %s",
			ErrInvariantViolation, a.client, a.total, a.available, a.held)
	}
	if a.available.IsNegative() {
		return fmt.Errorf("%w: client %d available balance %s is negative",
			ErrInvariantViolation, a.client, a.available)
	}
	if a.held.IsNegative() {
		return fmt.Errorf("%w: client %d held balance %s is negative",
			ErrInvariantViolation, a.client, a.held)
	}
	return nil
}

func (a *Account) lookup(txID uint32) (*StoredTransaction, error) {
	tx, ok := a.transactions[txID]
	if !ok {
		return nil, &TransactionNotFoundError{TxID: txID}
	}
	return tx, nil
}

func (a *Account) updateTotal() {
	a.total = a.available.Add(a.held)
}
