package domain

import (
	"github.com/shopspring/decimal"
)

// TransactionState is the dispute lifecycle state of a stored transaction.
type TransactionState string

const (
	TransactionStateNormal      TransactionState = "normal"
	TransactionStateDisputed    TransactionState = "disputed"
	TransactionStateResolved    TransactionState = "resolved"
	TransactionStateChargedBack TransactionState = "charged_back"
)

// StoredTransaction is the ledger's record of an accepted deposit or withdrawal.
//
// State moves Normal -> Disputed -> Resolved | ChargedBack. Resolved and
// ChargedBack are terminal. The transition methods only change the state;
// balance effects belong to the owning Account.
type StoredTransaction struct {
	client uint16
	id     uint32
	amount decimal.Decimal
	kind   RawTransactionType
	state  TransactionState
}

// NewStoredTransaction builds a transaction in the Normal state.
func NewStoredTransaction(client uint16, id uint32, amount decimal.Decimal, kind RawTransactionType) *StoredTransaction {
	return &StoredTransaction{
		client: client,
		id:     id,
		amount: amount,
		kind:   kind,
		state:  TransactionStateNormal,
	}
}

func (t *StoredTransaction) Client() uint16 { return t.client }

func (t *StoredTransaction) ID() uint32 { return t.id }

func (t *StoredTransaction) Amount() decimal.Decimal { return t.amount }

func (t *StoredTransaction) Kind() RawTransactionType { return t.kind }

func (t *StoredTransaction) State() TransactionState { return t.state }

// canDispute reports whether Dispute would succeed, without changing state.
func (t *StoredTransaction) canDispute() error {
	if t.kind != RawTransactionTypeDeposit {
		return ErrCannotDisputeNonDeposit
	}
	if t.state != TransactionStateNormal {
		return ErrInvalidDisputeTransition
	}
	return nil
}

// Dispute moves a deposit from Normal to Disputed.
func (t *StoredTransaction) Dispute() error {
	if err := t.canDispute(); err != nil {
		return err
	}
	t.state = TransactionStateDisputed
	return nil
}

// Resolve moves a disputed transaction to Resolved.
func (t *StoredTransaction) Resolve() error {
	if t.state != TransactionStateDisputed {
		return ErrInvalidResolveTransition
	}
	t.state = TransactionStateResolved
	return nil
}

// Chargeback moves a disputed transaction to ChargedBack.
func (t *StoredTransaction) Chargeback() error {
	if t.state != TransactionStateDisputed {
		return ErrInvalidChargebackTransition
	}
	t.state = TransactionStateChargedBack
	return nil
}
