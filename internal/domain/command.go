package domain

import "fmt"

// TransactionCommand is the operation an Account must perform for one record.
// The set of implementations is closed: DepositCommand, WithdrawalCommand,
// DisputeCommand, ResolveCommand and ChargebackCommand.
type TransactionCommand interface {
	command()
}

type DepositCommand struct {
	Transaction *StoredTransaction
}

type WithdrawalCommand struct {
	Transaction *StoredTransaction
}

type DisputeCommand struct {
	TxID uint32
}

type ResolveCommand struct {
	TxID uint32
}

type ChargebackCommand struct {
	TxID uint32
}

func (DepositCommand) command()    {}
func (WithdrawalCommand) command() {}
func (DisputeCommand) command()    {}
func (ResolveCommand) command()    {}
func (ChargebackCommand) command() {}

// NewTransactionCommand classifies a raw record. Deposits and withdrawals get a
// fresh StoredTransaction whose amount is zero when the record had none.
func NewTransactionCommand(raw RawTransaction) (TransactionCommand, error) {
	switch raw.Type {
	case RawTransactionTypeDeposit:
		return DepositCommand{
			Transaction: NewStoredTransaction(raw.Client, raw.Tx, raw.AmountOrZero(), raw.Type),
		}, nil
	case RawTransactionTypeWithdrawal:
		return WithdrawalCommand{
			Transaction: NewStoredTransaction(raw.Client, raw.Tx, raw.AmountOrZero(), raw.Type),
		}, nil
	case RawTransactionTypeDispute:
		return DisputeCommand{TxID: raw.Tx}, nil
	case RawTransactionTypeResolve:
		return ResolveCommand{TxID: raw.Tx}, nil
	case RawTransactionTypeChargeback:
		return ChargebackCommand{TxID: raw.Tx}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransactionType, string(raw.Type))
	}
}
