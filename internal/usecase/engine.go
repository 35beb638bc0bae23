package usecase

import (
	"fmt"
	"maps"
	"slices"

	"github.com/iho/paymentsengine/internal/domain"
	"github.com/iho/paymentsengine/internal/infrastructure/metrics"
)

// EngineOption configures an InMemoryEngine.
type EngineOption func(*InMemoryEngine)

// WithDuplicateRejection makes the engine reject a deposit or withdrawal whose
// transaction id is already stored for the client, instead of overwriting it.
func WithDuplicateRejection() EngineOption {
	return func(e *InMemoryEngine) {
		e.rejectDuplicates = true
	}
}

// WithMetrics records account creation on m.
func WithMetrics(m *metrics.Metrics) EngineOption {
	return func(e *InMemoryEngine) {
		e.metrics = m
	}
}

// InMemoryEngine owns the account table of a single run. It is not safe for
// concurrent use while transactions are being processed.
type InMemoryEngine struct {
	accounts         map[uint16]*domain.Account
	rejectDuplicates bool
	metrics          *metrics.Metrics
}

// NewInMemoryEngine creates an engine with an empty account table.
func NewInMemoryEngine(opts ...EngineOption) *InMemoryEngine {
	e := &InMemoryEngine{
		accounts: make(map[uint16]*domain.Account),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ProcessTransaction classifies raw, creates the client's account on first
// sight and applies the command to it. The account's error is returned unchanged.
func (e *InMemoryEngine) ProcessTransaction(raw domain.RawTransaction) error {
	cmd, err := domain.NewTransactionCommand(raw)
	if err != nil {
		return err
	}

	account := e.accountFor(raw.Client)

	if e.rejectDuplicates && !account.Locked() {
		if stored := storedTransaction(cmd); stored != nil {
			if _, exists := account.Transaction(stored.ID()); exists {
				return fmt.Errorf("%w: client %d tx %d", domain.ErrDuplicateTransaction, raw.Client, stored.ID())
			}
		}
	}

	return account.ProcessTransaction(cmd)
}

// Accounts returns every account ordered by client id.
func (e *InMemoryEngine) Accounts() []*domain.Account {
	clients := slices.Sorted(maps.Keys(e.accounts))

	result := make([]*domain.Account, len(clients))
	for i, client := range clients {
		result[i] = e.accounts[client]
	}
	return result
}

// Account looks up a single account.
func (e *InMemoryEngine) Account(client uint16) (*domain.Account, bool) {
	account, ok := e.accounts[client]
	return account, ok
}

func (e *InMemoryEngine) accountFor(client uint16) *domain.Account {
	account, ok := e.accounts[client]
	if !ok {
		account = domain.NewAccount(client)
		e.accounts[client] = account
		if e.metrics != nil {
			e.metrics.AccountsCreated.Inc()
		}
	}
	return account
}

func storedTransaction(cmd domain.TransactionCommand) *domain.StoredTransaction {
	switch c := cmd.(type) {
	case domain.DepositCommand:
		return c.Transaction
	case domain.WithdrawalCommand:
		return c.Transaction
	default:
		return nil
	}
}
