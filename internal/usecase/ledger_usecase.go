package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/iho/paymentsengine/internal/domain"
)

// LedgerUseCase answers read-only questions about the account table once
// ingestion has finished.
type LedgerUseCase struct {
	engine Engine
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(engine Engine) *LedgerUseCase {
	return &LedgerUseCase{engine: engine}
}

// ListAccounts returns every account ordered by client id.
func (uc *LedgerUseCase) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return uc.engine.Accounts(), nil
}

// GetAccount retrieves an account by client id.
func (uc *LedgerUseCase) GetAccount(ctx context.Context, client uint16) (*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	account, ok := uc.engine.Account(client)
	if !ok {
		return nil, fmt.Errorf("%w: client %d", domain.ErrAccountNotFound, client)
	}

	return account, nil
}

// CheckConsistency verifies the balance invariants of every account and
// reports all violations together.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) error {
	var errs []error
	for _, account := range uc.engine.Accounts() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := account.Verify(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
