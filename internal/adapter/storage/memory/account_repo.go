package memory

import (
	"context"
	"sync"

	"ilp-connector/internal/core/domain"
	"ilp-connector/pkg/apperror"
)

// AccountRepo is an in-memory ports.AccountRepository for development and
// tests.
type AccountRepo struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
}

// NewAccountRepo creates an empty in-memory account repository.
func NewAccountRepo() *AccountRepo {
	return &AccountRepo{accounts: make(map[string]*domain.Account)}
}

func (r *AccountRepo) Create(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.accounts[account.ID]; exists {
		return apperror.ErrAccountExists(account.ID)
	}
	cp := *account
	r.accounts[account.ID] = &cp
	return nil
}

func (r *AccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *AccountRepo) GetBySettlementEngineAccountID(_ context.Context, seAccountID string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.accounts {
		if a.SettlementEngine != nil && a.SettlementEngine.AccountID == seAccountID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}
