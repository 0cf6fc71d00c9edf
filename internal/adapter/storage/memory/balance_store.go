// Package memory provides non-durable, process-local adapters intended for
// development and tests. The balance store here is the reference
// implementation of ports.BalanceStore; multi-process deployments must use
// the Redis-backed store instead.
package memory

import (
	"context"
	"sync"

	"ilp-connector/internal/core/domain"
	"ilp-connector/pkg/apperror"
)

// accountEntry holds one account's balances. The mutex guards the whole
// check-and-mutate sequence so concurrent callers on the same account see a
// single total order, matching what the Redis store gets from server-side
// scripting. Entries for different accounts share no lock.
type accountEntry struct {
	mu       sync.Mutex
	clearing int64
	prepaid  int64
}

// BalanceStore is the in-memory reference implementation of
// ports.BalanceStore. It does not survive restarts and keeps no
// incoming-settlement dedup records; use the Redis store wherever the
// at-most-once guarantee matters.
type BalanceStore struct {
	mu       sync.Mutex // guards account creation only
	accounts map[string]*accountEntry
}

// NewBalanceStore creates an empty in-memory balance store.
func NewBalanceStore() *BalanceStore {
	return &BalanceStore{accounts: make(map[string]*accountEntry)}
}

// entry returns the account's entry, lazily creating it at zero.
func (s *BalanceStore) entry(accountID string) *accountEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.accounts[accountID]
	if !ok {
		e = &accountEntry{}
		s.accounts[accountID] = e
	}
	return e
}

func (s *BalanceStore) GetBalance(_ context.Context, accountID string) (domain.AccountBalance, error) {
	e := s.entry(accountID)
	e.mu.Lock()
	defer e.mu.Unlock()
	return domain.AccountBalance{
		AccountID:       accountID,
		ClearingBalance: e.clearing,
		PrepaidAmount:   e.prepaid,
	}, nil
}

func (s *BalanceStore) UpdateBalanceForPrepare(_ context.Context, accountID string, amount int64, minBalance *int64) (domain.AccountBalance, error) {
	if amount < 0 {
		return domain.AccountBalance{}, apperror.ErrInvalidAmount("prepare amount must be non-negative")
	}
	e := s.entry(accountID)
	e.mu.Lock()
	defer e.mu.Unlock()

	if minBalance != nil && e.clearing+e.prepaid-amount < *minBalance {
		return domain.AccountBalance{}, apperror.ErrMinBalanceViolated(accountID, amount, *minBalance)
	}

	// Prepaid funds are consumed before the clearing balance.
	switch {
	case e.prepaid >= amount:
		e.prepaid -= amount
	case e.prepaid > 0:
		e.clearing -= amount - e.prepaid
		e.prepaid = 0
	default:
		e.clearing -= amount
	}

	return domain.AccountBalance{AccountID: accountID, ClearingBalance: e.clearing, PrepaidAmount: e.prepaid}, nil
}

func (s *BalanceStore) UpdateBalanceForFulfill(_ context.Context, accountID string, amount int64, settings domain.AccountBalanceSettings) (domain.AccountBalance, int64, error) {
	if amount < 0 {
		return domain.AccountBalance{}, 0, apperror.ErrInvalidAmount("fulfill amount must be non-negative")
	}
	e := s.entry(accountID)
	e.mu.Lock()
	defer e.mu.Unlock()

	e.clearing += amount

	// Preemptive deduction: the settle amount leaves the ledger now and is
	// refunded later if the settlement-engine call fails.
	var toSettle int64
	if settings.SettleThreshold != nil &&
		e.clearing > *settings.SettleThreshold &&
		e.clearing > settings.SettleTo {
		toSettle = e.clearing - settings.SettleTo
		e.clearing -= toSettle
	}

	return domain.AccountBalance{AccountID: accountID, ClearingBalance: e.clearing, PrepaidAmount: e.prepaid}, toSettle, nil
}

func (s *BalanceStore) UpdateBalanceForReject(_ context.Context, accountID string, amount int64) (domain.AccountBalance, error) {
	return s.credit(accountID, amount, "reject amount must be non-negative")
}

// UpdateBalanceForIncomingSettlement credits the clearing balance. This
// implementation keeps no dedup records, so redelivered notifications are
// re-applied; only the Redis store provides the at-most-once guarantee.
func (s *BalanceStore) UpdateBalanceForIncomingSettlement(_ context.Context, _ string, accountID string, amount int64) (domain.AccountBalance, error) {
	return s.credit(accountID, amount, "settlement amount must be non-negative")
}

func (s *BalanceStore) UpdateBalanceForOutgoingSettlementRefund(_ context.Context, accountID string, amount int64) (domain.AccountBalance, error) {
	return s.credit(accountID, amount, "refund amount must be non-negative")
}

func (s *BalanceStore) credit(accountID string, amount int64, invalidMsg string) (domain.AccountBalance, error) {
	if amount < 0 {
		return domain.AccountBalance{}, apperror.ErrInvalidAmount(invalidMsg)
	}
	e := s.entry(accountID)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clearing += amount
	return domain.AccountBalance{AccountID: accountID, ClearingBalance: e.clearing, PrepaidAmount: e.prepaid}, nil
}
