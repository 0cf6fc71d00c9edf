package ports

//go:generate mockgen -source=repositories.go -destination=mocks/repositories.go -package=mocks

import (
	"context"

	"ilp-connector/internal/core/domain"
)

// BalanceStore tracks per-account clearing and prepaid balances. Every
// mutation is atomic with respect to other mutations of the same account;
// mutations of different accounts never block one another. Accounts are
// created lazily at zero on first reference.
type BalanceStore interface {
	// GetBalance returns the most recently committed snapshot.
	GetBalance(ctx context.Context, accountID string) (domain.AccountBalance, error)

	// UpdateBalanceForPrepare escrows funds for an outgoing Prepare packet,
	// consuming prepaid funds before the clearing balance. When minBalance
	// is non-nil and the debit would push the net balance below it, the
	// call fails with apperror.ErrMinBalanceViolated and nothing mutates.
	UpdateBalanceForPrepare(ctx context.Context, accountID string, amount int64, minBalance *int64) (domain.AccountBalance, error)

	// UpdateBalanceForFulfill credits the clearing balance and, when the
	// post-credit balance exceeds the settle threshold, preemptively
	// deducts down to settleTo in the same atomic step. The second return
	// value is the clearing amount to settle (zero when no settlement is
	// due).
	UpdateBalanceForFulfill(ctx context.Context, accountID string, amount int64, settings domain.AccountBalanceSettings) (domain.AccountBalance, int64, error)

	// UpdateBalanceForReject refunds an escrow whose downstream attempt was
	// rejected.
	UpdateBalanceForReject(ctx context.Context, accountID string, amount int64) (domain.AccountBalance, error)

	// UpdateBalanceForIncomingSettlement credits the clearing balance at
	// most once per idempotency key, even under redelivery.
	UpdateBalanceForIncomingSettlement(ctx context.Context, idempotencyKey, accountID string, amount int64) (domain.AccountBalance, error)

	// UpdateBalanceForOutgoingSettlementRefund reverses the preemptive
	// fulfill-time deduction after a failed settlement-engine call.
	UpdateBalanceForOutgoingSettlementRefund(ctx context.Context, accountID string, amount int64) (domain.AccountBalance, error)
}

// AccountRepository stores counterparty account configuration.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	// GetByID returns nil, nil when the account does not exist.
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	// GetBySettlementEngineAccountID resolves the local account for an
	// engine-side account identifier. Returns nil, nil when unknown.
	GetBySettlementEngineAccountID(ctx context.Context, seAccountID string) (*domain.Account, error)
}

// SettlementLogRepository appends settlement audit records. Best-effort:
// callers log write failures but never let them mask a settlement outcome.
type SettlementLogRepository interface {
	Record(ctx context.Context, entry *domain.SettlementLogEntry) error
}
