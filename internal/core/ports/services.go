package ports

//go:generate mockgen -source=services.go -destination=mocks/services.go -package=mocks

import (
	"context"

	"ilp-connector/internal/core/domain"
	"ilp-connector/internal/ilp"
)

// SettlementEngineClient talks to an account's external settlement engine
// over its HTTP API. Calls are blocking round-trips; the caller owns retry
// policy.
type SettlementEngineClient interface {
	// SendSettlement asks the engine to execute a settlement. The returned
	// quantity is the amount the engine actually committed, in the engine's
	// own scale; it may be less than requested.
	SendSettlement(ctx context.Context, engine domain.SettlementEngineConfig, idempotencyKey string, amount domain.ScaledQuantity) (domain.ScaledQuantity, error)
	// SendMessage forwards an opaque settlement-protocol message to the
	// engine and returns its opaque response.
	SendMessage(ctx context.Context, engine domain.SettlementEngineConfig, message []byte) ([]byte, error)
}

// Link sends an ILP packet to the account's peer and returns the reply
// packet (Fulfill or Reject).
type Link interface {
	SendPacket(ctx context.Context, account *domain.Account, prepare *ilp.Prepare) (ilp.Packet, error)
}

// EventPublisher delivers settlement events to downstream consumers.
// Delivery is best-effort and must never fail the settlement path.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.SettlementEvent)
}

// FulfillResult is what the packet pipeline gets back after crediting a
// fulfilled packet.
type FulfillResult struct {
	Balance domain.AccountBalance
	// AmountToSettle is the clearing amount the store peeled off for
	// settlement (zero when none was due).
	AmountToSettle int64
	// Settled is the engine-committed quantity in clearing scale, nil when
	// no settlement was due or the attempt failed (the failed attempt's
	// deduction has already been refunded).
	Settled *domain.ScaledQuantity
}

// SettlementService orchestrates balance mutation against the external
// settlement engine.
type SettlementService interface {
	// HandleIncomingSettlement applies a settlement payment the engine
	// observed on the underlying ledger. Returns the credited quantity in
	// the account's asset scale.
	HandleIncomingSettlement(ctx context.Context, idempotencyKey, seAccountID string, incoming domain.ScaledQuantity) (domain.ScaledQuantity, error)
	// HandleLocalSettlementMessage relays a message from the local
	// settlement engine to the peer's engine over the ILP link.
	HandleLocalSettlementMessage(ctx context.Context, seAccountID string, message []byte) ([]byte, error)
	// HandlePeerSettlementMessage forwards a peer.settle message arriving
	// over the link to the local settlement engine.
	HandlePeerSettlementMessage(ctx context.Context, account *domain.Account, message []byte) ([]byte, error)
	// InitiateSettlement sends a clearing-scale settlement request to the
	// engine and reconciles the ledger on failure. Non-positive amounts are
	// a no-op.
	InitiateSettlement(ctx context.Context, idempotencyKey string, account *domain.Account, clearingQty domain.ScaledQuantity) (domain.ScaledQuantity, error)
	// ProcessFulfill credits a fulfilled packet and, when settlement is
	// due, initiates it inline.
	ProcessFulfill(ctx context.Context, account *domain.Account, amount int64) (FulfillResult, error)
}
