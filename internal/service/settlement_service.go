package service

import (
	"context"
	"fmt"
	"time"

	"ilp-connector/internal/core/domain"
	"ilp-connector/internal/core/ports"
	"ilp-connector/internal/ilp"
	"ilp-connector/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SettlementServiceImpl implements ports.SettlementService. It is the only
// place local ledger state meets the external settlement engine: balances
// are deducted optimistically at fulfill time, and a failed engine call is
// compensated by crediting the requested amount back.
type SettlementServiceImpl struct {
	accountRepo ports.AccountRepository
	balances    ports.BalanceStore
	engine      ports.SettlementEngineClient
	link        ports.Link
	events      ports.EventPublisher
	auditLog    ports.SettlementLogRepository
	log         zerolog.Logger
}

// NewSettlementService creates a new SettlementServiceImpl. auditLog may be
// nil to disable audit records.
func NewSettlementService(
	accountRepo ports.AccountRepository,
	balances ports.BalanceStore,
	engine ports.SettlementEngineClient,
	link ports.Link,
	events ports.EventPublisher,
	auditLog ports.SettlementLogRepository,
	log zerolog.Logger,
) *SettlementServiceImpl {
	return &SettlementServiceImpl{
		accountRepo: accountRepo,
		balances:    balances,
		engine:      engine,
		link:        link,
		events:      events,
		auditLog:    auditLog,
		log:         log,
	}
}

// HandleIncomingSettlement applies a settlement payment the engine observed
// on the underlying ledger. The incoming quantity arrives in the engine's
// scale and is floored into the account's asset scale before crediting.
func (s *SettlementServiceImpl) HandleIncomingSettlement(ctx context.Context, idempotencyKey, seAccountID string, incoming domain.ScaledQuantity) (domain.ScaledQuantity, error) {
	account, err := s.accountRepo.GetBySettlementEngineAccountID(ctx, seAccountID)
	if err != nil {
		return domain.ScaledQuantity{}, apperror.InternalError(err)
	}
	if account == nil {
		s.publishIncomingFailed(ctx, "", seAccountID, idempotencyKey, incoming, "account not found")
		return domain.ScaledQuantity{}, apperror.ErrAccountNotFoundForEngine(seAccountID)
	}

	applied := incoming.Translate(account.AssetScale)
	amount, err := applied.Int64()
	if err != nil {
		s.publishIncomingFailed(ctx, account.ID, seAccountID, idempotencyKey, incoming, err.Error())
		return domain.ScaledQuantity{}, apperror.ErrSettlementFailed(account.ID, seAccountID, err)
	}

	balance, err := s.balances.UpdateBalanceForIncomingSettlement(ctx, idempotencyKey, account.ID, amount)
	if err != nil {
		s.publishIncomingFailed(ctx, account.ID, seAccountID, idempotencyKey, incoming, err.Error())
		return domain.ScaledQuantity{}, apperror.ErrSettlementFailed(account.ID, seAccountID, err)
	}

	s.recordAudit(ctx, account.ID, idempotencyKey, domain.SettlementDirectionIncoming,
		amount, &amount, domain.SettlementOutcomeSucceeded, "")

	s.events.Publish(ctx, domain.SettlementEvent{
		Type:                      domain.EventIncomingSettlementSucceeded,
		AccountID:                 account.ID,
		SettlementEngineAccountID: seAccountID,
		IdempotencyKey:            idempotencyKey,
		Requested:                 incoming,
		Settled:                   &applied,
		Timestamp:                 time.Now().UTC(),
	})

	s.log.Info().
		Str("account_id", account.ID).
		Str("se_account_id", seAccountID).
		Str("idempotency_key", idempotencyKey).
		Str("incoming", incoming.String()).
		Str("applied", applied.String()).
		Int64("clearing_balance", balance.ClearingBalance).
		Msg("incoming settlement applied")

	return applied, nil
}

// HandleLocalSettlementMessage relays a message from the local settlement
// engine to the peer's engine: a zero-amount prepare addressed to
// peer.settle with the all-zero condition, the message as packet data. Send
// failures propagate unmodified; no retry happens here.
func (s *SettlementServiceImpl) HandleLocalSettlementMessage(ctx context.Context, seAccountID string, message []byte) ([]byte, error) {
	account, err := s.accountRepo.GetBySettlementEngineAccountID(ctx, seAccountID)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if account == nil {
		return nil, apperror.ErrAccountNotFoundForEngine(seAccountID)
	}

	prepare := &ilp.Prepare{
		Amount:             0,
		Destination:        ilp.PeerSettleAddress,
		ExecutionCondition: ilp.ZeroCondition,
		Data:               message,
	}
	reply, err := s.link.SendPacket(ctx, account, prepare)
	if err != nil {
		return nil, err
	}

	switch pkt := reply.(type) {
	case *ilp.Fulfill:
		return pkt.Data, nil
	case *ilp.Reject:
		return nil, apperror.ErrSettlementMessageRelay(account.ID, pkt)
	default:
		return nil, apperror.ErrSettlementMessageRelay(account.ID,
			fmt.Errorf("unexpected ilp reply packet type %d", reply.Type()))
	}
}

// HandlePeerSettlementMessage forwards a message that arrived over
// peer.settle to the local settlement engine's out-of-band API.
func (s *SettlementServiceImpl) HandlePeerSettlementMessage(ctx context.Context, account *domain.Account, message []byte) ([]byte, error) {
	if !account.HasSettlementEngine() {
		return nil, apperror.ErrSettlementEngineNotConfigured(account.ID)
	}
	resp, err := s.engine.SendMessage(ctx, *account.SettlementEngine, message)
	if err != nil {
		return nil, apperror.ErrSettlementMessageRelay(account.ID, err)
	}
	return resp, nil
}

// InitiateSettlement asks the engine to settle a clearing-scale quantity
// whose amount was already deducted preemptively at fulfill time. Success
// (including a partial commitment) only confirms the deduction; any failure
// refunds the originally requested amount before the error propagates.
func (s *SettlementServiceImpl) InitiateSettlement(ctx context.Context, idempotencyKey string, account *domain.Account, clearingQty domain.ScaledQuantity) (domain.ScaledQuantity, error) {
	if clearingQty.IsZero() {
		return domain.ZeroQuantity(clearingQty.Scale()), nil
	}
	if !account.HasSettlementEngine() {
		return domain.ScaledQuantity{}, apperror.ErrSettlementEngineNotConfigured(account.ID)
	}
	seAccountID := account.SettlementEngine.AccountID

	requestedAmount, err := clearingQty.Int64()
	if err != nil {
		return domain.ScaledQuantity{}, apperror.ErrSettlementFailed(account.ID, seAccountID, err)
	}

	settled, err := s.settleWithEngine(ctx, idempotencyKey, account, clearingQty)
	if err != nil {
		// Compensate: the deduction happened at fulfill time, so the whole
		// requested amount goes back. A refund failure is logged, never
		// allowed to mask the original failure.
		if _, refundErr := s.balances.UpdateBalanceForOutgoingSettlementRefund(ctx, account.ID, requestedAmount); refundErr != nil {
			s.log.Error().
				Err(refundErr).
				Str("account_id", account.ID).
				Str("idempotency_key", idempotencyKey).
				Int64("amount", requestedAmount).
				Msg("settlement refund failed after engine error; ledger is short the refund")
		}
		s.recordAudit(ctx, account.ID, idempotencyKey, domain.SettlementDirectionRefund,
			requestedAmount, nil, domain.SettlementOutcomeFailed, err.Error())
		return domain.ScaledQuantity{}, apperror.ErrSettlementFailed(account.ID, seAccountID, err)
	}

	settledAmount, _ := settled.Int64()
	s.recordAudit(ctx, account.ID, idempotencyKey, domain.SettlementDirectionOutgoing,
		requestedAmount, &settledAmount, domain.SettlementOutcomeSucceeded, "")

	s.events.Publish(ctx, domain.SettlementEvent{
		Type:                      domain.EventOutgoingSettlementSucceeded,
		AccountID:                 account.ID,
		SettlementEngineAccountID: seAccountID,
		IdempotencyKey:            idempotencyKey,
		Requested:                 clearingQty,
		Settled:                   &settled,
		Timestamp:                 time.Now().UTC(),
	})

	s.log.Info().
		Str("account_id", account.ID).
		Str("se_account_id", seAccountID).
		Str("idempotency_key", idempotencyKey).
		Str("requested", clearingQty.String()).
		Str("settled", settled.String()).
		Msg("outgoing settlement initiated")

	return settled, nil
}

// settleWithEngine performs the engine round-trip and scale translation;
// every error from it triggers compensation in the caller.
func (s *SettlementServiceImpl) settleWithEngine(ctx context.Context, idempotencyKey string, account *domain.Account, clearingQty domain.ScaledQuantity) (domain.ScaledQuantity, error) {
	committed, err := s.engine.SendSettlement(ctx, *account.SettlementEngine, idempotencyKey, clearingQty)
	if err != nil {
		return domain.ScaledQuantity{}, err
	}
	// The engine reports in its own scale; flooring back into clearing
	// scale is the documented one-directional precision loss.
	settled := committed.Translate(account.AssetScale)
	if _, err := settled.Int64(); err != nil {
		return domain.ScaledQuantity{}, err
	}
	return settled, nil
}

// ProcessFulfill credits a fulfilled packet and, when the store reports a
// clearing amount to settle, initiates settlement inline. A settlement
// failure does not fail the fulfill: the compensating refund has already
// restored the ledger, so the result simply carries no settled quantity.
func (s *SettlementServiceImpl) ProcessFulfill(ctx context.Context, account *domain.Account, amount int64) (ports.FulfillResult, error) {
	balance, toSettle, err := s.balances.UpdateBalanceForFulfill(ctx, account.ID, amount, account.BalanceSettings)
	if err != nil {
		return ports.FulfillResult{}, err
	}
	result := ports.FulfillResult{Balance: balance, AmountToSettle: toSettle}
	if toSettle <= 0 {
		return result, nil
	}

	clearingQty, err := domain.QuantityFromInt64(toSettle, account.AssetScale)
	if err != nil {
		return result, apperror.InternalError(err)
	}
	settled, err := s.InitiateSettlement(ctx, uuid.New().String(), account, clearingQty)
	if err != nil {
		s.log.Warn().
			Err(err).
			Str("account_id", account.ID).
			Int64("amount_to_settle", toSettle).
			Msg("settlement after fulfill failed; deduction refunded")
		return result, nil
	}
	result.Settled = &settled
	return result, nil
}

func (s *SettlementServiceImpl) publishIncomingFailed(ctx context.Context, accountID, seAccountID, idempotencyKey string, incoming domain.ScaledQuantity, detail string) {
	s.events.Publish(ctx, domain.SettlementEvent{
		Type:                      domain.EventIncomingSettlementFailed,
		AccountID:                 accountID,
		SettlementEngineAccountID: seAccountID,
		IdempotencyKey:            idempotencyKey,
		Requested:                 incoming,
		Error:                     detail,
		Timestamp:                 time.Now().UTC(),
	})
}

// recordAudit appends a settlement audit row; failures are logged and
// swallowed so bookkeeping never changes a settlement outcome.
func (s *SettlementServiceImpl) recordAudit(ctx context.Context, accountID, correlationID string, direction domain.SettlementDirection, requested int64, settled *int64, outcome domain.SettlementOutcome, detail string) {
	if s.auditLog == nil {
		return
	}
	entry := &domain.SettlementLogEntry{
		ID:              uuid.New(),
		AccountID:       accountID,
		CorrelationID:   correlationID,
		Direction:       direction,
		RequestedAmount: requested,
		SettledAmount:   settled,
		Outcome:         outcome,
		Detail:          detail,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.auditLog.Record(ctx, entry); err != nil {
		s.log.Warn().Err(err).
			Str("account_id", accountID).
			Str("correlation_id", correlationID).
			Msg("failed to record settlement audit entry")
	}
}
