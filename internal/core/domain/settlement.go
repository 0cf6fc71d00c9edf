package domain

import (
	"time"

	"github.com/google/uuid"
)

// SettlementDirection distinguishes audit-log rows.
type SettlementDirection string

const (
	SettlementDirectionIncoming SettlementDirection = "INCOMING"
	SettlementDirectionOutgoing SettlementDirection = "OUTGOING"
	SettlementDirectionRefund   SettlementDirection = "REFUND"
)

// SettlementOutcome is the terminal state of a settlement attempt.
type SettlementOutcome string

const (
	SettlementOutcomeSucceeded SettlementOutcome = "SUCCEEDED"
	SettlementOutcomeFailed    SettlementOutcome = "FAILED"
)

// SettlementLogEntry is an append-only audit record of one settlement
// debit, credit or compensating refund. CorrelationID ties the optimistic
// deduction and any later refund to the same settlement attempt.
type SettlementLogEntry struct {
	ID              uuid.UUID           `json:"id"`
	AccountID       string              `json:"account_id"`
	CorrelationID   string              `json:"correlation_id"`
	Direction       SettlementDirection `json:"direction"`
	RequestedAmount int64               `json:"requested_amount"`
	SettledAmount   *int64              `json:"settled_amount,omitempty"`
	Outcome         SettlementOutcome   `json:"outcome"`
	Detail          string              `json:"detail,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
}
