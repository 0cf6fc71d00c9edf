package domain

import "time"

// SettlementEventType identifies the settlement lifecycle events this
// subsystem emits for downstream consumers (transaction history, alerting).
type SettlementEventType string

const (
	EventIncomingSettlementSucceeded SettlementEventType = "INCOMING_SETTLEMENT_SUCCEEDED"
	EventIncomingSettlementFailed    SettlementEventType = "INCOMING_SETTLEMENT_FAILED"
	EventOutgoingSettlementSucceeded SettlementEventType = "OUTGOING_SETTLEMENT_SUCCEEDED"
)

// SettlementEvent carries the identity and quantities of one settlement
// outcome. Requested is the quantity asked for (engine scale for incoming,
// clearing scale for outgoing); Settled is the quantity actually applied to
// the ledger, in clearing scale.
type SettlementEvent struct {
	Type                      SettlementEventType `json:"type"`
	AccountID                 string              `json:"account_id"`
	SettlementEngineAccountID string              `json:"settlement_engine_account_id,omitempty"`
	IdempotencyKey            string              `json:"idempotency_key,omitempty"`
	Requested                 ScaledQuantity      `json:"requested"`
	Settled                   *ScaledQuantity     `json:"settled,omitempty"`
	Error                     string              `json:"error,omitempty"`
	Timestamp                 time.Time           `json:"timestamp"`
}
