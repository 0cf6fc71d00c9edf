package domain

import "time"

// AccountBalanceSettings controls when an account's clearing balance is
// converted into a real settlement payment.
type AccountBalanceSettings struct {
	// MinBalance is the floor below which outgoing prepares may not push the
	// net balance. Nil means no floor is enforced.
	MinBalance *int64 `json:"min_balance,omitempty"`
	// SettleThreshold triggers settlement once the clearing balance exceeds
	// it. Nil means this node never initiates settlement for the account.
	SettleThreshold *int64 `json:"settle_threshold,omitempty"`
	// SettleTo is the clearing balance left behind after settling.
	SettleTo int64 `json:"settle_to"`
}

// SettlementEngineConfig points at the external settlement engine that
// executes real value transfer for an account.
type SettlementEngineConfig struct {
	// BaseURL of the engine's HTTP API.
	BaseURL string `json:"base_url"`
	// AccountID is the engine-side identifier for this account.
	AccountID string `json:"account_id"`
}

// Account is a counterparty this connector exchanges packets with.
type Account struct {
	ID               string                  `json:"id"`
	AssetCode        string                  `json:"asset_code"`
	AssetScale       uint8                   `json:"asset_scale"`
	ILPAddress       string                  `json:"ilp_address"`
	LinkURL          string                  `json:"link_url"`
	BalanceSettings  AccountBalanceSettings  `json:"balance_settings"`
	SettlementEngine *SettlementEngineConfig `json:"settlement_engine,omitempty"`
	CreatedAt        time.Time               `json:"created_at"`
	UpdatedAt        time.Time               `json:"updated_at"`
}

// HasSettlementEngine reports whether the account can settle externally.
func (a *Account) HasSettlementEngine() bool {
	return a.SettlementEngine != nil && a.SettlementEngine.BaseURL != ""
}
