package dto

// SettlementRequest is the body the settlement engine POSTs when it has
// observed an incoming settlement. The amount is a decimal string in the
// engine's own scale.
type SettlementRequest struct {
	Amount string `json:"amount" binding:"required"`
	Scale  uint8  `json:"scale"`
}

// QuantityResponse carries a scaled amount back to the caller.
type QuantityResponse struct {
	Amount string `json:"amount"`
	Scale  uint8  `json:"scale"`
}

// CreateAccountRequest is the admin body for registering a counterparty.
type CreateAccountRequest struct {
	ID              string  `json:"id" binding:"required,max=128"`
	AssetCode       string  `json:"asset_code" binding:"required,min=3,max=12"`
	AssetScale      uint8   `json:"asset_scale"`
	ILPAddress      string  `json:"ilp_address" binding:"required"`
	LinkURL         string  `json:"link_url,omitempty"`
	MinBalance      *int64  `json:"min_balance,omitempty"`
	SettleThreshold *int64  `json:"settle_threshold,omitempty"`
	SettleTo        int64   `json:"settle_to"`
	SEBaseURL       *string `json:"settlement_engine_url,omitempty"`
	SEAccountID     *string `json:"settlement_engine_account_id,omitempty"`
}

// BalanceResponse is the admin view of an account's ledger position.
type BalanceResponse struct {
	AccountID       string `json:"account_id"`
	AssetCode       string `json:"asset_code"`
	AssetScale      uint8  `json:"asset_scale"`
	ClearingBalance int64  `json:"clearing_balance"`
	PrepaidAmount   int64  `json:"prepaid_amount"`
	NetBalance      int64  `json:"net_balance"`
}
