package domain

// AccountBalance is a consistent snapshot of one account's ledger position.
// Balances are integers in the account's asset scale and may be negative
// (a negative clearing balance means this node owes the counterparty).
type AccountBalance struct {
	AccountID       string `json:"account_id"`
	ClearingBalance int64  `json:"clearing_balance"`
	PrepaidAmount   int64  `json:"prepaid_amount"`
}

// NetBalance is the clearing balance plus any prepaid funds.
func (b AccountBalance) NetBalance() int64 {
	return b.ClearingBalance + b.PrepaidAmount
}
