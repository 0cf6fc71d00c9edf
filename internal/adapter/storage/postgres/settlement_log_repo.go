package postgres

import (
	"context"
	"fmt"

	"ilp-connector/internal/core/domain"
)

// SettlementLogRepo implements ports.SettlementLogRepository as an
// append-only audit table. Rows sharing a correlation id describe one
// settlement attempt: the optimistic deduction and, on failure, its
// compensating refund.
type SettlementLogRepo struct {
	pool Pool
}

// NewSettlementLogRepo creates a new SettlementLogRepo.
func NewSettlementLogRepo(pool Pool) *SettlementLogRepo {
	return &SettlementLogRepo{pool: pool}
}

// Record appends one settlement audit entry.
func (r *SettlementLogRepo) Record(ctx context.Context, e *domain.SettlementLogEntry) error {
	query := `INSERT INTO settlement_log (id, account_id, correlation_id, direction,
		requested_amount, settled_amount, outcome, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.pool.Exec(ctx, query,
		e.ID, e.AccountID, e.CorrelationID, string(e.Direction),
		e.RequestedAmount, e.SettledAmount, string(e.Outcome), e.Detail, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert settlement log entry: %w", err)
	}
	return nil
}
