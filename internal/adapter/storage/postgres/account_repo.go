package postgres

import (
	"context"
	"errors"
	"fmt"

	"ilp-connector/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// AccountRepo implements ports.AccountRepository.
type AccountRepo struct {
	pool Pool
}

// NewAccountRepo creates a new AccountRepo.
func NewAccountRepo(pool Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

const accountColumns = `id, asset_code, asset_scale, ilp_address, link_url,
	min_balance, settle_threshold, settle_to, se_base_url, se_account_id,
	created_at, updated_at`

// Create inserts a new account.
func (r *AccountRepo) Create(ctx context.Context, a *domain.Account) error {
	query := `INSERT INTO accounts (id, asset_code, asset_scale, ilp_address, link_url,
		min_balance, settle_threshold, settle_to, se_base_url, se_account_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	var seBaseURL, seAccountID *string
	if a.SettlementEngine != nil {
		seBaseURL = &a.SettlementEngine.BaseURL
		seAccountID = &a.SettlementEngine.AccountID
	}

	_, err := r.pool.Exec(ctx, query,
		a.ID, a.AssetCode, int16(a.AssetScale), a.ILPAddress, a.LinkURL,
		a.BalanceSettings.MinBalance, a.BalanceSettings.SettleThreshold, a.BalanceSettings.SettleTo,
		seBaseURL, seAccountID, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByID fetches an account by its identifier.
func (r *AccountRepo) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	a, err := scanAccount(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get account by id: %w", err)
	}
	return a, nil
}

// GetBySettlementEngineAccountID fetches the account configured with the
// given engine-side account identifier.
func (r *AccountRepo) GetBySettlementEngineAccountID(ctx context.Context, seAccountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE se_account_id = $1`
	a, err := scanAccount(r.pool.QueryRow(ctx, query, seAccountID))
	if err != nil {
		return nil, fmt.Errorf("get account by settlement engine account id: %w", err)
	}
	return a, nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	a := &domain.Account{}
	var assetScale int16
	var seBaseURL, seAccountID *string
	err := row.Scan(
		&a.ID, &a.AssetCode, &assetScale, &a.ILPAddress, &a.LinkURL,
		&a.BalanceSettings.MinBalance, &a.BalanceSettings.SettleThreshold, &a.BalanceSettings.SettleTo,
		&seBaseURL, &seAccountID, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	a.AssetScale = uint8(assetScale)
	if seBaseURL != nil && seAccountID != nil {
		a.SettlementEngine = &domain.SettlementEngineConfig{BaseURL: *seBaseURL, AccountID: *seAccountID}
	}
	return a, nil
}
