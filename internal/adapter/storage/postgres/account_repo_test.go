package postgres

import (
	"context"
	"testing"
	"time"

	"ilp-connector/internal/core/domain"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func newTestAccount() *domain.Account {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Account{
		ID:         "alice",
		AssetCode:  "XRP",
		AssetScale: 9,
		ILPAddress: "example.alice",
		LinkURL:    "http://alice.example.com/ilp",
		BalanceSettings: domain.AccountBalanceSettings{
			MinBalance:      int64Ptr(-1000),
			SettleThreshold: int64Ptr(500),
			SettleTo:        0,
		},
		SettlementEngine: &domain.SettlementEngineConfig{
			BaseURL:   "http://localhost:3000",
			AccountID: "se-alice",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func accountColumnNames() []string {
	return []string{"id", "asset_code", "asset_scale", "ilp_address", "link_url",
		"min_balance", "settle_threshold", "settle_to", "se_base_url", "se_account_id",
		"created_at", "updated_at"}
}

func accountRow(a *domain.Account) *pgxmock.Rows {
	var seBaseURL, seAccountID *string
	if a.SettlementEngine != nil {
		seBaseURL = &a.SettlementEngine.BaseURL
		seAccountID = &a.SettlementEngine.AccountID
	}
	return pgxmock.NewRows(accountColumnNames()).AddRow(
		a.ID, a.AssetCode, int16(a.AssetScale), a.ILPAddress, a.LinkURL,
		a.BalanceSettings.MinBalance, a.BalanceSettings.SettleThreshold, a.BalanceSettings.SettleTo,
		seBaseURL, seAccountID, a.CreatedAt, a.UpdatedAt,
	)
}

func TestAccountRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAccountRepo(mock)
	a := newTestAccount()

	mock.ExpectExec("INSERT INTO accounts").
		WithArgs(a.ID, a.AssetCode, int16(a.AssetScale), a.ILPAddress, a.LinkURL,
			a.BalanceSettings.MinBalance, a.BalanceSettings.SettleThreshold, a.BalanceSettings.SettleTo,
			&a.SettlementEngine.BaseURL, &a.SettlementEngine.AccountID,
			a.CreatedAt, a.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), a)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_CreateWithoutEngine(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAccountRepo(mock)
	a := newTestAccount()
	a.SettlementEngine = nil

	mock.ExpectExec("INSERT INTO accounts").
		WithArgs(a.ID, a.AssetCode, int16(a.AssetScale), a.ILPAddress, a.LinkURL,
			a.BalanceSettings.MinBalance, a.BalanceSettings.SettleThreshold, a.BalanceSettings.SettleTo,
			(*string)(nil), (*string)(nil), a.CreatedAt, a.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), a)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAccountRepo(mock)
	a := newTestAccount()

	mock.ExpectQuery("SELECT (.+) FROM accounts WHERE id").
		WithArgs(a.ID).
		WillReturnRows(accountRow(a))

	got, err := repo.GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, uint8(9), got.AssetScale)
	require.NotNil(t, got.SettlementEngine)
	assert.Equal(t, "se-alice", got.SettlementEngine.AccountID)
	assert.Equal(t, int64(-1000), *got.BalanceSettings.MinBalance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_GetByIDNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAccountRepo(mock)

	mock.ExpectQuery("SELECT (.+) FROM accounts WHERE id").
		WithArgs("nobody").
		WillReturnRows(pgxmock.NewRows(accountColumnNames()))

	got, err := repo.GetByID(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_GetBySettlementEngineAccountID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAccountRepo(mock)
	a := newTestAccount()

	mock.ExpectQuery("SELECT (.+) FROM accounts WHERE se_account_id").
		WithArgs("se-alice").
		WillReturnRows(accountRow(a))

	got, err := repo.GetBySettlementEngineAccountID(context.Background(), "se-alice")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "alice", got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_GetByIDNoEngineColumns(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAccountRepo(mock)
	a := newTestAccount()
	a.SettlementEngine = nil

	mock.ExpectQuery("SELECT (.+) FROM accounts WHERE id").
		WithArgs(a.ID).
		WillReturnRows(accountRow(a))

	got, err := repo.GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.SettlementEngine)
	assert.NoError(t, mock.ExpectationsWereMet())
}
