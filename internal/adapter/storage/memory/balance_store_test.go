package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ilp-connector/internal/core/domain"
	"ilp-connector/pkg/apperror"
)

func int64Ptr(v int64) *int64 { return &v }

func TestBalanceStore_PrepareDebitsClearing(t *testing.T) {
	store := NewBalanceStore()
	ctx := context.Background()

	balance, err := store.UpdateBalanceForPrepare(ctx, "alice", 100, int64Ptr(-150))
	require.NoError(t, err)
	assert.Equal(t, int64(-100), balance.ClearingBalance)
	assert.Equal(t, int64(0), balance.PrepaidAmount)
}

func TestBalanceStore_PrepareMinBalanceViolated(t *testing.T) {
	store := NewBalanceStore()
	ctx := context.Background()

	_, err := store.UpdateBalanceForPrepare(ctx, "alice", 100, int64Ptr(-50))
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "BAL_001", appErr.Code)

	// Nothing mutated.
	balance, err := store.GetBalance(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance.ClearingBalance)
}

func TestBalanceStore_PrepareNoMinBalanceIsUnbounded(t *testing.T) {
	store := NewBalanceStore()
	ctx := context.Background()

	balance, err := store.UpdateBalanceForPrepare(ctx, "alice", 1_000_000, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(-1_000_000), balance.ClearingBalance)
}

func TestBalanceStore_PrepareConsumesPrepaidFirst(t *testing.T) {
	store := NewBalanceStore()
	ctx := context.Background()

	store.entry("alice").prepaid = 100

	// Fully covered by prepaid.
	balance, err := store.UpdateBalanceForPrepare(ctx, "alice", 60, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(40), balance.PrepaidAmount)
	assert.Equal(t, int64(0), balance.ClearingBalance)

	// Remainder spills into the clearing balance.
	balance, err = store.UpdateBalanceForPrepare(ctx, "alice", 70, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance.PrepaidAmount)
	assert.Equal(t, int64(-30), balance.ClearingBalance)
}

func TestBalanceStore_PrepareNegativePrepaidDebitsClearing(t *testing.T) {
	store := NewBalanceStore()
	ctx := context.Background()

	store.entry("alice").prepaid = -10

	balance, err := store.UpdateBalanceForPrepare(ctx, "alice", 50, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(-10), balance.PrepaidAmount)
	assert.Equal(t, int64(-50), balance.ClearingBalance)
}

func TestBalanceStore_RejectRefundsEscrow(t *testing.T) {
	store := NewBalanceStore()
	ctx := context.Background()

	_, err := store.UpdateBalanceForPrepare(ctx, "alice", 100, nil)
	require.NoError(t, err)

	balance, err := store.UpdateBalanceForReject(ctx, "alice", 100)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance.ClearingBalance)
	assert.Equal(t, int64(0), balance.PrepaidAmount)
}

func TestBalanceStore_FulfillBelowThresholdNoSettlement(t *testing.T) {
	store := NewBalanceStore()
	ctx := context.Background()

	settings := domain.AccountBalanceSettings{
		SettleThreshold: int64Ptr(1000),
		SettleTo:        0,
	}
	balance, toSettle, err := store.UpdateBalanceForFulfill(ctx, "bob", 900, settings)
	require.NoError(t, err)
	assert.Equal(t, int64(900), balance.ClearingBalance)
	assert.Equal(t, int64(0), toSettle)
}

func TestBalanceStore_FulfillCrossesThreshold(t *testing.T) {
	store := NewBalanceStore()
	ctx := context.Background()

	settings := domain.AccountBalanceSettings{
		SettleThreshold: int64Ptr(1000),
		SettleTo:        0,
	}
	balance, toSettle, err := store.UpdateBalanceForFulfill(ctx, "bob", 1500, settings)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), toSettle)
	assert.Equal(t, int64(0), balance.ClearingBalance)
}

func TestBalanceStore_FulfillSettlesDownToSettleTo(t *testing.T) {
	store := NewBalanceStore()
	ctx := context.Background()

	settings := domain.AccountBalanceSettings{
		SettleThreshold: int64Ptr(1000),
		SettleTo:        200,
	}
	balance, toSettle, err := store.UpdateBalanceForFulfill(ctx, "bob", 1500, settings)
	require.NoError(t, err)
	assert.Equal(t, int64(1300), toSettle)
	assert.Equal(t, int64(200), balance.ClearingBalance)
}

func TestBalanceStore_FulfillNoThresholdNeverSettles(t *testing.T) {
	store := NewBalanceStore()
	ctx := context.Background()

	balance, toSettle, err := store.UpdateBalanceForFulfill(ctx, "bob", 5000, domain.AccountBalanceSettings{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), toSettle)
	assert.Equal(t, int64(5000), balance.ClearingBalance)
}

func TestBalanceStore_SettlementRefundRestoresDeduction(t *testing.T) {
	store := NewBalanceStore()
	ctx := context.Background()

	settings := domain.AccountBalanceSettings{SettleThreshold: int64Ptr(0), SettleTo: 0}
	_, toSettle, err := store.UpdateBalanceForFulfill(ctx, "bob", 300, settings)
	require.NoError(t, err)
	require.Equal(t, int64(300), toSettle)

	balance, err := store.UpdateBalanceForOutgoingSettlementRefund(ctx, "bob", toSettle)
	require.NoError(t, err)
	assert.Equal(t, int64(300), balance.ClearingBalance)
}

func TestBalanceStore_NegativeAmountsRejected(t *testing.T) {
	store := NewBalanceStore()
	ctx := context.Background()

	_, err := store.UpdateBalanceForPrepare(ctx, "alice", -1, nil)
	assert.Error(t, err)
	_, _, err = store.UpdateBalanceForFulfill(ctx, "alice", -1, domain.AccountBalanceSettings{})
	assert.Error(t, err)
	_, err = store.UpdateBalanceForReject(ctx, "alice", -1)
	assert.Error(t, err)
	_, err = store.UpdateBalanceForIncomingSettlement(ctx, "k", "alice", -1)
	assert.Error(t, err)
}

func TestBalanceStore_LazyAccountCreation(t *testing.T) {
	store := NewBalanceStore()

	balance, err := store.GetBalance(context.Background(), "never-seen")
	require.NoError(t, err)
	assert.Equal(t, "never-seen", balance.AccountID)
	assert.Equal(t, int64(0), balance.ClearingBalance)
	assert.Equal(t, int64(0), balance.PrepaidAmount)
}

func TestBalanceStore_ConcurrentMutationsAreAtomic(t *testing.T) {
	store := NewBalanceStore()
	ctx := context.Background()

	const workers = 16
	const perWorker = 100

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				_, _, err := store.UpdateBalanceForFulfill(ctx, "shared", 2, domain.AccountBalanceSettings{})
				assert.NoError(t, err)
				_, err = store.UpdateBalanceForPrepare(ctx, "shared", 1, nil)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	balance, err := store.GetBalance(ctx, "shared")
	require.NoError(t, err)
	assert.Equal(t, int64(workers*perWorker), balance.ClearingBalance)
}
