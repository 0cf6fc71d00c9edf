package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"ilp-connector/internal/core/domain"
	"ilp-connector/pkg/apperror"

	goredis "github.com/redis/go-redis/v9"
)

const (
	accountKeyPrefix     = "accounts:"
	idempotencyKeyPrefix = "settlement:idem:"

	fieldClearingBalance = "clearing_balance"
	fieldPrepaidAmount   = "prepaid_amount"

	minBalanceViolated = "MIN_BALANCE_VIOLATED"
)

// Every mutation runs as a single server-side Lua script so the
// check-and-mutate sequences stay linearizable per account, including
// across connector processes sharing the store. Balances are
// decimal-string int64 fields on the accounts:<id> hash; missing fields
// read as zero (lazy account creation).
var (
	// KEYS[1] = account hash
	// ARGV[1] = amount, ARGV[2] = min balance ("" = no floor)
	prepareScript = goredis.NewScript(`
local clearing = tonumber(redis.call('HGET', KEYS[1], 'clearing_balance') or '0')
local prepaid = tonumber(redis.call('HGET', KEYS[1], 'prepaid_amount') or '0')
local amount = tonumber(ARGV[1])
if ARGV[2] ~= '' then
  local min = tonumber(ARGV[2])
  if clearing + prepaid - amount < min then
    return {'MIN_BALANCE_VIOLATED'}
  end
end
if prepaid >= amount then
  redis.call('HINCRBY', KEYS[1], 'prepaid_amount', string.format('%d', -amount))
elseif prepaid > 0 then
  redis.call('HSET', KEYS[1], 'prepaid_amount', '0')
  redis.call('HINCRBY', KEYS[1], 'clearing_balance', string.format('%d', prepaid - amount))
else
  redis.call('HINCRBY', KEYS[1], 'clearing_balance', string.format('%d', -amount))
end
return {'OK',
  redis.call('HGET', KEYS[1], 'clearing_balance') or '0',
  redis.call('HGET', KEYS[1], 'prepaid_amount') or '0'}
`)

	// KEYS[1] = account hash
	// ARGV[1] = amount, ARGV[2] = settle threshold ("" = none), ARGV[3] = settle-to
	fulfillScript = goredis.NewScript(`
local clearing = tonumber(redis.call('HINCRBY', KEYS[1], 'clearing_balance', ARGV[1]))
local to_settle = 0
if ARGV[2] ~= '' then
  local threshold = tonumber(ARGV[2])
  local settle_to = tonumber(ARGV[3])
  if clearing > threshold and clearing > settle_to then
    to_settle = clearing - settle_to
    redis.call('HINCRBY', KEYS[1], 'clearing_balance', string.format('%d', -to_settle))
  end
end
return {'OK',
  redis.call('HGET', KEYS[1], 'clearing_balance') or '0',
  redis.call('HGET', KEYS[1], 'prepaid_amount') or '0',
  string.format('%d', to_settle)}
`)

	// KEYS[1] = account hash
	// ARGV[1] = amount
	creditScript = goredis.NewScript(`
redis.call('HINCRBY', KEYS[1], 'clearing_balance', ARGV[1])
return {'OK',
  redis.call('HGET', KEYS[1], 'clearing_balance') or '0',
  redis.call('HGET', KEYS[1], 'prepaid_amount') or '0'}
`)

	// The dedup marker is written by the same script that applies the
	// credit, so "already applied" detection and the credit cannot diverge
	// under concurrent redelivery.
	// KEYS[1] = account hash, KEYS[2] = idempotency marker
	// ARGV[1] = amount, ARGV[2] = marker TTL seconds
	incomingSettlementScript = goredis.NewScript(`
if not redis.call('SET', KEYS[2], '1', 'NX', 'EX', ARGV[2]) then
  return {'DUPLICATE',
    redis.call('HGET', KEYS[1], 'clearing_balance') or '0',
    redis.call('HGET', KEYS[1], 'prepaid_amount') or '0'}
end
redis.call('HINCRBY', KEYS[1], 'clearing_balance', ARGV[1])
return {'OK',
  redis.call('HGET', KEYS[1], 'clearing_balance') or '0',
  redis.call('HGET', KEYS[1], 'prepaid_amount') or '0'}
`)
)

// BalanceStore is the persistent, Redis-backed ports.BalanceStore.
type BalanceStore struct {
	client         *goredis.Client
	idempotencyTTL time.Duration
}

// NewBalanceStore creates a Redis-backed balance store. idempotencyTTL
// bounds how long incoming-settlement dedup records are kept; it should be
// at least a day.
func NewBalanceStore(client *goredis.Client, idempotencyTTL time.Duration) *BalanceStore {
	if idempotencyTTL <= 0 {
		idempotencyTTL = 24 * time.Hour
	}
	return &BalanceStore{client: client, idempotencyTTL: idempotencyTTL}
}

func accountKey(accountID string) string {
	return accountKeyPrefix + accountID
}

func (s *BalanceStore) GetBalance(ctx context.Context, accountID string) (domain.AccountBalance, error) {
	vals, err := s.client.HMGet(ctx, accountKey(accountID), fieldClearingBalance, fieldPrepaidAmount).Result()
	if err != nil {
		return domain.AccountBalance{}, apperror.ErrBalanceStore(fmt.Errorf("redis balance get: %w", err))
	}
	clearing, err := parseBalanceField(vals[0])
	if err != nil {
		return domain.AccountBalance{}, apperror.ErrBalanceStore(err)
	}
	prepaid, err := parseBalanceField(vals[1])
	if err != nil {
		return domain.AccountBalance{}, apperror.ErrBalanceStore(err)
	}
	return domain.AccountBalance{AccountID: accountID, ClearingBalance: clearing, PrepaidAmount: prepaid}, nil
}

func (s *BalanceStore) UpdateBalanceForPrepare(ctx context.Context, accountID string, amount int64, minBalance *int64) (domain.AccountBalance, error) {
	if amount < 0 {
		return domain.AccountBalance{}, apperror.ErrInvalidAmount("prepare amount must be non-negative")
	}
	minArg := ""
	if minBalance != nil {
		minArg = strconv.FormatInt(*minBalance, 10)
	}
	reply, err := prepareScript.Run(ctx, s.client, []string{accountKey(accountID)}, amount, minArg).Result()
	if err != nil {
		return domain.AccountBalance{}, apperror.ErrBalanceStore(fmt.Errorf("redis prepare script: %w", err))
	}
	fields, err := replyStrings(reply)
	if err != nil {
		return domain.AccountBalance{}, apperror.ErrBalanceStore(err)
	}
	if fields[0] == minBalanceViolated {
		return domain.AccountBalance{}, apperror.ErrMinBalanceViolated(accountID, amount, derefInt64(minBalance))
	}
	return parseBalanceReply(accountID, fields)
}

func (s *BalanceStore) UpdateBalanceForFulfill(ctx context.Context, accountID string, amount int64, settings domain.AccountBalanceSettings) (domain.AccountBalance, int64, error) {
	if amount < 0 {
		return domain.AccountBalance{}, 0, apperror.ErrInvalidAmount("fulfill amount must be non-negative")
	}
	thresholdArg := ""
	if settings.SettleThreshold != nil {
		thresholdArg = strconv.FormatInt(*settings.SettleThreshold, 10)
	}
	reply, err := fulfillScript.Run(ctx, s.client, []string{accountKey(accountID)},
		amount, thresholdArg, settings.SettleTo).Result()
	if err != nil {
		return domain.AccountBalance{}, 0, apperror.ErrBalanceStore(fmt.Errorf("redis fulfill script: %w", err))
	}
	fields, err := replyStrings(reply)
	if err != nil {
		return domain.AccountBalance{}, 0, apperror.ErrBalanceStore(err)
	}
	balance, err := parseBalanceReply(accountID, fields)
	if err != nil {
		return domain.AccountBalance{}, 0, err
	}
	if len(fields) < 4 {
		return domain.AccountBalance{}, 0, apperror.ErrBalanceStore(fmt.Errorf("fulfill script reply too short: %v", fields))
	}
	toSettle, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil {
		return domain.AccountBalance{}, 0, apperror.ErrBalanceStore(fmt.Errorf("parse settle amount %q: %w", fields[3], err))
	}
	return balance, toSettle, nil
}

func (s *BalanceStore) UpdateBalanceForReject(ctx context.Context, accountID string, amount int64) (domain.AccountBalance, error) {
	return s.credit(ctx, accountID, amount, "reject amount must be non-negative")
}

func (s *BalanceStore) UpdateBalanceForIncomingSettlement(ctx context.Context, idempotencyKey, accountID string, amount int64) (domain.AccountBalance, error) {
	if amount < 0 {
		return domain.AccountBalance{}, apperror.ErrInvalidAmount("settlement amount must be non-negative")
	}
	ttlSeconds := int64(s.idempotencyTTL / time.Second)
	reply, err := incomingSettlementScript.Run(ctx, s.client,
		[]string{accountKey(accountID), idempotencyKeyPrefix + idempotencyKey},
		amount, ttlSeconds).Result()
	if err != nil {
		return domain.AccountBalance{}, apperror.ErrBalanceStore(fmt.Errorf("redis incoming settlement script: %w", err))
	}
	fields, err := replyStrings(reply)
	if err != nil {
		return domain.AccountBalance{}, apperror.ErrBalanceStore(err)
	}
	// A duplicate delivery is a successful no-op: the snapshot returned is
	// the current balance, which already includes the first application.
	return parseBalanceReply(accountID, fields)
}

func (s *BalanceStore) UpdateBalanceForOutgoingSettlementRefund(ctx context.Context, accountID string, amount int64) (domain.AccountBalance, error) {
	return s.credit(ctx, accountID, amount, "refund amount must be non-negative")
}

func (s *BalanceStore) credit(ctx context.Context, accountID string, amount int64, invalidMsg string) (domain.AccountBalance, error) {
	if amount < 0 {
		return domain.AccountBalance{}, apperror.ErrInvalidAmount(invalidMsg)
	}
	reply, err := creditScript.Run(ctx, s.client, []string{accountKey(accountID)}, amount).Result()
	if err != nil {
		return domain.AccountBalance{}, apperror.ErrBalanceStore(fmt.Errorf("redis credit script: %w", err))
	}
	fields, err := replyStrings(reply)
	if err != nil {
		return domain.AccountBalance{}, apperror.ErrBalanceStore(err)
	}
	return parseBalanceReply(accountID, fields)
}

// replyStrings normalizes a script reply into its string elements.
func replyStrings(reply interface{}) ([]string, error) {
	raw, ok := reply.([]interface{})
	if !ok || len(raw) == 0 {
		return nil, fmt.Errorf("unexpected script reply %T", reply)
	}
	out := make([]string, len(raw))
	for i, v := range raw {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected script reply element %T", v)
		}
		out[i] = s
	}
	return out, nil
}

func parseBalanceReply(accountID string, fields []string) (domain.AccountBalance, error) {
	if len(fields) < 3 {
		return domain.AccountBalance{}, apperror.ErrBalanceStore(fmt.Errorf("balance script reply too short: %v", fields))
	}
	clearing, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return domain.AccountBalance{}, apperror.ErrBalanceStore(fmt.Errorf("parse clearing balance %q: %w", fields[1], err))
	}
	prepaid, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return domain.AccountBalance{}, apperror.ErrBalanceStore(fmt.Errorf("parse prepaid amount %q: %w", fields[2], err))
	}
	return domain.AccountBalance{AccountID: accountID, ClearingBalance: clearing, PrepaidAmount: prepaid}, nil
}

func parseBalanceField(v interface{}) (int64, error) {
	if v == nil {
		return 0, nil
	}
	s, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("unexpected balance field %T", v)
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse balance field %q: %w", s, err)
	}
	return n, nil
}

func derefInt64(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
