package domain

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// ScaledQuantity is an immutable amount of money expressed in units of
// 10^-scale of some asset's base unit. The amount is always non-negative.
// Quantities are only meaningful within a single asset and must never be
// compared across assets.
type ScaledQuantity struct {
	amount *big.Int
	scale  uint8
}

// NewScaledQuantity builds a quantity from an arbitrary-precision amount.
// A nil or negative amount is rejected.
func NewScaledQuantity(amount *big.Int, scale uint8) (ScaledQuantity, error) {
	if amount == nil || amount.Sign() < 0 {
		return ScaledQuantity{}, fmt.Errorf("scaled quantity amount must be non-negative, got %v", amount)
	}
	return ScaledQuantity{amount: new(big.Int).Set(amount), scale: scale}, nil
}

// QuantityFromInt64 builds a quantity from a non-negative int64 amount.
func QuantityFromInt64(amount int64, scale uint8) (ScaledQuantity, error) {
	if amount < 0 {
		return ScaledQuantity{}, fmt.Errorf("scaled quantity amount must be non-negative, got %d", amount)
	}
	return ScaledQuantity{amount: big.NewInt(amount), scale: scale}, nil
}

// ZeroQuantity returns the zero amount at the given scale.
func ZeroQuantity(scale uint8) ScaledQuantity {
	return ScaledQuantity{amount: big.NewInt(0), scale: scale}
}

// Amount returns a copy of the amount.
func (q ScaledQuantity) Amount() *big.Int {
	if q.amount == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(q.amount)
}

// Scale returns the power-of-ten granularity of the amount.
func (q ScaledQuantity) Scale() uint8 {
	return q.scale
}

// IsZero reports whether the amount is zero.
func (q ScaledQuantity) IsZero() bool {
	return q.amount == nil || q.amount.Sign() == 0
}

// Int64 returns the amount as an int64, or an error if it exceeds the
// 64-bit range the balance stores operate in.
func (q ScaledQuantity) Int64() (int64, error) {
	if q.amount == nil {
		return 0, nil
	}
	if !q.amount.IsInt64() {
		return 0, fmt.Errorf("amount %s at scale %d exceeds int64 range", q.amount, q.scale)
	}
	return q.amount.Int64(), nil
}

// Translate converts the quantity to destScale. Scaling up multiplies by a
// power of ten and is exact; scaling down divides and floors, dropping the
// remainder. The dropped remainder is not carried anywhere (known,
// one-directional precision loss).
func (q ScaledQuantity) Translate(destScale uint8) ScaledQuantity {
	diff := int32(destScale) - int32(q.scale)
	if diff == 0 {
		return ScaledQuantity{amount: q.Amount(), scale: destScale}
	}
	d := decimal.NewFromBigInt(q.Amount(), diff)
	return ScaledQuantity{amount: d.Floor().BigInt(), scale: destScale}
}

func (q ScaledQuantity) String() string {
	return fmt.Sprintf("%s (scale %d)", q.Amount().String(), q.scale)
}

type quantityJSON struct {
	Amount string `json:"amount"`
	Scale  uint8  `json:"scale"`
}

// MarshalJSON encodes the amount as a decimal string so that values beyond
// float precision survive transport.
func (q ScaledQuantity) MarshalJSON() ([]byte, error) {
	return json.Marshal(quantityJSON{Amount: q.Amount().String(), Scale: q.scale})
}

// UnmarshalJSON decodes a {"amount":"...","scale":n} document.
func (q *ScaledQuantity) UnmarshalJSON(data []byte) error {
	var raw quantityJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	amount, ok := new(big.Int).SetString(raw.Amount, 10)
	if !ok {
		return fmt.Errorf("invalid quantity amount %q", raw.Amount)
	}
	parsed, err := NewScaledQuantity(amount, raw.Scale)
	if err != nil {
		return err
	}
	*q = parsed
	return nil
}

// ParseQuantity builds a quantity from a decimal-string amount, as carried
// on the settlement engine API.
func ParseQuantity(amount string, scale uint8) (ScaledQuantity, error) {
	v, ok := new(big.Int).SetString(amount, 10)
	if !ok {
		return ScaledQuantity{}, fmt.Errorf("invalid quantity amount %q", amount)
	}
	return NewScaledQuantity(v, scale)
}
