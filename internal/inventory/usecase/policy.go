package usecase

import (
	"github.com/fekuna/omnipos-pos-service/internal/apperror"
	"github.com/fekuna/omnipos-pos-service/internal/model"
)

type direction int

const (
	passThrough direction = iota
	decrease
	increase
)

type sign int

const (
	negative sign = -1
	zero     sign = 0
	positive sign = 1
)

type policyKey struct {
	typ  model.MovementType
	sign sign
}

// adjustmentPolicy maps (type, sign of quantity) to how the quantity moves stock.
// Pairs not listed pass the quantity through unchanged.
var adjustmentPolicy = map[policyKey]direction{
	{model.MovementDamage, negative}:     decrease,
	{model.MovementDamage, zero}:         decrease,
	{model.MovementDamage, positive}:     decrease,
	{model.MovementAdjustment, negative}: decrease,
	{model.MovementAdjustment, positive}: increase,
	{model.MovementPurchase, negative}:   increase,
	{model.MovementPurchase, zero}:       increase,
	{model.MovementPurchase, positive}:   increase,
}

func signOf(q int) sign {
	switch {
	case q < 0:
		return negative
	case q > 0:
		return positive
	}
	return zero
}

func abs(q int) int {
	if q < 0 {
		return -q
	}
	return q
}

// resolveDelta returns the signed stock change for an adjustment of quantity q
// against current stock.
func resolveDelta(typ model.MovementType, q, stock int) (int, error) {
	var delta int
	switch adjustmentPolicy[policyKey{typ, signOf(q)}] {
	case decrease:
		if abs(q) > stock {
			return 0, apperror.InvalidArgument("Cannot remove more than available stock")
		}
		delta = -abs(q)
	case increase:
		delta = abs(q)
	default:
		delta = q
	}

	if stock+delta < 0 {
		return 0, apperror.InvalidArgument("Cannot remove more than available stock")
	}
	return delta, nil
}
