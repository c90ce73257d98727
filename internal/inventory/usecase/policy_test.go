package usecase

import (
	"testing"

	"github.com/fekuna/omnipos-pos-service/internal/apperror"
	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDelta(t *testing.T) {
	cases := []struct {
		typ   model.MovementType
		q     int
		stock int
		want  int
	}{
		{model.MovementDamage, 3, 10, -3},
		{model.MovementDamage, -3, 10, -3},
		{model.MovementDamage, 10, 10, -10},
		{model.MovementAdjustment, -4, 10, -4},
		{model.MovementAdjustment, 4, 10, 4},
		{model.MovementAdjustment, 0, 10, 0},
		{model.MovementPurchase, 5, 7, 5},
		{model.MovementPurchase, -5, 7, 5},
		{model.MovementReturn, 2, 0, 2},
		{model.MovementReturn, -2, 5, -2},
		{model.MovementSale, -1, 1, -1},
	}
	for _, tc := range cases {
		got, err := resolveDelta(tc.typ, tc.q, tc.stock)
		require.NoError(t, err, "%s %d", tc.typ, tc.q)
		assert.Equal(t, tc.want, got, "%s %d", tc.typ, tc.q)
	}
}

func TestResolveDeltaRejectsNegativeStock(t *testing.T) {
	cases := []struct {
		typ   model.MovementType
		q     int
		stock int
	}{
		{model.MovementDamage, 11, 10},
		{model.MovementDamage, -11, 10},
		{model.MovementAdjustment, -11, 10},
		{model.MovementReturn, -6, 5},
	}
	for _, tc := range cases {
		_, err := resolveDelta(tc.typ, tc.q, tc.stock)
		require.Error(t, err, "%s %d", tc.typ, tc.q)
		assert.Equal(t, apperror.KindInvalidArgument, apperror.KindOf(err))
		assert.Equal(t, "Cannot remove more than available stock", err.Error())
	}
}
