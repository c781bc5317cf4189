package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/tienda-mx/checkout-api/internal/money"
)

func TestRound2HalfAwayFromZero(t *testing.T) {
	cases := map[string]string{
		"10.005":  "10.01",
		"10.004":  "10",
		"-10.005": "-10.01",
		"0.1":     "0.1",
		"59.98":   "59.98",
	}
	for in, want := range cases {
		got := money.Round2(decimal.RequireFromString(in))
		require.True(t, got.Equal(decimal.RequireFromString(want)), "round2(%s) = %s, want %s", in, got, want)
	}
}

func TestSum2RoundsAfterAddition(t *testing.T) {
	// 0.1 + 0.2 style inputs must not drift once each part is pre-rounded.
	a := money.Round2(decimal.RequireFromString("0.1"))
	b := money.Round2(decimal.RequireFromString("0.2"))
	require.True(t, money.Sum2(a, b).Equal(decimal.RequireFromString("0.3")))
}

func TestFloorZero(t *testing.T) {
	require.True(t, money.FloorZero(decimal.RequireFromString("-5")).IsZero())
	require.True(t, money.FloorZero(decimal.RequireFromString("5")).Equal(decimal.RequireFromString("5")))
}
