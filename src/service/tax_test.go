package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestNetFromGross(t *testing.T) {
	// 250bp buy tax: a gross of 1025 backs out to exactly the 1000 net.
	net := NetFromGross(decimal.NewFromInt(1025), 250)
	require.True(t, net.Equal(decimal.NewFromInt(1000)), "got %s", net)

	// Division truncates, never rounds up.
	net = NetFromGross(decimal.NewFromInt(1024), 250)
	require.True(t, net.Equal(decimal.NewFromInt(999)), "got %s", net)

	// Zero rate passes the gross through unchanged.
	net = NetFromGross(decimal.NewFromInt(777), 0)
	require.True(t, net.Equal(decimal.NewFromInt(777)), "got %s", net)
}

func TestFeeFromNet(t *testing.T) {
	fee := FeeFromNet(decimal.NewFromInt(1000), 250)
	require.True(t, fee.Equal(decimal.NewFromInt(25)), "got %s", fee)

	// 112 × 250 / 10000 = 2.8, truncated.
	fee = FeeFromNet(decimal.NewFromInt(112), 250)
	require.True(t, fee.Equal(decimal.NewFromInt(2)), "got %s", fee)

	fee = FeeFromNet(decimal.NewFromInt(1000), 0)
	require.True(t, fee.IsZero())
}

func TestValidAmount(t *testing.T) {
	require.True(t, validAmount(decimal.NewFromInt(1)))
	require.False(t, validAmount(decimal.Zero))
	require.False(t, validAmount(decimal.NewFromInt(-5)))
	require.False(t, validAmount(decimal.RequireFromString("1.5")))
}
