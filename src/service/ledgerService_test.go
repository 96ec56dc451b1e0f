package service

import (
	"context"
	"testing"

	"NFTMarketEngine/src/entity"
	"NFTMarketEngine/src/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestWithdrawFunds(t *testing.T) {
	serverCtx, node := newTestCtx(t, 250, 250)
	ctx := context.Background()

	listing := createTestListing(t, serverCtx, node, testErc20, 1000)
	_, err := PurchaseListing(ctx, serverCtx, listing.ListingId, entity.PurchaseReq{
		Caller:       testBuyer,
		OfferedPrice: decimal.NewFromInt(1025),
	})
	require.NoError(t, err)

	res, err := WithdrawFunds(ctx, serverCtx, entity.WithdrawFundsReq{
		Caller: testSeller, ChainId: testChainId, Currency: testErc20,
	})
	require.NoError(t, err)
	require.True(t, res.Amount.Equal(decimal.NewFromInt(975)))
	require.Len(t, node.Pushes, 1)
	require.Equal(t, testSeller, node.Pushes[0].To)
	require.True(t, node.Pushes[0].Amount.Equal(decimal.NewFromInt(975)))

	// The balance row is gone; a second withdrawal finds nothing.
	_, err = WithdrawFunds(ctx, serverCtx, entity.WithdrawFundsReq{
		Caller: testSeller, ChainId: testChainId, Currency: testErc20,
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "no funds")

	// The treasury share is untouched by the seller's withdrawal.
	bal, err := GetBalance(ctx, serverCtx, testChainId, testErc20, testTreasury)
	require.NoError(t, err)
	require.True(t, bal.Amount.Equal(decimal.NewFromInt(50)))

	events, count, err := ListEvents(ctx, serverCtx, model.EventFundsWithdrawn, 1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
	require.True(t, events[0].Amount.Equal(decimal.NewFromInt(975)))
}

func TestWithdrawFundsFailedPushRollsBack(t *testing.T) {
	serverCtx, node := newTestCtx(t, 250, 250)
	ctx := context.Background()

	listing := createTestListing(t, serverCtx, node, testErc20, 1000)
	_, err := PurchaseListing(ctx, serverCtx, listing.ListingId, entity.PurchaseReq{
		Caller:       testBuyer,
		OfferedPrice: decimal.NewFromInt(1025),
	})
	require.NoError(t, err)

	// A reported transfer failure leaves the obligation on the books.
	node.FailPush = true
	_, err = WithdrawFunds(ctx, serverCtx, entity.WithdrawFundsReq{
		Caller: testSeller, ChainId: testChainId, Currency: testErc20,
	})
	require.Error(t, err)

	res, err := WithdrawFunds(ctx, serverCtx, entity.WithdrawFundsReq{
		Caller: testSeller, ChainId: testChainId, Currency: testErc20,
	})
	require.NoError(t, err)
	require.True(t, res.Amount.Equal(decimal.NewFromInt(975)))
}

func TestGetBalanceZeroWhenNothingOwed(t *testing.T) {
	serverCtx, _ := newTestCtx(t, 25, 25)

	bal, err := GetBalance(context.Background(), serverCtx, testChainId, testErc20, testBuyer)
	require.NoError(t, err)
	require.True(t, bal.Amount.IsZero())
}

func TestListBalances(t *testing.T) {
	serverCtx, node := newTestCtx(t, 250, 250)
	ctx := context.Background()

	listing := createTestListing(t, serverCtx, node, testErc20, 1000)
	_, err := PurchaseListing(ctx, serverCtx, listing.ListingId, entity.PurchaseReq{
		Caller:       testBuyer,
		OfferedPrice: decimal.NewFromInt(1025),
	})
	require.NoError(t, err)

	balances, err := ListBalances(ctx, serverCtx, testSeller)
	require.NoError(t, err)
	require.Len(t, balances, 1)
	require.Equal(t, testErc20, balances[0].Currency)
	require.True(t, balances[0].Amount.Equal(decimal.NewFromInt(975)))
}
