package service

import (
	"context"
	"testing"

	"NFTMarketEngine/src/chain"
	"NFTMarketEngine/src/chain/mock"
	"NFTMarketEngine/src/entity"
	"NFTMarketEngine/src/model"
	"NFTMarketEngine/src/service/svc"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func createTestListing(t *testing.T, serverCtx *svc.ServerCtx, node *mock.Client, paymentToken string, price int64) *entity.ListingInfo {
	t.Helper()
	node.RegisterAsset(testAsset, chain.Kind721)
	info, err := CreateListing(context.Background(), serverCtx, entity.CreateListingReq{
		Caller:       testSeller,
		ChainId:      testChainId,
		PaymentToken: paymentToken,
		AssetAddress: testAsset,
		AssetId:      "42",
		Price:        decimal.NewFromInt(price),
	})
	require.NoError(t, err)
	return info
}

func TestCreateAndPurchaseListingErc20(t *testing.T) {
	serverCtx, node := newTestCtx(t, 250, 250)
	ctx := context.Background()

	listing := createTestListing(t, serverCtx, node, testErc20, 1000)
	require.Equal(t, int64(1), listing.ListingId)
	require.False(t, listing.IsSold)

	// Asset moved into custody at creation.
	require.Len(t, node.Assets, 1)
	require.Equal(t, testSeller, node.Assets[0].From)
	require.Equal(t, mock.CustodyAddress, node.Assets[0].To)

	// 250bp buy tax on a 1000 listed price: the buyer owes exactly 1025 gross.
	res, err := PurchaseListing(ctx, serverCtx, listing.ListingId, entity.PurchaseReq{
		Caller:       testBuyer,
		OfferedPrice: decimal.NewFromInt(1025),
	})
	require.NoError(t, err)
	require.True(t, res.GrossPaid.Equal(decimal.NewFromInt(1025)))
	require.True(t, res.NetPrice.Equal(decimal.NewFromInt(1000)))
	require.True(t, res.SellerProceeds.Equal(decimal.NewFromInt(975)))
	require.True(t, res.TreasuryFee.Equal(decimal.NewFromInt(50)))

	// ERC20 funds pulled in full, asset pushed to the buyer.
	require.Len(t, node.Pulls, 1)
	require.True(t, node.Pulls[0].Amount.Equal(decimal.NewFromInt(1025)))
	require.Len(t, node.Assets, 2)
	require.Equal(t, testBuyer, node.Assets[1].To)
	// Nothing is ever paid out at settlement time.
	require.Empty(t, node.Pushes)

	// Ledger conservation: seller plus treasury equals the gross paid.
	sellerBal, err := serverCtx.Dao.GetLedgerBalance(ctx, testChainId, testErc20, testSeller)
	require.NoError(t, err)
	require.True(t, sellerBal.Amount.Equal(decimal.NewFromInt(975)))
	treasuryBal, err := serverCtx.Dao.GetLedgerBalance(ctx, testChainId, testErc20, testTreasury)
	require.NoError(t, err)
	require.True(t, treasuryBal.Amount.Equal(decimal.NewFromInt(50)))

	// Sold is terminal.
	_, err = PurchaseListing(ctx, serverCtx, listing.ListingId, entity.PurchaseReq{
		Caller:       testBidder,
		OfferedPrice: decimal.NewFromInt(1025),
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "already sold")

	events, count, err := ListEvents(ctx, serverCtx, model.EventListingSold, 1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
	require.Equal(t, testBuyer, events[0].Actor)
}

func TestPurchaseListingNative(t *testing.T) {
	serverCtx, node := newTestCtx(t, 0, 250)
	ctx := context.Background()

	listing := createTestListing(t, serverCtx, node, chain.NativeCurrency, 1000)

	// Native payment: the attached value is the gross, no pull happens.
	res, err := PurchaseListing(ctx, serverCtx, listing.ListingId, entity.PurchaseReq{
		Caller:      testBuyer,
		NativeValue: decimal.NewFromInt(1025),
	})
	require.NoError(t, err)
	require.True(t, res.SellerProceeds.Equal(decimal.NewFromInt(1000)))
	require.True(t, res.TreasuryFee.Equal(decimal.NewFromInt(25)))
	require.Empty(t, node.Pulls)
}

func TestPurchaseListingWrongAmount(t *testing.T) {
	serverCtx, node := newTestCtx(t, 250, 250)
	ctx := context.Background()

	listing := createTestListing(t, serverCtx, node, testErc20, 1000)

	// 1024 backs out to net 999, not the listed 1000; over- and underpayment
	// are both rejected.
	for _, gross := range []int64{1024, 1026, 1} {
		_, err := PurchaseListing(ctx, serverCtx, listing.ListingId, entity.PurchaseReq{
			Caller:       testBuyer,
			OfferedPrice: decimal.NewFromInt(gross),
		})
		require.Error(t, err)
		require.Contains(t, err.Error(), "incorrect payment amount")
	}

	_, err := PurchaseListing(ctx, serverCtx, listing.ListingId, entity.PurchaseReq{Caller: testBuyer})
	require.Error(t, err)
	require.Contains(t, err.Error(), "payment amount must be positive")
}

func TestCreateListingValidation(t *testing.T) {
	serverCtx, node := newTestCtx(t, 25, 25)
	ctx := context.Background()

	// Zero price is rejected before anything moves.
	node.RegisterAsset(testAsset, chain.Kind721)
	_, err := CreateListing(ctx, serverCtx, entity.CreateListingReq{
		Caller: testSeller, ChainId: testChainId, PaymentToken: testErc20,
		AssetAddress: testAsset, AssetId: "1", Price: decimal.Zero,
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "price must be positive")

	// Contract matching neither supported kind.
	_, err = CreateListing(ctx, serverCtx, entity.CreateListingReq{
		Caller: testSeller, ChainId: testChainId, PaymentToken: testErc20,
		AssetAddress: testErc20, AssetId: "1", Price: decimal.NewFromInt(10),
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported asset kind")

	// Multi-unit asset needs a positive quantity.
	node.RegisterAsset(testAsset, chain.Kind1155)
	_, err = CreateListing(ctx, serverCtx, entity.CreateListingReq{
		Caller: testSeller, ChainId: testChainId, PaymentToken: testErc20,
		AssetAddress: testAsset, AssetId: "1", Price: decimal.NewFromInt(10),
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "quantity must be positive")

	_, err = CreateListing(ctx, serverCtx, entity.CreateListingReq{
		Caller: "not-an-address", ChainId: testChainId, PaymentToken: testErc20,
		AssetAddress: testAsset, AssetId: "1", Price: decimal.NewFromInt(10),
	})
	require.Error(t, err)

	require.Empty(t, node.Assets)
}

func TestCancelListing(t *testing.T) {
	serverCtx, node := newTestCtx(t, 25, 25)
	ctx := context.Background()

	listing := createTestListing(t, serverCtx, node, testErc20, 500)

	err := CancelListing(ctx, serverCtx, listing.ListingId, testBuyer)
	require.Error(t, err)
	require.Contains(t, err.Error(), "only seller can cancel")

	require.NoError(t, CancelListing(ctx, serverCtx, listing.ListingId, testSeller))

	// Asset went back to the seller and the record is gone.
	require.Len(t, node.Assets, 2)
	require.Equal(t, testSeller, node.Assets[1].To)
	_, err = GetListing(ctx, serverCtx, listing.ListingId)
	require.Error(t, err)

	// A later listing never reuses the reclaimed id.
	next := createTestListing(t, serverCtx, node, testErc20, 500)
	require.Equal(t, listing.ListingId+1, next.ListingId)
}

func TestBannedUserCannotTransact(t *testing.T) {
	serverCtx, node := newTestCtx(t, 25, 25)
	ctx := context.Background()

	listing := createTestListing(t, serverCtx, node, testErc20, 1000)

	require.NoError(t, BanUser(ctx, serverCtx, entity.BanReq{Caller: testOwner, Address: testBuyer}))
	_, err := PurchaseListing(ctx, serverCtx, listing.ListingId, entity.PurchaseReq{
		Caller:       testBuyer,
		OfferedPrice: decimal.NewFromInt(1005),
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "banned")

	node.RegisterAsset(testAsset, chain.Kind721)
	require.NoError(t, BanUser(ctx, serverCtx, entity.BanReq{Caller: testOwner, Address: testSeller}))
	_, err = CreateListing(ctx, serverCtx, entity.CreateListingReq{
		Caller: testSeller, ChainId: testChainId, PaymentToken: testErc20,
		AssetAddress: testAsset, AssetId: "7", Price: decimal.NewFromInt(10),
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "banned")

	// Cancels stay open to banned users so deposits remain retrievable.
	require.NoError(t, CancelListing(ctx, serverCtx, listing.ListingId, testSeller))
}
