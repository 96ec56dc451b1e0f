package service

import (
	"context"
	"testing"
	"time"

	"NFTMarketEngine/src/chain"
	"NFTMarketEngine/src/chain/mock"
	"NFTMarketEngine/src/entity"
	"NFTMarketEngine/src/model"
	"NFTMarketEngine/src/service/svc"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func createTestAuction(t *testing.T, serverCtx *svc.ServerCtx, node *mock.Client, priceToken string) *entity.AuctionInfo {
	t.Helper()
	node.RegisterAsset(testAsset, chain.Kind721)
	now := time.Now().Unix()
	info, err := CreateAuction(context.Background(), serverCtx, entity.CreateAuctionReq{
		Caller:       testSeller,
		ChainId:      testChainId,
		PriceToken:   priceToken,
		AssetAddress: testAsset,
		AssetId:      "42",
		FloorPrice:   decimal.NewFromInt(100),
		StartTime:    now + 60,
		EndTime:      now + 3600,
		BidIncrement: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	return info
}

func elapseAuction(t *testing.T, serverCtx *svc.ServerCtx, auctionId int64) {
	t.Helper()
	err := serverCtx.DB.Model(&model.Auction{}).
		Where("auction_id = ?", auctionId).
		Update("end_time", time.Now().Unix()-1).Error
	require.NoError(t, err)
}

func TestCreateAuctionValidation(t *testing.T) {
	serverCtx, node := newTestCtx(t, 25, 25)
	ctx := context.Background()
	node.RegisterAsset(testAsset, chain.Kind721)
	now := time.Now().Unix()

	base := entity.CreateAuctionReq{
		Caller: testSeller, ChainId: testChainId, PriceToken: testErc20,
		AssetAddress: testAsset, AssetId: "1",
		FloorPrice: decimal.NewFromInt(100), BidIncrement: decimal.NewFromInt(10),
		StartTime: now + 60, EndTime: now + 3600,
	}

	req := base
	req.FloorPrice = decimal.Zero
	_, err := CreateAuction(ctx, serverCtx, req)
	require.Error(t, err)
	require.Contains(t, err.Error(), "floor price must be positive")

	req = base
	req.BidIncrement = decimal.Zero
	_, err = CreateAuction(ctx, serverCtx, req)
	require.Error(t, err)
	require.Contains(t, err.Error(), "bid increment must be positive")

	req = base
	req.StartTime = now - 1
	_, err = CreateAuction(ctx, serverCtx, req)
	require.Error(t, err)
	require.Contains(t, err.Error(), "start time must be in the future")

	req = base
	req.StartTime = base.EndTime
	_, err = CreateAuction(ctx, serverCtx, req)
	require.Error(t, err)
	require.Contains(t, err.Error(), "start time must precede end time")

	require.Empty(t, node.Assets)
}

func TestPlaceBidChecks(t *testing.T) {
	serverCtx, node := newTestCtx(t, 250, 250)
	ctx := context.Background()

	auction := createTestAuction(t, serverCtx, node, testErc20)

	// Gross 100 backs out to net 97, under the 100 floor.
	_, err := PlaceBid(ctx, serverCtx, auction.AuctionId, entity.PlaceBidReq{
		Caller: testBidder, BidAmount: decimal.NewFromInt(100),
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "bid below floor price")

	// First valid bid: gross 105, net 102. The live window does not consult
	// the start time, so this lands before it opens.
	res, err := PlaceBid(ctx, serverCtx, auction.AuctionId, entity.PlaceBidReq{
		Caller: testBidder, BidAmount: decimal.NewFromInt(105),
	})
	require.NoError(t, err)
	require.True(t, res.NetAmount.Equal(decimal.NewFromInt(102)))
	require.Equal(t, int64(1), res.BidCount)

	// Net 104 beats the leader but misses the 112 increment bar.
	_, err = PlaceBid(ctx, serverCtx, auction.AuctionId, entity.PlaceBidReq{
		Caller: testBuyer, BidAmount: decimal.NewFromInt(107),
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "bid below required increment")

	// Matching the leader is not exceeding it.
	_, err = PlaceBid(ctx, serverCtx, auction.AuctionId, entity.PlaceBidReq{
		Caller: testBuyer, BidAmount: decimal.NewFromInt(105),
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "bid does not exceed current bid")

	// Gross 115, net 112: displaces the leader.
	res, err = PlaceBid(ctx, serverCtx, auction.AuctionId, entity.PlaceBidReq{
		Caller: testBuyer, BidAmount: decimal.NewFromInt(115),
	})
	require.NoError(t, err)
	require.True(t, res.NetAmount.Equal(decimal.NewFromInt(112)))
	require.Equal(t, int64(2), res.BidCount)

	// The displaced bidder's net moved into the refund escrow, not back out.
	refund, err := serverCtx.Dao.GetBidRefund(ctx, auction.AuctionId, testBidder)
	require.NoError(t, err)
	require.True(t, refund.Amount.Equal(decimal.NewFromInt(102)))
	require.Empty(t, node.Pushes)

	// Buy-tax slices accrued to the treasury at each acceptance: 3 + 3.
	treasuryBal, err := serverCtx.Dao.GetLedgerBalance(ctx, testChainId, testErc20, testTreasury)
	require.NoError(t, err)
	require.True(t, treasuryBal.Amount.Equal(decimal.NewFromInt(6)))

	// Both grosses were pulled in full.
	require.Len(t, node.Pulls, 2)
	require.True(t, node.Pulls[0].Amount.Equal(decimal.NewFromInt(105)))
	require.True(t, node.Pulls[1].Amount.Equal(decimal.NewFromInt(115)))

	// Elapsed auctions take no further bids.
	elapseAuction(t, serverCtx, auction.AuctionId)
	_, err = PlaceBid(ctx, serverCtx, auction.AuctionId, entity.PlaceBidReq{
		Caller: testBidder, BidAmount: decimal.NewFromInt(200),
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "auction is not live")
}

func TestPlaceBidNative(t *testing.T) {
	serverCtx, node := newTestCtx(t, 25, 0)
	ctx := context.Background()

	auction := createTestAuction(t, serverCtx, node, chain.NativeCurrency)

	res, err := PlaceBid(ctx, serverCtx, auction.AuctionId, entity.PlaceBidReq{
		Caller: testBidder, NativeValue: decimal.NewFromInt(120),
	})
	require.NoError(t, err)
	require.True(t, res.NetAmount.Equal(decimal.NewFromInt(120)))
	require.Empty(t, node.Pulls)
}

func TestWithdrawBid(t *testing.T) {
	serverCtx, node := newTestCtx(t, 250, 250)
	ctx := context.Background()

	auction := createTestAuction(t, serverCtx, node, testErc20)
	_, err := PlaceBid(ctx, serverCtx, auction.AuctionId, entity.PlaceBidReq{
		Caller: testBidder, BidAmount: decimal.NewFromInt(105),
	})
	require.NoError(t, err)

	// The current leader has nothing in escrow.
	_, err = WithdrawBid(ctx, serverCtx, auction.AuctionId, testBidder)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no funds")

	_, err = PlaceBid(ctx, serverCtx, auction.AuctionId, entity.PlaceBidReq{
		Caller: testBuyer, BidAmount: decimal.NewFromInt(115),
	})
	require.NoError(t, err)

	res, err := WithdrawBid(ctx, serverCtx, auction.AuctionId, testBidder)
	require.NoError(t, err)
	require.True(t, res.Amount.Equal(decimal.NewFromInt(102)))
	require.Len(t, node.Pushes, 1)
	require.Equal(t, testBidder, node.Pushes[0].To)

	// One payout per displaced bid.
	_, err = WithdrawBid(ctx, serverCtx, auction.AuctionId, testBidder)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no funds")
}

func TestWithdrawBidFailedPushRollsBack(t *testing.T) {
	serverCtx, node := newTestCtx(t, 250, 250)
	ctx := context.Background()

	auction := createTestAuction(t, serverCtx, node, testErc20)
	_, err := PlaceBid(ctx, serverCtx, auction.AuctionId, entity.PlaceBidReq{
		Caller: testBidder, BidAmount: decimal.NewFromInt(105),
	})
	require.NoError(t, err)
	_, err = PlaceBid(ctx, serverCtx, auction.AuctionId, entity.PlaceBidReq{
		Caller: testBuyer, BidAmount: decimal.NewFromInt(115),
	})
	require.NoError(t, err)

	node.FailPush = true
	_, err = WithdrawBid(ctx, serverCtx, auction.AuctionId, testBidder)
	require.Error(t, err)

	// The escrow entry survived the failed transfer and pays out on retry.
	res, err := WithdrawBid(ctx, serverCtx, auction.AuctionId, testBidder)
	require.NoError(t, err)
	require.True(t, res.Amount.Equal(decimal.NewFromInt(102)))
}

func TestEndAuction(t *testing.T) {
	serverCtx, node := newTestCtx(t, 250, 250)
	ctx := context.Background()

	auction := createTestAuction(t, serverCtx, node, testErc20)
	_, err := PlaceBid(ctx, serverCtx, auction.AuctionId, entity.PlaceBidReq{
		Caller: testBidder, BidAmount: decimal.NewFromInt(105),
	})
	require.NoError(t, err)
	_, err = PlaceBid(ctx, serverCtx, auction.AuctionId, entity.PlaceBidReq{
		Caller: testBuyer, BidAmount: decimal.NewFromInt(115),
	})
	require.NoError(t, err)

	_, err = EndAuction(ctx, serverCtx, auction.AuctionId, testSeller)
	require.Error(t, err)
	require.Contains(t, err.Error(), "auction has not elapsed")

	elapseAuction(t, serverCtx, auction.AuctionId)

	// Anyone may settle an elapsed auction.
	res, err := EndAuction(ctx, serverCtx, auction.AuctionId, testBidder)
	require.NoError(t, err)
	require.Equal(t, testBuyer, res.Winner)
	require.True(t, res.FinalPrice.Equal(decimal.NewFromInt(112)))
	// 112 × 250 / 10000 truncates to 2.
	require.True(t, res.TreasuryFee.Equal(decimal.NewFromInt(2)))
	require.True(t, res.SellerProceeds.Equal(decimal.NewFromInt(110)))

	// Asset went to the winner; seller and treasury accrued on the ledger.
	require.Equal(t, testBuyer, node.Assets[len(node.Assets)-1].To)
	sellerBal, err := serverCtx.Dao.GetLedgerBalance(ctx, testChainId, testErc20, testSeller)
	require.NoError(t, err)
	require.True(t, sellerBal.Amount.Equal(decimal.NewFromInt(110)))
	treasuryBal, err := serverCtx.Dao.GetLedgerBalance(ctx, testChainId, testErc20, testTreasury)
	require.NoError(t, err)
	// 3 + 3 buy tax at bid time plus the 2 sell fee at settlement.
	require.True(t, treasuryBal.Amount.Equal(decimal.NewFromInt(8)))

	// Ended is terminal.
	_, err = EndAuction(ctx, serverCtx, auction.AuctionId, testSeller)
	require.Error(t, err)
	require.Contains(t, err.Error(), "auction already ended")
}

func TestEndAuctionWithoutBids(t *testing.T) {
	serverCtx, node := newTestCtx(t, 25, 25)
	ctx := context.Background()

	auction := createTestAuction(t, serverCtx, node, testErc20)
	elapseAuction(t, serverCtx, auction.AuctionId)

	_, err := EndAuction(ctx, serverCtx, auction.AuctionId, testSeller)
	require.Error(t, err)
	require.Contains(t, err.Error(), "auction has no bids")
}

func TestWithdrawAuction(t *testing.T) {
	serverCtx, node := newTestCtx(t, 250, 250)
	ctx := context.Background()

	auction := createTestAuction(t, serverCtx, node, testErc20)

	err := WithdrawAuction(ctx, serverCtx, auction.AuctionId, testBuyer)
	require.Error(t, err)
	require.Contains(t, err.Error(), "only seller can withdraw")

	require.NoError(t, WithdrawAuction(ctx, serverCtx, auction.AuctionId, testSeller))

	// Asset came back and the record is reclaimed.
	require.Len(t, node.Assets, 2)
	require.Equal(t, testSeller, node.Assets[1].To)
	_, err = GetAuction(ctx, serverCtx, auction.AuctionId)
	require.Error(t, err)

	// A bid pins the auction to its settlement path.
	next := createTestAuction(t, serverCtx, node, testErc20)
	require.Equal(t, auction.AuctionId+1, next.AuctionId)
	_, err = PlaceBid(ctx, serverCtx, next.AuctionId, entity.PlaceBidReq{
		Caller: testBidder, BidAmount: decimal.NewFromInt(105),
	})
	require.NoError(t, err)
	err = WithdrawAuction(ctx, serverCtx, next.AuctionId, testSeller)
	require.Error(t, err)
	require.Contains(t, err.Error(), "auction already has bids")
}
