package service

import (
	"context"
	"time"

	"NFTMarketEngine/src/cache"
	"NFTMarketEngine/src/chain"
	"NFTMarketEngine/src/dao"
	"NFTMarketEngine/src/entity"
	"NFTMarketEngine/src/errcode"
	"NFTMarketEngine/src/model"
	"NFTMarketEngine/src/service/svc"
	"NFTMarketEngine/src/utils"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// auctionIsLive is the live-window check shared by bidding and seller
// withdrawal: before the end time and not explicitly ended. The start time is
// validated at creation but deliberately not consulted here.
func auctionIsLive(auction *model.Auction, now int64) bool {
	return now < auction.EndTime && !auction.IsEnded
}

// CreateAuction opens an ascending-price auction and moves the asset into
// custody immediately.
func CreateAuction(ctx context.Context, serverCtx *svc.ServerCtx, req entity.CreateAuctionReq) (*entity.AuctionInfo, error) {
	//1、参数校验
	if !utils.IsValidAddress(req.Caller) || !utils.IsValidAddress(req.AssetAddress) || !utils.IsValidAddress(req.PriceToken) {
		return nil, errcode.ErrInvalidParams
	}
	if !validAmount(req.FloorPrice) {
		return nil, errcode.NewCustomErr("floor price must be positive")
	}
	if !validAmount(req.BidIncrement) {
		return nil, errcode.NewCustomErr("bid increment must be positive")
	}
	now := time.Now().Unix()
	if req.StartTime <= now {
		return nil, errcode.NewCustomErr("start time must be in the future")
	}
	if req.StartTime >= req.EndTime {
		return nil, errcode.NewCustomErr("start time must precede end time")
	}
	caller := utils.NormalizeAddress(req.Caller)
	assetAddress := utils.NormalizeAddress(req.AssetAddress)
	priceToken := utils.NormalizeAddress(req.PriceToken)

	node, err := serverCtx.Node(req.ChainId)
	if err != nil {
		return nil, errcode.NewCustomErr(err.Error())
	}

	serverCtx.EngineMu.Lock()
	defer serverCtx.EngineMu.Unlock()

	//2、黑名单校验
	if err := requireNotBanned(ctx, serverCtx, caller); err != nil {
		return nil, err
	}

	//3、资产类型判定
	kind, err := node.Classify(ctx, assetAddress)
	if err != nil {
		return nil, errcode.NewCustomErr(err.Error())
	}
	if kind == chain.Kind1155 && req.Erc1155Quantity <= 0 {
		return nil, errcode.NewCustomErr("quantity must be positive for multi-unit asset")
	}
	if kind == chain.Kind721 {
		req.Erc1155Quantity = 0
	}

	//4、资产入custody并落库
	var auction *model.Auction
	err = serverCtx.DB.Transaction(func(tx *gorm.DB) error {
		d := serverCtx.Dao.WithTx(tx)
		auctionId, err := d.NextId(ctx, dao.SeqAuction)
		if err != nil {
			return err
		}
		if err := node.TransferAsset(ctx, kind, assetAddress, caller, node.CustodyAccount(), req.AssetId, req.Erc1155Quantity); err != nil {
			return err
		}
		auction = &model.Auction{
			AuctionId:       auctionId,
			ChainId:         req.ChainId,
			Seller:          caller,
			AssetAddress:    assetAddress,
			AssetId:         req.AssetId,
			AssetKind:       int8(kind),
			Erc1155Quantity: req.Erc1155Quantity,
			PriceToken:      priceToken,
			FloorPrice:      req.FloorPrice,
			StartTime:       req.StartTime,
			EndTime:         req.EndTime,
			BidIncrement:    req.BidIncrement,
			CurrentBidPrice: decimal.Zero,
		}
		if err := d.CreateAuction(ctx, auction); err != nil {
			return err
		}
		return d.InsertEvent(ctx, &model.MarketEvent{
			Type:      model.EventAuctionCreated,
			ChainId:   req.ChainId,
			Actor:     caller,
			AuctionId: auctionId,
			Currency:  priceToken,
			Amount:    req.FloorPrice,
		})
	})
	if err != nil {
		return nil, err
	}
	return auctionInfo(auction), nil
}

// PlaceBid accepts a new leading bid. The displaced leader's net bid moves
// into the refund escrow instead of being sent back, so accepting a bid never
// pays anyone out. The buy-tax slice of the gross bid accrues to the treasury
// at acceptance.
func PlaceBid(ctx context.Context, serverCtx *svc.ServerCtx, auctionId int64, req entity.PlaceBidReq) (*entity.BidResult, error) {
	if !utils.IsValidAddress(req.Caller) {
		return nil, errcode.ErrInvalidParams
	}
	bidder := utils.NormalizeAddress(req.Caller)

	serverCtx.EngineMu.Lock()
	defer serverCtx.EngineMu.Unlock()

	auction, err := serverCtx.Dao.GetAuction(ctx, auctionId)
	if err != nil {
		return nil, err
	}
	if auction == nil {
		return nil, errcode.NewCustomErr("auction does not exist")
	}
	if !auctionIsLive(auction, time.Now().Unix()) {
		return nil, errcode.NewCustomErr("auction is not live")
	}
	if err := requireNotBanned(ctx, serverCtx, bidder); err != nil {
		return nil, err
	}
	settings, err := getSettings(ctx, serverCtx)
	if err != nil {
		return nil, err
	}
	node, err := serverCtx.Node(auction.ChainId)
	if err != nil {
		return nil, errcode.NewCustomErr(err.Error())
	}

	//1、出价毛额：原生币取附带金额，ERC20取声明金额
	var gross decimal.Decimal
	if chain.IsNativeCurrency(auction.PriceToken) {
		gross = req.NativeValue
	} else {
		gross = req.BidAmount
	}
	if !validAmount(gross) {
		return nil, errcode.NewCustomErr("bid amount must be positive")
	}

	//2、净价三重校验，全部独立判定
	net := NetFromGross(gross, settings.BuyTaxBp)
	if net.LessThanOrEqual(auction.CurrentBidPrice) {
		return nil, errcode.NewCustomErr("bid does not exceed current bid")
	}
	if net.LessThan(auction.FloorPrice) {
		return nil, errcode.NewCustomErr("bid below floor price")
	}
	if net.LessThan(auction.CurrentBidPrice.Add(auction.BidIncrement)) {
		return nil, errcode.NewCustomErr("bid below required increment")
	}

	err = serverCtx.DB.Transaction(func(tx *gorm.DB) error {
		d := serverCtx.Dao.WithTx(tx)
		//3、前任领先者的净价转入refund escrow，不直接退款
		if auction.BidCount > 0 {
			if err := d.CreditBidRefund(ctx, &model.BidRefund{
				AuctionId: auctionId,
				Bidder:    auction.CurrentBidOwner,
				ChainId:   auction.ChainId,
				Currency:  auction.PriceToken,
				Amount:    auction.CurrentBidPrice,
			}); err != nil {
				return err
			}
		}
		//4、买方税入国库ledger
		if err := d.CreditLedger(ctx, auction.ChainId, auction.PriceToken, settings.Treasury, gross.Sub(net)); err != nil {
			return err
		}
		if err := d.UpdateAuctionBid(ctx, auctionId, net, bidder, auction.BidCount+1); err != nil {
			return err
		}
		//5、校验全部通过后才拉取ERC20资金
		if !chain.IsNativeCurrency(auction.PriceToken) {
			if err := node.PullPayment(ctx, auction.PriceToken, bidder, gross); err != nil {
				return err
			}
		}
		return d.InsertEvent(ctx, &model.MarketEvent{
			Type:      model.EventBidPlaced,
			ChainId:   auction.ChainId,
			Actor:     bidder,
			AuctionId: auctionId,
			Currency:  auction.PriceToken,
			Amount:    net,
		})
	})
	if err != nil {
		return nil, err
	}
	cache.New(serverCtx.KvStore).DelAuction(auctionId)
	return &entity.BidResult{
		AuctionId:   auctionId,
		Bidder:      bidder,
		GrossAmount: gross,
		NetAmount:   net,
		BidCount:    auction.BidCount + 1,
	}, nil
}

// WithdrawBid pays out a displaced bid's escrowed refund, once. The escrow
// entry is removed before the transfer is attempted; a failed transfer rolls
// the removal back.
func WithdrawBid(ctx context.Context, serverCtx *svc.ServerCtx, auctionId int64, caller string) (*entity.WithdrawResult, error) {
	if !utils.IsValidAddress(caller) {
		return nil, errcode.ErrInvalidParams
	}
	bidder := utils.NormalizeAddress(caller)

	serverCtx.EngineMu.Lock()
	defer serverCtx.EngineMu.Unlock()

	refund, err := serverCtx.Dao.GetBidRefund(ctx, auctionId, bidder)
	if err != nil {
		return nil, err
	}
	if refund == nil || !refund.Amount.IsPositive() {
		return nil, errcode.NewCustomErr("no funds")
	}
	node, err := serverCtx.Node(refund.ChainId)
	if err != nil {
		return nil, errcode.NewCustomErr(err.Error())
	}

	err = serverCtx.DB.Transaction(func(tx *gorm.DB) error {
		d := serverCtx.Dao.WithTx(tx)
		if err := d.DeleteBidRefund(ctx, auctionId, bidder); err != nil {
			return err
		}
		if err := node.PushPayment(ctx, refund.Currency, bidder, refund.Amount); err != nil {
			return err
		}
		return d.InsertEvent(ctx, &model.MarketEvent{
			Type:      model.EventBidRefunded,
			ChainId:   refund.ChainId,
			Actor:     bidder,
			AuctionId: auctionId,
			Currency:  refund.Currency,
			Amount:    refund.Amount,
		})
	})
	if err != nil {
		return nil, err
	}
	return &entity.WithdrawResult{
		ChainId:     refund.ChainId,
		Currency:    refund.Currency,
		Beneficiary: bidder,
		Amount:      refund.Amount,
	}, nil
}

// EndAuction settles an elapsed auction: seller and treasury shares accrue to
// the ledger, the asset goes to the winning bidder. An auction that never got
// a bid cannot be ended; the seller withdraws it instead.
func EndAuction(ctx context.Context, serverCtx *svc.ServerCtx, auctionId int64, caller string) (*entity.SettleResult, error) {
	if !utils.IsValidAddress(caller) {
		return nil, errcode.ErrInvalidParams
	}
	actor := utils.NormalizeAddress(caller)

	serverCtx.EngineMu.Lock()
	defer serverCtx.EngineMu.Unlock()

	auction, err := serverCtx.Dao.GetAuction(ctx, auctionId)
	if err != nil {
		return nil, err
	}
	if auction == nil {
		return nil, errcode.NewCustomErr("auction does not exist")
	}
	if auction.IsEnded {
		return nil, errcode.NewCustomErr("auction already ended")
	}
	if time.Now().Unix() < auction.EndTime {
		return nil, errcode.NewCustomErr("auction has not elapsed")
	}
	if auction.BidCount == 0 {
		return nil, errcode.NewCustomErr("auction has no bids")
	}
	settings, err := getSettings(ctx, serverCtx)
	if err != nil {
		return nil, err
	}
	node, err := serverCtx.Node(auction.ChainId)
	if err != nil {
		return nil, errcode.NewCustomErr(err.Error())
	}

	//卖方税结算拆分；买方税在各次出价时已入账
	finalPrice := auction.CurrentBidPrice
	sellFee := FeeFromNet(finalPrice, settings.SellTaxBp)
	sellerProceeds := finalPrice.Sub(sellFee)
	winner := auction.CurrentBidOwner

	err = serverCtx.DB.Transaction(func(tx *gorm.DB) error {
		d := serverCtx.Dao.WithTx(tx)
		if err := d.CreditLedger(ctx, auction.ChainId, auction.PriceToken, auction.Seller, sellerProceeds); err != nil {
			return err
		}
		if err := d.CreditLedger(ctx, auction.ChainId, auction.PriceToken, settings.Treasury, sellFee); err != nil {
			return err
		}
		if err := node.TransferAsset(ctx, chain.AssetKind(auction.AssetKind), auction.AssetAddress,
			node.CustodyAccount(), winner, auction.AssetId, auction.Erc1155Quantity); err != nil {
			return err
		}
		if err := d.MarkAuctionEnded(ctx, auctionId); err != nil {
			return err
		}
		return d.InsertEvent(ctx, &model.MarketEvent{
			Type:      model.EventAuctionEnded,
			ChainId:   auction.ChainId,
			Actor:     actor,
			AuctionId: auctionId,
			Currency:  auction.PriceToken,
			Amount:    finalPrice,
		})
	})
	if err != nil {
		return nil, err
	}
	cache.New(serverCtx.KvStore).DelAuction(auctionId)
	return &entity.SettleResult{
		AuctionId:      auctionId,
		Winner:         winner,
		FinalPrice:     finalPrice,
		SellerProceeds: sellerProceeds,
		TreasuryFee:    sellFee,
	}, nil
}

// WithdrawAuction cancels a live auction that never received a bid, returning
// the exact deposited asset to the seller and reclaiming the record.
func WithdrawAuction(ctx context.Context, serverCtx *svc.ServerCtx, auctionId int64, caller string) error {
	if !utils.IsValidAddress(caller) {
		return errcode.ErrInvalidParams
	}
	seller := utils.NormalizeAddress(caller)

	serverCtx.EngineMu.Lock()
	defer serverCtx.EngineMu.Unlock()

	auction, err := serverCtx.Dao.GetAuction(ctx, auctionId)
	if err != nil {
		return err
	}
	if auction == nil {
		return errcode.NewCustomErr("auction does not exist")
	}
	if !auctionIsLive(auction, time.Now().Unix()) {
		return errcode.NewCustomErr("auction is not live")
	}
	if auction.Seller != seller {
		return errcode.NewCustomErr("only seller can withdraw")
	}
	if auction.BidCount > 0 {
		return errcode.NewCustomErr("auction already has bids")
	}
	node, err := serverCtx.Node(auction.ChainId)
	if err != nil {
		return errcode.NewCustomErr(err.Error())
	}

	err = serverCtx.DB.Transaction(func(tx *gorm.DB) error {
		d := serverCtx.Dao.WithTx(tx)
		if err := node.TransferAsset(ctx, chain.AssetKind(auction.AssetKind), auction.AssetAddress,
			node.CustodyAccount(), seller, auction.AssetId, auction.Erc1155Quantity); err != nil {
			return err
		}
		if err := d.DeleteAuction(ctx, auctionId); err != nil {
			return err
		}
		return d.InsertEvent(ctx, &model.MarketEvent{
			Type:      model.EventAuctionWithdrawn,
			ChainId:   auction.ChainId,
			Actor:     seller,
			AuctionId: auctionId,
		})
	})
	if err != nil {
		return err
	}
	cache.New(serverCtx.KvStore).DelAuction(auctionId)
	return nil
}

// GetAuction serves the read model, kv-cached when a cache is wired.
func GetAuction(ctx context.Context, serverCtx *svc.ServerCtx, auctionId int64) (*entity.AuctionInfo, error) {
	cached := cache.New(serverCtx.KvStore)
	if info, ok := cached.GetAuction(auctionId); ok {
		return info, nil
	}
	auction, err := serverCtx.Dao.GetAuction(ctx, auctionId)
	if err != nil {
		return nil, err
	}
	if auction == nil {
		return nil, errcode.ErrNotFound
	}
	info := auctionInfo(auction)
	cached.SetAuction(auctionId, info)
	return info, nil
}

func ListAuctions(ctx context.Context, serverCtx *svc.ServerCtx, page, pageSize int) ([]entity.AuctionInfo, int64, error) {
	auctions, count, err := serverCtx.Dao.ListAuctions(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	infos := make([]entity.AuctionInfo, 0, len(auctions))
	for i := range auctions {
		infos = append(infos, *auctionInfo(&auctions[i]))
	}
	return infos, count, nil
}

func auctionInfo(auction *model.Auction) *entity.AuctionInfo {
	return &entity.AuctionInfo{
		AuctionId:       auction.AuctionId,
		ChainId:         auction.ChainId,
		Seller:          auction.Seller,
		AssetAddress:    auction.AssetAddress,
		AssetId:         auction.AssetId,
		Erc1155Quantity: auction.Erc1155Quantity,
		PriceToken:      auction.PriceToken,
		FloorPrice:      auction.FloorPrice,
		StartTime:       auction.StartTime,
		EndTime:         auction.EndTime,
		BidIncrement:    auction.BidIncrement,
		BidCount:        auction.BidCount,
		CurrentBidPrice: auction.CurrentBidPrice,
		CurrentBidOwner: auction.CurrentBidOwner,
		IsEnded:         auction.IsEnded,
		CreateTime:      auction.CreateTime,
	}
}
