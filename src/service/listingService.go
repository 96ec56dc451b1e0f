package service

import (
	"context"

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

// CreateListing opens a fixed-price direct sale. The asset moves into custody
// immediately; no payment happens until purchase.
func CreateListing(ctx context.Context, serverCtx *svc.ServerCtx, req entity.CreateListingReq) (*entity.ListingInfo, error) {
	//1、参数校验
	if !utils.IsValidAddress(req.Caller) || !utils.IsValidAddress(req.AssetAddress) || !utils.IsValidAddress(req.PaymentToken) {
		return nil, errcode.ErrInvalidParams
	}
	if !validAmount(req.Price) {
		return nil, errcode.NewCustomErr("price must be positive")
	}
	caller := utils.NormalizeAddress(req.Caller)
	assetAddress := utils.NormalizeAddress(req.AssetAddress)
	paymentToken := utils.NormalizeAddress(req.PaymentToken)

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

	//3、资产类型判定，单件/多件数量规则
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
	var listing *model.Listing
	err = serverCtx.DB.Transaction(func(tx *gorm.DB) error {
		d := serverCtx.Dao.WithTx(tx)
		listingId, err := d.NextId(ctx, dao.SeqListing)
		if err != nil {
			return err
		}
		if err := node.TransferAsset(ctx, kind, assetAddress, caller, node.CustodyAccount(), req.AssetId, req.Erc1155Quantity); err != nil {
			return err
		}
		listing = &model.Listing{
			ListingId:       listingId,
			ChainId:         req.ChainId,
			Seller:          caller,
			AssetAddress:    assetAddress,
			AssetId:         req.AssetId,
			AssetKind:       int8(kind),
			Erc1155Quantity: req.Erc1155Quantity,
			PaymentToken:    paymentToken,
			Price:           req.Price,
		}
		if err := d.CreateListing(ctx, listing); err != nil {
			return err
		}
		return d.InsertEvent(ctx, &model.MarketEvent{
			Type:      model.EventListingCreated,
			ChainId:   req.ChainId,
			Actor:     caller,
			ListingId: listingId,
			Currency:  paymentToken,
			Amount:    req.Price,
		})
	})
	if err != nil {
		return nil, err
	}
	return listingInfo(listing), nil
}

// PurchaseListing settles a direct sale. The buyer pays the listed price
// inflated by the buy-side tax, exactly; anything else is rejected. Proceeds
// land in the pending-withdrawals ledger, never in a direct transfer; only the
// asset moves to the buyer immediately.
func PurchaseListing(ctx context.Context, serverCtx *svc.ServerCtx, listingId int64, req entity.PurchaseReq) (*entity.PurchaseResult, error) {
	if !utils.IsValidAddress(req.Caller) {
		return nil, errcode.ErrInvalidParams
	}
	buyer := utils.NormalizeAddress(req.Caller)

	serverCtx.EngineMu.Lock()
	defer serverCtx.EngineMu.Unlock()

	listing, err := serverCtx.Dao.GetListing(ctx, listingId)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, errcode.NewCustomErr("listing does not exist")
	}
	if listing.IsSold {
		return nil, errcode.NewCustomErr("listing already sold")
	}
	if err := requireNotBanned(ctx, serverCtx, buyer); err != nil {
		return nil, err
	}
	settings, err := getSettings(ctx, serverCtx)
	if err != nil {
		return nil, err
	}
	node, err := serverCtx.Node(listing.ChainId)
	if err != nil {
		return nil, errcode.NewCustomErr(err.Error())
	}

	//1、买家实付金额：原生币取附带金额，ERC20取声明金额
	var gross decimal.Decimal
	if chain.IsNativeCurrency(listing.PaymentToken) {
		gross = req.NativeValue
	} else {
		gross = req.OfferedPrice
	}
	if !validAmount(gross) {
		return nil, errcode.NewCustomErr("payment amount must be positive")
	}

	//2、剔除买方税得净价，必须与定价严格相等
	net := NetFromGross(gross, settings.BuyTaxBp)
	if !net.Equal(listing.Price) {
		return nil, errcode.NewCustomErr("incorrect payment amount")
	}

	//3、卖方税，结算拆分；ledger入账总额等于买家实付
	sellFee := FeeFromNet(net, settings.SellTaxBp)
	sellerProceeds := net.Sub(sellFee)
	treasuryFee := gross.Sub(sellerProceeds)

	err = serverCtx.DB.Transaction(func(tx *gorm.DB) error {
		d := serverCtx.Dao.WithTx(tx)
		// Amount validated above; ERC20 funds are pulled only now.
		if !chain.IsNativeCurrency(listing.PaymentToken) {
			if err := node.PullPayment(ctx, listing.PaymentToken, buyer, gross); err != nil {
				return err
			}
		}
		if err := d.CreditLedger(ctx, listing.ChainId, listing.PaymentToken, listing.Seller, sellerProceeds); err != nil {
			return err
		}
		if err := d.CreditLedger(ctx, listing.ChainId, listing.PaymentToken, settings.Treasury, treasuryFee); err != nil {
			return err
		}
		// Asset goes straight to the buyer; assets are never pull-withdrawn.
		if err := node.TransferAsset(ctx, chain.AssetKind(listing.AssetKind), listing.AssetAddress,
			node.CustodyAccount(), buyer, listing.AssetId, listing.Erc1155Quantity); err != nil {
			return err
		}
		if err := d.MarkListingSold(ctx, listingId); err != nil {
			return err
		}
		return d.InsertEvent(ctx, &model.MarketEvent{
			Type:      model.EventListingSold,
			ChainId:   listing.ChainId,
			Actor:     buyer,
			ListingId: listingId,
			Currency:  listing.PaymentToken,
			Amount:    gross,
		})
	})
	if err != nil {
		return nil, err
	}
	return &entity.PurchaseResult{
		ListingId:      listingId,
		Buyer:          buyer,
		GrossPaid:      gross,
		NetPrice:       net,
		SellerProceeds: sellerProceeds,
		TreasuryFee:    treasuryFee,
	}, nil
}

// CancelListing returns the asset to the seller and reclaims the record. The
// listing id is never reused.
func CancelListing(ctx context.Context, serverCtx *svc.ServerCtx, listingId int64, caller string) error {
	if !utils.IsValidAddress(caller) {
		return errcode.ErrInvalidParams
	}
	seller := utils.NormalizeAddress(caller)

	serverCtx.EngineMu.Lock()
	defer serverCtx.EngineMu.Unlock()

	listing, err := serverCtx.Dao.GetListing(ctx, listingId)
	if err != nil {
		return err
	}
	if listing == nil {
		return errcode.NewCustomErr("listing does not exist")
	}
	if listing.IsSold {
		return errcode.NewCustomErr("listing already sold")
	}
	if listing.Seller != seller {
		return errcode.NewCustomErr("only seller can cancel")
	}
	node, err := serverCtx.Node(listing.ChainId)
	if err != nil {
		return errcode.NewCustomErr(err.Error())
	}

	return serverCtx.DB.Transaction(func(tx *gorm.DB) error {
		d := serverCtx.Dao.WithTx(tx)
		if err := node.TransferAsset(ctx, chain.AssetKind(listing.AssetKind), listing.AssetAddress,
			node.CustodyAccount(), seller, listing.AssetId, listing.Erc1155Quantity); err != nil {
			return err
		}
		if err := d.DeleteListing(ctx, listingId); err != nil {
			return err
		}
		return d.InsertEvent(ctx, &model.MarketEvent{
			Type:      model.EventListingCancelled,
			ChainId:   listing.ChainId,
			Actor:     seller,
			ListingId: listingId,
		})
	})
}

func GetListing(ctx context.Context, serverCtx *svc.ServerCtx, listingId int64) (*entity.ListingInfo, error) {
	listing, err := serverCtx.Dao.GetListing(ctx, listingId)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, errcode.ErrNotFound
	}
	return listingInfo(listing), nil
}

func ListListings(ctx context.Context, serverCtx *svc.ServerCtx, page, pageSize int) ([]entity.ListingInfo, int64, error) {
	listings, count, err := serverCtx.Dao.ListListings(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	infos := make([]entity.ListingInfo, 0, len(listings))
	for i := range listings {
		infos = append(infos, *listingInfo(&listings[i]))
	}
	return infos, count, nil
}

func listingInfo(listing *model.Listing) *entity.ListingInfo {
	return &entity.ListingInfo{
		ListingId:       listing.ListingId,
		ChainId:         listing.ChainId,
		Seller:          listing.Seller,
		AssetAddress:    listing.AssetAddress,
		AssetId:         listing.AssetId,
		Erc1155Quantity: listing.Erc1155Quantity,
		PaymentToken:    listing.PaymentToken,
		Price:           listing.Price,
		IsSold:          listing.IsSold,
		CreateTime:      listing.CreateTime,
	}
}
