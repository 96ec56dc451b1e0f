package service

import (
	"context"

	"NFTMarketEngine/src/errcode"
	"NFTMarketEngine/src/model"
	"NFTMarketEngine/src/service/svc"
	"NFTMarketEngine/src/utils"

	"github.com/pkg/errors"
)

// InitMarket performs the one-time marketplace setup: treasury address and the
// default tax rates. A second call fails.
func InitMarket(ctx context.Context, serverCtx *svc.ServerCtx) error {
	serverCtx.EngineMu.Lock()
	defer serverCtx.EngineMu.Unlock()

	settings, err := serverCtx.Dao.GetSettings(ctx)
	if err != nil {
		return err
	}
	if settings != nil {
		return errcode.NewCustomErr("market already initialized")
	}

	m := serverCtx.C.Market
	if !utils.IsValidAddress(m.Treasury) {
		return errcode.NewCustomErr("invalid treasury address")
	}
	if m.DefaultSellBp < 0 || m.DefaultSellBp > TaxBase || m.DefaultBuyBp < 0 || m.DefaultBuyBp > TaxBase {
		return errcode.NewCustomErr("tax rate exceeds base")
	}
	err = serverCtx.Dao.CreateSettings(ctx, &model.MarketSettings{
		Treasury:  utils.NormalizeAddress(m.Treasury),
		SellTaxBp: m.DefaultSellBp,
		BuyTaxBp:  m.DefaultBuyBp,
	})
	return err
}

// EnsureMarket initializes on first boot and is a no-op afterwards.
func EnsureMarket(ctx context.Context, serverCtx *svc.ServerCtx) error {
	settings, err := serverCtx.Dao.GetSettings(ctx)
	if err != nil {
		return err
	}
	if settings != nil {
		return nil
	}
	return InitMarket(ctx, serverCtx)
}

// ListEvents serves the notification stream to external indexers.
func ListEvents(ctx context.Context, serverCtx *svc.ServerCtx, eventType string, page, pageSize int) ([]model.MarketEvent, int64, error) {
	return serverCtx.Dao.ListEvents(ctx, eventType, page, pageSize)
}

func getSettings(ctx context.Context, serverCtx *svc.ServerCtx) (*model.MarketSettings, error) {
	settings, err := serverCtx.Dao.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, errors.New("market not initialized")
	}
	return settings, nil
}
