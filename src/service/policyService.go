package service

import (
	"context"

	"NFTMarketEngine/src/entity"
	"NFTMarketEngine/src/errcode"
	"NFTMarketEngine/src/model"
	"NFTMarketEngine/src/service/svc"
	"NFTMarketEngine/src/utils"

	"gorm.io/gorm"
)

// requireOwner gates the admin entrypoints on the configured market owner.
func requireOwner(serverCtx *svc.ServerCtx, caller string) error {
	if serverCtx.C == nil || !utils.IsValidAddress(caller) {
		return errcode.ErrForbidden
	}
	if utils.NormalizeAddress(caller) != utils.NormalizeAddress(serverCtx.C.Market.Owner) {
		return errcode.ErrForbidden
	}
	return nil
}

// SetTaxRates replaces both tax rates atomically. Each rate is bounded by the
// full fee base.
func SetTaxRates(ctx context.Context, serverCtx *svc.ServerCtx, req entity.SetTaxRatesReq) (*entity.TaxRatesInfo, error) {
	if err := requireOwner(serverCtx, req.Caller); err != nil {
		return nil, err
	}
	if req.SellTaxBp < 0 || req.SellTaxBp > TaxBase || req.BuyTaxBp < 0 || req.BuyTaxBp > TaxBase {
		return nil, errcode.NewCustomErr("tax rate exceeds base")
	}

	serverCtx.EngineMu.Lock()
	defer serverCtx.EngineMu.Unlock()

	settings, err := getSettings(ctx, serverCtx)
	if err != nil {
		return nil, err
	}
	err = serverCtx.DB.Transaction(func(tx *gorm.DB) error {
		d := serverCtx.Dao.WithTx(tx)
		if err := d.UpdateTaxRates(ctx, req.SellTaxBp, req.BuyTaxBp); err != nil {
			return err
		}
		return d.InsertEvent(ctx, &model.MarketEvent{
			Type:  model.EventTaxUpdated,
			Actor: utils.NormalizeAddress(req.Caller),
		})
	})
	if err != nil {
		return nil, err
	}
	return &entity.TaxRatesInfo{
		SellTaxBp: req.SellTaxBp,
		BuyTaxBp:  req.BuyTaxBp,
		Treasury:  settings.Treasury,
	}, nil
}

func GetTaxRates(ctx context.Context, serverCtx *svc.ServerCtx) (*entity.TaxRatesInfo, error) {
	settings, err := getSettings(ctx, serverCtx)
	if err != nil {
		return nil, err
	}
	return &entity.TaxRatesInfo{
		SellTaxBp: settings.SellTaxBp,
		BuyTaxBp:  settings.BuyTaxBp,
		Treasury:  settings.Treasury,
	}, nil
}

// BanUser adds an address to the blacklist. Idempotent: banning a banned
// address changes nothing and emits nothing.
func BanUser(ctx context.Context, serverCtx *svc.ServerCtx, req entity.BanReq) error {
	if err := requireOwner(serverCtx, req.Caller); err != nil {
		return err
	}
	if !utils.IsValidAddress(req.Address) {
		return errcode.ErrInvalidParams
	}
	address := utils.NormalizeAddress(req.Address)

	serverCtx.EngineMu.Lock()
	defer serverCtx.EngineMu.Unlock()

	banned, err := serverCtx.Dao.IsBanned(ctx, address)
	if err != nil {
		return err
	}
	if banned {
		return nil
	}
	return serverCtx.DB.Transaction(func(tx *gorm.DB) error {
		d := serverCtx.Dao.WithTx(tx)
		if err := d.AddBan(ctx, address); err != nil {
			return err
		}
		return d.InsertEvent(ctx, &model.MarketEvent{
			Type:  model.EventUserBanned,
			Actor: address,
		})
	})
}

// UnbanUser removes an address from the blacklist, restoring full transacting
// ability. Idempotent.
func UnbanUser(ctx context.Context, serverCtx *svc.ServerCtx, caller, address string) error {
	if err := requireOwner(serverCtx, caller); err != nil {
		return err
	}
	if !utils.IsValidAddress(address) {
		return errcode.ErrInvalidParams
	}
	normalized := utils.NormalizeAddress(address)

	serverCtx.EngineMu.Lock()
	defer serverCtx.EngineMu.Unlock()

	banned, err := serverCtx.Dao.IsBanned(ctx, normalized)
	if err != nil {
		return err
	}
	if !banned {
		return nil
	}
	return serverCtx.DB.Transaction(func(tx *gorm.DB) error {
		d := serverCtx.Dao.WithTx(tx)
		if err := d.RemoveBan(ctx, normalized); err != nil {
			return err
		}
		return d.InsertEvent(ctx, &model.MarketEvent{
			Type:  model.EventUserUnbanned,
			Actor: normalized,
		})
	})
}

func ListBans(ctx context.Context, serverCtx *svc.ServerCtx) ([]string, error) {
	bans, err := serverCtx.Dao.ListBans(ctx)
	if err != nil {
		return nil, err
	}
	addresses := make([]string, 0, len(bans))
	for _, ban := range bans {
		addresses = append(addresses, ban.Address)
	}
	return addresses, nil
}

// requireNotBanned gates the transacting entrypoints. Cancels and withdrawals
// stay open to banned users so owed funds and assets remain retrievable.
func requireNotBanned(ctx context.Context, serverCtx *svc.ServerCtx, address string) error {
	banned, err := serverCtx.Dao.IsBanned(ctx, address)
	if err != nil {
		return err
	}
	if banned {
		return errcode.NewCustomErr("caller is banned")
	}
	return nil
}
