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

// WithdrawFunds is the only path that moves accrued settlement money out of
// the engine. The balance comes off the books before the transfer; a reported
// native-transfer failure rolls the whole call back.
func WithdrawFunds(ctx context.Context, serverCtx *svc.ServerCtx, req entity.WithdrawFundsReq) (*entity.WithdrawResult, error) {
	if !utils.IsValidAddress(req.Caller) || !utils.IsValidAddress(req.Currency) {
		return nil, errcode.ErrInvalidParams
	}
	beneficiary := utils.NormalizeAddress(req.Caller)
	currency := utils.NormalizeAddress(req.Currency)

	serverCtx.EngineMu.Lock()
	defer serverCtx.EngineMu.Unlock()

	balance, err := serverCtx.Dao.GetLedgerBalance(ctx, req.ChainId, currency, beneficiary)
	if err != nil {
		return nil, err
	}
	if balance == nil || !balance.Amount.IsPositive() {
		return nil, errcode.NewCustomErr("no funds")
	}
	node, err := serverCtx.Node(req.ChainId)
	if err != nil {
		return nil, errcode.NewCustomErr(err.Error())
	}

	err = serverCtx.DB.Transaction(func(tx *gorm.DB) error {
		d := serverCtx.Dao.WithTx(tx)
		if err := d.DeleteLedgerBalance(ctx, req.ChainId, currency, beneficiary); err != nil {
			return err
		}
		if err := node.PushPayment(ctx, currency, beneficiary, balance.Amount); err != nil {
			return err
		}
		return d.InsertEvent(ctx, &model.MarketEvent{
			Type:     model.EventFundsWithdrawn,
			ChainId:  req.ChainId,
			Actor:    beneficiary,
			Currency: currency,
			Amount:   balance.Amount,
		})
	})
	if err != nil {
		return nil, err
	}
	return &entity.WithdrawResult{
		ChainId:     req.ChainId,
		Currency:    currency,
		Beneficiary: beneficiary,
		Amount:      balance.Amount,
	}, nil
}

// GetBalance reads one pending-withdrawal entry; zero when nothing is owed.
func GetBalance(ctx context.Context, serverCtx *svc.ServerCtx, chainId int, currency, beneficiary string) (*entity.BalanceInfo, error) {
	if !utils.IsValidAddress(beneficiary) || !utils.IsValidAddress(currency) {
		return nil, errcode.ErrInvalidParams
	}
	balance, err := serverCtx.Dao.GetLedgerBalance(ctx, chainId,
		utils.NormalizeAddress(currency), utils.NormalizeAddress(beneficiary))
	if err != nil {
		return nil, err
	}
	info := &entity.BalanceInfo{
		ChainId:     chainId,
		Currency:    utils.NormalizeAddress(currency),
		Beneficiary: utils.NormalizeAddress(beneficiary),
	}
	if balance != nil {
		info.Amount = balance.Amount
	}
	return info, nil
}

func ListBalances(ctx context.Context, serverCtx *svc.ServerCtx, beneficiary string) ([]entity.BalanceInfo, error) {
	if !utils.IsValidAddress(beneficiary) {
		return nil, errcode.ErrInvalidParams
	}
	balances, err := serverCtx.Dao.ListLedgerBalances(ctx, utils.NormalizeAddress(beneficiary))
	if err != nil {
		return nil, err
	}
	infos := make([]entity.BalanceInfo, 0, len(balances))
	for _, balance := range balances {
		infos = append(infos, entity.BalanceInfo{
			ChainId:     balance.ChainId,
			Currency:    balance.Currency,
			Beneficiary: balance.Beneficiary,
			Amount:      balance.Amount,
		})
	}
	return infos, nil
}
