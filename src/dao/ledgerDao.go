package dao

import (
	"context"
	"time"

	"NFTMarketEngine/src/model"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreditLedger accumulates amount into the (currency, beneficiary) pending
// balance. Pure accumulation: it never moves funds.
func (dao *Dao) CreditLedger(ctx context.Context, chainId int, currency, beneficiary string, amount decimal.Decimal) error {
	if amount.IsZero() {
		return nil
	}
	now := time.Now().UnixMilli()
	entry := &model.LedgerBalance{
		ChainId:     chainId,
		Currency:    currency,
		Beneficiary: beneficiary,
		Amount:      amount,
		CreateTime:  now,
		UpdateTime:  now,
	}
	err := dao.DB.WithContext(ctx).Table(model.LedgerBalanceTableName()).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "chain_id"}, {Name: "currency"}, {Name: "beneficiary"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"amount":      gorm.Expr("amount + ?", amount),
				"update_time": now,
			}),
		}).Create(entry).Error
	if err != nil {
		return errors.Wrap(err, "failed on credit ledger")
	}
	return nil
}

// GetLedgerBalance returns the pending balance or (nil, nil) when none.
func (dao *Dao) GetLedgerBalance(ctx context.Context, chainId int, currency, beneficiary string) (*model.LedgerBalance, error) {
	var entry model.LedgerBalance
	err := dao.DB.WithContext(ctx).Table(model.LedgerBalanceTableName()).
		Where("chain_id = ? and currency = ? and beneficiary = ?", chainId, currency, beneficiary).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed on get ledger balance")
	}
	return &entry, nil
}

// DeleteLedgerBalance zeroes the balance by removing the row; done before the
// payout transfer so a reentrant caller finds nothing left to withdraw.
func (dao *Dao) DeleteLedgerBalance(ctx context.Context, chainId int, currency, beneficiary string) error {
	res := dao.DB.WithContext(ctx).Table(model.LedgerBalanceTableName()).
		Where("chain_id = ? and currency = ? and beneficiary = ?", chainId, currency, beneficiary).
		Delete(&model.LedgerBalance{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed on delete ledger balance")
	}
	if res.RowsAffected == 0 {
		return errors.New("no funds")
	}
	return nil
}

func (dao *Dao) ListLedgerBalances(ctx context.Context, beneficiary string) ([]model.LedgerBalance, error) {
	var entries []model.LedgerBalance
	err := dao.DB.WithContext(ctx).Table(model.LedgerBalanceTableName()).
		Where("beneficiary = ?", beneficiary).
		Find(&entries).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed on list ledger balances")
	}
	return entries, nil
}
