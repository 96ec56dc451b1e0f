package dao

import (
	"context"
	"time"

	"NFTMarketEngine/src/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (dao *Dao) IsBanned(ctx context.Context, address string) (bool, error) {
	var count int64
	err := dao.DB.WithContext(ctx).Table(model.BannedUserTableName()).
		Where("address = ?", address).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed on check ban status")
	}
	return count > 0, nil
}

// AddBan is idempotent set insertion.
func (dao *Dao) AddBan(ctx context.Context, address string) error {
	err := dao.DB.WithContext(ctx).Table(model.BannedUserTableName()).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.BannedUser{
			Address:    address,
			CreateTime: time.Now().UnixMilli(),
		}).Error
	if err != nil {
		return errors.Wrap(err, "failed on add ban")
	}
	return nil
}

// RemoveBan is idempotent set removal.
func (dao *Dao) RemoveBan(ctx context.Context, address string) error {
	err := dao.DB.WithContext(ctx).Table(model.BannedUserTableName()).
		Where("address = ?", address).
		Delete(&model.BannedUser{}).Error
	if err != nil {
		return errors.Wrap(err, "failed on remove ban")
	}
	return nil
}

func (dao *Dao) ListBans(ctx context.Context) ([]model.BannedUser, error) {
	var bans []model.BannedUser
	err := dao.DB.WithContext(ctx).Table(model.BannedUserTableName()).Find(&bans).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed on list bans")
	}
	return bans, nil
}

// GetSettings returns the singleton settings row, or (nil, nil) before
// initialization.
func (dao *Dao) GetSettings(ctx context.Context) (*model.MarketSettings, error) {
	var settings model.MarketSettings
	err := dao.DB.WithContext(ctx).Table(model.MarketSettingsTableName()).
		Where("id = ?", 1).
		First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed on get market settings")
	}
	return &settings, nil
}

// CreateSettings writes the setup row. The fixed primary key makes a second
// initialization a constraint violation, never an overwrite.
func (dao *Dao) CreateSettings(ctx context.Context, settings *model.MarketSettings) error {
	settings.Id = 1
	settings.InitializedAt = time.Now().UnixMilli()
	settings.UpdateTime = settings.InitializedAt
	err := dao.DB.WithContext(ctx).Table(model.MarketSettingsTableName()).Create(settings).Error
	if err != nil {
		return errors.Wrap(err, "failed on create market settings")
	}
	return nil
}

// UpdateTaxRates replaces both rates atomically.
func (dao *Dao) UpdateTaxRates(ctx context.Context, sellBp, buyBp int64) error {
	err := dao.DB.WithContext(ctx).Table(model.MarketSettingsTableName()).
		Where("id = ?", 1).
		Updates(map[string]interface{}{
			"sell_tax_bp": sellBp,
			"buy_tax_bp":  buyBp,
			"update_time": time.Now().UnixMilli(),
		}).Error
	if err != nil {
		return errors.Wrap(err, "failed on update tax rates")
	}
	return nil
}
