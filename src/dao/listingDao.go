package dao

import (
	"context"
	"time"

	"NFTMarketEngine/src/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func (dao *Dao) CreateListing(ctx context.Context, listing *model.Listing) error {
	now := time.Now().UnixMilli()
	listing.CreateTime = now
	listing.UpdateTime = now
	err := dao.DB.WithContext(ctx).Table(model.ListingTableName()).Create(listing).Error
	if err != nil {
		return errors.Wrap(err, "failed on create listing")
	}
	return nil
}

// GetListing returns the listing or (nil, nil) when no such record exists.
// Absence is row absence, never a zero price.
func (dao *Dao) GetListing(ctx context.Context, listingId int64) (*model.Listing, error) {
	var listing model.Listing
	err := dao.DB.WithContext(ctx).Table(model.ListingTableName()).
		Where("listing_id = ?", listingId).
		First(&listing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed on get listing")
	}
	return &listing, nil
}

// MarkListingSold flips the sold flag. The guard on is_sold keeps the flip
// at-most-once even if two purchases race past the service checks.
func (dao *Dao) MarkListingSold(ctx context.Context, listingId int64) error {
	res := dao.DB.WithContext(ctx).Table(model.ListingTableName()).
		Where("listing_id = ? and is_sold = ?", listingId, false).
		Updates(map[string]interface{}{
			"is_sold":     true,
			"update_time": time.Now().UnixMilli(),
		})
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed on mark listing sold")
	}
	if res.RowsAffected == 0 {
		return errors.New("listing already sold")
	}
	return nil
}

func (dao *Dao) DeleteListing(ctx context.Context, listingId int64) error {
	err := dao.DB.WithContext(ctx).Table(model.ListingTableName()).
		Where("listing_id = ?", listingId).
		Delete(&model.Listing{}).Error
	if err != nil {
		return errors.Wrap(err, "failed on delete listing")
	}
	return nil
}

func (dao *Dao) ListListings(ctx context.Context, page, pageSize int) ([]model.Listing, int64, error) {
	var listings []model.Listing
	var count int64
	tx := dao.DB.WithContext(ctx).Table(model.ListingTableName())
	if err := tx.Count(&count).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed on count listings")
	}
	err := tx.Order("listing_id desc").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&listings).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed on list listings")
	}
	return listings, count, nil
}
