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

func (dao *Dao) CreateAuction(ctx context.Context, auction *model.Auction) error {
	now := time.Now().UnixMilli()
	auction.CreateTime = now
	auction.UpdateTime = now
	err := dao.DB.WithContext(ctx).Table(model.AuctionTableName()).Create(auction).Error
	if err != nil {
		return errors.Wrap(err, "failed on create auction")
	}
	return nil
}

// GetAuction returns the auction or (nil, nil) when no such record exists.
func (dao *Dao) GetAuction(ctx context.Context, auctionId int64) (*model.Auction, error) {
	var auction model.Auction
	err := dao.DB.WithContext(ctx).Table(model.AuctionTableName()).
		Where("auction_id = ?", auctionId).
		First(&auction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed on get auction")
	}
	return &auction, nil
}

// UpdateAuctionBid installs a new leading bid: price, owner, count.
func (dao *Dao) UpdateAuctionBid(ctx context.Context, auctionId int64, price decimal.Decimal, owner string, bidCount int64) error {
	err := dao.DB.WithContext(ctx).Table(model.AuctionTableName()).
		Where("auction_id = ?", auctionId).
		Updates(map[string]interface{}{
			"current_bid_price": price,
			"current_bid_owner": owner,
			"bid_count":         bidCount,
			"update_time":       time.Now().UnixMilli(),
		}).Error
	if err != nil {
		return errors.Wrap(err, "failed on update auction bid")
	}
	return nil
}

// MarkAuctionEnded flips is_ended at most once.
func (dao *Dao) MarkAuctionEnded(ctx context.Context, auctionId int64) error {
	res := dao.DB.WithContext(ctx).Table(model.AuctionTableName()).
		Where("auction_id = ? and is_ended = ?", auctionId, false).
		Updates(map[string]interface{}{
			"is_ended":    true,
			"update_time": time.Now().UnixMilli(),
		})
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed on mark auction ended")
	}
	if res.RowsAffected == 0 {
		return errors.New("auction already ended")
	}
	return nil
}

func (dao *Dao) DeleteAuction(ctx context.Context, auctionId int64) error {
	err := dao.DB.WithContext(ctx).Table(model.AuctionTableName()).
		Where("auction_id = ?", auctionId).
		Delete(&model.Auction{}).Error
	if err != nil {
		return errors.Wrap(err, "failed on delete auction")
	}
	return nil
}

func (dao *Dao) ListAuctions(ctx context.Context, page, pageSize int) ([]model.Auction, int64, error) {
	var auctions []model.Auction
	var count int64
	tx := dao.DB.WithContext(ctx).Table(model.AuctionTableName())
	if err := tx.Count(&count).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed on count auctions")
	}
	err := tx.Order("auction_id desc").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&auctions).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed on list auctions")
	}
	return auctions, count, nil
}

// GetBidRefund returns the withdrawable refund for (auction, bidder), or
// (nil, nil) when nothing is owed.
func (dao *Dao) GetBidRefund(ctx context.Context, auctionId int64, bidder string) (*model.BidRefund, error) {
	var refund model.BidRefund
	err := dao.DB.WithContext(ctx).Table(model.BidRefundTableName()).
		Where("auction_id = ? and bidder = ?", auctionId, bidder).
		First(&refund).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed on get bid refund")
	}
	return &refund, nil
}

// CreditBidRefund accumulates a displaced bid into the bidder's escrow entry.
func (dao *Dao) CreditBidRefund(ctx context.Context, refund *model.BidRefund) error {
	now := time.Now().UnixMilli()
	refund.CreateTime = now
	refund.UpdateTime = now
	err := dao.DB.WithContext(ctx).Table(model.BidRefundTableName()).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "auction_id"}, {Name: "bidder"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"amount":      gorm.Expr("amount + ?", refund.Amount),
				"update_time": now,
			}),
		}).Create(refund).Error
	if err != nil {
		return errors.Wrap(err, "failed on credit bid refund")
	}
	return nil
}

// DeleteBidRefund removes the escrow entry. The owed amount is taken off the
// books before any transfer is attempted.
func (dao *Dao) DeleteBidRefund(ctx context.Context, auctionId int64, bidder string) error {
	res := dao.DB.WithContext(ctx).Table(model.BidRefundTableName()).
		Where("auction_id = ? and bidder = ?", auctionId, bidder).
		Delete(&model.BidRefund{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed on delete bid refund")
	}
	if res.RowsAffected == 0 {
		return errors.New("no bid refund to withdraw")
	}
	return nil
}
