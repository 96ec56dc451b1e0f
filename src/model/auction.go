package model

import (
	"github.com/shopspring/decimal"
)

// Auction is an ascending-price auction. The row is deleted when the seller
// withdraws a zero-bid auction and kept with IsEnded=true after settlement.
// CurrentBidPrice holds the net (buy-tax-excluded) leading bid.
type Auction struct {
	Id              int64           `gorm:"column:id;primaryKey;autoIncrement"`
	AuctionId       int64           `gorm:"column:auction_id;uniqueIndex"` // engine-allocated, never reused
	ChainId         int             `gorm:"column:chain_id"`
	Seller          string          `gorm:"column:seller;index"`
	AssetAddress    string          `gorm:"column:asset_address"`
	AssetId         string          `gorm:"column:asset_id"`
	AssetKind       int8            `gorm:"column:asset_kind"`
	Erc1155Quantity int64           `gorm:"column:erc1155_quantity"`
	PriceToken      string          `gorm:"column:price_token"`
	FloorPrice      decimal.Decimal `gorm:"column:floor_price;type:decimal(78,0)"`
	StartTime       int64           `gorm:"column:start_time"`
	EndTime         int64           `gorm:"column:end_time"`
	BidIncrement    decimal.Decimal `gorm:"column:bid_increment;type:decimal(78,0)"`
	BidCount        int64           `gorm:"column:bid_count"`
	CurrentBidPrice decimal.Decimal `gorm:"column:current_bid_price;type:decimal(78,0)"`
	CurrentBidOwner string          `gorm:"column:current_bid_owner"`
	IsEnded         bool            `gorm:"column:is_ended"`
	CreateTime      int64           `gorm:"column:create_time"`
	UpdateTime      int64           `gorm:"column:update_time"`
}

func AuctionTableName() string {
	return "auctions"
}

func (Auction) TableName() string {
	return AuctionTableName()
}

// BidRefund holds the escrowed refund owed to an outbid bidder. Presence of a
// row is the escrow; rows are deleted when withdrawn, never zeroed in place.
type BidRefund struct {
	Id         int64           `gorm:"column:id;primaryKey;autoIncrement"`
	AuctionId  int64           `gorm:"column:auction_id;uniqueIndex:uk_auction_bidder"`
	Bidder     string          `gorm:"column:bidder;uniqueIndex:uk_auction_bidder"`
	ChainId    int             `gorm:"column:chain_id"`
	Currency   string          `gorm:"column:currency"`
	Amount     decimal.Decimal `gorm:"column:amount;type:decimal(78,0)"`
	CreateTime int64           `gorm:"column:create_time"`
	UpdateTime int64           `gorm:"column:update_time"`
}

func BidRefundTableName() string {
	return "bid_refunds"
}

func (BidRefund) TableName() string {
	return BidRefundTableName()
}
