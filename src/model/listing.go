package model

import (
	"github.com/shopspring/decimal"
)

// Listing is a fixed-price direct sale. The row is deleted on cancel and kept
// with IsSold=true after a purchase, so sold history survives.
type Listing struct {
	Id              int64           `gorm:"column:id;primaryKey;autoIncrement"`
	ListingId       int64           `gorm:"column:listing_id;uniqueIndex"` // engine-allocated, never reused
	ChainId         int             `gorm:"column:chain_id"`
	Seller          string          `gorm:"column:seller;index"`
	AssetAddress    string          `gorm:"column:asset_address"`
	AssetId         string          `gorm:"column:asset_id"`
	AssetKind       int8            `gorm:"column:asset_kind"`       // classified at creation
	Erc1155Quantity int64           `gorm:"column:erc1155_quantity"` // 0 => ERC721 single unit
	PaymentToken    string          `gorm:"column:payment_token"`    // zero address => native currency
	Price           decimal.Decimal `gorm:"column:price;type:decimal(78,0)"`
	IsSold          bool            `gorm:"column:is_sold"`
	CreateTime      int64           `gorm:"column:create_time"`
	UpdateTime      int64           `gorm:"column:update_time"`
}

func ListingTableName() string {
	return "listings"
}

func (Listing) TableName() string {
	return ListingTableName()
}
