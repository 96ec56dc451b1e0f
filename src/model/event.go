package model

import (
	"github.com/shopspring/decimal"
)

// Event types, one per engine state transition.
const (
	EventListingCreated   = "listing_created"
	EventListingSold      = "listing_sold"
	EventListingCancelled = "listing_cancelled"
	EventAuctionCreated   = "auction_created"
	EventBidPlaced        = "bid_placed"
	EventBidRefunded      = "bid_refunded"
	EventAuctionEnded     = "auction_ended"
	EventAuctionWithdrawn = "auction_withdrawn"
	EventFundsWithdrawn   = "funds_withdrawn"
	EventTaxUpdated       = "tax_updated"
	EventUserBanned       = "user_banned"
	EventUserUnbanned     = "user_unbanned"
)

// MarketEvent is the append-only notification stream read by external
// indexers. Rows are written in the same transaction as the transition they
// describe, so each transition appears exactly once.
type MarketEvent struct {
	Id         int64           `gorm:"column:id;primaryKey;autoIncrement"`
	EventId    string          `gorm:"column:event_id;uniqueIndex"` // uuid
	Type       string          `gorm:"column:type;index"`
	ChainId    int             `gorm:"column:chain_id"`
	Actor      string          `gorm:"column:actor"`
	ListingId  int64           `gorm:"column:listing_id;index"`
	AuctionId  int64           `gorm:"column:auction_id;index"`
	Currency   string          `gorm:"column:currency"`
	Amount     decimal.Decimal `gorm:"column:amount;type:decimal(78,0)"`
	CreateTime int64           `gorm:"column:create_time"`
}

func MarketEventTableName() string {
	return "market_events"
}

func (MarketEvent) TableName() string {
	return MarketEventTableName()
}
