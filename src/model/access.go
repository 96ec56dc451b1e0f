package model

// BannedUser marks an address that may not create listings/auctions, purchase
// or bid. Banned users keep access to cancels and withdrawals.
type BannedUser struct {
	Id         int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Address    string `gorm:"column:address;uniqueIndex"`
	CreateTime int64  `gorm:"column:create_time"`
}

func BannedUserTableName() string {
	return "banned_users"
}

func (BannedUser) TableName() string {
	return BannedUserTableName()
}

// MarketSettings is the singleton setup row: treasury plus the two tax rates
// in basis points. Written exactly once at initialization; tax rates are the
// only fields that change afterwards.
type MarketSettings struct {
	Id            int64  `gorm:"column:id;primaryKey"`
	Treasury      string `gorm:"column:treasury"`
	SellTaxBp     int64  `gorm:"column:sell_tax_bp"`
	BuyTaxBp      int64  `gorm:"column:buy_tax_bp"`
	InitializedAt int64  `gorm:"column:initialized_at"`
	UpdateTime    int64  `gorm:"column:update_time"`
}

func MarketSettingsTableName() string {
	return "market_settings"
}

func (MarketSettings) TableName() string {
	return MarketSettingsTableName()
}

// IdSequence backs the monotonic listing/auction id generators. Next is the
// value handed out by the next allocation; ids survive record deletion and are
// never reused.
type IdSequence struct {
	Name string `gorm:"column:name;primaryKey"`
	Next int64  `gorm:"column:next"`
}

func IdSequenceTableName() string {
	return "id_sequences"
}

func (IdSequence) TableName() string {
	return IdSequenceTableName()
}
