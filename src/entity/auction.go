package entity

import "github.com/shopspring/decimal"

// 创建auction请求参数
type CreateAuctionReq struct {
	Caller          string          `json:"caller"`           //卖家地址
	ChainId         int             `json:"chain_id"`         //链id
	PriceToken      string          `json:"price_token"`      //计价代币，零地址表示原生币
	AssetAddress    string          `json:"asset_address"`    //资产合约地址
	AssetId         string          `json:"asset_id"`         //资产id
	Erc1155Quantity int64           `json:"erc1155_quantity"` //数量，0表示ERC721单件
	FloorPrice      decimal.Decimal `json:"floor_price"`      //底价，必须大于0
	StartTime       int64           `json:"start_time"`       //开始时间（unix秒）
	EndTime         int64           `json:"end_time"`         //结束时间（unix秒）
	BidIncrement    decimal.Decimal `json:"bid_increment"`    //最小加价幅度
}

// 出价请求参数
type PlaceBidReq struct {
	Caller      string          `json:"caller"`       //出价人
	BidAmount   decimal.Decimal `json:"bid_amount"`   //ERC20出价金额（毛额）
	NativeValue decimal.Decimal `json:"native_value"` //原生币出价时附带金额（毛额）
}

type WithdrawBidReq struct {
	Caller string `json:"caller"`
}

type EndAuctionReq struct {
	Caller string `json:"caller"`
}

type WithdrawAuctionReq struct {
	Caller string `json:"caller"`
}

type AuctionRes struct {
	Result interface{} `json:"result"`
}

type AuctionListRes struct {
	Result interface{} `json:"result"`
	Count  int64       `json:"count"`
}

// AuctionInfo is the read model of one auction.
type AuctionInfo struct {
	AuctionId       int64           `json:"auction_id"`
	ChainId         int             `json:"chain_id"`
	Seller          string          `json:"seller"`
	AssetAddress    string          `json:"asset_address"`
	AssetId         string          `json:"asset_id"`
	Erc1155Quantity int64           `json:"erc1155_quantity"`
	PriceToken      string          `json:"price_token"`
	FloorPrice      decimal.Decimal `json:"floor_price"`
	StartTime       int64           `json:"start_time"`
	EndTime         int64           `json:"end_time"`
	BidIncrement    decimal.Decimal `json:"bid_increment"`
	BidCount        int64           `json:"bid_count"`
	CurrentBidPrice decimal.Decimal `json:"current_bid_price"` //净价（已剔除买方税）
	CurrentBidOwner string          `json:"current_bid_owner"`
	IsEnded         bool            `json:"is_ended"`
	CreateTime      int64           `json:"create_time"`
}

// BidResult reports an accepted bid.
type BidResult struct {
	AuctionId   int64           `json:"auction_id"`
	Bidder      string          `json:"bidder"`
	GrossAmount decimal.Decimal `json:"gross_amount"` //出价毛额
	NetAmount   decimal.Decimal `json:"net_amount"`   //净价，参与比价的金额
	BidCount    int64           `json:"bid_count"`
}

// SettleResult reports the settlement split of an ended auction.
type SettleResult struct {
	AuctionId      int64           `json:"auction_id"`
	Winner         string          `json:"winner"`
	FinalPrice     decimal.Decimal `json:"final_price"`     //成交净价
	SellerProceeds decimal.Decimal `json:"seller_proceeds"` //卖家入账
	TreasuryFee    decimal.Decimal `json:"treasury_fee"`    //卖方税入账
}
