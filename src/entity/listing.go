package entity

import "github.com/shopspring/decimal"

// 创建direct sale请求参数
type CreateListingReq struct {
	Caller          string          `json:"caller"`           //卖家地址
	ChainId         int             `json:"chain_id"`         //链id
	PaymentToken    string          `json:"payment_token"`    //支付代币地址，零地址表示原生币
	AssetAddress    string          `json:"asset_address"`    //资产合约地址
	AssetId         string          `json:"asset_id"`         //资产id
	Price           decimal.Decimal `json:"price"`            //定价（基础单位整数）
	Erc1155Quantity int64           `json:"erc1155_quantity"` //数量，0表示ERC721单件
}

// 购买请求参数
type PurchaseReq struct {
	Caller       string          `json:"caller"`        //买家地址
	OfferedPrice decimal.Decimal `json:"offered_price"` //ERC20支付时声明的金额
	NativeValue  decimal.Decimal `json:"native_value"`  //原生币支付时附带的金额
}

// 取消请求参数
type CancelListingReq struct {
	Caller string `json:"caller"`
}

type ListingRes struct {
	Result interface{} `json:"result"`
}

type ListingListRes struct {
	Result interface{} `json:"result"`
	Count  int64       `json:"count"`
}

// ListingInfo is the read model of one direct sale.
type ListingInfo struct {
	ListingId       int64           `json:"listing_id"`
	ChainId         int             `json:"chain_id"`
	Seller          string          `json:"seller"`
	AssetAddress    string          `json:"asset_address"`
	AssetId         string          `json:"asset_id"`
	Erc1155Quantity int64           `json:"erc1155_quantity"`
	PaymentToken    string          `json:"payment_token"`
	Price           decimal.Decimal `json:"price"`
	IsSold          bool            `json:"is_sold"`
	CreateTime      int64           `json:"create_time"`
}

// PurchaseResult reports the settlement split of one purchase.
type PurchaseResult struct {
	ListingId      int64           `json:"listing_id"`
	Buyer          string          `json:"buyer"`
	GrossPaid      decimal.Decimal `json:"gross_paid"`      //买家实付（含买方税）
	NetPrice       decimal.Decimal `json:"net_price"`       //剔除买方税后的净价
	SellerProceeds decimal.Decimal `json:"seller_proceeds"` //卖家入账（净价减卖方税）
	TreasuryFee    decimal.Decimal `json:"treasury_fee"`    //国库入账（双边税合计）
}
