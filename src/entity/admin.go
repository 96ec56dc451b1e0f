package entity

// 设置税率请求参数，单位基点，上限10000
type SetTaxRatesReq struct {
	Caller    string `json:"caller"`      //必须是market owner
	SellTaxBp int64  `json:"sell_tax_bp"` //卖方税率
	BuyTaxBp  int64  `json:"buy_tax_bp"`  //买方税率
}

// 封禁请求参数
type BanReq struct {
	Caller  string `json:"caller"`  //必须是market owner
	Address string `json:"address"` //被封禁地址
}

type AdminRes struct {
	Result interface{} `json:"result"`
}

// TaxRatesInfo is the current fee policy.
type TaxRatesInfo struct {
	SellTaxBp int64  `json:"sell_tax_bp"`
	BuyTaxBp  int64  `json:"buy_tax_bp"`
	Treasury  string `json:"treasury"`
}
