package entity

import "github.com/shopspring/decimal"

// 提现请求参数
type WithdrawFundsReq struct {
	Caller   string `json:"caller"`   //受益人地址
	ChainId  int    `json:"chain_id"` //链id
	Currency string `json:"currency"` //币种地址，零地址表示原生币
}

type FundsRes struct {
	Result interface{} `json:"result"`
}

// BalanceInfo is one pending-withdrawal entry.
type BalanceInfo struct {
	ChainId     int             `json:"chain_id"`
	Currency    string          `json:"currency"`
	Beneficiary string          `json:"beneficiary"`
	Amount      decimal.Decimal `json:"amount"`
}

// WithdrawResult reports a completed withdrawal.
type WithdrawResult struct {
	ChainId     int             `json:"chain_id"`
	Currency    string          `json:"currency"`
	Beneficiary string          `json:"beneficiary"`
	Amount      decimal.Decimal `json:"amount"`
}
