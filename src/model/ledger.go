package model

import (
	"github.com/shopspring/decimal"
)

// LedgerBalance is one pending-withdrawal entry: funds owed to a beneficiary in
// one currency on one chain. Settlements only ever accumulate here; the single
// debit path is the funds withdrawal, which deletes the row before paying out.
type LedgerBalance struct {
	Id          int64           `gorm:"column:id;primaryKey;autoIncrement"`
	ChainId     int             `gorm:"column:chain_id;uniqueIndex:uk_currency_beneficiary"`
	Currency    string          `gorm:"column:currency;uniqueIndex:uk_currency_beneficiary"` // zero address => native
	Beneficiary string          `gorm:"column:beneficiary;uniqueIndex:uk_currency_beneficiary"`
	Amount      decimal.Decimal `gorm:"column:amount;type:decimal(78,0)"`
	CreateTime  int64           `gorm:"column:create_time"`
	UpdateTime  int64           `gorm:"column:update_time"`
}

func LedgerBalanceTableName() string {
	return "ledger_balances"
}

func (LedgerBalance) TableName() string {
	return LedgerBalanceTableName()
}
