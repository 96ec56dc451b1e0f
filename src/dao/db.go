package dao

import (
	"NFTMarketEngine/src/config"
	"NFTMarketEngine/src/model"

	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB opens the mysql connection pool and migrates the engine tables.
func NewDB(c *config.DB) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(c.Dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed on open database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed on get sql db")
	}
	if c.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates/updates the engine tables.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.Listing{},
		&model.Auction{},
		&model.BidRefund{},
		&model.LedgerBalance{},
		&model.BannedUser{},
		&model.MarketSettings{},
		&model.IdSequence{},
		&model.MarketEvent{},
	)
	return errors.Wrap(err, "failed on migrate tables")
}
