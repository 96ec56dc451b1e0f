package dao

import (
	"context"

	"github.com/zeromicro/go-zero/core/stores/kv"
	"gorm.io/gorm"
)

type Dao struct {
	ctx     context.Context
	DB      *gorm.DB
	KvStore kv.Store
}

func New(ctx context.Context, db *gorm.DB, kvStore kv.Store) *Dao {
	return &Dao{
		ctx:     ctx,
		DB:      db,
		KvStore: kvStore,
	}
}

// WithTx returns a Dao bound to the given transaction. Engine operations run
// all their reads and writes through one transaction so a failure rolls back
// every effect.
func (dao *Dao) WithTx(tx *gorm.DB) *Dao {
	return &Dao{
		ctx:     dao.ctx,
		DB:      tx,
		KvStore: dao.KvStore,
	}
}
