package cache

import (
	"encoding/json"
	"fmt"

	"NFTMarketEngine/src/entity"

	"github.com/zeromicro/go-zero/core/stores/kv"
)

const (
	auctionKeyPrefix     = "cache:nftm:auction:"
	auctionExpireSeconds = 30
)

// Cached is a thin read cache over the kv store. Never authoritative; every
// miss or error falls through to the database.
type Cached struct {
	kvStore kv.Store
}

func New(kvStore kv.Store) *Cached {
	return &Cached{kvStore: kvStore}
}

func genAuctionKey(auctionId int64) string {
	return fmt.Sprintf("%s%d", auctionKeyPrefix, auctionId)
}

func (c *Cached) GetAuction(auctionId int64) (*entity.AuctionInfo, bool) {
	if c.kvStore == nil {
		return nil, false
	}
	raw, err := c.kvStore.Get(genAuctionKey(auctionId))
	if err != nil || raw == "" {
		return nil, false
	}
	var info entity.AuctionInfo
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		return nil, false
	}
	return &info, true
}

func (c *Cached) SetAuction(auctionId int64, info *entity.AuctionInfo) {
	if c.kvStore == nil {
		return
	}
	raw, err := json.Marshal(info)
	if err != nil {
		return
	}
	_ = c.kvStore.Setex(genAuctionKey(auctionId), string(raw), auctionExpireSeconds)
}

// DelAuction drops the cached read model after a mutation.
func (c *Cached) DelAuction(auctionId int64) {
	if c.kvStore == nil {
		return
	}
	_, _ = c.kvStore.Del(genAuctionKey(auctionId))
}
