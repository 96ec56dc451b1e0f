package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"NFTMarketEngine/src/chain"
	"NFTMarketEngine/src/chain/mock"
	"NFTMarketEngine/src/config"
	"NFTMarketEngine/src/dao"
	"NFTMarketEngine/src/service/svc"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	testChainId  = 1
	testOwner    = "0x00000000000000000000000000000000000000aa"
	testTreasury = "0x00000000000000000000000000000000000000bb"
	testSeller   = "0x0000000000000000000000000000000000000001"
	testBuyer    = "0x0000000000000000000000000000000000000002"
	testBidder   = "0x0000000000000000000000000000000000000003"
	testAsset    = "0x0000000000000000000000000000000000001111"
	testErc20    = "0x0000000000000000000000000000000000002222"
)

// newTestCtx builds a service context on an in-memory sqlite database and the
// in-memory custody client, then runs the one-time market setup with the given
// tax rates.
func newTestCtx(t *testing.T, sellBp, buyBp int64) (*svc.ServerCtx, *mock.Client) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, dao.Migrate(db))

	node := mock.NewClient()
	serverCtx := svc.NewServerCtx(
		svc.WithDB(db),
		svc.WithDao(dao.New(context.Background(), db, nil)),
		svc.WithNodeSrvs(map[int]chain.Client{testChainId: node}),
	)
	serverCtx.C = &config.Config{
		Market: config.Market{
			Owner:         testOwner,
			Treasury:      testTreasury,
			DefaultSellBp: sellBp,
			DefaultBuyBp:  buyBp,
		},
	}
	require.NoError(t, InitMarket(context.Background(), serverCtx))
	return serverCtx, node
}

func TestInitMarketRunsOnce(t *testing.T) {
	serverCtx, _ := newTestCtx(t, 25, 25)
	err := InitMarket(context.Background(), serverCtx)
	require.Error(t, err)
	require.Contains(t, err.Error(), "already initialized")

	// Boot path stays a no-op once initialized.
	require.NoError(t, EnsureMarket(context.Background(), serverCtx))

	rates, err := GetTaxRates(context.Background(), serverCtx)
	require.NoError(t, err)
	require.Equal(t, int64(25), rates.SellTaxBp)
	require.Equal(t, int64(25), rates.BuyTaxBp)
	require.Equal(t, testTreasury, rates.Treasury)
}
