package svc

import (
	"context"
	"sync"

	"NFTMarketEngine/src/chain"
	"NFTMarketEngine/src/config"
	"NFTMarketEngine/src/dao"
	"NFTMarketEngine/src/logger"

	"github.com/pkg/errors"
	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/kv"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"gorm.io/gorm"
)

type ServerCtx struct {
	C       *config.Config
	DB      *gorm.DB
	Dao     *dao.Dao
	KvStore kv.Store
	// NodeSrvs holds one custody client per supported chain.
	NodeSrvs map[int]chain.Client
	// EngineMu serializes every state-mutating marketplace operation. One
	// writer at a time plus per-operation transactions is the whole
	// concurrency story off-chain.
	EngineMu sync.Mutex
}

func NewServiceContext(c *config.Config) (*ServerCtx, error) {
	//1、日志初始化
	_, err := logger.SetUp(c.Log)
	if err != nil {
		return nil, err
	}

	//2、redis kv存储初始化
	var kvStore kv.Store
	if c.Kv != nil && len(c.Kv.Redis) > 0 {
		var kvConf kv.KvConf
		for _, con := range c.Kv.Redis {
			kvConf = append(kvConf, cache.NodeConf{
				RedisConf: redis.RedisConf{
					Host: con.Host,
					Type: con.Type,
					Pass: con.Pass,
				},
				Weight: 1,
			})
		}
		kvStore = kv.NewStore(kvConf)
	}

	//3、数据库初始化
	db, err := dao.NewDB(&c.DB)
	if err != nil {
		return nil, err
	}

	//4、链上custody客户端初始化
	nodeSrvs := make(map[int]chain.Client)
	for _, supported := range c.ChainSupported {
		client, err := chain.NewEvmClient(
			context.Background(),
			supported.Endpoint,
			supported.Name,
			supported.ChainId,
			supported.OperatorKey,
		)
		if err != nil {
			return nil, errors.Wrap(err, "failed on start chain custody client")
		}
		nodeSrvs[supported.ChainId] = client
	}

	//5、dao层初始化
	d := dao.New(context.Background(), db, kvStore)

	//6、服务上下文
	serverCtx := NewServerCtx(WithDB(db), WithDao(d), WithKv(kvStore), WithNodeSrvs(nodeSrvs))
	serverCtx.C = c
	return serverCtx, nil
}

type CtxConfig struct {
	db       *gorm.DB
	dao      *dao.Dao
	kvStore  kv.Store
	nodeSrvs map[int]chain.Client
}

type CtxOption func(conf *CtxConfig)

func NewServerCtx(options ...CtxOption) *ServerCtx {
	c := &CtxConfig{}
	for _, opt := range options {
		opt(c)
	}
	return &ServerCtx{
		DB:       c.db,
		Dao:      c.dao,
		KvStore:  c.kvStore,
		NodeSrvs: c.nodeSrvs,
	}
}

func WithDB(db *gorm.DB) CtxOption {
	return func(conf *CtxConfig) {
		conf.db = db
	}
}

func WithDao(dao *dao.Dao) CtxOption {
	return func(conf *CtxConfig) {
		conf.dao = dao
	}
}

func WithKv(kvStore kv.Store) CtxOption {
	return func(conf *CtxConfig) {
		conf.kvStore = kvStore
	}
}

func WithNodeSrvs(nodeSrvs map[int]chain.Client) CtxOption {
	return func(conf *CtxConfig) {
		conf.nodeSrvs = nodeSrvs
	}
}

// Node returns the custody client of a chain.
func (s *ServerCtx) Node(chainId int) (chain.Client, error) {
	node, ok := s.NodeSrvs[chainId]
	if !ok {
		return nil, errors.Errorf("unsupported chain id: %d", chainId)
	}
	return node, nil
}
