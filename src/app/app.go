package app

import (
	"context"

	"NFTMarketEngine/src/config"
	"NFTMarketEngine/src/logger"
	"NFTMarketEngine/src/service/svc"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Platform struct {
	config    *config.Config
	router    *gin.Engine
	serverCtx *svc.ServerCtx
}

func NewPlatform(config *config.Config, router *gin.Engine, serverCtx *svc.ServerCtx) *Platform {
	return &Platform{
		config:    config,
		router:    router,
		serverCtx: serverCtx,
	}
}

func (p *Platform) Start() {
	logger.WithContext(context.Background()).Info("NFTMarket-End run", zap.String("port", p.config.Api.Port))
	err := p.router.Run(p.config.Api.Port)
	if err != nil {
		panic(err)
	}
}
