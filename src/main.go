package main

import (
	"context"
	"flag"

	"NFTMarketEngine/src/app"
	"NFTMarketEngine/src/config"
	"NFTMarketEngine/src/router"
	"NFTMarketEngine/src/service"
	"NFTMarketEngine/src/service/svc"
)

const (
	defaultConfigPath = "./config/config.toml"
)

func main() {
	conf := flag.String("conf", defaultConfigPath, "conf file path")
	flag.Parse()
	c, err := config.UnmarshalConfig(*conf)
	if err != nil {
		panic(err)
	}

	for _, chain := range c.ChainSupported {
		if chain.ChainId == 0 || chain.Name == "" {
			panic("invalid chain_supported config")
		}
	}

	serverCtx, err := svc.NewServiceContext(c)
	if err != nil {
		panic(err)
	}

	// 首次启动写入treasury与默认税率，之后为no-op
	if err := service.EnsureMarket(context.Background(), serverCtx); err != nil {
		panic(err)
	}

	r := router.NewRouter(serverCtx)
	platform := app.NewPlatform(c, r, serverCtx)
	platform.Start()
}
