package router

import (
	"NFTMarketEngine/src/controller"
	"NFTMarketEngine/src/middleware"
	"NFTMarketEngine/src/service/svc"

	"github.com/gin-gonic/gin"
)

func initV1Route(router *gin.Engine, serverCtx *svc.ServerCtx) {
	apiV1 := router.Group("/api/v1")

	listings := apiV1.Group("/listings")
	listings.POST("", controller.CreateListingHandler(serverCtx))                // 创建direct sale
	listings.POST("/:id/purchase", controller.PurchaseListingHandler(serverCtx)) // 购买
	listings.DELETE("/:id", controller.CancelListingHandler(serverCtx))          // 卖家取消
	listings.GET("/:id", controller.ListingDetailHandler(serverCtx))             // listing详情
	listings.GET("", controller.ListingsHandler(serverCtx))                      // listing列表

	auctions := apiV1.Group("/auctions")
	auctions.POST("", controller.CreateAuctionHandler(serverCtx))                   // 创建auction
	auctions.POST("/:id/bids", controller.PlaceBidHandler(serverCtx))               // 出价
	auctions.POST("/:id/bid-withdrawals", controller.WithdrawBidHandler(serverCtx)) // 被超出价退款
	auctions.POST("/:id/end", controller.EndAuctionHandler(serverCtx))              // 结算
	auctions.DELETE("/:id", controller.WithdrawAuctionHandler(serverCtx))           // 无出价撤回
	auctions.GET("/:id", controller.AuctionDetailHandler(serverCtx))                // auction详情
	auctions.GET("", middleware.CacheApi(serverCtx.KvStore, 10),
		controller.AuctionsHandler(serverCtx)) // auction列表

	funds := apiV1.Group("/funds")
	funds.POST("/withdrawals", controller.WithdrawFundsHandler(serverCtx))    // 提现
	funds.GET("/:currency/:address", controller.BalanceHandler(serverCtx))    // 单币种余额
	funds.GET("/beneficiary/:address", controller.BalancesHandler(serverCtx)) // 全部余额

	admin := apiV1.Group("/admin")
	admin.PUT("/tax-rates", controller.SetTaxRatesHandler(serverCtx))  // 设置税率
	admin.GET("/tax-rates", controller.TaxRatesHandler(serverCtx))     // 查询税率
	admin.POST("/bans", controller.BanHandler(serverCtx))              // 封禁
	admin.DELETE("/bans/:address", controller.UnbanHandler(serverCtx)) // 解封
	admin.GET("/bans", controller.BansHandler(serverCtx))              // 封禁列表

	events := apiV1.Group("/events")
	events.GET("", controller.EventsHandler(serverCtx)) // 事件流
}
