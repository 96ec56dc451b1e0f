package controller

import (
	"NFTMarketEngine/src/entity"
	"NFTMarketEngine/src/errcode"
	"NFTMarketEngine/src/service"
	"NFTMarketEngine/src/service/svc"
	"NFTMarketEngine/src/xhttp"

	"github.com/gin-gonic/gin"
)

// 设置税率（owner专用）
func SetTaxRatesHandler(serverCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req entity.SetTaxRatesReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		res, err := service.SetTaxRates(c.Request.Context(), serverCtx, req)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, entity.AdminRes{Result: res})
	}
}

// 查询税率
func TaxRatesHandler(serverCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := service.GetTaxRates(c.Request.Context(), serverCtx)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, entity.AdminRes{Result: res})
	}
}

// 封禁
func BanHandler(serverCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req entity.BanReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		if err := service.BanUser(c.Request.Context(), serverCtx, req); err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, entity.AdminRes{Result: "banned"})
	}
}

// 解封
func UnbanHandler(serverCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req entity.BanReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		address := c.Params.ByName("address")
		if err := service.UnbanUser(c.Request.Context(), serverCtx, req.Caller, address); err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, entity.AdminRes{Result: "unbanned"})
	}
}

// 封禁列表
func BansHandler(serverCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := service.ListBans(c.Request.Context(), serverCtx)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, entity.AdminRes{Result: res})
	}
}

// 事件流（供外部indexer消费）
func EventsHandler(serverCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, pageSize := pagination(c)
		res, count, err := service.ListEvents(c.Request.Context(), serverCtx, c.Query("type"), page, pageSize)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, entity.AuctionListRes{Result: res, Count: count})
	}
}
