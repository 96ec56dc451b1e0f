package controller

import (
	"strconv"

	"NFTMarketEngine/src/entity"
	"NFTMarketEngine/src/errcode"
	"NFTMarketEngine/src/service"
	"NFTMarketEngine/src/service/svc"
	"NFTMarketEngine/src/xhttp"

	"github.com/gin-gonic/gin"
)

// 提取pending withdrawal余额
func WithdrawFundsHandler(serverCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req entity.WithdrawFundsReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		res, err := service.WithdrawFunds(c.Request.Context(), serverCtx, req)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, entity.FundsRes{Result: res})
	}
}

// 查询单币种余额
func BalanceHandler(serverCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		chainId, err := strconv.Atoi(c.DefaultQuery("chain_id", "0"))
		if err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		currency := c.Params.ByName("currency")
		address := c.Params.ByName("address")
		res, err := service.GetBalance(c.Request.Context(), serverCtx, chainId, currency, address)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, entity.FundsRes{Result: res})
	}
}

// 查询受益人全部余额
func BalancesHandler(serverCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		address := c.Params.ByName("address")
		res, err := service.ListBalances(c.Request.Context(), serverCtx, address)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, entity.FundsRes{Result: res})
	}
}
