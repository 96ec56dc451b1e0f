package controller

import (
	"NFTMarketEngine/src/entity"
	"NFTMarketEngine/src/errcode"
	"NFTMarketEngine/src/service"
	"NFTMarketEngine/src/service/svc"
	"NFTMarketEngine/src/xhttp"

	"github.com/gin-gonic/gin"
)

// 创建auction
func CreateAuctionHandler(serverCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req entity.CreateAuctionReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		res, err := service.CreateAuction(c.Request.Context(), serverCtx, req)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, entity.AuctionRes{Result: res})
	}
}

// 出价
func PlaceBidHandler(serverCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		auctionId, ok := pathId(c, "id")
		if !ok {
			return
		}
		var req entity.PlaceBidReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		res, err := service.PlaceBid(c.Request.Context(), serverCtx, auctionId, req)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, entity.AuctionRes{Result: res})
	}
}

// 被超出价退款提取
func WithdrawBidHandler(serverCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		auctionId, ok := pathId(c, "id")
		if !ok {
			return
		}
		var req entity.WithdrawBidReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		res, err := service.WithdrawBid(c.Request.Context(), serverCtx, auctionId, req.Caller)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, entity.AuctionRes{Result: res})
	}
}

// 结算auction
func EndAuctionHandler(serverCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		auctionId, ok := pathId(c, "id")
		if !ok {
			return
		}
		var req entity.EndAuctionReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		res, err := service.EndAuction(c.Request.Context(), serverCtx, auctionId, req.Caller)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, entity.AuctionRes{Result: res})
	}
}

// 无出价时卖家撤回auction
func WithdrawAuctionHandler(serverCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		auctionId, ok := pathId(c, "id")
		if !ok {
			return
		}
		var req entity.WithdrawAuctionReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		if err := service.WithdrawAuction(c.Request.Context(), serverCtx, auctionId, req.Caller); err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, entity.AuctionRes{Result: "withdrawn"})
	}
}

// auction详情
func AuctionDetailHandler(serverCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		auctionId, ok := pathId(c, "id")
		if !ok {
			return
		}
		res, err := service.GetAuction(c.Request.Context(), serverCtx, auctionId)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, entity.AuctionRes{Result: res})
	}
}

// auction列表
func AuctionsHandler(serverCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, pageSize := pagination(c)
		res, count, err := service.ListAuctions(c.Request.Context(), serverCtx, page, pageSize)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, entity.AuctionListRes{Result: res, Count: count})
	}
}
