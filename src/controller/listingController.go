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

// 创建direct sale
func CreateListingHandler(serverCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req entity.CreateListingReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		res, err := service.CreateListing(c.Request.Context(), serverCtx, req)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, entity.ListingRes{Result: res})
	}
}

// 购买
func PurchaseListingHandler(serverCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		listingId, ok := pathId(c, "id")
		if !ok {
			return
		}
		var req entity.PurchaseReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		res, err := service.PurchaseListing(c.Request.Context(), serverCtx, listingId, req)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, entity.ListingRes{Result: res})
	}
}

// 取消direct sale
func CancelListingHandler(serverCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		listingId, ok := pathId(c, "id")
		if !ok {
			return
		}
		var req entity.CancelListingReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		if err := service.CancelListing(c.Request.Context(), serverCtx, listingId, req.Caller); err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, entity.ListingRes{Result: "cancelled"})
	}
}

// listing详情
func ListingDetailHandler(serverCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		listingId, ok := pathId(c, "id")
		if !ok {
			return
		}
		res, err := service.GetListing(c.Request.Context(), serverCtx, listingId)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, entity.ListingRes{Result: res})
	}
}

// listing列表
func ListingsHandler(serverCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, pageSize := pagination(c)
		res, count, err := service.ListListings(c.Request.Context(), serverCtx, page, pageSize)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, entity.ListingListRes{Result: res, Count: count})
	}
}

func pathId(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params.ByName(name), 10, 64)
	if err != nil || id <= 0 {
		xhttp.Error(c, errcode.ErrInvalidParams)
		return 0, false
	}
	return id, true
}

func pagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
