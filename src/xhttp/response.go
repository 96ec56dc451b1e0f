package xhttp

import (
	"net/http"

	"NFTMarketEngine/src/errcode"

	"github.com/gin-gonic/gin"
)

// Response is the uniform JSON envelope for every API reply.
type Response struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

// OkJson writes a 200 envelope around data.
func OkJson(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: errcode.CodeOK,
		Msg:  "success",
		Data: data,
	})
}

// Error maps an error onto the envelope. Coded errors keep their code,
// anything else is reported as unexpected.
func Error(c *gin.Context, err error) {
	e, ok := err.(*errcode.Err)
	if !ok {
		e = errcode.ErrUnexpected
	}
	c.JSON(httpStatus(e.Code), Response{
		Code: e.Code,
		Msg:  e.Msg,
	})
}

func httpStatus(code int) int {
	switch code {
	case errcode.CodeNotFound:
		return http.StatusNotFound
	case errcode.CodeForbidden:
		return http.StatusForbidden
	case errcode.CodeInvalidParams, errcode.CodeCustom:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
