package middleware

import (
	"bytes"
	"crypto/sha512"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"NFTMarketEngine/src/errcode"
	"NFTMarketEngine/src/xhttp"

	"github.com/gin-gonic/gin"
	"github.com/zeromicro/go-zero/core/stores/kv"
)

const CacheApiPrefix = "apicache:"

type responseCache struct {
	Status int
	Header http.Header
	Data   []byte
}

// CacheApi 缓存GET响应，命中且状态码200时直接返回缓存数据
func CacheApi(store kv.Store, expireSeconds int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil {
			c.Next()
			return
		}
		var data xhttp.Response
		bodyLogWrite := &BodyLogWrite{ResponseWriter: c.Writer, body: bytes.NewBufferString("")}
		c.Writer = bodyLogWrite

		cacheKey := CreateKey(c)
		if cacheKey == "" {
			xhttp.Error(c, errcode.NewCustomErr("cache error:no cache"))
			c.Abort()
			return
		}
		cacheData, err := store.Get(cacheKey)
		if err == nil && cacheData != "" {
			cache := unserialize(cacheData)
			if cache != nil {
				bodyLogWrite.ResponseWriter.WriteHeader(cache.Status)
				for k, vals := range cache.Header {
					for _, v := range vals {
						bodyLogWrite.ResponseWriter.Header().Set(k, v)
					}
				}
				if err := json.Unmarshal(cache.Data, &data); err == nil {
					if data.Code == errcode.CodeOK {
						bodyLogWrite.ResponseWriter.Write(cache.Data)
						c.Abort()
						return
					}
				}
			}
		}
		c.Next()

		responseBody := bodyLogWrite.body.Bytes()
		if err := json.Unmarshal(responseBody, &data); err == nil {
			if data.Code == errcode.CodeOK {
				_ = store.Setex(cacheKey, serialize(responseCache{
					Status: c.Writer.Status(),
					Header: c.Writer.Header().Clone(),
					Data:   responseBody,
				}), expireSeconds)
			}
		}
	}
}

// CreateKey 以请求方法+路径+参数+请求体哈希生成缓存key
func CreateKey(c *gin.Context) string {
	var body []byte
	if c.Request.Body != nil {
		var buf bytes.Buffer
		tee := io.TeeReader(c.Request.Body, &buf)
		body, _ = io.ReadAll(tee)
		c.Request.Body = io.NopCloser(&buf)
	}
	h := sha512.New()
	h.Write([]byte(c.Request.Method))
	h.Write([]byte(c.Request.URL.RequestURI()))
	h.Write(body)
	return fmt.Sprintf("%s%x", CacheApiPrefix, h.Sum(nil))
}

func serialize(cache responseCache) string {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(cache); err != nil {
		return ""
	}
	return buf.String()
}

func unserialize(data string) *responseCache {
	var cache responseCache
	if err := gob.NewDecoder(bytes.NewBufferString(data)).Decode(&cache); err != nil {
		return nil
	}
	return &cache
}
