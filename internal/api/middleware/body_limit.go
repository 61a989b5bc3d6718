package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/elethan/lina/pkg/response"
)

// BodyLimit 请求体大小上限，超出后 handler 读取 body 时报错（绑定失败返回 400）
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 && c.Request.Body != nil {
			if c.Request.ContentLength > maxBytes {
				response.Error(c, http.StatusRequestEntityTooLarge, response.CodeBodyTooLarge, "请求体过大")
				c.Abort()
				return
			}
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
