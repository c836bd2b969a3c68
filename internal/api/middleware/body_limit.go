package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"iyf-showcase/backend/pkg/response"
)

// BodyLimit 请求体大小限制中间件
// 声明了 Content-Length 的超限请求直接拒绝，其余在读取时截断
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, 10005, "Request body too large")
			c.Abort()
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()

		if c.Writer.Written() {
			return
		}
		var maxErr *http.MaxBytesError
		for _, err := range c.Errors {
			if errors.As(err.Err, &maxErr) {
				response.Error(c, http.StatusRequestEntityTooLarge, 10005, "Request body too large")
				return
			}
		}
	}
}
