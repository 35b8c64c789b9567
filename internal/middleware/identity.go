package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthorKey 上下文中保存作者名的键
const AuthorKey = "author"

// Identity 从前置代理写入的请求头读取当前作者，缺失时使用默认名
//
// 这里只做身份识别，不做认证。
func Identity(header, defaultName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := strings.TrimSpace(c.GetHeader(header))
		if name == "" {
			name = defaultName
		}
		c.Set(AuthorKey, name)
		c.Next()
	}
}

// Author 读取当前作者
func Author(c *gin.Context) string {
	return c.GetString(AuthorKey)
}
