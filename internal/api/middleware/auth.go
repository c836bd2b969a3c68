package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"iyf-showcase/backend/pkg/jwt"
	"iyf-showcase/backend/pkg/response"
)

// 上下文键
const (
	ctxUsernameKey = "username"
	ctxRoleKey     = "role"
)

// JWTAuth 管理端 JWT 认证中间件
// 从 Authorization: Bearer <token> 中提取并验证 Access Token
func JWTAuth(jwtMgr *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "Missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "Invalid authorization header")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "Token is invalid or expired")
			c.Abort()
			return
		}

		c.Set(ctxUsernameKey, claims.Username)
		c.Set(ctxRoleKey, claims.Role)

		c.Next()
	}
}

// RoleAuth 角色权限中间件
// 检查当前用户是否具有指定角色之一
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := c.GetString(ctxRoleKey)
		if userRole == "" {
			response.Unauthorized(c, 10002, "Unauthenticated")
			c.Abort()
			return
		}

		for _, r := range allowedRoles {
			if userRole == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "Forbidden")
		c.Abort()
	}
}
