package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ayura/internal/core/auth"
	"ayura/internal/pkg/common"
)

const (
	userIDKey = "user_id"
	roleKey   = "role"
)

// Auth 驗證 Bearer token，失敗時回傳 401
func Auth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			abort(c, common.WrapError(common.ErrUnauthorized, "missing bearer token", nil))
			return
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			common.LogDebug("token rejected",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			abort(c, common.AsCustomError(err))
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set(roleKey, claims.Role)
		c.Next()
	}
}

// OptionalAuth 有合法 token 時設定使用者，否則以匿名身份繼續
func OptionalAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, ok := bearerToken(c); ok {
			if claims, err := tokens.Parse(raw); err == nil {
				c.Set(userIDKey, claims.UserID)
				c.Set(roleKey, claims.Role)
			}
		}
		c.Next()
	}
}

// UserID 取得已驗證的使用者 ID，匿名時為空字串
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// Role 取得已驗證的使用者角色
func Role(c *gin.Context) string {
	return c.GetString(roleKey)
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
