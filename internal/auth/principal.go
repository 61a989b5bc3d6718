// Package auth 定义认证后写入请求上下文的当前用户信息
package auth

import (
	"time"

	"github.com/gin-gonic/gin"
)

const principalKey = "auth.principal"

// Principal JWT 校验通过后的调用方身份
type Principal struct {
	UserID    string
	Role      string
	Email     string
	TokenID   string    // Access Token JTI，登出时拉黑
	ExpiresAt time.Time // Access Token 过期时间
}

// SetPrincipal 写入上下文，仅由认证中间件调用
func SetPrincipal(c *gin.Context, p *Principal) {
	c.Set(principalKey, p)
}

// PrincipalFrom 读取当前调用方，未认证时返回 false
func PrincipalFrom(c *gin.Context) (*Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return nil, false
	}
	p, ok := v.(*Principal)
	if !ok || p == nil || p.UserID == "" {
		return nil, false
	}
	return p, true
}
