package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/elethan/lina/internal/auth"
	pkgerrors "github.com/elethan/lina/pkg/errors"
	"github.com/elethan/lina/pkg/response"
)

// MustGetPrincipal 读取认证中间件写入的调用方身份。
// 未认证时写入 401 响应并返回 false，调用方应直接 return。
func MustGetPrincipal(c *gin.Context) (*auth.Principal, bool) {
	p, ok := auth.PrincipalFrom(c)
	if !ok {
		response.Unauthorized(c, response.CodeUnauthorized, "未认证")
		return nil, false
	}
	return p, true
}

// parseIDParam 解析路径中的整数 ID
func parseIDParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		response.BadRequest(c, response.CodeInvalidParams, "ID 格式无效")
		return 0, false
	}
	return id, true
}

// writeValidation 校验错误原样返回消息，已处理时返回 true
func writeValidation(c *gin.Context, err error) bool {
	if msg, ok := pkgerrors.AsValidation(err); ok {
		response.Validation(c, msg)
		return true
	}
	return false
}
