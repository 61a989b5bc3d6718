package response

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

// 通用业务码，模块业务码由各 handler 自行定义（11xxx 认证、13xxx 工单、16xxx 导出）
const (
	CodeOK            = 0
	CodeInvalidParams = 10001
	CodeUnauthorized  = 10002
	CodeForbidden     = 10003
	CodeRateLimited   = 10004
	CodeBodyTooLarge  = 10005
	CodeInternal      = 50000
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Details string      `json:"details,omitempty"`
}

// OK 200 成功响应
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: CodeOK, Message: "success", Data: data})
}

// Created 201 创建成功（报修、工单）
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Code: CodeOK, Message: "success", Data: data})
}

// Attachment 文件下载响应，文件名按 RFC 5987 编码
// disposition 为 attachment（Excel 导出）或 inline（日历订阅）
func Attachment(c *gin.Context, disposition, filename, contentType string, body []byte) {
	c.Header("Content-Disposition", disposition+"; filename*=UTF-8''"+url.PathEscape(filename))
	c.Data(http.StatusOK, contentType, body)
}

// Error 通用错误响应
func Error(c *gin.Context, httpStatus int, code int, message string) {
	c.JSON(httpStatus, Response{Code: code, Message: message})
}

// InvalidParams 请求绑定失败，details 携带绑定错误便于前端排查
func InvalidParams(c *gin.Context, err error) {
	resp := Response{Code: CodeInvalidParams, Message: "参数校验失败"}
	if err != nil {
		resp.Details = err.Error()
	}
	c.JSON(http.StatusBadRequest, resp)
}

// Validation 业务校验失败，message 原样展示给用户
func Validation(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, CodeInvalidParams, message)
}

// BadRequest 400
func BadRequest(c *gin.Context, code int, message string) {
	Error(c, http.StatusBadRequest, code, message)
}

// Unauthorized 401
func Unauthorized(c *gin.Context, code int, message string) {
	Error(c, http.StatusUnauthorized, code, message)
}

// Forbidden 403
func Forbidden(c *gin.Context, code int, message string) {
	Error(c, http.StatusForbidden, code, message)
}

// NotFound 404，工单、报修不存在时使用
func NotFound(c *gin.Context, code int, message string) {
	Error(c, http.StatusNotFound, code, message)
}

// InternalError 500，细节只写日志不返回
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, CodeInternal, "服务器内部错误")
}
