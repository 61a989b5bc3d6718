package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/elethan/lina/internal/dto"
	"github.com/elethan/lina/internal/service"
	"github.com/elethan/lina/pkg/response"
)

// RequestHandler 报修模块 HTTP 处理器
type RequestHandler struct {
	requestSvc  service.RequestService
	engineerSvc service.EngineerService
}

// NewRequestHandler 创建 RequestHandler
func NewRequestHandler(requestSvc service.RequestService, engineerSvc service.EngineerService) *RequestHandler {
	return &RequestHandler{requestSvc: requestSvc, engineerSvc: engineerSvc}
}

// ListRequests 报修列表（含设备、院区、子系统、工程师上下文）
// GET /api/v1/requests?search=&status=&unassigned=
func (h *RequestHandler) ListRequests(c *gin.Context) {
	var q dto.RequestListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.InvalidParams(c, err)
		return
	}

	result, err := h.requestSvc.List(c.Request.Context(), &q)
	if err != nil {
		h.handleRequestError(c, err)
		return
	}

	response.OK(c, result)
}

// CreateRequest 提交报修
// POST /api/v1/requests
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	var req dto.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidParams(c, err)
		return
	}

	result, err := h.requestSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleRequestError(c, err)
		return
	}

	response.Created(c, result)
}

// AssignEngineer 批量分配工程师
// POST /api/v1/requests/assign
func (h *RequestHandler) AssignEngineer(c *gin.Context) {
	var req dto.AssignEngineerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidParams(c, err)
		return
	}

	result, err := h.requestSvc.AssignEngineer(c.Request.Context(), &req)
	if err != nil {
		h.handleRequestError(c, err)
		return
	}

	response.OK(c, result)
}

// ListEngineers 工程师下拉选项
// GET /api/v1/engineers
func (h *RequestHandler) ListEngineers(c *gin.Context) {
	result, err := h.engineerSvc.ListOptions(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

func (h *RequestHandler) handleRequestError(c *gin.Context, err error) {
	if writeValidation(c, err) {
		return
	}
	response.InternalError(c)
}
