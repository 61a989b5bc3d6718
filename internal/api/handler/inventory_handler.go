package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/elethan/lina/internal/dto"
	"github.com/elethan/lina/internal/service"
	"github.com/elethan/lina/pkg/response"
)

// InventoryHandler 设备台账与 PM 计划 HTTP 处理器
type InventoryHandler struct {
	assetSvc service.AssetService
	pmSvc    service.PMService
}

// NewInventoryHandler 创建 InventoryHandler
func NewInventoryHandler(assetSvc service.AssetService, pmSvc service.PMService) *InventoryHandler {
	return &InventoryHandler{assetSvc: assetSvc, pmSvc: pmSvc}
}

// ListAssets GET /api/v1/assets
func (h *InventoryHandler) ListAssets(c *gin.Context) {
	result, err := h.assetSvc.ListAssets(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// ListSites GET /api/v1/sites
func (h *InventoryHandler) ListSites(c *gin.Context) {
	result, err := h.assetSvc.ListSites(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// ListSystems GET /api/v1/systems
func (h *InventoryHandler) ListSystems(c *gin.Context) {
	result, err := h.assetSvc.ListSystems(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// ListPMTasks GET /api/v1/pm-tasks?system_id=
func (h *InventoryHandler) ListPMTasks(c *gin.Context) {
	var q dto.PMTaskQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.InvalidParams(c, err)
		return
	}

	result, err := h.pmSvc.ListTasks(c.Request.Context(), &q)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// PMCalendar PM 到期日历订阅
// GET /api/v1/pm/calendar.ics
func (h *InventoryHandler) PMCalendar(c *gin.Context) {
	body, err := h.pmSvc.Calendar(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Attachment(c, "inline", "pm.ics", "text/calendar; charset=utf-8", []byte(body))
}
