package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/elethan/lina/internal/dto"
	"github.com/elethan/lina/internal/service"
	"github.com/elethan/lina/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportWorkOrders 按列表筛选条件导出工单
// GET /api/v1/export/work-orders?search=&status=&date_from=&date_to=
func (h *ExportHandler) ExportWorkOrders(c *gin.Context) {
	var q dto.WorkOrderListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.InvalidParams(c, err)
		return
	}

	buf, filename, err := h.exportSvc.ExportWorkOrders(c.Request.Context(), &q)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	c.Header("Content-Description", "File Transfer")
	response.Attachment(c, "attachment", filename, xlsxContentType, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	if writeValidation(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrExportGenerateFail):
		response.Error(c, http.StatusInternalServerError, 16101, "生成 Excel 失败")
	default:
		response.InternalError(c)
	}
}
