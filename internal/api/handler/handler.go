package handler

import (
	"github.com/elethan/lina/config"
	"github.com/elethan/lina/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth      *AuthHandler
	Request   *RequestHandler
	WorkOrder *WorkOrderHandler
	Inventory *InventoryHandler
	Export    *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(cfg *config.Config, svc *service.Service) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(svc.Auth, &cfg.Auth),
		Request:   NewRequestHandler(svc.Request, svc.Engineer),
		WorkOrder: NewWorkOrderHandler(svc.WorkOrder),
		Inventory: NewInventoryHandler(svc.Asset, svc.PM),
		Export:    NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
