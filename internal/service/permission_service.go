package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/elethan/lina/internal/model"
	"github.com/elethan/lina/internal/repository"
)

// PermissionService 角色授权业务接口
type PermissionService interface {
	// Allowed admin 恒为 true，其余角色查 role_permissions
	Allowed(ctx context.Context, role, resource, action string) (bool, error)
}

type permissionService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPermissionService 创建 PermissionService 实例
func NewPermissionService(repo *repository.Repository, logger *zap.Logger) PermissionService {
	return &permissionService{repo: repo, logger: logger}
}

func (s *permissionService) Allowed(ctx context.Context, role, resource, action string) (bool, error) {
	if role == model.RoleAdmin {
		return true, nil
	}
	if !model.ValidRole(role) {
		return false, nil
	}
	ok, err := s.repo.RolePermission.Has(ctx, role, resource, action)
	if err != nil {
		s.logger.Error("查询角色授权失败",
			zap.String("role", role),
			zap.String("resource", resource),
			zap.String("action", action),
			zap.Error(err),
		)
		return false, err
	}
	return ok, nil
}
