package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/elethan/lina/config"
	"github.com/elethan/lina/internal/model"
	"github.com/elethan/lina/internal/repository"
)

// ErrSeedPasswordMissing 未配置管理员初始密码
var ErrSeedPasswordMissing = errors.New("seed.admin_password 未配置")

// SeedResult 种子数据写入结果
type SeedResult struct {
	AdminCreated bool
	AdminEmail   string
	Permissions  int
}

// SeedService 开发环境种子数据
type SeedService interface {
	// Seed 幂等：管理员已存在时跳过，授权表按组合去重写入
	Seed(ctx context.Context, cfg *config.SeedConfig) (*SeedResult, error)
}

type seedService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSeedService 创建 SeedService 实例
func NewSeedService(repo *repository.Repository, logger *zap.Logger) SeedService {
	return &seedService{repo: repo, logger: logger}
}

func (s *seedService) Seed(ctx context.Context, cfg *config.SeedConfig) (*SeedResult, error) {
	email := repository.NormalizeEmail(cfg.AdminEmail)
	result := &SeedResult{AdminEmail: email}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		perms := model.DefaultRolePermissions()
		if err := tx.RolePermission.BatchUpsert(ctx, perms); err != nil {
			return err
		}
		result.Permissions = len(perms)

		_, err := tx.User.GetByEmail(ctx, email)
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if cfg.AdminPassword == "" {
			return ErrSeedPasswordMissing
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := &model.User{
			UserID:        uuid.New().String(),
			Name:          cfg.AdminName,
			Email:         email,
			EmailVerified: true,
			Role:          model.RoleAdmin,
		}
		if err := tx.User.Create(ctx, user); err != nil {
			return err
		}
		account := &model.Account{
			AccountID:    uuid.New().String(),
			UserID:       user.UserID,
			ProviderID:   model.ProviderCredential,
			PasswordHash: string(hash),
		}
		if err := tx.Account.Create(ctx, account); err != nil {
			return err
		}
		result.AdminCreated = true
		return nil
	})
	if err != nil {
		s.logger.Error("写入种子数据失败", zap.Error(err))
		return nil, err
	}
	return result, nil
}
