package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/elethan/lina/internal/dto"
	"github.com/elethan/lina/internal/repository"
)

// EngineerService 工程师业务接口
type EngineerService interface {
	// ListOptions 分配下拉框选项
	ListOptions(ctx context.Context) ([]dto.EngineerOption, error)
}

type engineerService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEngineerService 创建 EngineerService 实例
func NewEngineerService(repo *repository.Repository, logger *zap.Logger) EngineerService {
	return &engineerService{repo: repo, logger: logger}
}

func (s *engineerService) ListOptions(ctx context.Context) ([]dto.EngineerOption, error) {
	engineers, err := s.repo.Engineer.List(ctx)
	if err != nil {
		s.logger.Error("列出工程师失败", zap.Error(err))
		return nil, err
	}

	options := make([]dto.EngineerOption, 0, len(engineers))
	for _, e := range engineers {
		options = append(options, dto.EngineerOption{ID: e.EngineerID, Name: e.FullName()})
	}
	return options, nil
}
