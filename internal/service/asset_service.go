package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/elethan/lina/internal/dto"
	"github.com/elethan/lina/internal/repository"
)

// AssetService 设备台账业务接口
type AssetService interface {
	ListAssets(ctx context.Context) ([]dto.AssetResponse, error)
	ListSites(ctx context.Context) ([]dto.SiteResponse, error)
	ListSystems(ctx context.Context) ([]dto.SystemResponse, error)
}

type assetService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAssetService 创建 AssetService 实例
func NewAssetService(repo *repository.Repository, logger *zap.Logger) AssetService {
	return &assetService{repo: repo, logger: logger}
}

func (s *assetService) ListAssets(ctx context.Context) ([]dto.AssetResponse, error) {
	assets, err := s.repo.Asset.List(ctx)
	if err != nil {
		s.logger.Error("列出设备失败", zap.Error(err))
		return nil, err
	}
	links, err := s.repo.Asset.ListSystemLinks(ctx)
	if err != nil {
		s.logger.Error("查询设备子系统失败", zap.Error(err))
		return nil, err
	}

	systemsByAsset := make(map[int][]string)
	for _, l := range links {
		systemsByAsset[l.AssetID] = append(systemsByAsset[l.AssetID], l.SystemName)
	}

	result := make([]dto.AssetResponse, 0, len(assets))
	for _, a := range assets {
		systems := systemsByAsset[a.AssetID]
		if systems == nil {
			systems = []string{}
		}
		resp := dto.AssetResponse{
			AssetID:          a.AssetID,
			SerialNumber:     a.SerialNumber,
			ModelName:        a.ModelName,
			Status:           a.Status,
			SiteID:           a.SiteID,
			Systems:          systems,
			InstallationDate: formatTimePtr(a.InstallationDate),
			CATDate:          formatTimePtr(a.CATDate),
		}
		if a.Site != nil {
			name := a.Site.Name
			resp.SiteName = &name
		}
		result = append(result, resp)
	}
	return result, nil
}

func (s *assetService) ListSites(ctx context.Context) ([]dto.SiteResponse, error) {
	sites, err := s.repo.Site.List(ctx)
	if err != nil {
		s.logger.Error("列出院区失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.SiteResponse, 0, len(sites))
	for _, st := range sites {
		result = append(result, dto.SiteResponse{ID: st.SiteID, Name: st.Name})
	}
	return result, nil
}

func (s *assetService) ListSystems(ctx context.Context) ([]dto.SystemResponse, error) {
	systems, err := s.repo.System.List(ctx)
	if err != nil {
		s.logger.Error("列出子系统失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.SystemResponse, 0, len(systems))
	for _, sys := range systems {
		result = append(result, dto.SystemResponse{ID: sys.SystemID, Name: sys.Name})
	}
	return result, nil
}
