package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/elethan/lina/internal/model"
)

// AssetSystemName 设备与子系统的关联行
type AssetSystemName struct {
	AssetID    int
	SystemID   int
	SystemName string
}

// AssetRepository 设备台账数据访问接口
type AssetRepository interface {
	Create(ctx context.Context, asset *model.Asset) error
	// List 返回全部设备（预加载院区），按 asset_id 升序
	List(ctx context.Context) ([]model.Asset, error)
	ListSystemLinks(ctx context.Context) ([]AssetSystemName, error)
	LinkSystems(ctx context.Context, assetID int, systemIDs []int) error
}

type assetRepo struct {
	db *gorm.DB
}

// NewAssetRepo 创建 AssetRepository 实例
func NewAssetRepo(db *gorm.DB) AssetRepository {
	return &assetRepo{db: db}
}

func (r *assetRepo) Create(ctx context.Context, asset *model.Asset) error {
	return r.db.WithContext(ctx).Create(asset).Error
}

func (r *assetRepo) List(ctx context.Context) ([]model.Asset, error) {
	var assets []model.Asset
	err := r.db.WithContext(ctx).
		Preload("Site").
		Order("asset_id ASC").
		Find(&assets).Error
	return assets, err
}

func (r *assetRepo) ListSystemLinks(ctx context.Context) ([]AssetSystemName, error) {
	var rows []AssetSystemName
	err := r.db.WithContext(ctx).
		Model(&model.AssetSystem{}).
		Select("asset_systems.asset_id, asset_systems.system_id, systems.system_name").
		Joins("JOIN systems ON systems.system_id = asset_systems.system_id AND systems.deleted_at IS NULL").
		Order("asset_systems.asset_id ASC, asset_systems.system_id ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *assetRepo) LinkSystems(ctx context.Context, assetID int, systemIDs []int) error {
	if len(systemIDs) == 0 {
		return nil
	}
	links := make([]model.AssetSystem, 0, len(systemIDs))
	for _, id := range systemIDs {
		links = append(links, model.AssetSystem{AssetID: assetID, SystemID: id})
	}
	return r.db.WithContext(ctx).Create(&links).Error
}

// ── 院区 ──

// SiteRepository 院区数据访问接口
type SiteRepository interface {
	Create(ctx context.Context, site *model.Site) error
	List(ctx context.Context) ([]model.Site, error)
}

type siteRepo struct {
	db *gorm.DB
}

// NewSiteRepo 创建 SiteRepository 实例
func NewSiteRepo(db *gorm.DB) SiteRepository {
	return &siteRepo{db: db}
}

func (r *siteRepo) Create(ctx context.Context, site *model.Site) error {
	return r.db.WithContext(ctx).Create(site).Error
}

func (r *siteRepo) List(ctx context.Context) ([]model.Site, error) {
	var sites []model.Site
	err := r.db.WithContext(ctx).Order("site_name ASC").Find(&sites).Error
	return sites, err
}

// ── 子系统 ──

// SystemRepository 子系统数据访问接口
type SystemRepository interface {
	Create(ctx context.Context, system *model.System) error
	List(ctx context.Context) ([]model.System, error)
}

type systemRepo struct {
	db *gorm.DB
}

// NewSystemRepo 创建 SystemRepository 实例
func NewSystemRepo(db *gorm.DB) SystemRepository {
	return &systemRepo{db: db}
}

func (r *systemRepo) Create(ctx context.Context, system *model.System) error {
	return r.db.WithContext(ctx).Create(system).Error
}

func (r *systemRepo) List(ctx context.Context) ([]model.System, error) {
	var systems []model.System
	err := r.db.WithContext(ctx).Order("system_name ASC").Find(&systems).Error
	return systems, err
}
