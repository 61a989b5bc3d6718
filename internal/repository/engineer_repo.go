package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/elethan/lina/internal/model"
)

// EngineerRepository 工程师数据访问接口
type EngineerRepository interface {
	List(ctx context.Context) ([]model.Engineer, error)
	GetByID(ctx context.Context, id int) (*model.Engineer, error)
	CountByIDs(ctx context.Context, ids []int) (int64, error)
}

type engineerRepo struct {
	db *gorm.DB
}

// NewEngineerRepo 创建 EngineerRepository 实例
func NewEngineerRepo(db *gorm.DB) EngineerRepository {
	return &engineerRepo{db: db}
}

func (r *engineerRepo) List(ctx context.Context) ([]model.Engineer, error) {
	var engineers []model.Engineer
	err := r.db.WithContext(ctx).
		Order("engineer_id ASC").
		Find(&engineers).Error
	return engineers, err
}

func (r *engineerRepo) GetByID(ctx context.Context, id int) (*model.Engineer, error) {
	var e model.Engineer
	err := r.db.WithContext(ctx).
		Where("engineer_id = ?", id).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *engineerRepo) CountByIDs(ctx context.Context, ids []int) (int64, error) {
	var count int64
	if len(ids) == 0 {
		return 0, nil
	}
	err := r.db.WithContext(ctx).
		Model(&model.Engineer{}).
		Where("engineer_id IN ?", ids).
		Count(&count).Error
	return count, err
}
