package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/elethan/lina/internal/model"
)

// LastCompletion 某台设备最近一次完成 PM 的时间
type LastCompletion struct {
	AssetID     int
	CompletedAt time.Time
}

// PMRepository 预防性维护数据访问接口
type PMRepository interface {
	CreateTask(ctx context.Context, task *model.PMTask) error
	// ListTasks systemID 为 nil 时返回全部任务
	ListTasks(ctx context.Context, systemID *int) ([]model.PMTask, error)
	CreateInstance(ctx context.Context, pm *model.AssetPM) error
	LastCompletedByAsset(ctx context.Context) ([]LastCompletion, error)
}

type pmRepo struct {
	db *gorm.DB
}

// NewPMRepo 创建 PMRepository 实例
func NewPMRepo(db *gorm.DB) PMRepository {
	return &pmRepo{db: db}
}

func (r *pmRepo) CreateTask(ctx context.Context, task *model.PMTask) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *pmRepo) ListTasks(ctx context.Context, systemID *int) ([]model.PMTask, error) {
	var tasks []model.PMTask
	db := r.db.WithContext(ctx)
	if systemID != nil {
		db = db.Where("system_id = ?", *systemID)
	}
	err := db.Order("task_id ASC").Find(&tasks).Error
	return tasks, err
}

func (r *pmRepo) CreateInstance(ctx context.Context, pm *model.AssetPM) error {
	return r.db.WithContext(ctx).Create(pm).Error
}

func (r *pmRepo) LastCompletedByAsset(ctx context.Context) ([]LastCompletion, error) {
	type row struct {
		AssetID     int
		CompletedAt *time.Time
	}
	var rows []row
	// 聚合结果在 sqlite 下丢失列类型，先取明细再在内存中求最大值
	err := r.db.WithContext(ctx).
		Model(&model.AssetPM{}).
		Select("asset_id, completed_at").
		Where("asset_id IS NOT NULL AND completed_at IS NOT NULL").
		Order("asset_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	var out []LastCompletion
	for _, rw := range rows {
		if rw.CompletedAt == nil {
			continue
		}
		n := len(out)
		if n > 0 && out[n-1].AssetID == rw.AssetID {
			if rw.CompletedAt.After(out[n-1].CompletedAt) {
				out[n-1].CompletedAt = *rw.CompletedAt
			}
			continue
		}
		out = append(out, LastCompletion{AssetID: rw.AssetID, CompletedAt: *rw.CompletedAt})
	}
	return out, nil
}
