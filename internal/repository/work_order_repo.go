package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/elethan/lina/internal/model"
)

// WorkOrderRow 工单列表行：工单 + 设备序列号 + 院区 + 子系统
type WorkOrderRow struct {
	WorkOrderID  int `gorm:"column:wo_id"`
	SerialNumber *string
	SiteName     *string
	SystemName   *string
	Description  string `gorm:"column:description_of_fault"`
	Status       string
	StartAt      *time.Time
	EndAt        *time.Time
}

// WorkOrderRequestCount 按工单分组的关联报修数
type WorkOrderRequestCount struct {
	WorkOrderID  int `gorm:"column:wo_id"`
	RequestCount int64
}

// WorkOrderEngineerName 工单左连接工程师得到的姓名对，无工程师时姓名为 nil
type WorkOrderEngineerName struct {
	WorkOrderID int `gorm:"column:wo_id"`
	FirstName   *string
	LastName    *string
}

// WorkOrderRepository 工单数据访问接口
type WorkOrderRepository interface {
	Create(ctx context.Context, wo *model.WorkOrder) error
	GetByID(ctx context.Context, id int) (*model.WorkOrder, error)
	ListWithContext(ctx context.Context) ([]WorkOrderRow, error)
	CountRequests(ctx context.Context) ([]WorkOrderRequestCount, error)
	ListEngineerNames(ctx context.Context) ([]WorkOrderEngineerName, error)
	LinkRequests(ctx context.Context, woID int, requestIDs []int) error
	ListRequestIDs(ctx context.Context, woID int) ([]int, error)
	UpdateStatus(ctx context.Context, woID int, status string, endAt *time.Time) error
	ReplaceEngineers(ctx context.Context, woID int, engineerIDs []int) error
	ListEngineerIDs(ctx context.Context, woID int) ([]int, error)
}

type workOrderRepo struct {
	db *gorm.DB
}

// NewWorkOrderRepo 创建 WorkOrderRepository 实例
func NewWorkOrderRepo(db *gorm.DB) WorkOrderRepository {
	return &workOrderRepo{db: db}
}

func (r *workOrderRepo) Create(ctx context.Context, wo *model.WorkOrder) error {
	return r.db.WithContext(ctx).Create(wo).Error
}

func (r *workOrderRepo) GetByID(ctx context.Context, id int) (*model.WorkOrder, error) {
	var wo model.WorkOrder
	err := r.db.WithContext(ctx).
		Where("wo_id = ?", id).
		First(&wo).Error
	if err != nil {
		return nil, err
	}
	return &wo, nil
}

func (r *workOrderRepo) ListWithContext(ctx context.Context) ([]WorkOrderRow, error) {
	var rows []WorkOrderRow
	err := r.db.WithContext(ctx).
		Model(&model.WorkOrder{}).
		Select(`work_orders.wo_id,
			assets.serial_number,
			sites.site_name,
			systems.system_name,
			work_orders.description_of_fault,
			work_orders.status,
			work_orders.start_at,
			work_orders.end_at`).
		Joins("LEFT JOIN assets ON assets.asset_id = work_orders.asset_id AND assets.deleted_at IS NULL").
		Joins("LEFT JOIN sites ON sites.site_id = assets.site_id AND sites.deleted_at IS NULL").
		Joins("LEFT JOIN systems ON systems.system_id = work_orders.system_id AND systems.deleted_at IS NULL").
		Order("work_orders.wo_id ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *workOrderRepo) CountRequests(ctx context.Context) ([]WorkOrderRequestCount, error) {
	var counts []WorkOrderRequestCount
	err := r.db.WithContext(ctx).
		Model(&model.WorkOrderRequest{}).
		Select("wo_id, COUNT(request_id) AS request_count").
		Group("wo_id").
		Scan(&counts).Error
	return counts, err
}

func (r *workOrderRepo) ListEngineerNames(ctx context.Context) ([]WorkOrderEngineerName, error) {
	var rows []WorkOrderEngineerName
	err := r.db.WithContext(ctx).
		Model(&model.WorkOrder{}).
		Select("work_orders.wo_id, engineers.first_name, engineers.last_name").
		Joins("LEFT JOIN work_order_engineers ON work_order_engineers.wo_id = work_orders.wo_id").
		Joins("LEFT JOIN engineers ON engineers.engineer_id = work_order_engineers.engineer_id AND engineers.deleted_at IS NULL").
		Order("work_orders.wo_id ASC, work_order_engineers.engineer_id ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *workOrderRepo) LinkRequests(ctx context.Context, woID int, requestIDs []int) error {
	if len(requestIDs) == 0 {
		return nil
	}
	links := make([]model.WorkOrderRequest, 0, len(requestIDs))
	for _, id := range requestIDs {
		links = append(links, model.WorkOrderRequest{WorkOrderID: woID, RequestID: id})
	}
	return r.db.WithContext(ctx).Create(&links).Error
}

func (r *workOrderRepo) ListRequestIDs(ctx context.Context, woID int) ([]int, error) {
	var ids []int
	err := r.db.WithContext(ctx).
		Model(&model.WorkOrderRequest{}).
		Where("wo_id = ?", woID).
		Order("request_id ASC").
		Pluck("request_id", &ids).Error
	return ids, err
}

func (r *workOrderRepo) UpdateStatus(ctx context.Context, woID int, status string, endAt *time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.WorkOrder{}).
		Where("wo_id = ?", woID).
		Updates(map[string]interface{}{
			"status": status,
			"end_at": endAt,
		}).Error
}

func (r *workOrderRepo) ReplaceEngineers(ctx context.Context, woID int, engineerIDs []int) error {
	if err := r.db.WithContext(ctx).
		Where("wo_id = ?", woID).
		Delete(&model.WorkOrderEngineer{}).Error; err != nil {
		return err
	}
	if len(engineerIDs) == 0 {
		return nil
	}
	links := make([]model.WorkOrderEngineer, 0, len(engineerIDs))
	for _, id := range engineerIDs {
		links = append(links, model.WorkOrderEngineer{WorkOrderID: woID, EngineerID: id})
	}
	return r.db.WithContext(ctx).Create(&links).Error
}

func (r *workOrderRepo) ListEngineerIDs(ctx context.Context, woID int) ([]int, error) {
	var ids []int
	err := r.db.WithContext(ctx).
		Model(&model.WorkOrderEngineer{}).
		Where("wo_id = ?", woID).
		Order("engineer_id ASC").
		Pluck("engineer_id", &ids).Error
	return ids, err
}
