package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/elethan/lina/internal/model"
)

// RequestRow 报修列表行：报修 + 设备序列号 + 院区 + 子系统 + 工程师姓名
// 左连接未命中的字段为 nil
type RequestRow struct {
	RequestID         int
	SerialNumber      *string
	SiteName          *string
	SystemName        *string
	SystemID          *int
	EngineerID        *int
	ReportedBy        string
	CommentText       string
	Status            string
	EngineerFirstName *string
	EngineerLastName  *string
	CreatedAt         *time.Time
}

// RequestRepository 报修请求数据访问接口
type RequestRepository interface {
	Create(ctx context.Context, req *model.Request) error
	GetByID(ctx context.Context, id int) (*model.Request, error)
	// ListWithContext 返回全部报修及其关联展示字段，按 request_id 升序
	ListWithContext(ctx context.Context) ([]RequestRow, error)
	// ListByIDs 按 request_id 升序返回存在的报修，不存在的 ID 被忽略
	ListByIDs(ctx context.Context, ids []int) ([]model.Request, error)
	// AssignEngineer 单条 UPDATE 批量设置工程师，返回实际命中行数
	AssignEngineer(ctx context.Context, ids []int, engineerID int) (int64, error)
}

type requestRepo struct {
	db *gorm.DB
}

// NewRequestRepo 创建 RequestRepository 实例
func NewRequestRepo(db *gorm.DB) RequestRepository {
	return &requestRepo{db: db}
}

func (r *requestRepo) Create(ctx context.Context, req *model.Request) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *requestRepo) GetByID(ctx context.Context, id int) (*model.Request, error) {
	var req model.Request
	err := r.db.WithContext(ctx).
		Where("request_id = ?", id).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requestRepo) ListWithContext(ctx context.Context) ([]RequestRow, error) {
	var rows []RequestRow
	err := r.db.WithContext(ctx).
		Model(&model.Request{}).
		Select(`user_requests.request_id,
			assets.serial_number,
			sites.site_name,
			systems.system_name,
			user_requests.system_id,
			user_requests.engineer_id,
			user_requests.reported_by,
			user_requests.comment_text,
			user_requests.status,
			engineers.first_name AS engineer_first_name,
			engineers.last_name AS engineer_last_name,
			user_requests.created_at`).
		Joins("LEFT JOIN assets ON assets.asset_id = user_requests.asset_id AND assets.deleted_at IS NULL").
		Joins("LEFT JOIN sites ON sites.site_id = assets.site_id AND sites.deleted_at IS NULL").
		Joins("LEFT JOIN systems ON systems.system_id = user_requests.system_id AND systems.deleted_at IS NULL").
		Joins("LEFT JOIN engineers ON engineers.engineer_id = user_requests.engineer_id AND engineers.deleted_at IS NULL").
		Order("user_requests.request_id ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *requestRepo) ListByIDs(ctx context.Context, ids []int) ([]model.Request, error) {
	var requests []model.Request
	if len(ids) == 0 {
		return requests, nil
	}
	err := r.db.WithContext(ctx).
		Where("request_id IN ?", ids).
		Order("request_id ASC").
		Find(&requests).Error
	return requests, err
}

func (r *requestRepo) AssignEngineer(ctx context.Context, ids []int, engineerID int) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Request{}).
		Where("request_id IN ?", ids).
		Update("engineer_id", engineerID)
	return result.RowsAffected, result.Error
}
