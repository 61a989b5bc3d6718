package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/elethan/lina/internal/dto"
	"github.com/elethan/lina/internal/model"
	"github.com/elethan/lina/internal/repository"
	pkgerrors "github.com/elethan/lina/pkg/errors"
	"github.com/elethan/lina/pkg/gridview"
)

// ── 工单模块业务错误 ──

var (
	ErrNoMatchingRequests = errors.New("No matching requests found")
	ErrWorkOrderNotFound  = errors.New("工单不存在")
	ErrEngineerNotFound   = errors.New("工程师不存在")
)

const (
	MsgInvalidStatus   = "Status must be one of Open, In Progress, Closed"
	MsgSelectEngineers = "At least one engineer must be selected"
)

// descriptionSeparator 合并报修描述时的分隔符
const descriptionSeparator = " | "

// WorkOrderService 工单业务接口
type WorkOrderService interface {
	List(ctx context.Context, q *dto.WorkOrderListQuery) (*dto.WorkOrderListResponse, error)
	// Create 将若干报修合并为一张工单，全部写入在同一事务内完成
	Create(ctx context.Context, req *dto.CreateWorkOrderRequest) (*dto.CreateWorkOrderResponse, error)
	GetByID(ctx context.Context, id int) (*dto.WorkOrderDetailResponse, error)
	UpdateStatus(ctx context.Context, id int, req *dto.UpdateWorkOrderStatusRequest) (*dto.WorkOrderDetailResponse, error)
	AssignEngineers(ctx context.Context, id int, req *dto.AssignWorkOrderEngineersRequest) (*dto.WorkOrderDetailResponse, error)
}

type workOrderService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewWorkOrderService 创建 WorkOrderService 实例
func NewWorkOrderService(repo *repository.Repository, logger *zap.Logger) WorkOrderService {
	return &workOrderService{repo: repo, logger: logger, now: time.Now}
}

// ────────────────────── List ──────────────────────

func (s *workOrderService) List(ctx context.Context, q *dto.WorkOrderListQuery) (*dto.WorkOrderListResponse, error) {
	all, err := loadWorkOrders(ctx, s.repo)
	if err != nil {
		s.logger.Error("查询工单列表失败", zap.Error(err))
		return nil, err
	}

	view, err := filterWorkOrders(all, q)
	if err != nil {
		return nil, err
	}

	items := make([]dto.WorkOrderResponse, 0, len(view))
	for _, w := range view {
		items = append(items, w.resp)
	}

	return &dto.WorkOrderListResponse{
		Items:        items,
		Total:        len(items),
		StatusCounts: gridview.StatusCounts(all, func(w workOrderItem) string { return w.resp.Status }),
	}, nil
}

// ────────────────────── Create ──────────────────────

func (s *workOrderService) Create(ctx context.Context, req *dto.CreateWorkOrderRequest) (*dto.CreateWorkOrderResponse, error) {
	if len(req.RequestIDs) == 0 && (req.Selection == nil || len(req.Selection.Rows) == 0) {
		return nil, pkgerrors.NewValidation(MsgSelectRequest)
	}

	ids := req.RequestIDs
	if len(ids) == 0 {
		resolved, err := resolveRequestSelection(ctx, s.repo, req.Selection)
		if err != nil {
			s.logger.Error("还原勾选行失败", zap.Error(err))
			return nil, err
		}
		if len(resolved) == 0 {
			return nil, pkgerrors.NewValidation(MsgSelectRequest)
		}
		ids = resolved
	}

	var woID int
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		// 1. 取出存在的报修（按 request_id 升序），部分命中照常继续
		requests, err := tx.Request.ListByIDs(ctx, ids)
		if err != nil {
			return err
		}
		if len(requests) == 0 {
			return ErrNoMatchingRequests
		}

		// 2. 设备与子系统取第一条报修
		first := requests[0]

		// 3. 描述按取出顺序拼接
		texts := make([]string, 0, len(requests))
		fetched := make([]int, 0, len(requests))
		for _, r := range requests {
			texts = append(texts, r.CommentText)
			fetched = append(fetched, r.RequestID)
		}

		// 4. 新建工单
		wo := &model.WorkOrder{
			AssetID:     first.AssetID,
			SystemID:    first.SystemID,
			Description: strings.Join(texts, descriptionSeparator),
			Status:      model.StatusOpen,
			StartAt:     s.now(),
		}
		if err := tx.WorkOrder.Create(ctx, wo); err != nil {
			return err
		}

		// 5. 仅关联实际取到的报修，不写入悬空 ID
		if err := tx.WorkOrder.LinkRequests(ctx, wo.WorkOrderID, fetched); err != nil {
			return err
		}

		woID = wo.WorkOrderID
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNoMatchingRequests) {
			return nil, err
		}
		s.logger.Error("创建工单失败", zap.Ints("request_ids", ids), zap.Error(err))
		return nil, err
	}

	s.logger.Info("工单已创建", zap.Int("wo_id", woID), zap.Ints("request_ids", ids))
	return &dto.CreateWorkOrderResponse{WorkOrderID: woID}, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *workOrderService) GetByID(ctx context.Context, id int) (*dto.WorkOrderDetailResponse, error) {
	return s.detail(ctx, s.repo, id)
}

// ────────────────────── UpdateStatus ──────────────────────

func (s *workOrderService) UpdateStatus(ctx context.Context, id int, req *dto.UpdateWorkOrderStatusRequest) (*dto.WorkOrderDetailResponse, error) {
	if !model.ValidStatus(req.Status) {
		return nil, pkgerrors.NewValidation(MsgInvalidStatus)
	}

	var resp *dto.WorkOrderDetailResponse
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		wo, err := tx.WorkOrder.GetByID(ctx, id)
		if err != nil {
			return err
		}

		// 关闭时记录结束时间，重新打开时清空
		var endAt *time.Time
		if req.Status == model.StatusClosed {
			if wo.Status == model.StatusClosed && wo.EndAt != nil {
				endAt = wo.EndAt
			} else {
				now := s.now()
				endAt = &now
			}
		}

		if err := tx.WorkOrder.UpdateStatus(ctx, id, req.Status, endAt); err != nil {
			return err
		}
		resp, err = s.detail(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, s.mapWorkOrderError(err, id, "更新工单状态失败")
	}
	return resp, nil
}

// ────────────────────── AssignEngineers ──────────────────────

func (s *workOrderService) AssignEngineers(ctx context.Context, id int, req *dto.AssignWorkOrderEngineersRequest) (*dto.WorkOrderDetailResponse, error) {
	engineerIDs := uniqueSorted(req.EngineerIDs)
	if len(engineerIDs) == 0 {
		return nil, pkgerrors.NewValidation(MsgSelectEngineers)
	}

	var resp *dto.WorkOrderDetailResponse
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if _, err := tx.WorkOrder.GetByID(ctx, id); err != nil {
			return err
		}
		found, err := tx.Engineer.CountByIDs(ctx, engineerIDs)
		if err != nil {
			return err
		}
		if int(found) != len(engineerIDs) {
			return ErrEngineerNotFound
		}
		if err := tx.WorkOrder.ReplaceEngineers(ctx, id, engineerIDs); err != nil {
			return err
		}
		resp, err = s.detail(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, s.mapWorkOrderError(err, id, "设置工单工程师失败")
	}
	return resp, nil
}

// ── 内部辅助方法 ──

func (s *workOrderService) detail(ctx context.Context, repo *repository.Repository, id int) (*dto.WorkOrderDetailResponse, error) {
	wo, err := repo.WorkOrder.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkOrderNotFound
		}
		s.logger.Error("查询工单失败", zap.Int("wo_id", id), zap.Error(err))
		return nil, err
	}

	requestIDs, err := repo.WorkOrder.ListRequestIDs(ctx, id)
	if err != nil {
		s.logger.Error("查询工单关联报修失败", zap.Int("wo_id", id), zap.Error(err))
		return nil, err
	}
	engineerIDs, err := repo.WorkOrder.ListEngineerIDs(ctx, id)
	if err != nil {
		s.logger.Error("查询工单工程师失败", zap.Int("wo_id", id), zap.Error(err))
		return nil, err
	}
	if requestIDs == nil {
		requestIDs = []int{}
	}
	if engineerIDs == nil {
		engineerIDs = []int{}
	}

	return &dto.WorkOrderDetailResponse{
		WorkOrderID: wo.WorkOrderID,
		AssetID:     wo.AssetID,
		SystemID:    wo.SystemID,
		Description: wo.Description,
		Status:      wo.Status,
		StartAt:     wo.StartAt.Format(timeLayout),
		EndAt:       formatTimePtr(wo.EndAt),
		RequestIDs:  requestIDs,
		EngineerIDs: engineerIDs,
	}, nil
}

func (s *workOrderService) mapWorkOrderError(err error, id int, msg string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, ErrWorkOrderNotFound):
		return ErrWorkOrderNotFound
	case errors.Is(err, ErrEngineerNotFound):
		return ErrEngineerNotFound
	}
	s.logger.Error(msg, zap.Int("wo_id", id), zap.Error(err))
	return err
}

// workOrderItem 列表行及其筛选用的原始开始时间
type workOrderItem struct {
	resp    dto.WorkOrderResponse
	startAt *time.Time
}

// loadWorkOrders 组装工单列表：基础行 + 关联报修数 + 工程师姓名
func loadWorkOrders(ctx context.Context, repo *repository.Repository) ([]workOrderItem, error) {
	rows, err := repo.WorkOrder.ListWithContext(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := repo.WorkOrder.CountRequests(ctx)
	if err != nil {
		return nil, err
	}
	names, err := repo.WorkOrder.ListEngineerNames(ctx)
	if err != nil {
		return nil, err
	}

	countByWO := make(map[int]int64, len(counts))
	for _, c := range counts {
		countByWO[c.WorkOrderID] = c.RequestCount
	}
	namesByWO := make(map[int][]string)
	for _, n := range names {
		// 左连接未命中或姓名全空时跳过
		if n.FirstName == nil && n.LastName == nil {
			continue
		}
		if name := joinName(n.FirstName, n.LastName); name != "" {
			namesByWO[n.WorkOrderID] = append(namesByWO[n.WorkOrderID], name)
		}
	}

	items := make([]workOrderItem, 0, len(rows))
	for _, r := range rows {
		engineers := namesByWO[r.WorkOrderID]
		if engineers == nil {
			engineers = []string{}
		}
		items = append(items, workOrderItem{
			resp: dto.WorkOrderResponse{
				WorkOrderID:  r.WorkOrderID,
				SerialNumber: r.SerialNumber,
				SiteName:     r.SiteName,
				SystemName:   r.SystemName,
				Description:  r.Description,
				Status:       r.Status,
				StartAt:      formatTimePtr(r.StartAt),
				EndAt:        formatTimePtr(r.EndAt),
				RequestCount: countByWO[r.WorkOrderID],
				Engineers:    engineers,
			},
			startAt: r.StartAt,
		})
	}
	return items, nil
}

var workOrderGrid = gridview.Fields[workOrderItem]{
	SearchFields: func(w workOrderItem) []string {
		fields := []string{
			deref(w.resp.SerialNumber),
			deref(w.resp.SiteName),
			deref(w.resp.SystemName),
			w.resp.Description,
		}
		return append(fields, w.resp.Engineers...)
	},
	Status: func(w workOrderItem) string { return w.resp.Status },
	Date:   func(w workOrderItem) *time.Time { return w.startAt },
}

func filterWorkOrders(all []workOrderItem, q *dto.WorkOrderListQuery) ([]workOrderItem, error) {
	view, err := gridview.Filter(all, gridview.Query{
		Search:   q.Search,
		Status:   q.Status,
		DateFrom: q.DateFrom,
		DateTo:   q.DateTo,
	}, workOrderGrid)
	if err != nil {
		return nil, pkgerrors.NewValidation(err.Error())
	}
	return view, nil
}
