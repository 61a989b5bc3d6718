package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/elethan/lina/internal/dto"
	"github.com/elethan/lina/internal/model"
	"github.com/elethan/lina/internal/repository"
	pkgerrors "github.com/elethan/lina/pkg/errors"
	"github.com/elethan/lina/pkg/gridview"
)

// ── 报修模块校验消息（原样返回给前端） ──

const (
	MsgSelectRequest  = "At least one request must be selected"
	MsgSelectEngineer = "An engineer must be selected"
)

// RequestService 报修业务接口
type RequestService interface {
	List(ctx context.Context, q *dto.RequestListQuery) (*dto.RequestListResponse, error)
	Create(ctx context.Context, req *dto.CreateRequestRequest) (*dto.CreateRequestResponse, error)
	// AssignEngineer 批量分配工程师，单条 UPDATE 在事务内执行
	AssignEngineer(ctx context.Context, req *dto.AssignEngineerRequest) (*dto.AssignEngineerResponse, error)
}

type requestService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewRequestService 创建 RequestService 实例
func NewRequestService(repo *repository.Repository, logger *zap.Logger) RequestService {
	return &requestService{repo: repo, logger: logger, now: time.Now}
}

// ────────────────────── List ──────────────────────

func (s *requestService) List(ctx context.Context, q *dto.RequestListQuery) (*dto.RequestListResponse, error) {
	all, err := loadRequests(ctx, s.repo)
	if err != nil {
		s.logger.Error("查询报修列表失败", zap.Error(err))
		return nil, err
	}

	view, err := filterRequests(all, q.Search, q.Status, q.Unassigned)
	if err != nil {
		return nil, err
	}

	return &dto.RequestListResponse{
		Items:        view,
		Total:        len(view),
		StatusCounts: gridview.StatusCounts(all, func(r dto.RequestResponse) string { return r.Status }),
	}, nil
}

// ────────────────────── Create ──────────────────────

func (s *requestService) Create(ctx context.Context, req *dto.CreateRequestRequest) (*dto.CreateRequestResponse, error) {
	r := &model.Request{
		AssetID:     req.AssetID,
		SystemID:    req.SystemID,
		ReportedBy:  req.ReportedBy,
		CommentText: req.CommentText,
		Status:      model.StatusOpen,
		CreatedAt:   s.now(),
	}
	if err := s.repo.Request.Create(ctx, r); err != nil {
		s.logger.Error("创建报修失败", zap.Error(err))
		return nil, err
	}
	return &dto.CreateRequestResponse{RequestID: r.RequestID}, nil
}

// ────────────────────── AssignEngineer ──────────────────────

func (s *requestService) AssignEngineer(ctx context.Context, req *dto.AssignEngineerRequest) (*dto.AssignEngineerResponse, error) {
	// 1. 校验（访问存储之前）
	if len(req.RequestIDs) == 0 && (req.Selection == nil || len(req.Selection.Rows) == 0) {
		return nil, pkgerrors.NewValidation(MsgSelectRequest)
	}
	if req.EngineerID == 0 {
		return nil, pkgerrors.NewValidation(MsgSelectEngineer)
	}

	// 2. 勾选行还原为报修 ID
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

	// 3. 单条批量更新
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		affected, err := tx.Request.AssignEngineer(ctx, ids, req.EngineerID)
		if err != nil {
			return err
		}
		s.logger.Debug("分配工程师",
			zap.Ints("request_ids", ids),
			zap.Int("engineer_id", req.EngineerID),
			zap.Int64("affected", affected),
		)
		return nil
	})
	if err != nil {
		s.logger.Error("分配工程师失败", zap.Int("engineer_id", req.EngineerID), zap.Error(err))
		return nil, err
	}

	// 返回提交的 ID 数而不是实际命中行数
	return &dto.AssignEngineerResponse{Success: true, AssignedCount: len(ids)}, nil
}

// ── 内部辅助方法 ──

// loadRequests 查询全部报修并转换为列表行
func loadRequests(ctx context.Context, repo *repository.Repository) ([]dto.RequestResponse, error) {
	rows, err := repo.Request.ListWithContext(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RequestResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toRequestResponse(&rows[i]))
	}
	return out, nil
}

var requestGrid = gridview.Fields[dto.RequestResponse]{
	SearchFields: func(r dto.RequestResponse) []string {
		return []string{
			deref(r.SerialNumber),
			deref(r.SiteName),
			deref(r.SystemName),
			deref(r.EngineerName),
			r.ReportedBy,
			r.CommentText,
		}
	},
	Status: func(r dto.RequestResponse) string { return r.Status },
}

func filterRequests(all []dto.RequestResponse, search, status string, unassigned bool) ([]dto.RequestResponse, error) {
	view, err := gridview.Filter(all, gridview.Query{Search: search, Status: status}, requestGrid)
	if err != nil {
		return nil, err
	}
	if !unassigned {
		return view, nil
	}
	out := view[:0]
	for _, r := range view {
		if r.EngineerID == nil {
			out = append(out, r)
		}
	}
	return out, nil
}

// resolveRequestSelection 按当前筛选条件重建报修视图，把位置下标还原为 request_id
func resolveRequestSelection(ctx context.Context, repo *repository.Repository, sel *dto.Selection) ([]int, error) {
	if sel == nil || len(sel.Rows) == 0 {
		return nil, nil
	}
	all, err := loadRequests(ctx, repo)
	if err != nil {
		return nil, err
	}
	view, err := filterRequests(all, sel.Search, sel.Status, sel.Unassigned)
	if err != nil {
		return nil, err
	}
	return gridview.ResolveSelection(view, sel.Rows, func(r dto.RequestResponse) int { return r.RequestID }), nil
}

func toRequestResponse(row *repository.RequestRow) dto.RequestResponse {
	resp := dto.RequestResponse{
		RequestID:    row.RequestID,
		SerialNumber: row.SerialNumber,
		SiteName:     row.SiteName,
		SystemName:   row.SystemName,
		SystemID:     row.SystemID,
		EngineerID:   row.EngineerID,
		ReportedBy:   row.ReportedBy,
		CommentText:  row.CommentText,
		Status:       row.Status,
		CreatedAt:    formatTimePtr(row.CreatedAt),
	}
	// 名、姓均非空时才拼接，列为 NOT NULL，空串视为缺失
	first, last := deref(row.EngineerFirstName), deref(row.EngineerLastName)
	if first != "" && last != "" {
		name := first + " " + last
		resp.EngineerName = &name
	}
	return resp
}
