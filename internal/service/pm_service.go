package service

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"github.com/elethan/lina/internal/dto"
	"github.com/elethan/lina/internal/model"
	"github.com/elethan/lina/internal/repository"
)

const pmCalendarProductID = "-//Lina//Preventive Maintenance//EN"

// PMService 预防性维护业务接口
type PMService interface {
	ListTasks(ctx context.Context, q *dto.PMTaskQuery) ([]dto.PMTaskResponse, error)
	// DueItems 计算每台设备 × 其子系统下每个 PM 任务的下次到期日
	DueItems(ctx context.Context) ([]PMDueItem, error)
	// Calendar 以 iCalendar 格式导出到期日
	Calendar(ctx context.Context) (string, error)
}

// PMDueItem 一条 PM 到期记录
type PMDueItem struct {
	AssetID      int
	SerialNumber string
	SystemName   string
	Task         model.PMTask
	DueAt        time.Time
}

type pmService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewPMService 创建 PMService 实例
func NewPMService(repo *repository.Repository, logger *zap.Logger) PMService {
	return &pmService{repo: repo, logger: logger, now: time.Now}
}

// ────────────────────── ListTasks ──────────────────────

func (s *pmService) ListTasks(ctx context.Context, q *dto.PMTaskQuery) ([]dto.PMTaskResponse, error) {
	tasks, err := s.repo.PM.ListTasks(ctx, q.SystemID)
	if err != nil {
		s.logger.Error("列出 PM 任务失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.PMTaskResponse, 0, len(tasks))
	for _, t := range tasks {
		result = append(result, dto.PMTaskResponse{
			TaskID:         t.TaskID,
			SystemID:       t.SystemID,
			Instruction:    t.Instruction,
			DocSection:     t.DocSection,
			IntervalMonths: t.IntervalMonths,
		})
	}
	return result, nil
}

// ────────────────────── DueItems ──────────────────────
//
// 到期日 = 基准日 + interval_months
// 基准日优先级：最近一次完成的 PM > 安装日期 > 验收日期；三者皆无时跳过该设备

func (s *pmService) DueItems(ctx context.Context) ([]PMDueItem, error) {
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
	tasks, err := s.repo.PM.ListTasks(ctx, nil)
	if err != nil {
		s.logger.Error("列出 PM 任务失败", zap.Error(err))
		return nil, err
	}
	completions, err := s.repo.PM.LastCompletedByAsset(ctx)
	if err != nil {
		s.logger.Error("查询 PM 完成记录失败", zap.Error(err))
		return nil, err
	}

	tasksBySystem := make(map[int][]model.PMTask)
	for _, t := range tasks {
		if t.SystemID == nil {
			continue
		}
		tasksBySystem[*t.SystemID] = append(tasksBySystem[*t.SystemID], t)
	}
	linksByAsset := make(map[int][]repository.AssetSystemName)
	for _, l := range links {
		linksByAsset[l.AssetID] = append(linksByAsset[l.AssetID], l)
	}
	lastDone := make(map[int]time.Time, len(completions))
	for _, c := range completions {
		lastDone[c.AssetID] = c.CompletedAt
	}

	var items []PMDueItem
	for _, a := range assets {
		if a.Status == model.AssetDecommissioned {
			continue
		}
		base, ok := lastDone[a.AssetID]
		if !ok {
			switch {
			case a.InstallationDate != nil:
				base = *a.InstallationDate
			case a.CATDate != nil:
				base = *a.CATDate
			default:
				continue
			}
		}
		for _, l := range linksByAsset[a.AssetID] {
			for _, t := range tasksBySystem[l.SystemID] {
				items = append(items, PMDueItem{
					AssetID:      a.AssetID,
					SerialNumber: a.SerialNumber,
					SystemName:   l.SystemName,
					Task:         t,
					DueAt:        base.AddDate(0, t.IntervalMonths, 0),
				})
			}
		}
	}
	return items, nil
}

// ────────────────────── Calendar ──────────────────────

func (s *pmService) Calendar(ctx context.Context) (string, error) {
	items, err := s.DueItems(ctx)
	if err != nil {
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(pmCalendarProductID)

	stamp := s.now().UTC()
	for _, it := range items {
		day := time.Date(it.DueAt.Year(), it.DueAt.Month(), it.DueAt.Day(), 0, 0, 0, 0, time.UTC)

		event := cal.AddEvent(fmt.Sprintf("pm-%d-%d@lina", it.AssetID, it.Task.TaskID))
		event.SetDtStampTime(stamp)
		event.SetAllDayStartAt(day)
		event.SetAllDayEndAt(day.AddDate(0, 0, 1))
		event.SetSummary(fmt.Sprintf("PM %s / %s", it.SerialNumber, it.SystemName))

		desc := it.Task.Instruction
		if it.Task.DocSection != "" {
			desc += " (" + it.Task.DocSection + ")"
		}
		event.SetDescription(desc)
	}

	return cal.Serialize(), nil
}
