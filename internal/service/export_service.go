package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/elethan/lina/internal/dto"
	"github.com/elethan/lina/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportWorkOrders 按列表筛选条件导出工单，列与表格页面一致
	ExportWorkOrders(ctx context.Context, q *dto.WorkOrderListQuery) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger, now: time.Now}
}

var workOrderExportHeaders = []string{
	"WO #", "Serial Number", "Site", "System", "Description",
	"Status", "Start", "End", "Requests", "Engineers",
}

// ═══════════════════════════════════════════════════════════
// ExportWorkOrders，工单导出为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单个 Sheet "Work Orders"
//   - 第 1 行标题，第 2 行表头，第 3 行起每张工单一行
//   - 无数据时仅输出表头
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportWorkOrders(ctx context.Context, q *dto.WorkOrderListQuery) (*bytes.Buffer, string, error) {
	// 1. 查询并筛选
	all, err := loadWorkOrders(ctx, s.repo)
	if err != nil {
		s.logger.Error("查询工单列表失败", zap.Error(err))
		return nil, "", err
	}
	view, err := filterWorkOrders(all, q)
	if err != nil {
		return nil, "", err
	}

	// 2. 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Work Orders"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	// 删除默认 Sheet1
	f.DeleteSheet("Sheet1")

	// 列宽
	widths := []float64{8, 16, 18, 16, 60, 12, 20, 20, 10, 30}
	for i, w := range widths {
		col := colName(i)
		f.SetColWidth(sheetName, col, col, w)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	generated := s.now()
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("Work Orders (%s)", generated.Format("2006-01-02 15:04")))
	f.MergeCell(sheetName, "A1", cell(colName(len(workOrderExportHeaders)-1), 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	for i, h := range workOrderExportHeaders {
		f.SetCellValue(sheetName, cell(colName(i), 2), h)
	}
	f.SetCellStyle(sheetName, "A2", cell(colName(len(workOrderExportHeaders)-1), 2), headerStyle)

	// 数据行
	row := 3
	for _, w := range view {
		r := w.resp
		values := []interface{}{
			r.WorkOrderID,
			deref(r.SerialNumber),
			deref(r.SiteName),
			deref(r.SystemName),
			r.Description,
			r.Status,
			deref(r.StartAt),
			deref(r.EndAt),
			r.RequestCount,
			strings.Join(r.Engineers, ", "),
		}
		for i, v := range values {
			f.SetCellValue(sheetName, cell(colName(i), row), v)
		}
		row++
	}

	// 3. 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("work_orders_%s.xlsx", generated.Format("20060102"))
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
