// Package gridview 实现数据表格页面的视图状态：模糊搜索、状态/日期筛选、
// 状态计数，以及把“按视图位置选中的行”还原为实体 ID。
package gridview

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

const dateLayout = "2006-01-02"

// ErrInvalidDate 日期筛选参数格式错误
var ErrInvalidDate = errors.New("日期格式应为 YYYY-MM-DD")

// Query 表格视图筛选条件
type Query struct {
	Search   string
	Status   string
	DateFrom string // YYYY-MM-DD，含当天
	DateTo   string // YYYY-MM-DD，含当天 23:59:59.999
	// Location 解析日期所用时区，nil 时取 time.Local，与写入 start_at 的 time.Now() 一致
	Location *time.Location
}

// Fields 描述如何从一行数据中取出筛选所需字段；为 nil 的字段不参与对应筛选
type Fields[T any] struct {
	SearchFields func(T) []string
	Status       func(T) string
	Date         func(T) *time.Time
}

// Filter 按 Query 过滤行，保持原有顺序
// 日期为空的行不受日期区间影响
func Filter[T any](rows []T, q Query, f Fields[T]) ([]T, error) {
	from, to, err := ParseDateRange(q.DateFrom, q.DateTo, q.Location)
	if err != nil {
		return nil, err
	}
	search := strings.TrimSpace(q.Search)

	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if (from != nil || to != nil) && f.Date != nil {
			if d := f.Date(row); d != nil {
				if from != nil && d.Before(*from) {
					continue
				}
				if to != nil && d.After(*to) {
					continue
				}
			}
		}
		if q.Status != "" && f.Status != nil && f.Status(row) != q.Status {
			continue
		}
		if search != "" && f.SearchFields != nil && !matchAny(search, f.SearchFields(row)) {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

// StatusCounts 统计各状态的行数，用于快速筛选徽标（基于未筛选数据）
func StatusCounts[T any](rows []T, status func(T) string) map[string]int {
	counts := make(map[string]int)
	for _, row := range rows {
		counts[status(row)]++
	}
	return counts
}

// ResolveSelection 将视图内的位置索引还原为实体 ID
// 索引按升序去重，越界索引直接丢弃；不校验视图自选中以来是否变化
func ResolveSelection[T any](view []T, keys []int, id func(T) int) []int {
	if len(keys) == 0 {
		return nil
	}
	sorted := append([]int(nil), keys...)
	sort.Ints(sorted)

	ids := make([]int, 0, len(sorted))
	last := -1
	for _, k := range sorted {
		if k == last || k < 0 || k >= len(view) {
			continue
		}
		last = k
		ids = append(ids, id(view[k]))
	}
	return ids
}

// Match 不区分大小写的模糊匹配：子串命中，或搜索词字符按顺序出现在值中
func Match(search, value string) bool {
	if search == "" {
		return true
	}
	if strings.Contains(strings.ToLower(value), strings.ToLower(search)) {
		return true
	}
	return fuzzy.MatchNormalizedFold(search, value)
}

func matchAny(search string, values []string) bool {
	for _, v := range values {
		if Match(search, v) {
			return true
		}
	}
	return false
}

// ParseDateRange 按 loc 的自然日解析日期区间，to 扩展到当天结束
func ParseDateRange(from, to string, loc *time.Location) (*time.Time, *time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	var pFrom, pTo *time.Time
	if from != "" {
		t, err := time.ParseInLocation(dateLayout, from, loc)
		if err != nil {
			return nil, nil, ErrInvalidDate
		}
		pFrom = &t
	}
	if to != "" {
		t, err := time.ParseInLocation(dateLayout, to, loc)
		if err != nil {
			return nil, nil, ErrInvalidDate
		}
		// 按日历日推进，夏令时切换日也是完整一天
		end := t.AddDate(0, 0, 1).Add(-time.Millisecond)
		pTo = &end
	}
	return pFrom, pTo, nil
}
