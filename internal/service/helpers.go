package service

import (
	"sort"
	"strings"
	"time"
)

const timeLayout = time.RFC3339

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(timeLayout)
	return &s
}

// uniqueSorted 升序去重，过滤非正数 ID
func uniqueSorted(ids []int) []int {
	seen := make(map[int]bool, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if id <= 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// joinName 拼接姓名并去除多余空格
func joinName(first, last *string) string {
	return strings.TrimSpace(deref(first) + " " + deref(last))
}
