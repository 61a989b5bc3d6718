package dto

// ── 报修模块 DTO ──

// RequestListQuery 报修列表查询参数
type RequestListQuery struct {
	Search     string `form:"search"`
	Status     string `form:"status"`
	Unassigned bool   `form:"unassigned"` // 仅未分配工程师
}

// Selection 网格中的勾选状态：rows 为当前筛选视图中的位置下标
type Selection struct {
	Search     string `json:"search"`
	Status     string `json:"status"`
	Unassigned bool   `json:"unassigned"`
	Rows       []int  `json:"rows"`
}

// CreateRequestRequest 提交报修请求
type CreateRequestRequest struct {
	AssetID     *int   `json:"asset_id"`
	SystemID    *int   `json:"system_id"`
	ReportedBy  string `json:"reported_by"  binding:"required,max=200"`
	CommentText string `json:"comment_text" binding:"required"`
}

// AssignEngineerRequest 批量分配工程师
// request_ids 与 selection 二选一，同时给出时以 request_ids 为准
type AssignEngineerRequest struct {
	RequestIDs []int      `json:"request_ids"`
	EngineerID int        `json:"engineer_id"`
	Selection  *Selection `json:"selection"`
}
