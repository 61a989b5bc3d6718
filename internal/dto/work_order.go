package dto

// ── 工单模块 DTO ──

// WorkOrderListQuery 工单列表查询参数
type WorkOrderListQuery struct {
	Search   string `form:"search"`
	Status   string `form:"status"`
	DateFrom string `form:"date_from"` // YYYY-MM-DD
	DateTo   string `form:"date_to"`   // YYYY-MM-DD，含当天
}

// CreateWorkOrderRequest 由报修合并生成工单
type CreateWorkOrderRequest struct {
	RequestIDs []int      `json:"request_ids"`
	Selection  *Selection `json:"selection"`
}

// UpdateWorkOrderStatusRequest 更新工单状态
type UpdateWorkOrderStatusRequest struct {
	Status string `json:"status"`
}

// AssignWorkOrderEngineersRequest 设置工单工程师（整体替换）
type AssignWorkOrderEngineersRequest struct {
	EngineerIDs []int `json:"engineer_ids"`
}
