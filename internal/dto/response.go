package dto

// ── 认证模块响应 ──

// TokenResponse Token 对响应
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token,omitempty"` // Cookie 模式下可不返回
	ExpiresIn    int          `json:"expires_in"`              // Access Token 有效期（秒）
	User         UserResponse `json:"user"`
}

// UserResponse 用户信息响应（脱敏）
type UserResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Image         string `json:"image,omitempty"`
	Role          string `json:"role"`
	CreatedAt     string `json:"created_at,omitempty"`
}

// ── 报修模块响应 ──

// RequestResponse 报修列表行，未关联的字段为 null
type RequestResponse struct {
	RequestID    int     `json:"request_id"`
	SerialNumber *string `json:"serial_number"`
	SiteName     *string `json:"site_name"`
	SystemName   *string `json:"system_name"`
	SystemID     *int    `json:"system_id"`
	EngineerID   *int    `json:"engineer_id"`
	EngineerName *string `json:"engineer_name"`
	ReportedBy   string  `json:"reported_by"`
	CommentText  string  `json:"comment_text"`
	Status       string  `json:"status"`
	CreatedAt    *string `json:"created_at"`
}

// RequestListResponse 报修列表
type RequestListResponse struct {
	Items        []RequestResponse `json:"items"`
	Total        int               `json:"total"`
	StatusCounts map[string]int    `json:"status_counts"` // 基于未筛选数据
}

// CreateRequestResponse 提交报修结果
type CreateRequestResponse struct {
	RequestID int `json:"request_id"`
}

// AssignEngineerResponse 批量分配结果，assigned_count 为提交的 ID 数
type AssignEngineerResponse struct {
	Success       bool `json:"success"`
	AssignedCount int  `json:"assigned_count"`
}

// EngineerOption 工程师下拉选项
type EngineerOption struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ── 工单模块响应 ──

// WorkOrderResponse 工单列表行
type WorkOrderResponse struct {
	WorkOrderID  int      `json:"wo_id"`
	SerialNumber *string  `json:"serial_number"`
	SiteName     *string  `json:"site_name"`
	SystemName   *string  `json:"system_name"`
	Description  string   `json:"description"`
	Status       string   `json:"status"`
	StartAt      *string  `json:"start_at"`
	EndAt        *string  `json:"end_at"`
	RequestCount int64    `json:"request_count"`
	Engineers    []string `json:"engineers"`
}

// WorkOrderListResponse 工单列表
type WorkOrderListResponse struct {
	Items        []WorkOrderResponse `json:"items"`
	Total        int                 `json:"total"`
	StatusCounts map[string]int      `json:"status_counts"` // 基于未筛选数据
}

// CreateWorkOrderResponse 创建工单结果
type CreateWorkOrderResponse struct {
	WorkOrderID int `json:"wo_id"`
}

// WorkOrderDetailResponse 工单详情
type WorkOrderDetailResponse struct {
	WorkOrderID int     `json:"wo_id"`
	AssetID     *int    `json:"asset_id"`
	SystemID    *int    `json:"system_id"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	StartAt     string  `json:"start_at"`
	EndAt       *string `json:"end_at"`
	RequestIDs  []int   `json:"request_ids"`
	EngineerIDs []int   `json:"engineer_ids"`
}

// ── 设备与 PM 响应 ──

// AssetResponse 设备信息
type AssetResponse struct {
	AssetID          int      `json:"asset_id"`
	SerialNumber     string   `json:"serial_number"`
	ModelName        string   `json:"model_name,omitempty"`
	Status           string   `json:"status"`
	SiteID           *int     `json:"site_id"`
	SiteName         *string  `json:"site_name"`
	Systems          []string `json:"systems"`
	InstallationDate *string  `json:"installation_date"`
	CATDate          *string  `json:"cat_date"`
}

// SiteResponse 院区
type SiteResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// SystemResponse 子系统
type SystemResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// PMTaskResponse PM 任务
type PMTaskResponse struct {
	TaskID         int    `json:"task_id"`
	SystemID       *int   `json:"system_id"`
	Instruction    string `json:"instruction"`
	DocSection     string `json:"doc_section,omitempty"`
	IntervalMonths int    `json:"interval_months"`
}

// [自证通过] internal/dto/response.go
