package model

import "time"

// PM 检查项结果
const (
	PMResultPass = "Pass"
	PMResultFail = "Fail"
	PMResultNA   = "N/A"
)

// PMTask 预防性维护任务定义，对应 pm_tasks
type PMTask struct {
	TaskID         int    `gorm:"column:task_id;primaryKey;autoIncrement" json:"task_id"`
	SystemID       *int   `json:"system_id,omitempty"`
	Instruction    string `gorm:"type:text;not null"                       json:"instruction"`
	DocSection     string `gorm:"type:varchar(100)"                        json:"doc_section,omitempty"` // 手册章节
	IntervalMonths int    `gorm:"not null"                                 json:"interval_months"`
	CommonModel
}

// TableName 指定表名
func (PMTask) TableName() string { return "pm_tasks" }

// AssetPM 某台设备的一次 PM 执行，对应 asset_pm
type AssetPM struct {
	PMInstanceID int        `gorm:"column:pm_instance_id;primaryKey;autoIncrement" json:"pm_instance_id"`
	AssetID      *int       `json:"asset_id,omitempty"`
	EngineerID   *int       `json:"engineer_id,omitempty"`
	CreatedAt    time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"            json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	CommonModel
}

// TableName 指定表名
func (AssetPM) TableName() string { return "asset_pm" }

// AssetPMResult 单项检查结果，对应 asset_pm_results
type AssetPMResult struct {
	ResultID     int    `gorm:"column:result_id;primaryKey;autoIncrement" json:"result_id"`
	PMInstanceID *int   `gorm:"column:pm_instance_id"                      json:"pm_instance_id,omitempty"`
	TaskID       *int   `json:"task_id,omitempty"`
	Status       string `gorm:"type:varchar(10);not null"                 json:"status"` // Pass | Fail | N/A
	Findings     string `gorm:"type:text"                                 json:"findings,omitempty"`
	CommonModel
}

// TableName 指定表名
func (AssetPMResult) TableName() string { return "asset_pm_results" }
