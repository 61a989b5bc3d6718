package model

import "strings"

// Engineer 维修工程师，对应 engineers
type Engineer struct {
	EngineerID int     `gorm:"column:engineer_id;primaryKey;autoIncrement" json:"engineer_id"`
	FirstName  string  `gorm:"type:varchar(100);not null"                  json:"first_name"`
	LastName   string  `gorm:"type:varchar(100);not null"                  json:"last_name"`
	UserID     *string `gorm:"type:varchar(36)"                            json:"user_id,omitempty"` // 关联登录账号，可空
	CommonModel
}

// TableName 指定表名
func (Engineer) TableName() string { return "engineers" }

// FullName 名 + 空格 + 姓
func (e Engineer) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}
