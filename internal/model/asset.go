package model

import "time"

// 设备状态
const (
	AssetOperational      = "Operational"
	AssetUnderMaintenance = "Under Maintenance"
	AssetDecommissioned   = "Decommissioned"
)

// AssetInfo 设备运行信息，对应 asset_info
type AssetInfo struct {
	InfoID             int        `gorm:"column:info_id;primaryKey;autoIncrement" json:"info_id"`
	MagnetronDate      *time.Time `json:"magnetron_date,omitempty"`
	ThyratronDate      *time.Time `json:"thyratron_date,omitempty"`
	HTHours            *float64   `gorm:"column:ht_hours"                         json:"ht_hours,omitempty"`
	DaysSinceBreakdown int        `gorm:"not null;default:0"                      json:"days_since_breakdown"`
	CommonModel
}

// TableName 指定表名
func (AssetInfo) TableName() string { return "asset_info" }

// Asset 设备台账，对应 assets
type Asset struct {
	AssetID          int        `gorm:"column:asset_id;primaryKey;autoIncrement"      json:"asset_id"`
	SerialNumber     string     `gorm:"type:varchar(100);not null;uniqueIndex"        json:"serial_number"`
	ModelName        string     `gorm:"type:varchar(100)"                             json:"model_name,omitempty"`
	WarrantyYears    *int       `json:"warranty_years,omitempty"`
	CATDate          *time.Time `gorm:"column:cat_date"                               json:"cat_date,omitempty"` // 客户验收日期
	InstallationDate *time.Time `json:"installation_date,omitempty"`
	Status           string     `gorm:"type:varchar(30);not null;default:'Operational'" json:"status"`
	SiteID           *int       `json:"site_id,omitempty"`
	InfoID           *int       `json:"info_id,omitempty"`
	CommonModel

	// 关联
	Site *Site      `gorm:"foreignKey:SiteID;references:SiteID" json:"site,omitempty"`
	Info *AssetInfo `gorm:"foreignKey:InfoID;references:InfoID" json:"info,omitempty"`
}

// TableName 指定表名
func (Asset) TableName() string { return "assets" }

// AssetSystem 设备-子系统多对多，对应 asset_systems
type AssetSystem struct {
	AssetID  int `gorm:"column:asset_id;primaryKey;autoIncrement:false"  json:"asset_id"`
	SystemID int `gorm:"column:system_id;primaryKey;autoIncrement:false" json:"system_id"`
}

// TableName 指定表名
func (AssetSystem) TableName() string { return "asset_systems" }
