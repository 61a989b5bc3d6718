package model

// Site 院区，对应 sites
type Site struct {
	SiteID int    `gorm:"column:site_id;primaryKey;autoIncrement"   json:"site_id"`
	Name   string `gorm:"column:site_name;type:varchar(200);not null;uniqueIndex" json:"site_name"`
	CommonModel
}

// TableName 指定表名
func (Site) TableName() string { return "sites" }

// System 设备子系统，对应 systems
type System struct {
	SystemID int    `gorm:"column:system_id;primaryKey;autoIncrement"   json:"system_id"`
	Name     string `gorm:"column:system_name;type:varchar(200);not null;uniqueIndex" json:"system_name"`
	CommonModel
}

// TableName 指定表名
func (System) TableName() string { return "systems" }
