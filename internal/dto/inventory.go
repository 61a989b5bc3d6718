package dto

// PMTaskQuery PM 任务查询参数
type PMTaskQuery struct {
	SystemID *int `form:"system_id"`
}
