package model

// 授权资源
const (
	ResourceRequests   = "requests"
	ResourceWorkOrders = "work_orders"
	ResourceAssets     = "assets"
	ResourcePMTasks    = "pm_tasks"
)

// 授权操作
const (
	ActionCreate = "create"
	ActionRead   = "read"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// DefaultRolePermissions 初始授权表，admin 不需要入表（中间件直接放行）
func DefaultRolePermissions() []RolePermission {
	grant := func(role, resource string, actions ...string) []RolePermission {
		out := make([]RolePermission, 0, len(actions))
		for _, a := range actions {
			out = append(out, RolePermission{Role: role, Resource: resource, Action: a})
		}
		return out
	}

	var perms []RolePermission
	perms = append(perms, grant(RoleEngineer, ResourceRequests, ActionRead, ActionCreate, ActionUpdate)...)
	perms = append(perms, grant(RoleEngineer, ResourceWorkOrders, ActionRead, ActionCreate, ActionUpdate)...)
	perms = append(perms, grant(RoleEngineer, ResourceAssets, ActionRead)...)
	perms = append(perms, grant(RoleEngineer, ResourcePMTasks, ActionRead)...)

	perms = append(perms, grant(RoleScientist, ResourceRequests, ActionRead, ActionCreate)...)
	perms = append(perms, grant(RoleScientist, ResourceAssets, ActionRead)...)
	perms = append(perms, grant(RoleScientist, ResourcePMTasks, ActionRead, ActionUpdate)...)

	perms = append(perms, grant(RoleUser, ResourceRequests, ActionCreate)...)
	perms = append(perms, grant(RoleUser, ResourceAssets, ActionRead)...)
	return perms
}
