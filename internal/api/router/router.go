package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/elethan/lina/config"
	"github.com/elethan/lina/internal/api/handler"
	"github.com/elethan/lina/internal/api/middleware"
	"github.com/elethan/lina/internal/model"
	"github.com/elethan/lina/pkg/jwt"
	"github.com/elethan/lina/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 为 nil 时黑名单检查与限流降级为放行
func Setup(
	cfg *config.Config,
	h *handler.Handler,
	perms middleware.PermissionChecker,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *gin.Engine {
	r := gin.New()

	// ── 全局中间件 ──
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	limit := middleware.RateLimit(rdb, cfg.Server.RateLimit.Limit, cfg.Server.RateLimit.Window)
	can := func(resource, action string) gin.HandlerFunc {
		return middleware.RequirePermission(perms, resource, action)
	}

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", limit, h.Auth.Login)
			authGroup.POST("/refresh", limit, h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb, logger))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)

			// 报修模块
			requests := authorized.Group("/requests")
			{
				requests.GET("", can(model.ResourceRequests, model.ActionRead), h.Request.ListRequests)
				requests.POST("", limit, can(model.ResourceRequests, model.ActionCreate), h.Request.CreateRequest)
				requests.POST("/assign", limit, can(model.ResourceRequests, model.ActionUpdate), h.Request.AssignEngineer)
			}
			authorized.GET("/engineers", can(model.ResourceRequests, model.ActionRead), h.Request.ListEngineers)

			// 工单模块：user 与 scientist 不可访问
			staff := authorized.Group("")
			staff.Use(middleware.RequireRole(model.RoleAdmin, model.RoleEngineer))
			{
				workOrders := staff.Group("/work-orders")
				{
					workOrders.GET("", can(model.ResourceWorkOrders, model.ActionRead), h.WorkOrder.ListWorkOrders)
					workOrders.POST("", limit, can(model.ResourceWorkOrders, model.ActionCreate), h.WorkOrder.CreateWorkOrder)
					workOrders.GET("/:id", can(model.ResourceWorkOrders, model.ActionRead), h.WorkOrder.GetWorkOrder)
					workOrders.PUT("/:id/status", limit, can(model.ResourceWorkOrders, model.ActionUpdate), h.WorkOrder.UpdateStatus)
					workOrders.PUT("/:id/engineers", limit, can(model.ResourceWorkOrders, model.ActionUpdate), h.WorkOrder.AssignEngineers)
				}

				staff.GET("/export/work-orders", can(model.ResourceWorkOrders, model.ActionRead), h.Export.ExportWorkOrders)
			}

			// 设备台账与 PM
			authorized.GET("/assets", can(model.ResourceAssets, model.ActionRead), h.Inventory.ListAssets)
			authorized.GET("/sites", can(model.ResourceAssets, model.ActionRead), h.Inventory.ListSites)
			authorized.GET("/systems", can(model.ResourceAssets, model.ActionRead), h.Inventory.ListSystems)
			authorized.GET("/pm-tasks", can(model.ResourcePMTasks, model.ActionRead), h.Inventory.ListPMTasks)
			authorized.GET("/pm/calendar.ics", can(model.ResourcePMTasks, model.ActionRead), h.Inventory.PMCalendar)
		}
	}

	return r
}
