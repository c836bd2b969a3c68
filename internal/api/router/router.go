package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"iyf-showcase/backend/config"
	"iyf-showcase/backend/internal/api/handler"
	"iyf-showcase/backend/internal/api/middleware"
	"iyf-showcase/backend/internal/service"
	"iyf-showcase/backend/pkg/jwt"
)

// 管理接口限流：每个 IP 每分钟 10 次
const (
	adminRateLimit  = 10
	adminRateWindow = time.Minute
)

// Setup 初始化并返回 Gin 路由引擎
// limiter 为 nil 时管理接口不限流
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, limiter middleware.RateLimiter, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		// 公开接口
		api.GET("/projects", h.Project.ListProjects)
		api.GET("/students", h.Student.ListStudents)
		api.GET("/students/export", h.Export.ExportStudents)
		api.GET("/seasons", h.Season.ListSeasons)
		api.GET("/seasons/current", h.Season.GetCurrentSeason)
		api.GET("/showcase/overview", h.Overview.GetOverview)

		rateLimit := middleware.RateLimit(limiter, adminRateLimit, adminRateWindow)
		api.POST("/admin/token", rateLimit, h.Admin.IssueToken)

		// 管理接口（需要 admin 角色）
		admin := api.Group("")
		admin.Use(rateLimit, middleware.JWTAuth(jwtMgr), middleware.RoleAuth(service.RoleAdmin))
		{
			admin.GET("/fix-featured", h.Admin.FixFeatured)
			admin.PUT("/seasons/:id/current", h.Admin.SetCurrentSeason)
		}
	}

	return r
}
