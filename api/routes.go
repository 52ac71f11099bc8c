package api

import (
	"net/http"

	response "toolhub/api/handlers/common"
	healthhandler "toolhub/api/handlers/health"
	toolhandler "toolhub/api/handlers/tools"
	"toolhub/internal/config"
	"toolhub/internal/middleware"
	"toolhub/internal/tools"
	"toolhub/internal/tools/builtin"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter 组装路由
// 创建注册表、加载内置工具并挂载全部接口
func SetupRouter(cfg *config.Config) *gin.Engine {
	registry := tools.NewRegistry()
	tools.LoadAll(registry, builtin.Builders(cfg))

	recorder := tools.NewPrometheusRecorder(prometheus.DefaultRegisterer)
	metrics := tools.NewMetrics(recorder)
	manager := tools.NewManager(registry, metrics)

	return setupRouterWith(manager, metrics)
}

// setupRouterWith 用既有依赖组装路由（测试可注入）
func setupRouterWith(manager *tools.Manager, metrics *tools.Metrics) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(RequestLogger())
	router.Use(CORS())

	toolHandler := toolhandler.NewToolHandler(manager, metrics)
	healthHandler := healthhandler.NewHealthHandler(manager.Registry())

	// 根路径：服务基本信息
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        "ToolHub API Service",
			"description": "插件式工具注册与执行服务",
			"version":     healthhandler.Version,
			"endpoints": gin.H{
				"health":  "/api/health",
				"tools":   "/api/tools",
				"execute": "/api/execute",
				"crawler": "/api/crawler",
				"metrics": "/metrics",
			},
		})
	})

	apiGroup := router.Group("/api")
	{
		apiGroup.GET("/health", healthHandler.Check)
		apiGroup.GET("/tools", toolHandler.ListTools)
		apiGroup.GET("/tools/stats", toolHandler.GetStats)
		apiGroup.GET("/tools/:name", toolHandler.GetTool)
		apiGroup.GET("/tools/:name/schema", toolHandler.GetToolSchema)
		apiGroup.GET("/execute", toolHandler.ExecuteTool)
		apiGroup.GET("/crawler", toolHandler.Crawler)
	}

	// Prometheus 指标
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 未匹配路由统一返回错误信封
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, response.Err("NOT_FOUND", "请求的接口不存在"))
	})

	return router
}
