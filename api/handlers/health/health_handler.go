package health

import (
	"net/http"

	response "toolhub/api/handlers/common"
	"toolhub/internal/tools"

	"github.com/gin-gonic/gin"
)

// Version 服务版本号
const Version = "1.0.0"

// HealthHandler 健康检查 Handler
type HealthHandler struct {
	registry *tools.Registry
}

// NewHealthHandler 创建 HealthHandler
func NewHealthHandler(registry *tools.Registry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

// Check 健康检查
// @Summary 健康检查
// @Tags Health
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /api/health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, response.OK(gin.H{
		"version":    Version,
		"tool_count": h.registry.Count(),
	}, "API 服务运行正常"))
}
