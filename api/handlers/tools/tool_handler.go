package tools

import (
	"fmt"
	"net/http"

	response "toolhub/api/handlers/common"
	"toolhub/internal/tools"

	"github.com/gin-gonic/gin"
)

// ToolHandler 工具管理 Handler
type ToolHandler struct {
	manager *tools.Manager
	metrics *tools.Metrics
}

// NewToolHandler 创建 ToolHandler
func NewToolHandler(manager *tools.Manager, metrics *tools.Metrics) *ToolHandler {
	return &ToolHandler{
		manager: manager,
		metrics: metrics,
	}
}

// ListTools 查询工具列表
// @Summary 查询工具列表
// @Tags Tools
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /api/tools [get]
func (h *ToolHandler) ListTools(c *gin.Context) {
	details := h.manager.Registry().ListDetails()

	c.JSON(http.StatusOK, response.OK(gin.H{
		"tools": details,
		"count": len(details),
	}, fmt.Sprintf("共找到 %d 个可用工具", len(details))))
}

// GetTool 查询工具详情
// @Summary 获取工具详情
// @Tags Tools
// @Produce json
// @Param name path string true "工具名称"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /api/tools/{name} [get]
func (h *ToolHandler) GetTool(c *gin.Context) {
	name := c.Param("name")

	t, exists := h.manager.Registry().Get(name)
	if !exists {
		c.JSON(http.StatusNotFound, response.Err(tools.CodeToolNotFound, fmt.Sprintf("工具 %s 不存在", name)))
		return
	}

	c.JSON(http.StatusOK, response.OK(tools.Schema(t), fmt.Sprintf("成功获取工具 %s 的信息", name)))
}

// GetToolSchema 查询工具参数 Schema
// @Summary 获取工具参数 Schema
// @Tags Tools
// @Produce json
// @Param name path string true "工具名称"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /api/tools/{name}/schema [get]
func (h *ToolHandler) GetToolSchema(c *gin.Context) {
	name := c.Param("name")

	t, exists := h.manager.Registry().Get(name)
	if !exists {
		c.JSON(http.StatusNotFound, response.Err(tools.CodeToolNotFound, fmt.Sprintf("工具 %s 不存在", name)))
		return
	}

	c.JSON(http.StatusOK, response.OK(tools.Schema(t), fmt.Sprintf("成功获取工具 %s 的参数 Schema", name)))
}

// ExecuteTool 通用工具执行接口
// 除 tool 以外的所有查询参数都作为字符串参数传给工具（不做类型转换）
// @Summary 执行工具
// @Tags Tools
// @Produce json
// @Param tool query string true "工具名称"
// @Success 200 {object} tools.Result
// @Failure 400 {object} tools.Result
// @Failure 404 {object} tools.Result
// @Failure 500 {object} tools.Result
// @Router /api/execute [get]
func (h *ToolHandler) ExecuteTool(c *gin.Context) {
	name := c.Query("tool")
	if name == "" {
		c.JSON(http.StatusBadRequest, response.Err("MISSING_PARAMETER", "缺少必填参数: tool"))
		return
	}

	params := make(map[string]any)
	for key, values := range c.Request.URL.Query() {
		if key == "tool" || len(values) == 0 {
			continue
		}
		params[key] = values[0]
	}

	result := h.manager.Execute(c.Request.Context(), name, params)
	c.JSON(result.HTTPStatus(), result)
}

// Crawler 网页爬虫快捷接口
// @Summary 抓取网页内容
// @Tags Tools
// @Produce json
// @Param url query string true "要抓取的网页 URL"
// @Success 200 {object} tools.Result
// @Failure 400 {object} tools.Result
// @Failure 404 {object} tools.Result
// @Failure 500 {object} tools.Result
// @Router /api/crawler [get]
func (h *ToolHandler) Crawler(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		c.JSON(http.StatusBadRequest, response.Err("MISSING_PARAMETER", "缺少必填参数: url"))
		return
	}

	result := h.manager.Execute(c.Request.Context(), "web_crawler", map[string]any{"url": url})
	c.JSON(result.HTTPStatus(), result)
}

// GetStats 查询工具调用统计
// @Summary 工具调用统计
// @Tags Tools
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /api/tools/stats [get]
func (h *ToolHandler) GetStats(c *gin.Context) {
	stats := h.metrics.GetAllStats()
	c.JSON(http.StatusOK, response.OK(gin.H{
		"stats": stats,
		"count": len(stats),
	}, ""))
}
