package tools

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"toolhub/internal/logger"

	"go.uber.org/zap"
)

// 错误码：稳定的机器可读分支依据
const (
	CodeToolNotFound      = "TOOL_NOT_FOUND"
	CodeInvalidParameters = "INVALID_PARAMETERS"
	CodeExecutionError    = "EXECUTION_ERROR"
)

// Result 工具调用结果信封
// 每次调用都返回良构的信封，成功或失败都不例外
type Result struct {
	Status             string   `json:"status"` // success / error
	Data               string   `json:"data,omitempty"`
	Message            string   `json:"message,omitempty"`
	Code               string   `json:"code,omitempty"`
	Tool               string   `json:"tool,omitempty"`
	RequiredParameters []string `json:"required_parameters,omitempty"`
}

// IsSuccess 是否执行成功
func (r *Result) IsSuccess() bool {
	return r.Status == "success"
}

// HTTPStatus 错误码到 HTTP 状态码的映射
func (r *Result) HTTPStatus() int {
	switch r.Code {
	case "":
		return http.StatusOK
	case CodeToolNotFound:
		return http.StatusNotFound
	case CodeInvalidParameters:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Manager 工具分发器
// HTTP 层按名称调用工具的唯一入口
type Manager struct {
	registry *Registry
	metrics  *Metrics
}

// NewManager 创建工具分发器
func NewManager(registry *Registry, metrics *Metrics) *Manager {
	return &Manager{
		registry: registry,
		metrics:  metrics,
	}
}

// Registry 返回底层注册表
func (m *Manager) Registry() *Registry {
	return m.registry
}

// Execute 按名称执行工具
// 保证不向外抛出任何错误：查找失败、参数缺失、执行出错（含 panic）
// 全部归一化为错误信封
func (m *Manager) Execute(ctx context.Context, name string, params map[string]any) *Result {
	t, exists := m.registry.Get(name)
	if !exists {
		return &Result{
			Status:  "error",
			Message: fmt.Sprintf("工具 %s 不存在", name),
			Code:    CodeToolNotFound,
		}
	}

	if !ValidateParameters(t, params) {
		required := RequiredParameters(t)
		return &Result{
			Status:             "error",
			Message:            fmt.Sprintf("参数验证失败，必填参数: %v", required),
			Code:               CodeInvalidParameters,
			RequiredParameters: required,
		}
	}

	start := time.Now()
	data, err := m.safeExecute(ctx, t, params)
	duration := time.Since(start)

	if m.metrics != nil {
		m.metrics.RecordCall(name, err == nil, duration, err)
	}

	if err != nil {
		logger.WithContext(ctx).Error("工具执行失败",
			zap.String("tool", name),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return &Result{
			Status:  "error",
			Message: fmt.Sprintf("工具执行失败: %s", err.Error()),
			Code:    CodeExecutionError,
			Tool:    name,
		}
	}

	logger.WithContext(ctx).Info("工具执行成功",
		zap.String("tool", name),
		zap.Duration("duration", duration),
	)
	return &Result{
		Status: "success",
		Data:   data,
		Tool:   name,
	}
}

// safeExecute 执行工具并吸收 panic
func (m *Manager) safeExecute(ctx context.Context, t Tool, params map[string]any) (data string, err error) {
	defer func() {
		if r := recover(); r != nil {
			data = ""
			err = fmt.Errorf("工具执行 panic: %v", r)
		}
	}()
	return t.Execute(ctx, params)
}
