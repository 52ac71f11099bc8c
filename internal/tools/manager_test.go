package tools

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T, toolsToRegister ...Tool) *Manager {
	t.Helper()
	registry := NewRegistry()
	for _, tool := range toolsToRegister {
		require.NoError(t, registry.Register(tool))
	}
	return NewManager(registry, NewMetrics(nil))
}

func TestExecuteUnknownTool(t *testing.T) {
	m := newManager(t)

	result := m.Execute(context.Background(), "missing", map[string]any{})

	assert.Equal(t, "error", result.Status)
	assert.Equal(t, CodeToolNotFound, result.Code)
	assert.Contains(t, result.Message, "missing")
	assert.Equal(t, http.StatusNotFound, result.HTTPStatus())
}

func TestExecuteMissingRequiredParameter(t *testing.T) {
	m := newManager(t, newEchoTool())

	result := m.Execute(context.Background(), "echo", map[string]any{})

	assert.Equal(t, "error", result.Status)
	assert.Equal(t, CodeInvalidParameters, result.Code)
	// 错误信息包含完整的必填参数列表
	assert.Contains(t, result.Message, "msg")
	assert.Equal(t, []string{"msg"}, result.RequiredParameters)
	assert.Equal(t, http.StatusBadRequest, result.HTTPStatus())
}

func TestExecuteSuccess(t *testing.T) {
	m := newManager(t, newEchoTool())

	result := m.Execute(context.Background(), "echo", map[string]any{"msg": "hi"})

	assert.Equal(t, "success", result.Status)
	assert.Equal(t, "hi", result.Data)
	assert.Equal(t, "echo", result.Tool)
	assert.Empty(t, result.Code)
	assert.True(t, result.IsSuccess())
	assert.Equal(t, http.StatusOK, result.HTTPStatus())
}

func TestExecuteToolError(t *testing.T) {
	failing := &stubTool{
		name: "broken",
		execute: func(ctx context.Context, params map[string]any) (string, error) {
			return "", fmt.Errorf("上游服务不可用")
		},
	}
	m := newManager(t, failing)

	result := m.Execute(context.Background(), "broken", map[string]any{})

	assert.Equal(t, "error", result.Status)
	assert.Equal(t, CodeExecutionError, result.Code)
	assert.Equal(t, "broken", result.Tool)
	assert.Contains(t, result.Message, "上游服务不可用")
	assert.Equal(t, http.StatusInternalServerError, result.HTTPStatus())
}

func TestExecuteRecoversFromPanic(t *testing.T) {
	panicking := &stubTool{
		name: "panicky",
		execute: func(ctx context.Context, params map[string]any) (string, error) {
			panic("boom")
		},
	}
	m := newManager(t, panicking)

	// panic 被吸收并归一化为 EXECUTION_ERROR，进程不崩溃
	result := m.Execute(context.Background(), "panicky", map[string]any{})

	assert.Equal(t, "error", result.Status)
	assert.Equal(t, CodeExecutionError, result.Code)
	assert.Equal(t, "panicky", result.Tool)
	assert.Contains(t, result.Message, "boom")
}

func TestExecuteRecordsMetrics(t *testing.T) {
	metrics := NewMetrics(nil)
	registry := NewRegistry()
	require.NoError(t, registry.Register(newEchoTool()))
	m := NewManager(registry, metrics)

	m.Execute(context.Background(), "echo", map[string]any{"msg": "a"})
	m.Execute(context.Background(), "echo", map[string]any{"msg": "b"})

	stats := metrics.GetStats("echo")
	require.NotNil(t, stats)
	assert.Equal(t, int64(2), stats.TotalCalls)
	assert.Equal(t, int64(2), stats.SuccessCalls)
}

func TestValidateParametersPresenceOnly(t *testing.T) {
	tool := newEchoTool()

	// 仅检查键是否存在，不校验值的类型
	assert.True(t, ValidateParameters(tool, map[string]any{"msg": 42}))
	assert.True(t, ValidateParameters(tool, map[string]any{"msg": nil}))
	assert.False(t, ValidateParameters(tool, map[string]any{"other": "x"}))
}

func TestRequiredParametersAnySlice(t *testing.T) {
	// JSON 反序列化出的 Schema required 是 []any
	tool := &stubTool{
		name: "jsonish",
		parameters: map[string]any{
			"required": []any{"url", "depth"},
		},
	}

	assert.Equal(t, []string{"url", "depth"}, RequiredParameters(tool))
	assert.False(t, ValidateParameters(tool, map[string]any{"url": "x"}))
	assert.True(t, ValidateParameters(tool, map[string]any{"url": "x", "depth": "2"}))
}

func TestRequiredParametersAbsent(t *testing.T) {
	tool := &stubTool{name: "free"}

	assert.Nil(t, RequiredParameters(tool))
	assert.True(t, ValidateParameters(tool, map[string]any{}))
}
