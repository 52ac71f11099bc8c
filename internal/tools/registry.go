package tools

import (
	"fmt"
	"strings"
	"sync"

	"toolhub/internal/logger"

	"go.uber.org/zap"
)

// Registry 工具注册表
// 读多写少：启动时由 discovery 填充，此后以查询为主
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
	order []string // 注册顺序，保证枚举结果稳定
}

// NewRegistry 创建工具注册表
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

// Register 注册工具
// 同名工具直接覆盖旧实例（静默），顺序保持首次注册的位置
func (r *Registry) Register(t Tool) error {
	if t == nil {
		return fmt.Errorf("注册对象不能为空")
	}
	name := strings.TrimSpace(t.Name())
	if name == "" {
		return fmt.Errorf("工具名称不能为空")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[name]; !exists {
		r.order = append(r.order, name)
	}
	r.tools[name] = t

	logger.Info("工具注册成功", zap.String("tool", name))
	return nil
}

// Unregister 注销工具
// 注销不存在的工具不是错误，仅记录告警
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[name]; !exists {
		logger.Warn("尝试注销不存在的工具", zap.String("tool", name))
		return
	}

	delete(r.tools, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	logger.Info("工具已注销", zap.String("tool", name))
}

// Get 按名称获取工具
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, exists := r.tools[name]
	return t, exists
}

// ListSummaries 列出所有工具的名称与描述
func (r *Registry) ListSummaries() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	summaries := make(map[string]string, len(r.tools))
	for name, t := range r.tools {
		summaries[name] = t.Description()
	}
	return summaries
}

// ListDetails 按注册顺序列出所有工具的完整信息
func (r *Registry) ListDetails() []ToolInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	details := make([]ToolInfo, 0, len(r.order))
	for _, name := range r.order {
		if t, ok := r.tools[name]; ok {
			details = append(details, Schema(t))
		}
	}
	return details
}

// Count 统计工具数量
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}
