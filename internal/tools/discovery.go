package tools

import (
	"fmt"

	"toolhub/internal/logger"

	"go.uber.org/zap"
)

// Builder 工具构造函数
// 构造失败（如缺少外部凭证）返回 error，由 LoadAll 隔离处理
type Builder func() (Tool, error)

// LoadAll 加载并注册一组工具
// 单个工具构造失败只记录告警并跳过，绝不中断其余工具的加载：
// 一个配置不完整的工具不能阻止服务携带其余工具启动
func LoadAll(registry *Registry, builders []Builder) int {
	loaded := 0
	for _, build := range builders {
		t, err := safeBuild(build)
		if err != nil {
			logger.Warn("工具加载失败，已跳过", zap.Error(err))
			continue
		}
		if err := registry.Register(t); err != nil {
			logger.Warn("工具注册失败，已跳过", zap.Error(err))
			continue
		}
		loaded++
	}

	logger.Info("工具加载完成",
		zap.Int("loaded", loaded),
		zap.Int("total", len(builders)),
	)
	return loaded
}

// safeBuild 执行构造函数并吸收 panic
func safeBuild(build Builder) (t Tool, err error) {
	defer func() {
		if r := recover(); r != nil {
			t = nil
			err = fmt.Errorf("工具构造 panic: %v", r)
		}
	}()
	return build()
}
