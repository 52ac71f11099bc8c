package builtin

import (
	"toolhub/internal/config"
	"toolhub/internal/tools"
)

// Builders 返回所有内置工具的构造函数
// 构造函数在 tools.LoadAll 中逐个执行，单个失败不影响其余工具
func Builders(cfg *config.Config) []tools.Builder {
	return []tools.Builder{
		// 依赖 OpenAI 凭证，缺少时构造失败并被跳过
		func() (tools.Tool, error) {
			return NewWebCrawlerTool(cfg)
		},
		func() (tools.Tool, error) {
			return NewCalculatorTool(), nil
		},
		func() (tools.Tool, error) {
			return NewTextStatisticsTool(), nil
		},
	}
}
