package tools

import "context"

// Tool 工具统一契约
// 所有工具实现该接口后即可被注册表和分发器统一管理
type Tool interface {
	// Name 工具唯一名称
	Name() string

	// Description 工具用途说明
	Description() string

	// Parameters 参数 Schema（JSON Schema 形式，required 列出必填参数名）
	Parameters() map[string]any

	// Execute 执行工具，返回文本结果
	Execute(ctx context.Context, params map[string]any) (string, error)
}

// ToolInfo 工具自描述信息（introspection 用）
type ToolInfo struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Schema 返回工具的自描述信息
func Schema(t Tool) ToolInfo {
	return ToolInfo{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters:  t.Parameters(),
	}
}

// RequiredParameters 返回工具声明的必填参数名列表
// 兼容 []string 与 []any 两种 Schema 写法
func RequiredParameters(t Tool) []string {
	params := t.Parameters()
	if params == nil {
		return nil
	}

	switch required := params["required"].(type) {
	case []string:
		return required
	case []any:
		names := make([]string, 0, len(required))
		for _, r := range required {
			if name, ok := r.(string); ok {
				names = append(names, name)
			}
		}
		return names
	default:
		return nil
	}
}

// ValidateParameters 校验必填参数是否齐全
// 仅检查键是否存在，不校验值的类型和格式
func ValidateParameters(t Tool, params map[string]any) bool {
	for _, name := range RequiredParameters(t) {
		if _, ok := params[name]; !ok {
			return false
		}
	}
	return true
}
