package builtin

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Knetic/govaluate"
)

// CalculatorTool 计算器工具
// 计算一个数学表达式字符串，参数以文本形式传入，由工具自行解析
type CalculatorTool struct{}

// NewCalculatorTool 创建计算器工具
func NewCalculatorTool() *CalculatorTool {
	return &CalculatorTool{}
}

func (t *CalculatorTool) Name() string {
	return "calculator"
}

func (t *CalculatorTool) Description() string {
	return "计算数学表达式，支持四则运算、取模、比较和括号，如 (2+3)*4"
}

func (t *CalculatorTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"expression": map[string]any{
				"type":        "string",
				"description": "要计算的数学表达式",
			},
		},
		"required": []string{"expression"},
	}
}

// Execute 计算表达式
func (t *CalculatorTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	exprStr, _ := params["expression"].(string)
	if exprStr == "" {
		return "", fmt.Errorf("expression 参数不能为空")
	}

	expr, err := govaluate.NewEvaluableExpression(exprStr)
	if err != nil {
		return "", fmt.Errorf("表达式解析失败: %w", err)
	}

	result, err := expr.Evaluate(nil)
	if err != nil {
		return "", fmt.Errorf("表达式计算失败: %w", err)
	}

	switch v := result.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return fmt.Sprintf("%v", v), nil
	}
}
