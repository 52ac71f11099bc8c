package builtin

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// TextStatisticsTool 文本统计工具
type TextStatisticsTool struct{}

// NewTextStatisticsTool 创建文本统计工具
func NewTextStatisticsTool() *TextStatisticsTool {
	return &TextStatisticsTool{}
}

func (t *TextStatisticsTool) Name() string {
	return "text_statistics"
}

func (t *TextStatisticsTool) Description() string {
	return "统计文本的字符数、词数、行数等基本信息"
}

func (t *TextStatisticsTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"text": map[string]any{
				"type":        "string",
				"description": "要统计的文本",
			},
		},
		"required": []string{"text"},
	}
}

// Execute 统计文本并返回 JSON 结果
func (t *TextStatisticsTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	text, _ := params["text"].(string)

	stats := map[string]any{
		"characters":       utf8.RuneCountInString(text),
		"characters_bytes": len(text),
		"words":            len(strings.Fields(text)),
		"lines":            strings.Count(text, "\n") + 1,
	}

	data, err := json.Marshal(stats)
	if err != nil {
		return "", fmt.Errorf("统计结果序列化失败: %w", err)
	}
	return string(data), nil
}
