package builtin

import (
	"context"
	"fmt"
	"strings"

	"toolhub/internal/ai"
	"toolhub/internal/config"
	"toolhub/internal/crawler"
	"toolhub/internal/logger"
	"toolhub/internal/tools"

	"go.uber.org/zap"
)

// 少于该字符数视为未提取到有效正文
const minContentLength = 50

// WebCrawlerTool 网页内容提取工具
// 抓取网页、提取正文，并调用 OpenAI 做内容清洗
type WebCrawlerTool struct {
	fetcher   *crawler.Fetcher
	optimizer *ai.Optimizer
}

var _ tools.Tool = (*WebCrawlerTool)(nil)

// NewWebCrawlerTool 创建网页内容提取工具
// 缺少 OpenAI 凭证时构造失败，由 discovery 跳过该工具
func NewWebCrawlerTool(cfg *config.Config) (*WebCrawlerTool, error) {
	optimizer, err := ai.NewOptimizer(&cfg.OpenAI)
	if err != nil {
		return nil, fmt.Errorf("web_crawler 初始化失败: %w", err)
	}

	return &WebCrawlerTool{
		fetcher:   crawler.NewFetcher(&cfg.Crawler),
		optimizer: optimizer,
	}, nil
}

func (t *WebCrawlerTool) Name() string {
	return "web_crawler"
}

func (t *WebCrawlerTool) Description() string {
	return strings.TrimSpace(`
网页内容提取工具，支持从任意 URL 提取和分析网页内容。

功能特点：
- 智能网页内容提取
- 自动转换为 markdown 格式
- 使用大模型优化和提取内容
- 处理各种类型的网页

输入参数：
- url: 要抓取的网页 URL（必填）

返回：
- markdown 格式的网页内容
`)
}

func (t *WebCrawlerTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"url": map[string]any{
				"type":        "string",
				"description": "要提取内容的网页 URL",
				"format":      "uri",
			},
		},
		"required": []string{"url"},
	}
}

// Execute 抓取并清洗网页内容
func (t *WebCrawlerTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	rawURL, _ := params["url"].(string)
	if rawURL == "" {
		return "", fmt.Errorf("未提供 url 参数")
	}

	// 未写协议时默认 https
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		rawURL = "https://" + rawURL
	}

	page, err := t.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return "", fmt.Errorf("网页抓取失败: %w", err)
	}

	if len(strings.TrimSpace(page.Text)) < minContentLength {
		return "", fmt.Errorf("未能提取到有效的网页内容")
	}

	optimized, err := t.optimizer.Optimize(ctx, page.Text, rawURL)
	if err != nil {
		// 清洗失败降级返回原始内容，不让整次抓取作废
		logger.WithContext(ctx).Warn("内容清洗失败，返回原始内容",
			zap.String("url", rawURL),
			zap.Error(err),
		)
		return fmt.Sprintf("内容优化失败，返回原始内容：\n\n%s\n\n错误: %s", page.Text, err.Error()), nil
	}

	return optimized, nil
}
