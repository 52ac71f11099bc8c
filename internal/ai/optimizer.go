package ai

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"toolhub/internal/config"
	"toolhub/internal/logger"

	"github.com/pkoukk/tiktoken-go"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// 内容提取的系统提示词
const optimizeSystemPrompt = `你是一个专业的内容提取助手。请从提供的网页内容中提取最重要、最有用的信息，并以清晰的 markdown 格式返回。

要求：
1. 保留标题结构和层级
2. 提取主要内容和关键信息
3. 移除广告、导航、版权声明等无关内容
4. 保持内容的逻辑性和可读性
5. 新闻类文章保留标题、日期、作者和正文
6. 产品页面保留产品名称、描述、规格等
7. 使用与原文相同的语言回复`

// 送入模型的内容 token 上限
const maxContentTokens = 20000

// Optimizer 内容清洗器
// 调用 OpenAI 对提取出的网页文本做结构化整理
type Optimizer struct {
	client     *openai.Client
	model      string
	maxRetries int
	maxTokens  int
	encoding   *tiktoken.Tiktoken
}

// NewOptimizer 创建内容清洗器
// 缺少 API Key 时返回错误，由调用方决定是否降级
func NewOptimizer(cfg *config.OpenAIConfig) (*Optimizer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API Key 不能为空，请检查 APP_OPENAI_API_KEY")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = openai.GPT4o
	}

	maxRetries := cfg.MaxRetries
	if maxRetries == 0 {
		maxRetries = 3
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 2000
	}

	// tokenizer 加载失败不致命，退化为按字符截断
	encoding, err := tiktoken.EncodingForModel(model)
	if err != nil {
		logger.Warn("加载 tokenizer 失败，退化为按字符截断",
			zap.String("model", model),
			zap.Error(err),
		)
		encoding = nil
	}

	return &Optimizer{
		client:     openai.NewClientWithConfig(clientConfig),
		model:      model,
		maxRetries: maxRetries,
		maxTokens:  maxTokens,
		encoding:   encoding,
	}, nil
}

// Optimize 清洗网页内容
func (o *Optimizer) Optimize(ctx context.Context, content, pageURL string) (string, error) {
	content = o.truncate(content)

	req := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: optimizeSystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("请优化以下从网页 %s 提取的内容：\n\n%s", pageURL, content),
			},
		},
		Temperature: 0.3,
		MaxTokens:   o.maxTokens,
	}

	// 调用 API（带重试）
	var resp openai.ChatCompletionResponse
	var err error
	for i := 0; i <= o.maxRetries; i++ {
		resp, err = o.client.CreateChatCompletion(ctx, req)
		if err == nil {
			break
		}
		if !isRetryableError(err) {
			break
		}
		// 指数退避
		if i < o.maxRetries {
			backoff := time.Duration(1<<uint(i)) * time.Second
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	if err != nil {
		return "", fmt.Errorf("OpenAI 调用失败: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("OpenAI 返回空响应")
	}

	return resp.Choices[0].Message.Content, nil
}

// truncate 按 token 数截断内容
func (o *Optimizer) truncate(content string) string {
	if o.encoding == nil {
		// 粗略近似：1 token ≈ 4 字符
		limit := maxContentTokens * 4
		if len(content) <= limit {
			return content
		}
		// 回退到 rune 边界，避免截断多字节字符
		for limit > 0 && !utf8.RuneStart(content[limit]) {
			limit--
		}
		return content[:limit] + "..."
	}

	tokens := o.encoding.Encode(content, nil, nil)
	if len(tokens) <= maxContentTokens {
		return content
	}
	return o.encoding.Decode(tokens[:maxContentTokens]) + "..."
}

// isRetryableError 判断错误是否可重试
func isRetryableError(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, key := range []string{"timeout", "connection", "rate limit", "429", "500", "502", "503", "504"} {
		if strings.Contains(msg, key) {
			return true
		}
	}
	return false
}
