package crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"toolhub/internal/config"
	"toolhub/pkg/httputil"
)

// Page 抓取结果
type Page struct {
	URL         string
	Title       string
	Text        string
	StatusCode  int
	ContentType string
}

// Fetcher 网页抓取器
// 抓取 HTML 并提取纯文本，供上层工具做内容清洗
type Fetcher struct {
	client       *httputil.Client
	maxBodyBytes int64
}

// NewFetcher 创建网页抓取器
func NewFetcher(cfg *config.CrawlerConfig) *Fetcher {
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 5 * 1024 * 1024
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	}

	maxRedirects := cfg.MaxRedirects
	if maxRedirects <= 0 {
		maxRedirects = 5
	}

	return &Fetcher{
		client: httputil.NewClient(
			httputil.WithTimeout(cfg.Timeout()),
			httputil.WithRedirectLimit(maxRedirects),
			httputil.WithHeaders(map[string]string{
				"User-Agent":      userAgent,
				"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
				"Accept-Language": "zh-CN,zh;q=0.9,en;q=0.8",
			}),
		),
		maxBodyBytes: maxBody,
	}
}

// Fetch 抓取网页并提取纯文本
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("无效的 URL: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, fmt.Errorf("仅支持 http/https 协议")
	}

	resp, err := f.client.Get(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("网页请求失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP 错误: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("读取响应失败: %w", err)
	}

	html := string(body)
	return &Page{
		URL:         rawURL,
		Title:       extractTitle(html),
		Text:        ExtractText(html),
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

var (
	scriptRe  = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleRe   = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	navRe     = regexp.MustCompile(`(?is)<(nav|footer|header)[^>]*>.*?</(nav|footer|header)>`)
	commentRe = regexp.MustCompile(`<!--[\s\S]*?-->`)
	blockRe   = regexp.MustCompile(`(?i)</(p|div|br|h[1-6]|li|tr)>`)
	tagRe     = regexp.MustCompile(`<[^>]+>`)
	spaceRe   = regexp.MustCompile(`[ \t]+`)
	newlineRe = regexp.MustCompile(`\n{3,}`)
	titleRe   = regexp.MustCompile(`(?i)<title[^>]*>([^<]*)</title>`)
)

// ExtractText 从 HTML 提取纯文本
// 剔除脚本、样式、导航、页眉页脚等与正文无关的部分
func ExtractText(html string) string {
	html = scriptRe.ReplaceAllString(html, "")
	html = styleRe.ReplaceAllString(html, "")
	html = navRe.ReplaceAllString(html, "")
	html = commentRe.ReplaceAllString(html, "")

	// 块级元素结束替换为换行，保留段落结构
	html = blockRe.ReplaceAllString(html, "\n")
	text := tagRe.ReplaceAllString(html, "")

	text = decodeHTMLEntities(text)

	text = spaceRe.ReplaceAllString(text, " ")
	text = newlineRe.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}

// extractTitle 提取网页标题
func extractTitle(html string) string {
	if match := titleRe.FindStringSubmatch(html); len(match) > 1 {
		return strings.TrimSpace(decodeHTMLEntities(match[1]))
	}
	return ""
}

// decodeHTMLEntities 解码常见 HTML 实体
func decodeHTMLEntities(s string) string {
	replacer := strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", "\"",
		"&#39;", "'",
		"&apos;", "'",
		"&nbsp;", " ",
		"&hellip;", "…",
		"&copy;", "©",
		"&reg;", "®",
	)
	return replacer.Replace(s)
}
