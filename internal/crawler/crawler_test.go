package crawler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"toolhub/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFetcher() *Fetcher {
	return NewFetcher(&config.CrawlerConfig{
		TimeoutSeconds: 5,
		MaxBodyBytes:   1 << 20,
		MaxRedirects:   3,
	})
}

func TestFetchExtractsText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<html>
<head><title>示例 &amp; 标题</title><style>body{color:red}</style></head>
<body>
<nav><a href="/">首页</a></nav>
<h1>正文标题</h1>
<p>第一段内容。</p>
<p>第二段内容。</p>
<footer>版权信息</footer>
</body>
</html>`))
	}))
	defer server.Close()

	page, err := newTestFetcher().Fetch(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, "示例 & 标题", page.Title)
	assert.Equal(t, http.StatusOK, page.StatusCode)
	assert.Contains(t, page.Text, "正文标题")
	assert.Contains(t, page.Text, "第一段内容。")
	// 导航和页脚被剔除
	assert.NotContains(t, page.Text, "首页")
	assert.NotContains(t, page.Text, "版权信息")
	assert.NotContains(t, page.Text, "color:red")
}

func TestFetchNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := newTestFetcher().Fetch(context.Background(), server.URL)
	assert.Error(t, err)
}

func TestFetchRejectsNonHTTPScheme(t *testing.T) {
	_, err := newTestFetcher().Fetch(context.Background(), "ftp://example.com/file")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http")
}

func TestFetchInvalidURL(t *testing.T) {
	_, err := newTestFetcher().Fetch(context.Background(), "http://\x7f")
	assert.Error(t, err)
}

func TestFetchBodySizeLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<p>" + strings.Repeat("长内容", 1000) + "</p>"))
	}))
	defer server.Close()

	fetcher := NewFetcher(&config.CrawlerConfig{
		TimeoutSeconds: 5,
		MaxBodyBytes:   64,
	})

	page, err := fetcher.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	// 响应体被截断到上限以内
	assert.LessOrEqual(t, len(page.Text), 64)
}

func TestExtractText(t *testing.T) {
	html := `<div>第一行</div><script>alert(1)</script><p>第二行</p><!-- 注释 -->`

	text := ExtractText(html)

	assert.Contains(t, text, "第一行")
	assert.Contains(t, text, "第二行")
	assert.NotContains(t, text, "alert")
	assert.NotContains(t, text, "注释")
}

func TestExtractTextEntities(t *testing.T) {
	text := ExtractText("<p>A &amp; B &lt;C&gt; &nbsp;D</p>")
	assert.Equal(t, "A & B <C> D", text)
}
