package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	content := `
server:
  port: 8080
  mode: test
log:
  level: debug
openai:
  api_key: file-key
  model: gpt-4o
crawler:
  timeout_seconds: 10
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load("test", path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "test", cfg.Server.Mode)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "file-key", cfg.OpenAI.APIKey)
	// 文件未覆盖的字段使用默认值
	assert.Equal(t, 3, cfg.OpenAI.MaxRetries)
	assert.Equal(t, int64(5*1024*1024), cfg.Crawler.MaxBodyBytes)
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	cfg, err := Load("nonexistent", "")
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "gpt-4o", cfg.OpenAI.Model)
}

func TestCrawlerTimeout(t *testing.T) {
	c := &CrawlerConfig{TimeoutSeconds: 10}
	assert.Equal(t, "10s", c.Timeout().String())

	zero := &CrawlerConfig{}
	assert.Equal(t, "30s", zero.Timeout().String())
}
