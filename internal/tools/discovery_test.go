package tools

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAllIsolatesFailures(t *testing.T) {
	registry := NewRegistry()

	builders := []Builder{
		func() (Tool, error) {
			return nil, fmt.Errorf("缺少外部凭证")
		},
		func() (Tool, error) {
			return newEchoTool(), nil
		},
	}

	// 一个工具构造失败不影响其余工具加载
	loaded := LoadAll(registry, builders)

	assert.Equal(t, 1, loaded)
	assert.Equal(t, 1, registry.Count())
	_, exists := registry.Get("echo")
	assert.True(t, exists)
}

func TestLoadAllRecoversFromBuilderPanic(t *testing.T) {
	registry := NewRegistry()

	builders := []Builder{
		func() (Tool, error) {
			panic("构造崩溃")
		},
		func() (Tool, error) {
			return newEchoTool(), nil
		},
	}

	loaded := LoadAll(registry, builders)

	assert.Equal(t, 1, loaded)
	assert.Equal(t, 1, registry.Count())
}

func TestLoadAllEmpty(t *testing.T) {
	registry := NewRegistry()
	assert.Equal(t, 0, LoadAll(registry, nil))
	assert.Equal(t, 0, registry.Count())
}

func TestLoadAllSkipsInvalidTool(t *testing.T) {
	registry := NewRegistry()

	builders := []Builder{
		func() (Tool, error) {
			// 名称为空的工具注册失败，同样被隔离
			return &stubTool{name: ""}, nil
		},
		func() (Tool, error) {
			return newEchoTool(), nil
		},
	}

	loaded := LoadAll(registry, builders)

	require.Equal(t, 1, loaded)
	assert.Equal(t, 1, registry.Count())
}
