package tools

import (
	"sync"
	"sync/atomic"
	"time"
)

// 延迟分桶上限（毫秒）
var bucketLimitsMs = []int64{10, 50, 100, 500, 1000, 5000, 10000, 30000}

// Metrics 工具调用指标收集器
type Metrics struct {
	mu       sync.RWMutex
	tools    map[string]*toolStats
	recorder MetricsRecorder
}

// toolStats 单个工具的累计统计
type toolStats struct {
	name           string
	totalCalls     atomic.Int64
	successCalls   atomic.Int64
	failedCalls    atomic.Int64
	totalDuration  atomic.Int64 // 纳秒
	maxDuration    atomic.Int64
	lastCalled     atomic.Int64 // Unix 时间戳
	lastError      atomic.Value // string
	latencyBuckets []atomic.Int64
}

// MetricsRecorder 外部指标记录接口（对接 Prometheus）
type MetricsRecorder interface {
	RecordToolCall(tool string, success bool, duration time.Duration)
}

// NewMetrics 创建指标收集器
func NewMetrics(recorder MetricsRecorder) *Metrics {
	return &Metrics{
		tools:    make(map[string]*toolStats),
		recorder: recorder,
	}
}

func (m *Metrics) getOrCreateStats(name string) *toolStats {
	m.mu.RLock()
	stats, ok := m.tools[name]
	m.mu.RUnlock()
	if ok {
		return stats
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// 双重检查
	if stats, ok = m.tools[name]; ok {
		return stats
	}

	stats = &toolStats{
		name:           name,
		latencyBuckets: make([]atomic.Int64, len(bucketLimitsMs)),
	}
	m.tools[name] = stats
	return stats
}

// RecordCall 记录一次工具调用
func (m *Metrics) RecordCall(name string, success bool, duration time.Duration, err error) {
	stats := m.getOrCreateStats(name)

	stats.totalCalls.Add(1)
	if success {
		stats.successCalls.Add(1)
	} else {
		stats.failedCalls.Add(1)
		if err != nil {
			stats.lastError.Store(err.Error())
		}
	}

	durationNs := duration.Nanoseconds()
	stats.totalDuration.Add(durationNs)
	stats.lastCalled.Store(time.Now().Unix())

	for {
		old := stats.maxDuration.Load()
		if durationNs <= old || stats.maxDuration.CompareAndSwap(old, durationNs) {
			break
		}
	}

	stats.latencyBuckets[bucketIndex(duration)].Add(1)

	if m.recorder != nil {
		m.recorder.RecordToolCall(name, success, duration)
	}
}

func bucketIndex(d time.Duration) int {
	ms := d.Milliseconds()
	for i, limit := range bucketLimitsMs[:len(bucketLimitsMs)-1] {
		if ms < limit {
			return i
		}
	}
	return len(bucketLimitsMs) - 1
}

// StatsSnapshot 工具统计快照
type StatsSnapshot struct {
	Name         string        `json:"name"`
	TotalCalls   int64         `json:"total_calls"`
	SuccessCalls int64         `json:"success_calls"`
	FailedCalls  int64         `json:"failed_calls"`
	SuccessRate  float64       `json:"success_rate"`
	AvgDuration  time.Duration `json:"avg_duration"`
	MaxDuration  time.Duration `json:"max_duration"`
	LastCalled   *time.Time    `json:"last_called,omitempty"`
	LastError    string        `json:"last_error,omitempty"`
}

// GetStats 获取单个工具的统计快照
func (m *Metrics) GetStats(name string) *StatsSnapshot {
	m.mu.RLock()
	stats, ok := m.tools[name]
	m.mu.RUnlock()
	if !ok {
		return nil
	}
	return snapshot(stats)
}

// GetAllStats 获取所有工具的统计快照
func (m *Metrics) GetAllStats() map[string]*StatsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]*StatsSnapshot, len(m.tools))
	for name, stats := range m.tools {
		result[name] = snapshot(stats)
	}
	return result
}

// Reset 重置全部指标
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tools = make(map[string]*toolStats)
}

func snapshot(stats *toolStats) *StatsSnapshot {
	total := stats.totalCalls.Load()
	success := stats.successCalls.Load()

	s := &StatsSnapshot{
		Name:         stats.name,
		TotalCalls:   total,
		SuccessCalls: success,
		FailedCalls:  stats.failedCalls.Load(),
		MaxDuration:  time.Duration(stats.maxDuration.Load()),
	}

	if total > 0 {
		s.SuccessRate = float64(success) / float64(total)
		s.AvgDuration = time.Duration(stats.totalDuration.Load() / total)
	}

	if lastCalled := stats.lastCalled.Load(); lastCalled > 0 {
		t := time.Unix(lastCalled, 0)
		s.LastCalled = &t
	}

	if lastErr := stats.lastError.Load(); lastErr != nil {
		s.LastError = lastErr.(string)
	}

	return s
}
