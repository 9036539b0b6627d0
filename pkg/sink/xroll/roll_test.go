package xroll

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/logsink/pkg/sink/xsink"
)

// =============================================================================
// 测试辅助
// =============================================================================

// fakeClock 可推进的模拟时钟
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock(t *testing.T, day string) *fakeClock {
	t.Helper()
	parsed, err := time.Parse(dateLayout, day)
	require.NoError(t, err)
	return &fakeClock{t: parsed}
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) advanceDays(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.AddDate(0, 0, n)
}

// newTestSink 使用模拟时钟创建 sink，并注册清理
func newTestSink(t *testing.T, pathFormat string, clock *fakeClock, opts ...Option) *Sink {
	t.Helper()
	s, err := newSink(pathFormat, clock.now, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// emitLine 写入一条固定级别的日志行
func emitLine(t *testing.T, s *Sink, text string) {
	t.Helper()
	require.NoError(t, s.Emit(xsink.Line{Time: time.Now().UTC(), Level: xsink.LevelInfo, Text: text}))
}

// matchedNames 返回目录中匹配模板的文件名（升序）
func matchedNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

func fileSize(t *testing.T, path string) int64 {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	return info.Size()
}

// line15 是连同行终止符恰好 15 字节的日志文本
const line15 = "0123456789abcd"

// =============================================================================
// 构造与配置验证
// =============================================================================

// TestNewValidation 测试配置错误在构造时快速失败
func TestNewValidation(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name       string
		pathFormat string
		opts       []Option
		wantErr    error
	}{
		{
			name:       "缺少 {Date} 占位符",
			pathFormat: filepath.Join(tmpDir, "app.log"),
			wantErr:    ErrMissingDateToken,
		},
		{
			name:       "大小上限为零",
			pathFormat: filepath.Join(tmpDir, "app-{Date}.log"),
			opts:       []Option{WithSizeLimit(0)},
			wantErr:    ErrInvalidSizeLimit,
		},
		{
			name:       "大小上限为负",
			pathFormat: filepath.Join(tmpDir, "app-{Date}.log"),
			opts:       []Option{WithSizeLimit(-1)},
			wantErr:    ErrInvalidSizeLimit,
		},
		{
			name:       "大小上限超过上界",
			pathFormat: filepath.Join(tmpDir, "app-{Date}.log"),
			opts:       []Option{WithSizeLimit(maxSizeLimitBytes + 1)},
			wantErr:    ErrInvalidSizeLimit,
		},
		{
			name:       "保留数量为零",
			pathFormat: filepath.Join(tmpDir, "app-{Date}.log"),
			opts:       []Option{WithRetainedFiles(0)},
			wantErr:    ErrInvalidRetainedCount,
		},
		{
			name:       "保留数量超过上界",
			pathFormat: filepath.Join(tmpDir, "app-{Date}.log"),
			opts:       []Option{WithRetainedFiles(maxRetainedFiles + 1)},
			wantErr:    ErrInvalidRetainedCount,
		},
		{
			name:       "文件权限包含非权限位",
			pathFormat: filepath.Join(tmpDir, "app-{Date}.log"),
			opts:       []Option{WithFileMode(os.ModeSetuid | 0600)},
			wantErr:    ErrInvalidFileMode,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.pathFormat, tc.opts...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

// TestNewCreatesDatedFile 测试全新目录下活动文件编码当前日期
func TestNewCreatesDatedFile(t *testing.T) {
	tmpDir := t.TempDir()
	clock := newFakeClock(t, "2024-01-01")

	s := newTestSink(t, filepath.Join(tmpDir, "logs", "app-{Date}.log"), clock)

	assert.Equal(t, "app-2024-01-01.log", filepath.Base(s.ActiveFile()))
	// 父目录被自动创建，文件已存在
	assert.FileExists(t, s.ActiveFile())
}

// TestNewAdoptsLatestExisting 测试重启后采用最新的既有文件继续追加
func TestNewAdoptsLatestExisting(t *testing.T) {
	tmpDir := t.TempDir()
	existing := []byte(strings.Repeat("x", 50))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "app-2024-01-01.log"), existing, 0600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "app-2024-01-01-001.log"), existing, 0600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "app-2024-01-02.log"), existing, 0600))

	clock := newFakeClock(t, "2024-01-02")
	s := newTestSink(t, filepath.Join(tmpDir, "app-{Date}.log"), clock, WithSizeLimit(60))

	assert.Equal(t, "app-2024-01-02.log", filepath.Base(s.ActiveFile()))

	// 大小计数从现有长度继续：50 + 15 > 60，首次写入即触发序号轮转
	emitLine(t, s, line15)
	assert.Equal(t, "app-2024-01-02-001.log", filepath.Base(s.ActiveFile()))
	assert.Equal(t, int64(15), fileSize(t, s.ActiveFile()))
}

// =============================================================================
// 大小轮转
// =============================================================================

// TestSizeRotationSequence 测试同日期大小溢出产生序号文件
//
// 上限 100 字节、每行 15 字节：前 6 行（90 字节）写入基础文件，
// 第 7 行触发轮转，其余 4 行写入 -001 序号文件。
func TestSizeRotationSequence(t *testing.T) {
	tmpDir := t.TempDir()
	clock := newFakeClock(t, "2024-01-01")
	s := newTestSink(t, filepath.Join(tmpDir, "app-{Date}.log"), clock, WithSizeLimit(100))

	for range 10 {
		emitLine(t, s, line15)
	}

	assert.Equal(t, []string{
		"app-2024-01-01.log",
		"app-2024-01-01-001.log",
	}, matchedNames(t, tmpDir))
	assert.Equal(t, int64(90), fileSize(t, filepath.Join(tmpDir, "app-2024-01-01.log")))
	assert.Equal(t, int64(60), fileSize(t, filepath.Join(tmpDir, "app-2024-01-01-001.log")))
}

// TestFirstLineNeverRejected 测试空文件的首行即使单独超限也会写入
func TestFirstLineNeverRejected(t *testing.T) {
	tmpDir := t.TempDir()
	clock := newFakeClock(t, "2024-01-01")
	s := newTestSink(t, filepath.Join(tmpDir, "app-{Date}.log"), clock, WithSizeLimit(10))

	oversized := strings.Repeat("x", 50)
	emitLine(t, s, oversized)
	assert.Equal(t, "app-2024-01-01.log", filepath.Base(s.ActiveFile()))
	assert.Equal(t, int64(51), fileSize(t, s.ActiveFile()))

	// 第二行进入序号文件：单个文件最多超限一行
	emitLine(t, s, oversized)
	assert.Equal(t, "app-2024-01-01-001.log", filepath.Base(s.ActiveFile()))
}

// TestSizeLimitNeverExceededByMoreThanOneLine 测试大小不变量
func TestSizeLimitNeverExceededByMoreThanOneLine(t *testing.T) {
	tmpDir := t.TempDir()
	clock := newFakeClock(t, "2024-01-01")
	const limit = 64
	s := newTestSink(t, filepath.Join(tmpDir, "app-{Date}.log"), clock, WithSizeLimit(limit))

	for range 100 {
		emitLine(t, s, line15)
	}

	for _, name := range matchedNames(t, tmpDir) {
		size := fileSize(t, filepath.Join(tmpDir, name))
		assert.LessOrEqual(t, size, int64(limit+15), "file %s too large", name)
	}
}

// =============================================================================
// 日期轮转与保留清理
// =============================================================================

// TestDateRotation 测试跨日写入切换文件
func TestDateRotation(t *testing.T) {
	tmpDir := t.TempDir()
	clock := newFakeClock(t, "2024-01-01")
	s := newTestSink(t, filepath.Join(tmpDir, "app-{Date}.log"), clock)

	emitLine(t, s, "day one")
	clock.advanceDays(1)
	emitLine(t, s, "day two")

	assert.Equal(t, []string{
		"app-2024-01-01.log",
		"app-2024-01-02.log",
	}, matchedNames(t, tmpDir))

	data, err := os.ReadFile(filepath.Join(tmpDir, "app-2024-01-02.log"))
	require.NoError(t, err)
	assert.Equal(t, "day two\n", string(data))
}

// TestRetentionAcrossDays 测试跨多天写入后只保留最新的 N 个文件
//
// 保留 2 个、连续 5 天各写一行：最终只剩第 4、5 天的文件。
func TestRetentionAcrossDays(t *testing.T) {
	tmpDir := t.TempDir()
	clock := newFakeClock(t, "2024-01-01")
	s := newTestSink(t, filepath.Join(tmpDir, "app-{Date}.log"), clock, WithRetainedFiles(2))

	for day := 0; day < 5; day++ {
		if day > 0 {
			clock.advanceDays(1)
		}
		emitLine(t, s, "hello")
	}

	assert.Equal(t, []string{
		"app-2024-01-04.log",
		"app-2024-01-05.log",
	}, matchedNames(t, tmpDir))
}

// TestRetentionNeverDeletesActiveFile 测试活动文件永不被清理
func TestRetentionNeverDeletesActiveFile(t *testing.T) {
	tmpDir := t.TempDir()
	clock := newFakeClock(t, "2024-01-01")
	s := newTestSink(t, filepath.Join(tmpDir, "app-{Date}.log"), clock,
		WithSizeLimit(20), WithRetainedFiles(1))

	for range 6 {
		emitLine(t, s, line15)
	}

	names := matchedNames(t, tmpDir)
	require.NotEmpty(t, names)
	// 活动文件始终存活
	assert.Contains(t, names, filepath.Base(s.ActiveFile()))
	assert.Len(t, names, 1)
}

// TestRetentionIgnoresUnrelatedFiles 测试清理不误删无关文件
func TestRetentionIgnoresUnrelatedFiles(t *testing.T) {
	tmpDir := t.TempDir()
	unrelated := filepath.Join(tmpDir, "keep.txt")
	require.NoError(t, os.WriteFile(unrelated, []byte("keep"), 0600))

	clock := newFakeClock(t, "2024-01-01")
	s := newTestSink(t, filepath.Join(tmpDir, "app-{Date}.log"), clock, WithRetainedFiles(1))

	for day := 0; day < 3; day++ {
		if day > 0 {
			clock.advanceDays(1)
		}
		emitLine(t, s, "hello")
	}

	assert.FileExists(t, unrelated)
	assert.Equal(t, []string{"app-2024-01-03.log", "keep.txt"}, matchedNames(t, tmpDir))
}

// =============================================================================
// io.Writer 路径
// =============================================================================

// TestWriteAsIOWriter 测试 Write 路径与 Emit 共享同一轮转核心
func TestWriteAsIOWriter(t *testing.T) {
	tmpDir := t.TempDir()
	clock := newFakeClock(t, "2024-01-01")
	s := newTestSink(t, filepath.Join(tmpDir, "app-{Date}.log"), clock)

	n, err := s.Write([]byte("rendered line\n"))
	require.NoError(t, err)
	assert.Equal(t, 14, n)

	data, err := os.ReadFile(s.ActiveFile())
	require.NoError(t, err)
	assert.Equal(t, "rendered line\n", string(data))
}

// =============================================================================
// 关闭语义
// =============================================================================

// TestCloseIdempotent 测试 Close 幂等且关闭后拒绝写入
func TestCloseIdempotent(t *testing.T) {
	tmpDir := t.TempDir()
	clock := newFakeClock(t, "2024-01-01")
	s := newTestSink(t, filepath.Join(tmpDir, "app-{Date}.log"), clock)

	emitLine(t, s, "before close")

	assert.NoError(t, s.Close())
	assert.NoError(t, s.Close())

	err := s.Emit(xsink.Line{Text: "after close"})
	assert.ErrorIs(t, err, xsink.ErrClosed)
	_, err = s.Write([]byte("after close\n"))
	assert.ErrorIs(t, err, xsink.ErrClosed)

	// 关闭后没有重复写入
	data, err := os.ReadFile(filepath.Join(tmpDir, "app-2024-01-01.log"))
	require.NoError(t, err)
	assert.Equal(t, "before close\n", string(data))
}

// =============================================================================
// 并发安全
// =============================================================================

// TestConcurrentEmit 测试多 goroutine 并发写入不丢行
func TestConcurrentEmit(t *testing.T) {
	tmpDir := t.TempDir()
	clock := newFakeClock(t, "2024-01-01")
	s := newTestSink(t, filepath.Join(tmpDir, "app-{Date}.log"), clock, WithUnlimitedSize())

	const (
		goroutines = 10
		perG       = 50
	)

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perG; i++ {
				_ = s.Emit(xsink.Line{Level: xsink.LevelInfo, Text: line15})
			}
		}()
	}
	wg.Wait()

	require.NoError(t, s.Close())
	assert.Equal(t, int64(goroutines*perG*15), fileSize(t, filepath.Join(tmpDir, "app-2024-01-01.log")))
}

// =============================================================================
// 错误回调
// =============================================================================

// TestReportIsolatesCallbackPanic 测试回调 panic 不中断主流程
func TestReportIsolatesCallbackPanic(t *testing.T) {
	tmpDir := t.TempDir()
	clock := newFakeClock(t, "2024-01-01")
	s := newTestSink(t, filepath.Join(tmpDir, "app-{Date}.log"), clock,
		WithOnError(func(error) { panic("callback panic") }))

	assert.NotPanics(t, func() {
		s.report(errors.New("best effort failure"))
	})
}

// TestReportNilError 测试 nil 错误不触发回调
func TestReportNilError(t *testing.T) {
	tmpDir := t.TempDir()
	clock := newFakeClock(t, "2024-01-01")

	called := false
	s := newTestSink(t, filepath.Join(tmpDir, "app-{Date}.log"), clock,
		WithOnError(func(error) { called = true }))

	s.report(nil)
	assert.False(t, called)
}
