package xlumber

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/omeyang/logsink/pkg/sink/xsink"
	"github.com/omeyang/logsink/pkg/util/xfile"

	"gopkg.in/natefinch/lumberjack.v2"
)

// lumberjack sink 默认配置值
const (
	// DefaultMaxSizeMB 默认单个日志文件最大大小（MB）
	DefaultMaxSizeMB = 500

	// DefaultMaxBackups 默认保留的备份文件数量
	DefaultMaxBackups = 7

	// DefaultMaxAgeDays 默认保留备份的天数
	DefaultMaxAgeDays = 30

	// DefaultCompress 默认是否压缩备份
	DefaultCompress = true

	// maxSizeMB 单个日志文件大小上限（10 GB）
	maxSizeMB = 10240

	// maxBackups 备份文件数量上限
	maxBackups = 1024

	// maxAgeDays 备份保留天数上限（约 10 年）
	maxAgeDays = 3650
)

// config lumberjack sink 配置
//
// 纯大小轮转策略：超限时当前文件被重命名为带时间戳的备份，
// 备份按数量和天数清理，可选 gzip 压缩。
type config struct {
	// MaxSizeMB 单个日志文件最大大小（MB），超过时触发轮转，必须 > 0
	MaxSizeMB int

	// MaxBackups 保留的备份文件数量，0 表示不按数量清理（仍受 MaxAgeDays 约束）
	MaxBackups int

	// MaxAgeDays 保留备份的天数，0 表示不按天数清理（仍受 MaxBackups 约束）
	MaxAgeDays int

	// Compress 是否 gzip 压缩备份文件
	Compress bool

	// LocalTime 备份文件名是否使用本地时间，false 表示 UTC
	LocalTime bool

	// OnError 可选的错误回调函数，约束同 xroll.WithOnError：
	// 回调不得向同一 Sink 写入数据
	OnError func(error)
}

// Option lumberjack sink 配置选项函数
type Option func(*config)

// WithMaxSize 设置单个日志文件最大大小（MB）
func WithMaxSize(mb int) Option {
	return func(c *config) {
		c.MaxSizeMB = mb
	}
}

// WithMaxBackups 设置保留的备份文件数量
func WithMaxBackups(n int) Option {
	return func(c *config) {
		c.MaxBackups = n
	}
}

// WithMaxAge 设置保留备份的天数
func WithMaxAge(days int) Option {
	return func(c *config) {
		c.MaxAgeDays = days
	}
}

// WithCompress 设置是否压缩备份文件
func WithCompress(compress bool) Option {
	return func(c *config) {
		c.Compress = compress
	}
}

// WithLocalTime 设置备份文件名是否使用本地时间
func WithLocalTime(local bool) Option {
	return func(c *config) {
		c.LocalTime = local
	}
}

// WithOnError 设置错误回调函数
func WithOnError(fn func(error)) Option {
	return func(c *config) {
		c.OnError = fn
	}
}

// 编译时断言：Sink 同时满足 xsink.Sink 和 io.Writer
var (
	_ xsink.Sink = (*Sink)(nil)
	_ io.Writer  = (*Sink)(nil)
)

// Sink 基于 lumberjack 的纯大小轮转 sink
//
// lumberjack 本身提供并发安全的写入、备份清理和可选压缩；
// 本类型在其上补齐 xsink 契约（Emit/幂等 Close/关闭后 ErrClosed）。
type Sink struct {
	logger  *lumberjack.Logger
	onError func(error)
	closed  atomic.Bool
}

// New 创建 lumberjack sink
//
// filename 为活动文件的固定路径（备份文件由 lumberjack 按时间戳命名）。
// 路径会被格式净化，不存在的父目录自动创建（权限 0750）。
// MaxBackups 和 MaxAgeDays 不允许同时为 0，否则备份无限累积。
func New(filename string, opts ...Option) (*Sink, error) {
	if filename == "" {
		return nil, ErrEmptyFilename
	}

	cfg := config{
		MaxSizeMB:  DefaultMaxSizeMB,
		MaxBackups: DefaultMaxBackups,
		MaxAgeDays: DefaultMaxAgeDays,
		Compress:   DefaultCompress,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	safePath, err := xfile.SanitizePath(filename)
	if err != nil {
		return nil, err
	}
	if err := xfile.EnsureDir(safePath); err != nil {
		return nil, err
	}

	return &Sink{
		logger: &lumberjack.Logger{
			Filename:   safePath,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
			LocalTime:  cfg.LocalTime,
		},
		onError: cfg.OnError,
	}, nil
}

// validateConfig 验证 lumberjack 配置
func validateConfig(cfg *config) error {
	if cfg.MaxSizeMB <= 0 || cfg.MaxSizeMB > maxSizeMB {
		return fmt.Errorf("%w: got %d, want 1~%d", ErrInvalidMaxSize, cfg.MaxSizeMB, maxSizeMB)
	}
	if cfg.MaxBackups < 0 || cfg.MaxBackups > maxBackups {
		return fmt.Errorf("%w: got %d, want 0~%d", ErrInvalidMaxBackups, cfg.MaxBackups, maxBackups)
	}
	if cfg.MaxAgeDays < 0 || cfg.MaxAgeDays > maxAgeDays {
		return fmt.Errorf("%w: got %d, want 0~%d", ErrInvalidMaxAge, cfg.MaxAgeDays, maxAgeDays)
	}
	if cfg.MaxBackups == 0 && cfg.MaxAgeDays == 0 {
		return fmt.Errorf("%w: MaxBackups and MaxAgeDays cannot both be 0", ErrNoCleanupPolicy)
	}
	return nil
}

// Emit 实现 xsink.Sink 接口
func (s *Sink) Emit(line xsink.Line) error {
	buf := make([]byte, 0, len(line.Text)+1)
	buf = append(buf, line.Text...)
	buf = append(buf, '\n')
	_, err := s.Write(buf)
	return err
}

// Write 实现 io.Writer 接口，可直接作为 slog handler 的输出目标
func (s *Sink) Write(p []byte) (n int, err error) {
	if s.closed.Load() {
		return 0, xsink.ErrClosed
	}

	n, err = s.logger.Write(p)
	if err != nil {
		// Write 与 Close 存在 TOCTOU 窗口——前置检查通过后 Close 可能在
		// logger.Write 执行期间完成。后置检查确保调用者在该窗口内得到
		// ErrClosed 而非底层 I/O 错误。
		if s.closed.Load() {
			return n, xsink.ErrClosed
		}
		err = fmt.Errorf("xlumber: write: %w", err)
		s.report(err)
		return n, err
	}
	return n, nil
}

// Rotate 手动触发轮转：当前文件转为备份，创建新的活动文件
func (s *Sink) Rotate() error {
	if s.closed.Load() {
		return xsink.ErrClosed
	}
	if err := s.logger.Rotate(); err != nil {
		if s.closed.Load() {
			return xsink.ErrClosed
		}
		wrapped := fmt.Errorf("xlumber: rotate: %w", err)
		s.report(wrapped)
		return wrapped
	}
	return nil
}

// report 通过回调上报错误，回调 panic 被隔离
func (s *Sink) report(err error) {
	if err != nil && s.onError != nil {
		defer func() { recover() }() //nolint:errcheck // recover 返回值无需检查
		s.onError(err)
	}
}

// Close 实现 io.Closer 接口
//
// 幂等：首次调用关闭底层文件，重复调用返回 nil。
// 首次 Close 的底层错误通过返回值上抛，同时 sink 进入关闭态，
// 后续 Write/Emit/Rotate 一律返回 [xsink.ErrClosed]。
func (s *Sink) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	if err := s.logger.Close(); err != nil {
		return fmt.Errorf("xlumber: close: %w", err)
	}
	return nil
}
