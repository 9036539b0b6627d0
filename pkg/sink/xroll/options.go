package xroll

import (
	"fmt"
	"os"
)

// 滚动文件 sink 默认配置值
const (
	// DefaultSizeLimitBytes 默认单个文件大小上限（1 GiB）
	DefaultSizeLimitBytes = int64(1) << 30

	// DefaultRetainedFiles 默认保留的文件数量
	DefaultRetainedFiles = 31

	// DefaultFileMode 默认日志文件权限
	DefaultFileMode = os.FileMode(0600)

	// maxSizeLimitBytes 单个文件大小上限的上界（1 TiB）
	maxSizeLimitBytes = int64(1) << 40

	// maxRetainedFiles 保留文件数量的上界
	maxRetainedFiles = 10000
)

// config 滚动文件 sink 配置
type config struct {
	// sizeLimit 单个文件大小上限（字节），超过时切换到同日期的序号文件
	sizeLimit int64

	// retained 保留的文件数量，超过时删除最旧的文件
	retained int

	// noSizeLimit 为 true 时不限制文件大小（文件只按日期切换）
	noSizeLimit bool

	// noRetention 为 true 时不做保留清理
	noRetention bool

	// utc 为 true 时按 UTC 计算日期，否则使用本地时区
	utc bool

	// fileMode 日志文件权限，仅允许权限位
	fileMode os.FileMode

	// onError 可选的错误回调函数
	//
	// 保留清理等尽力而为操作失败时调用。默认为 nil（静默忽略）。
	//
	// 安全约束：回调函数不得向同一 Sink 写入数据，否则会导致递归死锁。
	// 推荐输出到 os.Stderr 或独立的日志通道。
	onError func(error)
}

// Option 滚动文件 sink 配置选项函数
type Option func(*config)

// WithSizeLimit 设置单个文件大小上限（字节），必须 > 0
func WithSizeLimit(bytes int64) Option {
	return func(c *config) {
		c.sizeLimit = bytes
		c.noSizeLimit = false
	}
}

// WithUnlimitedSize 不限制单个文件大小（文件只按日期切换）
func WithUnlimitedSize() Option {
	return func(c *config) {
		c.noSizeLimit = true
	}
}

// WithRetainedFiles 设置保留的文件数量，必须 >= 1
// 当前活动文件永远不会被保留清理删除。
func WithRetainedFiles(n int) Option {
	return func(c *config) {
		c.retained = n
		c.noRetention = false
	}
}

// WithUnlimitedRetention 不做保留清理，文件无限累积
func WithUnlimitedRetention() Option {
	return func(c *config) {
		c.noRetention = true
	}
}

// WithUTC 按 UTC 而非本地时区计算文件名中的日期
func WithUTC() Option {
	return func(c *config) {
		c.utc = true
	}
}

// WithFileMode 设置日志文件权限，仅允许权限位（0000~0777）
func WithFileMode(mode os.FileMode) Option {
	return func(c *config) {
		c.fileMode = mode
	}
}

// WithOnError 设置错误回调函数
//
// 用于接收尽力而为操作（保留清理、旧文件句柄关闭）的错误通知。
//
// 设计决策: 不使用 slog 等日志库记录内部错误，避免 Sink 作为日志输出目标时
// 产生递归写入（写失败 → 打日志 → 再写失败 → 栈溢出/死锁）。
// 回调函数不得向同一 Sink 写入数据。
func WithOnError(fn func(error)) Option {
	return func(c *config) {
		c.onError = fn
	}
}

// validateConfig 验证滚动配置
func validateConfig(cfg *config) error {
	if !cfg.noSizeLimit && (cfg.sizeLimit <= 0 || cfg.sizeLimit > maxSizeLimitBytes) {
		return fmt.Errorf("%w: got %d, want 1~%d", ErrInvalidSizeLimit, cfg.sizeLimit, maxSizeLimitBytes)
	}

	if !cfg.noRetention && (cfg.retained < 1 || cfg.retained > maxRetainedFiles) {
		return fmt.Errorf("%w: got %d, want 1~%d", ErrInvalidRetainedCount, cfg.retained, maxRetainedFiles)
	}

	// FileMode 仅允许权限位（低 9 位），拒绝文件类型位、setuid/setgid 等
	if cfg.fileMode&^os.FileMode(0o777) != 0 {
		return fmt.Errorf("%w: got %04o, only permission bits (0000~0777) allowed",
			ErrInvalidFileMode, cfg.fileMode)
	}

	return nil
}
