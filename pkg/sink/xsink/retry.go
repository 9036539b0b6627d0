package xsink

import (
	"errors"
	"time"

	retry "github.com/avast/retry-go/v5"
)

// 重试装饰器默认配置值
const (
	// DefaultRetryAttempts 默认总尝试次数（包含首次）
	DefaultRetryAttempts = 3

	// DefaultRetryDelay 默认重试间隔
	DefaultRetryDelay = 100 * time.Millisecond
)

// retryConfig 重试装饰器配置
type retryConfig struct {
	attempts uint
	delay    time.Duration
	onRetry  func(attempt int, err error)
}

// RetryOption 重试装饰器配置选项
type RetryOption func(*retryConfig)

// WithAttempts 设置总尝试次数（包含首次尝试），必须 >= 1
func WithAttempts(n int) RetryOption {
	return func(c *retryConfig) {
		if n >= 1 {
			c.attempts = uint(n)
		}
	}
}

// WithRetryDelay 设置重试间隔
func WithRetryDelay(d time.Duration) RetryOption {
	return func(c *retryConfig) {
		if d > 0 {
			c.delay = d
		}
	}
}

// WithOnRetry 设置重试回调，attempt 表示已失败的尝试次数（从 1 开始）
func WithOnRetry(fn func(attempt int, err error)) RetryOption {
	return func(c *retryConfig) {
		if fn != nil {
			c.onRetry = fn
		}
	}
}

// retrySink 对 Emit 失败执行有限次重试的装饰器
//
// 底层使用 avast/retry-go/v5。具体 sink 从不内部重试——重试是一种
// 调用方策略，通过显式组合本装饰器获得，而非隐藏在 sink 实现里。
type retrySink struct {
	inner Sink
	cfg   retryConfig
}

// NewRetrySink 包装 sink，使 Emit 失败时自动重试
//
// [ErrClosed] 被视为不可恢复错误，不会触发重试。
// Close 直接透传给下游 sink。
func NewRetrySink(s Sink, opts ...RetryOption) (Sink, error) {
	if s == nil {
		return nil, ErrNilSink
	}

	cfg := retryConfig{
		attempts: DefaultRetryAttempts,
		delay:    DefaultRetryDelay,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return &retrySink{inner: s, cfg: cfg}, nil
}

// Emit 写入一条日志行，失败时按配置重试
func (r *retrySink) Emit(line Line) error {
	opts := []retry.Option{
		retry.Attempts(r.cfg.attempts),
		retry.Delay(r.cfg.delay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			// 已关闭的 sink 不可能因重试恢复
			return !errors.Is(err, ErrClosed)
		}),
	}
	if r.cfg.onRetry != nil {
		opts = append(opts, retry.OnRetry(func(n uint, err error) {
			r.cfg.onRetry(int(n)+1, err)
		}))
	}

	return retry.New(opts...).Do(func() error {
		return r.inner.Emit(line)
	})
}

// Close 关闭下游 sink
func (r *retrySink) Close() error {
	return r.inner.Close()
}
