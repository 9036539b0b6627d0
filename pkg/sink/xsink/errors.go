package xsink

import "errors"

var (
	// ErrClosed sink 已关闭，拒绝后续写入
	ErrClosed = errors.New("xsink: sink is closed")

	// ErrNilSink 传入的 sink 为 nil
	ErrNilSink = errors.New("xsink: sink is required")

	// ErrNoSinks TeeSink 至少需要一个下游 sink
	ErrNoSinks = errors.New("xsink: at least one sink is required")

	// ErrInvalidAttempts 重试次数无效（必须 >= 1）
	ErrInvalidAttempts = errors.New("xsink: invalid retry attempts")
)
