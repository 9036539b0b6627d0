// sink.go 定义核心契约：Line 与 Sink
//
// 设计理念：
//   - sink 只消费已渲染的文本行，模板解析和字段格式化在上游完成
//   - Emit 同步执行，要么完整写入要么返回错误，没有内部缓冲和重试
//   - Close 幂等，便于 defer 与生命周期管理叠加调用
package xsink

import "time"

// Line 一条已格式化的日志行
//
// 由外部格式化器产出、被 sink 一次性消费的不可变值。
// Text 不含行终止符，sink 在落盘/转发时自行追加。
type Line struct {
	// Time 事件时间戳（UTC）
	Time time.Time

	// Level 日志级别
	Level Level

	// Text 渲染后的日志文本，不含行终止符
	Text string
}

// Sink 日志输出目标接口
//
// 接收格式化后的日志行并持久化或转发。所有实现必须满足以下约定：
//   - Emit 必须是并发安全的
//   - Emit 失败时返回错误，不得静默丢弃，也不得使 sink 进入不可用状态
//   - Close 幂等：首次调用释放资源，后续调用返回 nil
//   - Close 之后调用 Emit 应返回 [ErrClosed]
type Sink interface {
	// Emit 写入一条日志行
	Emit(line Line) error

	// Close 关闭 sink，释放资源
	Close() error
}
