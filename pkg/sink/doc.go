// Package sink 提供日志输出端相关的子包。
//
// 子包列表：
//   - xsink: sink 核心契约（Line/Sink/Level）与通用装饰器（重试、扇出）
//   - xroll: 按日期命名、大小触发序号轮转的文件 sink
//   - xlumber: 基于 lumberjack 的纯大小轮转文件 sink
//   - xplatform: 平台日志设施（stderr 流、unix syslog）的写入能力与适配
//   - xmetric: OpenTelemetry 指标装饰器
//
// 设计原则：
//   - sink 之间通过装饰器组合，不做继承式扩展
//   - Emit 并发安全，Close 幂等，关闭后写入返回 ErrClosed
//   - 文件 sink 同时实现 io.Writer，可直接接入 slog handler
package sink
