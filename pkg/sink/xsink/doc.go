// Package xsink 定义日志 sink 的核心契约与组合装饰器。
//
// # 核心契约
//
//   - [Line]: 一条已格式化的日志行（UTC 时间戳、级别、渲染文本），
//     由上游格式化器产出，sink 只负责持久化或转发，不做模板解析。
//   - [Level]: 与 log/slog 兼容的日志级别，支持字符串解析和配置序列化。
//   - [Sink]: 接收 Line 并持久化/转发的组件。所有实现必须并发安全；
//     Close 幂等（重复调用返回 nil）；关闭后 Emit 返回 [ErrClosed]。
//
// # 具体实现
//
//   - xroll: 按日期命名、按大小轮转、按数量保留的滚动文件 sink
//   - xlumber: 基于 lumberjack 的纯大小轮转 sink（压缩备份、按天清理）
//   - xplatform: 平台日志转发（stderr、unix syslog）
//
// # 装饰器
//
// sink 自身从不重试（失败直接上抛，由调用方决策）。需要重试语义时
// 通过显式组合使用装饰器：
//
//	s, _ := xroll.New("logs/app-{Date}.log")
//	rs := xsink.NewRetrySink(s, xsink.WithAttempts(3))
//
// [NewTeeSink] 将一条日志扇出到多个 sink（如同时写文件和 syslog）。
package xsink
