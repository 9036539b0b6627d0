// Package xlumber 提供基于 lumberjack v2 的纯大小轮转 sink。
//
// 与 xroll 的分工：
//
//   - xroll: 文件名编码日期，按日期+大小轮转，按文件总数保留——
//     适合"按天归档、可预测文件名"的场景
//   - xlumber: 活动文件路径固定，超限时转为时间戳备份，备份按
//     数量/天数清理并可 gzip 压缩——适合"单一入口文件+压缩归档"的场景
//
// 两者都实现 xsink.Sink 和 io.Writer，可互换地接入 xwire 构建的
// slog 管道或 xsink 装饰器。
//
// # 已知限制
//
// lumberjack 的清理 goroutine（millRun）在 Close 后仍驻留，
// 这是上游已知限制，无法在包装层修复。
package xlumber
