// Package log 提供日志管道组装相关的子包。
//
// 子包列表：
//   - xwire: 把 sink 组装进 log/slog 管道的构建器与动态级别控制
package log
