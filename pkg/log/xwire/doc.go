// Package xwire 把 sink 组装进 slog 日志管道。
//
// Builder 用链式调用配置级别、格式与输出目标，Build 返回 Pipeline:
//   - Logger() 取 *slog.Logger，正常打日志
//   - SetLevel/GetLevel 运行时动态调级
//   - Close 释放底层 sink，幂等
//
// 输出目标四选一（后设置者生效）:
//   - SetOutput: 任意 io.Writer（默认 os.Stderr）
//   - SetRolling: 按日期+大小轮转的文件（xroll）
//   - SetLumber: lumberjack 风格按大小轮转（xlumber）
//   - SetSink: 已装饰好的 sink 链（需同时实现 io.Writer）
//
// 使用示例:
//
//	p, err := xwire.New().
//		SetLevelString("debug").
//		SetFormat("json").
//		SetRolling("/var/log/app-{Date}.log", xroll.WithRetainedFiles(7)).
//		Build()
//	if err != nil {
//		// handle error
//	}
//	defer p.Close()
//	p.Logger().Info("started", "pid", os.Getpid())
package xwire
