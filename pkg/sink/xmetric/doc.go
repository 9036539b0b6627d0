// Package xmetric 为 sink 管道提供 OpenTelemetry 指标装饰器。
//
// NewSink 包装任意 xsink.Sink，在每次 Emit 上记录计数:
//   - logsink.emit.total:  总条数，带 level 标签
//   - logsink.emit.errors: 下游返回错误的条数
//   - logsink.emit.bytes:  成功写入的文本字节数
//
// 装饰器完全透明: Emit 的返回值与下游一致，指标记录不产生额外错误。
// 默认从 otel.GetMeterProvider() 取全局 MeterProvider，
// 测试或多租户场景可通过 WithMeterProvider 注入。
//
// 使用示例:
//
//	base, _ := xroll.New("/var/log/app-{Date}.log")
//	s, err := xmetric.NewSink(base)
//	if err != nil {
//		// handle error
//	}
//	defer s.Close()
package xmetric
