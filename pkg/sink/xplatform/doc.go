// Package xplatform 提供平台日志设施的写入能力与 sink 适配。
//
// Writer 是平台日志写入的能力接口，内置两种实现:
//   - StreamWriter: 写入任意 io.Writer（默认 os.Stderr），跨平台可用
//   - SyslogWriter: 写入本机 syslog，仅 unix 平台可用，
//     其他平台构造时返回 ErrUnsupportedPlatform
//
// NewSink 将任意 Writer 适配为 xsink.Sink，tag 在适配时绑定。
//
// 使用示例:
//
//	w, err := xplatform.NewSyslogWriter("myapp")
//	if err != nil {
//		w = xplatform.NewStreamWriter(nil) // 回退到 stderr
//	}
//	s, _ := xplatform.NewSink(w, "ingest")
//	defer s.Close()
package xplatform
