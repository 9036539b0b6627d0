package xplatform

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/omeyang/logsink/pkg/sink/xsink"
)

// Writer 平台日志写入能力接口
//
// 每个目标平台一个实现（stderr 流、unix syslog 等），在组装日志管道时
// 按部署平台选择注入，而非继承或全局注册。
//
// 实现约定：
//   - Write 必须是并发安全的
//   - 实现可以额外提供 io.Closer；[NewSink] 会在关闭时级联调用
type Writer interface {
	// Write 向平台日志写入一条格式化文本
	Write(tag string, level xsink.Level, text string) error
}

// StreamWriter 向任意 io.Writer 输出的平台写入器
//
// 默认目标为 os.Stderr，是没有平台日志设施时的兜底实现。
type StreamWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// 编译时断言
var _ Writer = (*StreamWriter)(nil)

// NewStreamWriter 创建流式平台写入器，w 为 nil 时使用 os.Stderr
func NewStreamWriter(w io.Writer) *StreamWriter {
	if w == nil {
		w = os.Stderr
	}
	return &StreamWriter{w: w}
}

// Write 实现 Writer 接口，输出 "LEVEL tag: text" 格式的单行文本
func (s *StreamWriter) Write(tag string, level xsink.Level, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := fmt.Fprintf(s.w, "%s %s: %s\n", level, tag, text); err != nil {
		return fmt.Errorf("xplatform: stream write: %w", err)
	}
	return nil
}
