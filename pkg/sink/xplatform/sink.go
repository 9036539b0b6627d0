package xplatform

import (
	"io"
	"sync/atomic"

	"github.com/omeyang/logsink/pkg/sink/xsink"
)

// platformSink 将 Writer 能力适配为 xsink.Sink 的装饰器
type platformSink struct {
	w      Writer
	tag    string
	closed atomic.Bool
}

// NewSink 将平台写入器适配为 xsink.Sink
//
// tag 绑定在 sink 上，所有经此 sink 的日志行都携带同一 tag。
// Close 幂等；写入器实现了 io.Closer 时会被级联关闭。
func NewSink(w Writer, tag string) (xsink.Sink, error) {
	if w == nil {
		return nil, ErrNilWriter
	}
	return &platformSink{w: w, tag: tag}, nil
}

// Emit 实现 xsink.Sink 接口
func (p *platformSink) Emit(line xsink.Line) error {
	if p.closed.Load() {
		return xsink.ErrClosed
	}
	return p.w.Write(p.tag, line.Level, line.Text)
}

// Close 实现 io.Closer 接口，幂等
func (p *platformSink) Close() error {
	if p.closed.Swap(true) {
		return nil
	}
	if c, ok := p.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
