package xwire

import (
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/omeyang/logsink/pkg/sink/xsink"
)

// Pipeline 构建完成的日志管道
//
// 持有 logger、动态级别控制与底层 sink 的关闭句柄。
// 并发安全：SetLevel/GetLevel 可与日志写入并发调用。
type Pipeline struct {
	logger   *slog.Logger
	levelVar *slog.LevelVar
	closer   io.Closer
	closed   atomic.Bool
}

// Logger 返回管道上的 slog.Logger
func (p *Pipeline) Logger() *slog.Logger {
	return p.logger
}

// SetLevel 运行时调整日志级别
func (p *Pipeline) SetLevel(level xsink.Level) {
	p.levelVar.Set(slog.Level(level))
}

// GetLevel 返回当前日志级别
func (p *Pipeline) GetLevel() xsink.Level {
	return xsink.Level(p.levelVar.Level())
}

// Close 关闭底层 sink，幂等
//
// 输出目标为普通 io.Writer 时无资源可释放，直接返回 nil。
func (p *Pipeline) Close() error {
	if p.closed.Swap(true) {
		return nil
	}
	if p.closer != nil {
		return p.closer.Close()
	}
	return nil
}
