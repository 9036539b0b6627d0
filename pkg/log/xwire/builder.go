package xwire

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/omeyang/logsink/pkg/sink/xlumber"
	"github.com/omeyang/logsink/pkg/sink/xroll"
	"github.com/omeyang/logsink/pkg/sink/xsink"
)

// 输出目标种类，SetOutput/SetRolling/SetLumber/SetSink 互斥，后设置者生效
type targetKind int

const (
	targetWriter targetKind = iota
	targetRolling
	targetLumber
	targetSink
)

// Builder 日志管道构建器
//
// 链式设置配置，首个错误记录后短路，Build 时统一返回。
// 轮转 sink 在 Build 时才构造，保证后设置的 SetOnError
// 也能接到 sink 的内部错误。
type Builder struct {
	target      targetKind
	output      io.Writer
	sink        xsink.Sink
	rollingPath string
	rollingOpts []xroll.Option
	lumberPath  string
	lumberOpts  []xlumber.Option

	level     xsink.Level
	levelVar  *slog.LevelVar
	format    string
	addSource bool
	onError   func(error)
	err       error
}

// New 创建配置构建器
func New() *Builder {
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.Level(xsink.LevelInfo))

	return &Builder{
		target:   targetWriter,
		output:   os.Stderr,
		level:    xsink.LevelInfo,
		levelVar: levelVar,
		format:   "text",
	}
}

// SetOutput 设置日志输出目标为任意 io.Writer
func (b *Builder) SetOutput(w io.Writer) *Builder {
	if b.err != nil {
		return b
	}
	if w == nil {
		b.err = ErrNilOutput
		return b
	}
	b.target = targetWriter
	b.output = w
	return b
}

// SetRolling 设置按日期+大小轮转的文件输出
//
// pathFormat 与选项语义见 [xroll.New]，sink 在 Build 时构造。
func (b *Builder) SetRolling(pathFormat string, opts ...xroll.Option) *Builder {
	if b.err != nil {
		return b
	}
	b.target = targetRolling
	b.rollingPath = pathFormat
	b.rollingOpts = opts
	return b
}

// SetLumber 设置 lumberjack 风格的按大小轮转文件输出
func (b *Builder) SetLumber(filename string, opts ...xlumber.Option) *Builder {
	if b.err != nil {
		return b
	}
	b.target = targetLumber
	b.lumberPath = filename
	b.lumberOpts = opts
	return b
}

// SetSink 设置已构造好的 sink 作为输出
//
// sink 必须同时实现 io.Writer（xroll、xlumber 的 sink 都满足），
// 否则 Build 返回 ErrSinkNotWriter。Close 时级联关闭该 sink。
func (b *Builder) SetSink(s xsink.Sink) *Builder {
	if b.err != nil {
		return b
	}
	if s == nil {
		b.err = xsink.ErrNilSink
		return b
	}
	b.target = targetSink
	b.sink = s
	return b
}

// SetLevel 设置日志级别
func (b *Builder) SetLevel(level xsink.Level) *Builder {
	if b.err != nil {
		return b
	}
	b.level = level
	b.levelVar.Set(slog.Level(level))
	return b
}

// SetLevelString 通过字符串设置日志级别
func (b *Builder) SetLevelString(s string) *Builder {
	if b.err != nil {
		return b
	}
	level, err := xsink.ParseLevel(s)
	if err != nil {
		b.err = err
		return b
	}
	return b.SetLevel(level)
}

// SetFormat 设置输出格式：text 或 json
func (b *Builder) SetFormat(format string) *Builder {
	if b.err != nil {
		return b
	}
	normalized := strings.ToLower(strings.TrimSpace(format))
	if normalized == "" {
		// 空值视为使用默认格式，避免误把“没填”变成配置错误。
		b.format = "text"
		return b
	}
	if normalized != "text" && normalized != "json" {
		b.err = fmt.Errorf("%w: %q", ErrUnknownFormat, format)
		return b
	}
	b.format = normalized
	return b
}

// SetAddSource 是否在日志中添加源码位置
func (b *Builder) SetAddSource(enable bool) *Builder {
	if b.err != nil {
		return b
	}
	b.addSource = enable
	return b
}

// SetOnError 设置 sink 内部错误回调
//
// 轮转 sink 的后台错误（旧文件关闭失败、过期文件清理失败等）
// 通过此回调上报。回调在写入热路径同步执行，应保持轻量。
func (b *Builder) SetOnError(fn func(error)) *Builder {
	if b.err != nil {
		return b
	}
	b.onError = fn
	return b
}

// Build 构建日志管道
//
// 配置阶段记录的首个错误在此返回；轮转 sink 的构造错误
// （路径非法、目录不可建等）同样在此暴露。
func (b *Builder) Build() (*Pipeline, error) {
	if b.err != nil {
		return nil, b.err
	}

	output := b.output
	var closer io.Closer

	switch b.target {
	case targetRolling:
		opts := b.rollingOpts
		if b.onError != nil {
			opts = append(opts[:len(opts):len(opts)], xroll.WithOnError(b.onError))
		}
		s, err := xroll.New(b.rollingPath, opts...)
		if err != nil {
			return nil, err
		}
		output = s
		closer = s
	case targetLumber:
		opts := b.lumberOpts
		if b.onError != nil {
			opts = append(opts[:len(opts):len(opts)], xlumber.WithOnError(b.onError))
		}
		s, err := xlumber.New(b.lumberPath, opts...)
		if err != nil {
			return nil, err
		}
		output = s
		closer = s
	case targetSink:
		w, ok := b.sink.(io.Writer)
		if !ok {
			return nil, ErrSinkNotWriter
		}
		output = w
		closer = b.sink
	}

	opts := &slog.HandlerOptions{
		Level:     b.levelVar,
		AddSource: b.addSource,
	}

	var handler slog.Handler
	switch b.format {
	case "json":
		handler = slog.NewJSONHandler(output, opts)
	default:
		handler = slog.NewTextHandler(output, opts)
	}

	return &Pipeline{
		logger:   slog.New(handler),
		levelVar: b.levelVar,
		closer:   closer,
	}, nil
}
