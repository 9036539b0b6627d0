package xroll

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/omeyang/logsink/pkg/sink/xsink"
	"github.com/omeyang/logsink/pkg/util/xfile"
)

// 编译时断言：Sink 同时满足 xsink.Sink 和 io.Writer
var (
	_ xsink.Sink = (*Sink)(nil)
	_ io.Writer  = (*Sink)(nil)
)

// Sink 按日期命名、按大小轮转、按数量保留的滚动文件 sink
//
// 同一时刻只有一个活动文件处于追加打开状态。轮转触发条件：
//   - 日期变化：新的一天总是产生新文件（优先于大小触发）
//   - 大小超限：当前文件非空且写入会超过上限时，切换到同日期的序号文件
//
// 所有状态变更（日期检查、大小检查、写入、轮转、保留清理）在单个互斥锁下
// 串行执行，多个生产者可以安全地共享一个实例。
type Sink struct {
	pat       *pattern
	sizeLimit int64 // 0 表示不限制
	retained  int   // 0 表示不限制
	utc       bool
	fileMode  os.FileMode
	onError   func(error)

	mu     sync.Mutex
	file   *os.File // 当前活动文件，closed 后为 nil
	path   string   // 活动文件路径
	day    string   // 活动文件的日期（ISO）
	seq    int      // 活动文件的序号，0 表示当天基础文件
	size   int64    // 通过本 sink 写入活动文件的累计字节数
	closed bool

	// 可注入的时钟，生产路径固定为 time.Now，测试中注入模拟日期
	nowFn func() time.Time
}

// New 创建滚动文件 sink
//
// pathFormat 必须恰好包含一个 {Date} 占位符（替换为 "2006-01-02" 格式日期），
// 如 "logs/app-{Date}.log"。同日期的大小溢出文件在日期后追加 "-NNN" 序号段，
// 如 "logs/app-2024-01-01-001.log"。
//
// 构造时扫描目标目录：存在匹配文件时以最新的 (日期, 序号) 文件为活动文件
// 追加打开（大小计数从现有长度继续），否则创建当天的基础文件。
// 不存在的父目录会被自动创建（权限 0750）。
//
// 所有配置错误在构造时快速失败，Emit 阶段只会出现 I/O 错误。
func New(pathFormat string, opts ...Option) (*Sink, error) {
	return newSink(pathFormat, time.Now, opts...)
}

// newSink 带可注入时钟的构造实现，测试用固定时钟模拟日期推进
func newSink(pathFormat string, nowFn func() time.Time, opts ...Option) (*Sink, error) {
	pat, err := parsePattern(pathFormat)
	if err != nil {
		return nil, err
	}

	cfg := config{
		sizeLimit: DefaultSizeLimitBytes,
		retained:  DefaultRetainedFiles,
		fileMode:  DefaultFileMode,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	s := &Sink{
		pat:      pat,
		utc:      cfg.utc,
		fileMode: cfg.fileMode,
		onError:  cfg.onError,
		nowFn:    nowFn,
	}
	if !cfg.noSizeLimit {
		s.sizeLimit = cfg.sizeLimit
	}
	if !cfg.noRetention {
		s.retained = cfg.retained
	}

	today := s.today()
	if err := xfile.EnsureDir(pat.filePath(today, 0)); err != nil {
		return nil, err
	}

	// 恢复语义：采用目录中最新的匹配文件继续追加，避免重启后覆盖当天日志
	files, err := pat.scan()
	if err != nil {
		return nil, fmt.Errorf("xroll: scan %s: %w", pat.dir, err)
	}
	day, seq := today, 0
	if len(files) > 0 {
		last := files[len(files)-1]
		day, seq = last.day, last.seq
	}
	if err := s.open(day, seq); err != nil {
		return nil, err
	}
	return s, nil
}

// today 返回用于文件命名的当前日期
func (s *Sink) today() string {
	t := s.nowFn()
	if s.utc {
		t = t.UTC()
	}
	return t.Format(dateLayout)
}

// open 打开指定日期和序号的文件并提交为活动文件
//
// 先打开新文件再关闭旧文件：打开失败时活动文件保持不变，
// sink 状态完整，调用方可以对同一活动文件重试。
// 旧句柄关闭失败只通过错误回调上报（数据路径已切换，不影响写入）。
func (s *Sink) open(day string, seq int) error {
	path := s.pat.filePath(day, seq)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, s.fileMode)
	if err != nil {
		return fmt.Errorf("xroll: open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("xroll: stat %s: %w", path, err)
	}

	if old := s.file; old != nil {
		if cerr := old.Close(); cerr != nil {
			s.report(fmt.Errorf("xroll: close %s: %w", s.path, cerr))
		}
	}

	s.file = f
	s.path = path
	s.day = day
	s.seq = seq
	s.size = info.Size()
	return nil
}

// write 序列化执行一次完整的 轮转检查 → 写入 → 保留清理 流程
func (s *Sink) write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, xsink.ErrClosed
	}

	rotated := false

	// 日期轮转：新的一天总是产生新文件路径，即使大小未超限
	if today := s.today(); today != s.day {
		if err := s.open(today, 0); err != nil {
			return 0, err
		}
		rotated = true
	}

	// 大小轮转：仅在当前文件非空时触发——首行即使单独超限也要写入，
	// 否则空文件永远写不进任何内容
	if s.sizeLimit > 0 && s.size > 0 && s.size+int64(len(p)) > s.sizeLimit {
		if err := s.open(s.day, s.seq+1); err != nil {
			return 0, err
		}
		rotated = true
	}

	n, err := s.file.Write(p)
	s.size += int64(n)
	if err != nil {
		err = fmt.Errorf("xroll: write %s: %w", s.path, err)
	}

	if rotated {
		s.sweepLocked()
	}
	return n, err
}

// Emit 实现 xsink.Sink 接口
//
// 将渲染文本加上行终止符后以 UTF-8 追加到活动文件。
func (s *Sink) Emit(line xsink.Line) error {
	buf := make([]byte, 0, len(line.Text)+1)
	buf = append(buf, line.Text...)
	buf = append(buf, '\n')
	_, err := s.write(buf)
	return err
}

// Write 实现 io.Writer 接口
//
// 每次 Write 视为一条已渲染的完整日志行（含行终止符），
// 可直接作为 slog handler 的输出目标。
func (s *Sink) Write(p []byte) (n int, err error) {
	return s.write(p)
}

// ActiveFile 返回当前活动文件的路径，已关闭时返回最后的活动路径
func (s *Sink) ActiveFile() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// Close 实现 io.Closer 接口
//
// 关闭活动文件句柄。幂等：重复调用返回 nil。
// 关闭后调用 Emit 或 Write 返回 [xsink.ErrClosed]。
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if s.file == nil {
		return nil
	}
	f := s.file
	s.file = nil
	if err := f.Close(); err != nil {
		return fmt.Errorf("xroll: close %s: %w", s.path, err)
	}
	return nil
}

// report 通过回调上报尽力而为操作的错误
//
// 回调 panic 被 recover 隔离，防止错误通知反向中断写入主流程。
func (s *Sink) report(err error) {
	if err != nil && s.onError != nil {
		defer func() { recover() }() //nolint:errcheck // recover 返回值无需检查
		s.onError(err)
	}
}
