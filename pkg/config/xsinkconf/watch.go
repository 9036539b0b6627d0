package xsinkconf

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/omeyang/logsink/pkg/log/xwire"
	"github.com/omeyang/logsink/pkg/sink/xsink"
)

// LevelWatcher 监视配置文件变更并把新的日志级别应用到管道
//
// 只有 level 字段会被热应用；输出目标、格式等结构性变更
// 需要重建管道，不在监视范围内。
type LevelWatcher struct {
	path     string
	pipeline *xwire.Pipeline
	watcher  *fsnotify.Watcher
	onError  func(error)
	debounce time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
	mu       sync.Mutex
	running  bool
	timer    *time.Timer // debounce 定时器，Stop() 时需要取消
}

// WatchOption 监视器配置选项
type WatchOption func(*watchOptions)

type watchOptions struct {
	debounce time.Duration
	onError  func(error)
}

func defaultWatchOptions() *watchOptions {
	return &watchOptions{
		debounce: 100 * time.Millisecond, // 默认防抖时间
	}
}

// WithDebounce 设置防抖时间
// 在指定时间内的多次变更只触发一次重载
func WithDebounce(d time.Duration) WatchOption {
	return func(o *watchOptions) {
		if d > 0 {
			o.debounce = d
		}
	}
}

// WithWatchOnError 设置重载失败时的错误回调
func WithWatchOnError(fn func(error)) WatchOption {
	return func(o *watchOptions) {
		o.onError = fn
	}
}

// WatchLevel 创建级别监视器
//
// 监视 path 指向的配置文件，文件变更后重新加载并把解析出的
// 级别应用到 pipeline。返回的监视器需调用 StartAsync 开始监视，
// Stop 停止（幂等）。
//
// 示例:
//
//	w, err := xsinkconf.WatchLevel("/etc/app/log.yaml", p)
//	if err != nil {
//		// handle error
//	}
//	w.StartAsync()
//	defer w.Stop()
func WatchLevel(path string, pipeline *xwire.Pipeline, opts ...WatchOption) (*LevelWatcher, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	if pipeline == nil {
		return nil, ErrNilPipeline
	}
	if _, err := detectFormat(path); err != nil {
		return nil, err
	}

	options := defaultWatchOptions()
	for _, opt := range opts {
		opt(options)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("xsinkconf: create watcher failed: %w", err)
	}

	// 监视配置文件所在目录而非文件本身
	// 编辑器保存时可能先删除再创建，直接监视文件会丢失事件
	dir := filepath.Dir(path)
	if err := fsWatcher.Add(dir); err != nil {
		closeErr := fsWatcher.Close()
		return nil, errors.Join(
			fmt.Errorf("xsinkconf: watch directory %s failed: %w", dir, err),
			closeErr,
		)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &LevelWatcher{
		path:     path,
		pipeline: pipeline,
		watcher:  fsWatcher,
		onError:  options.onError,
		debounce: options.debounce,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// StartAsync 异步启动监视，在后台 goroutine 中运行并立即返回
func (w *LevelWatcher) StartAsync() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	go w.run()
}

// Stop 停止监视并释放 fsnotify 资源，幂等
//
// 未启动过的监视器也需要 Stop，否则底层 watcher 泄漏。
func (w *LevelWatcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	// 停止 debounce 定时器，防止 Stop 后仍触发重载
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}

	w.cancel()
	w.running = false
	return w.watcher.Close()
}

// run 运行监视循环
func (w *LevelWatcher) run() {
	filename := filepath.Base(w.path)

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event, filename)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.report(fmt.Errorf("xsinkconf: watch error: %w", err))
		}
	}
}

// handleEvent 处理文件系统事件
func (w *LevelWatcher) handleEvent(event fsnotify.Event, filename string) {
	if filepath.Base(event.Name) != filename {
		return
	}

	// Write: 直接修改; Create: 新建文件; Rename: vim/emacs 的原子写入
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	// 防抖处理：重置计时器
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}

	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case <-w.ctx.Done():
			return
		default:
		}
		w.applyLevel()
	})
}

// applyLevel 重新加载配置并把级别应用到管道
func (w *LevelWatcher) applyLevel() {
	cfg, err := Load(w.path)
	if err != nil {
		w.report(err)
		return
	}
	if cfg.Level == "" {
		return
	}
	level, err := xsink.ParseLevel(cfg.Level)
	if err != nil {
		w.report(err)
		return
	}
	w.pipeline.SetLevel(level)
}

func (w *LevelWatcher) report(err error) {
	if w.onError != nil {
		w.onError(err)
	}
}
