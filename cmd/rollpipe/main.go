// rollpipe 把标准输入逐行写入按日期轮转的日志文件。
//
// 用法:
//
//	rollpipe [选项]
//
// 选项:
//
//	-p, --path         路径模板，文件名须含 {Date} 占位符（与 --config 二选一）
//	-c, --config       YAML/JSON 配置文件，格式见 xsinkconf
//	    --size-limit   单文件大小上限（字节），0 使用默认，-1 不限制
//	    --retain       保留文件数量，0 使用默认，-1 不限制
//	    --utc          以 UTC 日期命名文件
//
// 退出码:
//
//	0: 输入消费完毕
//	1: 写入或配置运行时错误
//	2: 参数错误
//
// 示例:
//
//	tail -F /var/log/app.out | rollpipe -p /data/log/app-{Date}.log --retain 14
//	myservice 2>&1 | rollpipe -c /etc/myservice/log.yaml
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/omeyang/logsink/pkg/config/xsinkconf"
	"github.com/omeyang/logsink/pkg/sink/xroll"
)

// 版本信息（可通过 -ldflags 注入）
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

// 单行长度上限，超长行按此截断缓冲区扩容上限处理
const maxLineBytes = 1 << 20

func main() {
	os.Exit(run(os.Stdin, os.Stderr, os.Args))
}

func createApp(stdin io.Reader, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:    "rollpipe",
		Usage:   "把标准输入逐行写入按日期轮转的日志文件",
		Version: fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "path",
				Aliases: []string{"p"},
				Usage:   "路径模板，文件名须含 {Date} 占位符",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML/JSON 配置文件路径",
			},
			&cli.Int64Flag{
				Name:  "size-limit",
				Usage: "单文件大小上限（字节），0 使用默认，-1 不限制",
			},
			&cli.IntFlag{
				Name:  "retain",
				Usage: "保留文件数量，0 使用默认，-1 不限制",
			},
			&cli.BoolFlag{
				Name:  "utc",
				Usage: "以 UTC 日期命名文件",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			sink, err := buildSink(cmd)
			if err != nil {
				return err
			}
			return pipe(ctx, stdin, stderr, sink)
		},
	}
}

// buildSink 按命令行参数构造轮转 sink
// --config 与 --path 互斥，config 模式下忽略其余轮转参数
func buildSink(cmd *cli.Command) (*xroll.Sink, error) {
	path := cmd.String("path")
	confPath := cmd.String("config")

	switch {
	case path != "" && confPath != "":
		return nil, usageErrorf("--path 与 --config 不能同时指定")
	case path == "" && confPath == "":
		return nil, usageErrorf("必须指定 --path 或 --config")
	}

	if confPath != "" {
		cfg, err := xsinkconf.Load(confPath)
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		if cfg.Rolling == nil {
			return nil, usageErrorf("配置文件缺少 rolling 段")
		}
		return newRollingSink(cfg.Rolling)
	}

	return newRollingSink(&xsinkconf.RollingConfig{
		PathFormat:     path,
		SizeLimitBytes: cmd.Int64("size-limit"),
		RetainedFiles:  cmd.Int("retain"),
		UTC:            cmd.Bool("utc"),
	})
}

// newRollingSink 把声明式轮转配置翻译成 xroll 选项
func newRollingSink(rc *xsinkconf.RollingConfig) (*xroll.Sink, error) {
	var opts []xroll.Option
	switch {
	case rc.SizeLimitBytes > 0:
		opts = append(opts, xroll.WithSizeLimit(rc.SizeLimitBytes))
	case rc.SizeLimitBytes < 0:
		opts = append(opts, xroll.WithUnlimitedSize())
	}
	switch {
	case rc.RetainedFiles > 0:
		opts = append(opts, xroll.WithRetainedFiles(rc.RetainedFiles))
	case rc.RetainedFiles < 0:
		opts = append(opts, xroll.WithUnlimitedRetention())
	}
	if rc.UTC {
		opts = append(opts, xroll.WithUTC())
	}
	return xroll.New(rc.PathFormat, opts...)
}

// pipe 把输入逐行拷贝进 sink，直到 EOF 或 context 取消
//
// 读取在独立 goroutine 中进行；收到信号后不再消费新行，
// 已读出的行仍会落盘，随后关闭 sink。
func pipe(ctx context.Context, stdin io.Reader, stderr io.Writer, sink *xroll.Sink) error {
	g, ctx := errgroup.WithContext(ctx)

	lines := make(chan string)
	g.Go(func() error {
		defer close(lines)
		scanner := bufio.NewScanner(stdin)
		scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return nil
			}
		}
		return scanner.Err()
	})

	g.Go(func() error {
		for line := range lines {
			if _, err := sink.Write(append([]byte(line), '\n')); err != nil {
				fmt.Fprintf(stderr, "rollpipe: 写入失败: %v\n", err)
				return err
			}
		}
		return nil
	})

	runErr := g.Wait()
	if closeErr := sink.Close(); closeErr != nil {
		runErr = errors.Join(runErr, closeErr)
	}
	return runErr
}

func run(stdin io.Reader, stderr io.Writer, args []string) int {
	app := createApp(stdin, stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, args); err != nil {
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(stderr, "参数错误: %v\n", usageErr)
			return 2
		}
		fmt.Fprintf(stderr, "错误: %v\n", err)
		return 1
	}
	return 0
}

// usageError 参数错误，映射到退出码 2
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usageErrorf(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}
