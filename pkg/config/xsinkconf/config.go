package xsinkconf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/omeyang/logsink/pkg/log/xwire"
	"github.com/omeyang/logsink/pkg/sink/xlumber"
	"github.com/omeyang/logsink/pkg/sink/xroll"
	"github.com/omeyang/logsink/pkg/sink/xsink"
)

// Format 配置文件格式
type Format string

const (
	// FormatYAML YAML 格式
	FormatYAML Format = "yaml"
	// FormatJSON JSON 格式
	FormatJSON Format = "json"

	// koanf 的层级分隔符与结构体标签
	confDelim = "."
	confTag   = "koanf"
)

// RollingConfig 按日期+大小轮转的文件输出配置，语义见 xroll
type RollingConfig struct {
	// PathFormat 路径模板，文件名中必须含 {Date} 占位符
	PathFormat string `koanf:"path_format"`
	// SizeLimitBytes 单文件大小上限，0 使用默认值，-1 不限制
	SizeLimitBytes int64 `koanf:"size_limit_bytes"`
	// RetainedFiles 保留文件数量，0 使用默认值，-1 不限制
	RetainedFiles int `koanf:"retained_files"`
	// UTC 是否以 UTC 日期命名文件
	UTC bool `koanf:"utc"`
}

// LumberConfig lumberjack 风格轮转的文件输出配置，语义见 xlumber
type LumberConfig struct {
	// Filename 日志文件路径
	Filename string `koanf:"filename"`
	// MaxSizeMB 单文件大小上限（MB），0 使用默认值
	MaxSizeMB int `koanf:"max_size_mb"`
	// MaxBackups 保留的历史文件数量
	MaxBackups int `koanf:"max_backups"`
	// MaxAgeDays 历史文件最长保留天数
	MaxAgeDays int `koanf:"max_age_days"`
	// Compress 是否压缩历史文件
	Compress bool `koanf:"compress"`
	// LocalTime 历史文件时间戳是否使用本地时间
	LocalTime bool `koanf:"local_time"`
}

// Config 日志管道的声明式配置
//
// Rolling 与 Lumber 互斥；两者都未配置时输出到 Output 指定的标准流。
type Config struct {
	// Level 日志级别: debug/info/warn/error，空值为 info
	Level string `koanf:"level"`
	// Format 输出格式: text/json，空值为 text
	Format string `koanf:"format"`
	// AddSource 是否在日志中添加源码位置
	AddSource bool `koanf:"add_source"`
	// Output 标准流输出: stderr/stdout，仅在未配置文件输出时生效
	Output string `koanf:"output"`
	// Rolling 按日期+大小轮转的文件输出
	Rolling *RollingConfig `koanf:"rolling"`
	// Lumber lumberjack 风格轮转的文件输出
	Lumber *LumberConfig `koanf:"lumber"`
}

// Load 从文件加载配置
// 根据扩展名自动检测格式（.yaml/.yml 或 .json）
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	format, err := detectFormat(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	return LoadBytes(data, format)
}

// LoadBytes 从字节数据加载配置
// 需要显式指定格式，适用于 K8s ConfigMap 等场景；空数据返回零值配置
func LoadBytes(data []byte, format Format) (*Config, error) {
	var parser koanf.Parser
	switch format {
	case FormatYAML:
		parser = yaml.Parser()
	case FormatJSON:
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	k := koanf.New(confDelim)
	if len(data) > 0 {
		if err := k.Load(rawbytes.Provider(data), parser); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParseFailed, err)
		}
	}

	cfg := &Config{}
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: confTag}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFailed, err)
	}
	return cfg, nil
}

// Validate 校验配置的静态合法性
//
// 路径模板、大小上限等 sink 侧约束在 Build 时由对应 sink 校验，
// 这里只检查配置结构本身的矛盾。
func (c *Config) Validate() error {
	if c.Rolling != nil && c.Lumber != nil {
		return ErrConflictingOutputs
	}
	if c.Level != "" {
		if _, err := xsink.ParseLevel(c.Level); err != nil {
			return err
		}
	}
	switch strings.ToLower(strings.TrimSpace(c.Format)) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: %q", xwire.ErrUnknownFormat, c.Format)
	}
	switch strings.ToLower(strings.TrimSpace(c.Output)) {
	case "", "stderr", "stdout":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOutput, c.Output)
	}
	return nil
}

// Build 按配置构建日志管道
func (c *Config) Build() (*xwire.Pipeline, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	b := xwire.New()
	if c.Level != "" {
		b.SetLevelString(c.Level)
	}
	if c.Format != "" {
		b.SetFormat(c.Format)
	}
	b.SetAddSource(c.AddSource)

	switch {
	case c.Rolling != nil:
		b.SetRolling(c.Rolling.PathFormat, c.Rolling.options()...)
	case c.Lumber != nil:
		b.SetLumber(c.Lumber.Filename, c.Lumber.options()...)
	case strings.EqualFold(strings.TrimSpace(c.Output), "stdout"):
		b.SetOutput(os.Stdout)
	default:
		b.SetOutput(os.Stderr)
	}

	return b.Build()
}

// options 将声明式字段映射为 xroll 选项，零值字段沿用 sink 默认
func (r *RollingConfig) options() []xroll.Option {
	var opts []xroll.Option
	switch {
	case r.SizeLimitBytes > 0:
		opts = append(opts, xroll.WithSizeLimit(r.SizeLimitBytes))
	case r.SizeLimitBytes < 0:
		opts = append(opts, xroll.WithUnlimitedSize())
	}
	switch {
	case r.RetainedFiles > 0:
		opts = append(opts, xroll.WithRetainedFiles(r.RetainedFiles))
	case r.RetainedFiles < 0:
		opts = append(opts, xroll.WithUnlimitedRetention())
	}
	if r.UTC {
		opts = append(opts, xroll.WithUTC())
	}
	return opts
}

// options 将声明式字段映射为 xlumber 选项
func (l *LumberConfig) options() []xlumber.Option {
	var opts []xlumber.Option
	if l.MaxSizeMB > 0 {
		opts = append(opts, xlumber.WithMaxSize(l.MaxSizeMB))
	}
	if l.MaxBackups > 0 {
		opts = append(opts, xlumber.WithMaxBackups(l.MaxBackups))
	}
	if l.MaxAgeDays > 0 {
		opts = append(opts, xlumber.WithMaxAge(l.MaxAgeDays))
	}
	opts = append(opts,
		xlumber.WithCompress(l.Compress),
		xlumber.WithLocalTime(l.LocalTime),
	)
	return opts
}

// detectFormat 根据文件扩展名检测配置格式
func detectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown extension %q", ErrUnsupportedFormat, ext)
	}
}
