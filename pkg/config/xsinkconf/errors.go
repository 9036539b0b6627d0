package xsinkconf

import "errors"

// 预定义错误变量，支持 errors.Is 判断
var (
	// ErrEmptyPath 表示配置文件路径为空
	ErrEmptyPath = errors.New("xsinkconf: config path is empty")
	// ErrLoadFailed 表示配置文件读取失败
	ErrLoadFailed = errors.New("xsinkconf: load config failed")
	// ErrParseFailed 表示配置内容解析失败
	ErrParseFailed = errors.New("xsinkconf: parse config failed")
	// ErrUnsupportedFormat 表示不支持的配置格式
	ErrUnsupportedFormat = errors.New("xsinkconf: unsupported config format")
	// ErrConflictingOutputs 表示 rolling 与 lumber 同时配置
	ErrConflictingOutputs = errors.New("xsinkconf: rolling and lumber are mutually exclusive")
	// ErrUnknownOutput 表示不支持的标准流输出目标
	ErrUnknownOutput = errors.New("xsinkconf: unknown output target")
	// ErrNilPipeline 表示级别监视的目标管道为 nil
	ErrNilPipeline = errors.New("xsinkconf: pipeline is nil")
)
