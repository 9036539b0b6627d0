package xwire

import "errors"

// 预定义错误变量，支持 errors.Is 判断
var (
	// ErrNilOutput 表示输出目标为 nil
	ErrNilOutput = errors.New("xwire: output writer is nil")
	// ErrUnknownFormat 表示不支持的输出格式
	ErrUnknownFormat = errors.New("xwire: unknown format")
	// ErrSinkNotWriter 表示注入的 sink 未实现 io.Writer
	ErrSinkNotWriter = errors.New("xwire: sink does not implement io.Writer")
)
