package xplatform

import "errors"

// 预定义错误变量，支持 errors.Is 判断
var (
	// ErrNilWriter 表示平台写入器为 nil
	ErrNilWriter = errors.New("xplatform: writer is nil")
	// ErrEmptyIdent 表示 syslog 标识为空
	ErrEmptyIdent = errors.New("xplatform: syslog ident is empty")
	// ErrUnsupportedPlatform 表示当前平台不支持该写入器
	ErrUnsupportedPlatform = errors.New("xplatform: writer not supported on this platform")
)
