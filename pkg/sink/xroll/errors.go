package xroll

import "errors"

// 配置校验错误（构造时快速失败，运行时 Emit 不再产生此类错误）
var (
	// ErrMissingDateToken 路径模板缺少 {Date} 占位符
	ErrMissingDateToken = errors.New("xroll: path format missing {Date} token")

	// ErrMultipleDateTokens 路径模板包含多个 {Date} 占位符
	ErrMultipleDateTokens = errors.New("xroll: path format has multiple {Date} tokens")

	// ErrDateTokenInDir {Date} 占位符出现在目录段而非文件名中
	ErrDateTokenInDir = errors.New("xroll: {Date} token must be in the file name")

	// ErrInvalidSizeLimit 大小上限无效（必须 > 0，上限 1 TiB）
	ErrInvalidSizeLimit = errors.New("xroll: invalid size limit")

	// ErrInvalidRetainedCount 保留文件数量无效（必须 >= 1）
	ErrInvalidRetainedCount = errors.New("xroll: invalid retained file count")

	// ErrInvalidFileMode FileMode 包含非权限位（仅允许低 9 位 0000~0777）
	ErrInvalidFileMode = errors.New("xroll: invalid file mode")
)
