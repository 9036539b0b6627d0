// Package xfile 提供日志文件路径的格式净化和目录创建工具。
//
// 本包服务于 sink 构造阶段的路径处理：配置中的日志路径在打开文件前
// 先经过 [SanitizePath] 净化，再由 [EnsureDir] 保证父目录存在。
//
// # 路径穿越检测
//
// 路径穿越检测使用精确的路径段匹配，只有 ".." 作为独立路径段时才被拒绝。
// 以 ".." 开头的合法文件名（如 "..config"）不会被误判：
//
//	SanitizePath("logs/app..2024.log") // ✓ 合法
//	SanitizePath("../etc/passwd")      // ✗ 拒绝 -> 路径穿越
//
// # 空字节防护
//
// SanitizePath 拒绝包含空字节（\x00）的路径。Linux 内核在 VFS 层会在
// 空字节处截断路径，导致 Go 代码与操作系统实际操作的路径不一致。
//
// # 错误处理
//
// 预定义错误变量支持 [errors.Is] 判断：
//
//	_, err := xfile.SanitizePath("../etc/passwd")
//	if errors.Is(err, xfile.ErrPathTraversal) {
//	    // 处理路径穿越
//	}
package xfile
