package xroll

import (
	"fmt"
	"os"
)

// sweepLocked 执行保留清理，调用方必须持有 s.mu
//
// 重新扫描目录（其他进程可能增删文件），按 (日期, 序号) 从旧到新
// 删除超出保留数量的文件。当前活动文件永远不会被删除，即使数量
// 因此仍然超限。单个文件删除失败只通过错误回调上报，不中断清理，
// 也不影响触发它的那次写入——清理是尽力而为的，不是事务性的。
func (s *Sink) sweepLocked() {
	if s.retained <= 0 {
		return
	}

	files, err := s.pat.scan()
	if err != nil {
		s.report(fmt.Errorf("xroll: retention scan %s: %w", s.pat.dir, err))
		return
	}

	// scan 返回升序，最旧的在前
	excess := len(files) - s.retained
	for _, f := range files {
		if excess <= 0 {
			break
		}
		if f.path == s.path {
			// 永不删除当前活动文件
			continue
		}
		excess--
		if err := os.Remove(f.path); err != nil {
			s.report(fmt.Errorf("xroll: retention delete %s: %w", f.path, err))
		}
	}
}
