//go:build windows || plan9

package xplatform

import "github.com/omeyang/logsink/pkg/sink/xsink"

// SyslogWriter 在不支持 syslog 的平台上的占位实现
type SyslogWriter struct{}

// NewSyslogWriter 当前平台不支持 syslog，始终返回 [ErrUnsupportedPlatform]
func NewSyslogWriter(ident string) (*SyslogWriter, error) {
	return nil, ErrUnsupportedPlatform
}

// Write 实现 Writer 接口
func (s *SyslogWriter) Write(tag string, level xsink.Level, text string) error {
	return ErrUnsupportedPlatform
}

// Close 无资源可释放
func (s *SyslogWriter) Close() error {
	return nil
}
