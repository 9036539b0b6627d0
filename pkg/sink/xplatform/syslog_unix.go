//go:build !windows && !plan9

package xplatform

import (
	"fmt"
	"log/syslog"

	"github.com/omeyang/logsink/pkg/sink/xsink"
)

// SyslogWriter 向系统 syslog 转发的平台写入器（unix 限定）
//
// syslog 连接在构造时以 facility+标识建立；Write 的 tag 参数
// 作为消息前缀携带，支持同一连接上区分多个来源。
type SyslogWriter struct {
	w *syslog.Writer
}

// 编译时断言
var _ Writer = (*SyslogWriter)(nil)

// NewSyslogWriter 建立本机 syslog 连接
//
// ident 为 syslog 消息的程序标识（对应 openlog 的 ident 参数）。
func NewSyslogWriter(ident string) (*SyslogWriter, error) {
	if ident == "" {
		return nil, ErrEmptyIdent
	}
	w, err := syslog.New(syslog.LOG_INFO|syslog.LOG_USER, ident)
	if err != nil {
		return nil, fmt.Errorf("xplatform: dial syslog: %w", err)
	}
	return &SyslogWriter{w: w}, nil
}

// Write 实现 Writer 接口，按级别映射 syslog severity
func (s *SyslogWriter) Write(tag string, level xsink.Level, text string) error {
	msg := text
	if tag != "" {
		msg = tag + ": " + text
	}

	var err error
	switch {
	case level <= xsink.LevelDebug:
		err = s.w.Debug(msg)
	case level <= xsink.LevelInfo:
		err = s.w.Info(msg)
	case level <= xsink.LevelWarn:
		err = s.w.Warning(msg)
	default:
		err = s.w.Err(msg)
	}
	if err != nil {
		return fmt.Errorf("xplatform: syslog write: %w", err)
	}
	return nil
}

// Close 关闭 syslog 连接
func (s *SyslogWriter) Close() error {
	return s.w.Close()
}
