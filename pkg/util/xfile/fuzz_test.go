package xfile

import (
	"strings"
	"testing"
)

// FuzzSanitizePath 模糊测试路径净化的不变量：
// 成功返回的路径不含空字节、不含 ".." 路径段、不以分隔符结尾。
func FuzzSanitizePath(f *testing.F) {
	f.Add("logs/app.log")
	f.Add("/var/log/app-{Date}.log")
	f.Add("../etc/passwd")
	f.Add("a\x00b")
	f.Add("logs/")
	f.Add("app..2024.log")

	f.Fuzz(func(t *testing.T, input string) {
		got, err := SanitizePath(input)
		if err != nil {
			return
		}
		if strings.ContainsRune(got, 0) {
			t.Errorf("sanitized path contains null byte: %q", got)
		}
		if hasDotDotSegment(got) {
			t.Errorf("sanitized path contains dot-dot segment: %q", got)
		}
		if strings.HasSuffix(got, "/") || strings.HasSuffix(got, `\`) {
			t.Errorf("sanitized path ends with separator: %q", got)
		}
	})
}
