package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tempPathFormat 返回临时目录下的路径模板与目录
func tempPathFormat(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	return filepath.Join(dir, "app-{Date}.log"), dir
}

// ============================================================================
// 参数校验测试
// ============================================================================

func TestRunUsageErrors(t *testing.T) {
	t.Run("path与config互斥", func(t *testing.T) {
		var stderr bytes.Buffer
		code := run(strings.NewReader(""), &stderr,
			[]string{"rollpipe", "-p", "a-{Date}.log", "-c", "log.yaml"})
		assert.Equal(t, 2, code)
		assert.Contains(t, stderr.String(), "参数错误")
	})

	t.Run("path与config至少一个", func(t *testing.T) {
		var stderr bytes.Buffer
		code := run(strings.NewReader(""), &stderr, []string{"rollpipe"})
		assert.Equal(t, 2, code)
	})

	t.Run("非法路径模板返回1", func(t *testing.T) {
		var stderr bytes.Buffer
		code := run(strings.NewReader(""), &stderr,
			[]string{"rollpipe", "-p", "no-token.log"})
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr.String(), "{Date}")
	})

	t.Run("配置缺少rolling段返回2", func(t *testing.T) {
		dir := t.TempDir()
		conf := filepath.Join(dir, "log.yaml")
		require.NoError(t, os.WriteFile(conf, []byte("level: info\n"), 0600))

		var stderr bytes.Buffer
		code := run(strings.NewReader(""), &stderr,
			[]string{"rollpipe", "-c", conf})
		assert.Equal(t, 2, code)
	})
}

// ============================================================================
// 管道写入测试
// ============================================================================

func TestRunPipesLines(t *testing.T) {
	t.Run("逐行写入并以换行分隔", func(t *testing.T) {
		pathFormat, dir := tempPathFormat(t)
		input := "first line\nsecond line\n"

		var stderr bytes.Buffer
		code := run(strings.NewReader(input), &stderr,
			[]string{"rollpipe", "-p", pathFormat})
		require.Equal(t, 0, code, "stderr: %s", stderr.String())

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)

		data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
		require.NoError(t, err)
		assert.Equal(t, input, string(data))
	})

	t.Run("空输入产生空的当日文件", func(t *testing.T) {
		pathFormat, dir := tempPathFormat(t)

		var stderr bytes.Buffer
		code := run(strings.NewReader(""), &stderr,
			[]string{"rollpipe", "-p", pathFormat})
		require.Equal(t, 0, code)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)

		info, err := entries[0].Info()
		require.NoError(t, err)
		assert.Zero(t, info.Size())
	})

	t.Run("大小上限触发序号轮转", func(t *testing.T) {
		pathFormat, dir := tempPathFormat(t)
		// 每行 15 字节（含换行），上限 100 字节
		line := strings.Repeat("x", 14)
		input := strings.Repeat(line+"\n", 10)

		var stderr bytes.Buffer
		code := run(strings.NewReader(input), &stderr,
			[]string{"rollpipe", "-p", pathFormat, "--size-limit", "100"})
		require.Equal(t, 0, code)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Contains(t, entries[1].Name(), "-001")
	})

	t.Run("配置文件模式", func(t *testing.T) {
		pathFormat, dir := tempPathFormat(t)
		conf := filepath.Join(t.TempDir(), "log.yaml")
		confData := "rolling:\n  path_format: " + pathFormat + "\n  retained_files: 3\n"
		require.NoError(t, os.WriteFile(conf, []byte(confData), 0600))

		var stderr bytes.Buffer
		code := run(strings.NewReader("from config\n"), &stderr,
			[]string{"rollpipe", "-c", conf})
		require.Equal(t, 0, code)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
	})
}
