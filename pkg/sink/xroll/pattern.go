package xroll

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/omeyang/logsink/pkg/util/xfile"
)

const (
	// DateToken 路径模板中的日期占位符
	DateToken = "{Date}"

	// dateLayout 日期占位符的替换格式（ISO 日期，字典序即时间序）
	dateLayout = "2006-01-02"

	// seqWidth 同日期溢出文件的序号宽度（如 "-001"）
	seqWidth = 3
)

// pattern 解析后的路径模板
//
// 活动文件名 = namePrefix + 日期 + nameSuffix，
// 同日期溢出文件在日期后插入 "-NNN" 序号段。
type pattern struct {
	dir        string // 目标目录
	namePrefix string // 文件名中日期占位符之前的部分
	nameSuffix string // 文件名中日期占位符之后的部分
}

// parsePattern 解析路径模板
//
// 模板必须恰好包含一个 {Date} 占位符，且占位符必须位于文件名部分
// （不允许出现在目录段中，否则目录扫描语义无法定义）。
func parsePattern(pathFormat string) (*pattern, error) {
	switch strings.Count(pathFormat, DateToken) {
	case 1:
	case 0:
		return nil, fmt.Errorf("%w: %q", ErrMissingDateToken, pathFormat)
	default:
		return nil, fmt.Errorf("%w: %q", ErrMultipleDateTokens, pathFormat)
	}

	// {Date} 不含路径分隔符，filepath.Clean 不会拆散它
	clean, err := xfile.SanitizePath(pathFormat)
	if err != nil {
		return nil, err
	}

	base := filepath.Base(clean)
	idx := strings.Index(base, DateToken)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrDateTokenInDir, pathFormat)
	}

	return &pattern{
		dir:        filepath.Dir(clean),
		namePrefix: base[:idx],
		nameSuffix: base[idx+len(DateToken):],
	}, nil
}

// filePath 返回指定日期和序号的完整文件路径
// seq 为 0 表示当天的基础文件（无序号段）。
func (p *pattern) filePath(day string, seq int) string {
	name := p.namePrefix + day
	if seq > 0 {
		name += fmt.Sprintf("-%0*d", seqWidth, seq)
	}
	name += p.nameSuffix
	return filepath.Join(p.dir, name)
}

// parseName 尝试从文件名中解析出日期与序号
//
// 匹配 namePrefix + "2006-01-02" + [-NNN] + nameSuffix 形式，
// 其余文件名一律忽略（返回 ok=false），保证保留清理不误删无关文件。
func (p *pattern) parseName(name string) (day string, seq int, ok bool) {
	if len(name) < len(p.namePrefix)+len(p.nameSuffix)+len(dateLayout) {
		return "", 0, false
	}
	if !strings.HasPrefix(name, p.namePrefix) || !strings.HasSuffix(name, p.nameSuffix) {
		return "", 0, false
	}

	mid := name[len(p.namePrefix) : len(name)-len(p.nameSuffix)]
	day = mid[:len(dateLayout)]
	if _, err := time.Parse(dateLayout, day); err != nil {
		return "", 0, false
	}

	rest := mid[len(dateLayout):]
	if rest == "" {
		return day, 0, true
	}
	// 序号段："-" + 至少 seqWidth 位数字，序号从 1 开始
	if len(rest) < 1+seqWidth || rest[0] != '-' {
		return "", 0, false
	}
	for i := 1; i < len(rest); i++ {
		if rest[i] < '0' || rest[i] > '9' {
			return "", 0, false
		}
	}
	seq, err := strconv.Atoi(rest[1:])
	if err != nil || seq < 1 {
		return "", 0, false
	}
	return day, seq, true
}

// rolledFile 目录中一个匹配模板的日志文件
type rolledFile struct {
	path string
	day  string
	seq  int
}

// scan 列出目录中所有匹配模板的文件，按 (日期, 序号) 升序排序
func (p *pattern) scan() ([]rolledFile, error) {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		return nil, err
	}

	var files []rolledFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		day, seq, ok := p.parseName(e.Name())
		if !ok {
			continue
		}
		files = append(files, rolledFile{
			path: filepath.Join(p.dir, e.Name()),
			day:  day,
			seq:  seq,
		})
	}

	// ISO 日期的字典序即时间序
	sort.Slice(files, func(i, j int) bool {
		if files[i].day != files[j].day {
			return files[i].day < files[j].day
		}
		return files[i].seq < files[j].seq
	})
	return files, nil
}
