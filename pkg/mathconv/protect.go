// Package mathconv 将 Markdown 文档中嵌入的 LaTeX 数学公式转换为纯 Unicode 文本。
// 代码块、图片、HTML 标签、标题和表格在转换期间被占位符保护，转换后原样恢复。
package mathconv

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"
)

const (
	placeholderPrefix = "@@PROTECTED_BLOCK_"
	placeholderSuffix = "@@"
)

// protectionPattern 按顺序匹配需要保护的内容，同一位置上先出现的分支优先：
// 围栏代码块、图片、HTML 标签、ATX 标题、表格块
var protectionPattern = regexp2.MustCompile(
	"(?s:```.*?```)"+
		`|!\[[^\]\n]*\]\([^)\n]*\)`+
		`|<[^>]+>`+
		`|(?m:^#{1,6}[ \t][^\n]*(?:\n|$))`+
		`|(?m:(?:^[ \t]*\|[^\n]*\|[ \t]*\r?(?:\n|$))+)`,
	regexp2.None)

var placeholderPattern = regexp2.MustCompile(`@@PROTECTED_BLOCK_(\d+)@@`, regexp2.None)

// Protected 保护阶段的结果
type Protected struct {
	// Text 已用占位符替换受保护内容的文档
	Text string
	// Spans 受保护的原文，下标与占位符编号一一对应
	Spans []string
}

// spanAccumulator 在一次保护过程中累积原文，编号即当前长度
type spanAccumulator struct {
	spans []string
}

func (a *spanAccumulator) protect(m regexp2.Match) string {
	a.spans = append(a.spans, m.String())
	return Placeholder(len(a.spans) - 1)
}

// Placeholder 返回编号 n 对应的占位符
func Placeholder(n int) string {
	return fmt.Sprintf("%s%d%s", placeholderPrefix, n, placeholderSuffix)
}

// Protect 将文档中所有受保护内容替换为占位符
func Protect(doc string) Protected {
	acc := &spanAccumulator{}
	text := replaceFunc(protectionPattern, doc, acc.protect)
	return Protected{Text: text, Spans: acc.spans}
}

// Restore 按编号将占位符还原为原文。
// 还原后的内容不会被再次扫描，未知编号的占位符保持原样。
func Restore(text string, spans []string) string {
	if len(spans) == 0 {
		return text
	}
	return replaceFunc(placeholderPattern, text, func(m regexp2.Match) string {
		n, err := strconv.Atoi(m.GroupByNumber(1).String())
		if err != nil || n < 0 || n >= len(spans) {
			return m.String()
		}
		return spans[n]
	})
}

// placeholderEnd 如果 s[i:] 以占位符开头则返回占位符结束位置，否则返回 -1
func placeholderEnd(s string, i int) int {
	if !strings.HasPrefix(s[i:], placeholderPrefix) {
		return -1
	}
	j := i + len(placeholderPrefix)
	start := j
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if j == start || !strings.HasPrefix(s[j:], placeholderSuffix) {
		return -1
	}
	return j + len(placeholderSuffix)
}

// replaceFunc 替换所有匹配；匹配出错时（仅在设置超时时可能发生）原样返回输入
func replaceFunc(re *regexp2.Regexp, s string, fn regexp2.MatchEvaluator) string {
	out, err := re.ReplaceFunc(s, fn, -1, -1)
	if err != nil {
		return s
	}
	return out
}
