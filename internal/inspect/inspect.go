// Package inspect 分析文档中的数学公式，报告转换后仍残留的 LaTeX 命令
package inspect

import (
	"sort"
	"strings"

	mathjax "github.com/litao91/goldmark-mathjax"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mattn/go-runewidth"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/nerdneilsfield/go-unicode-math/pkg/mathconv"
)

// ContextWidth 残留命令所在行的最大显示宽度
const ContextWidth = 60

// maxSuggestionDistance 编辑距离超过该值时不给出建议
const maxSuggestionDistance = 2

// Leftover 转换结果中残留的命令
type Leftover struct {
	Command string // 带反斜杠
	Count   int
	// Known 命令本身受支持，残留是因为参数形式不被接受（如嵌套分式）
	Known bool
	// Suggestion 可能想写的已知命令，为空表示没有相近的命令
	Suggestion string
	// Context 第一次出现时所在的行
	Context string
}

// Report 单个文档的分析结果
type Report struct {
	Name        string
	InlineMath  int
	DisplayMath int
	Changed     bool
	Leftovers   []Leftover
}

// Clean 没有残留命令
func (r Report) Clean() bool {
	return len(r.Leftovers) == 0
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM, mathjax.MathJax))

// Analyze 统计原文中的公式数量，执行转换并收集残留命令。
// 代码块等受保护内容中的命令不计入残留。
func Analyze(name, doc string, p *mathconv.Pipeline) Report {
	if p == nil {
		p = mathconv.Default()
	}

	report := Report{Name: name}
	report.InlineMath, report.DisplayMath = countMath(doc)

	out := p.Convert(doc)
	report.Changed = out != doc
	report.Leftovers = leftovers(out, p.KnownCommands())
	return report
}

// countMath 用 goldmark 解析文档，统计行内公式与独立公式
func countMath(doc string) (inline, display int) {
	src := []byte(doc)
	root := markdown.Parser().Parse(text.NewReader(src))
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		kind := n.Kind().String()
		if !strings.Contains(kind, "Math") {
			return ast.WalkContinue, nil
		}
		if n.Type() == ast.TypeInline {
			inline++
		} else {
			display++
		}
		return ast.WalkSkipChildren, nil
	})
	return inline, display
}

func leftovers(out string, known []string) []Leftover {
	protected := mathconv.Protect(out)
	text := protected.Text
	knownSet := make(map[string]bool, len(known))
	for _, k := range known {
		knownSet[k] = true
	}

	byName := make(map[string]*Leftover)
	var order []string
	for i := 0; i < len(text); i++ {
		if text[i] != '\\' {
			continue
		}
		j := i + 1
		for j < len(text) && isLetter(text[j]) {
			j++
		}
		if j == i+1 {
			// \\、\$ 等转义
			i++
			continue
		}
		name := text[i+1 : j]
		if l, ok := byName[name]; ok {
			l.Count++
		} else {
			byName[name] = &Leftover{
				Command:    `\` + name,
				Count:      1,
				Known:      knownSet[name],
				Suggestion: suggest(name, known, knownSet),
				Context:    truncate(mathconv.Restore(lineAround(text, i), protected.Spans)),
			}
			order = append(order, name)
		}
		i = j - 1
	}

	result := make([]Leftover, 0, len(order))
	for _, name := range order {
		result = append(result, *byName[name])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	return result
}

// suggest 先按子序列匹配找最接近的已知命令，找不到时退回编辑距离
func suggest(name string, known []string, knownSet map[string]bool) string {
	if knownSet[name] {
		return ""
	}

	ranks := fuzzy.RankFind(name, known)
	nearby := ranks[:0]
	for _, r := range ranks {
		if r.Distance <= maxSuggestionDistance {
			nearby = append(nearby, r)
		}
	}
	ranks = nearby
	if len(ranks) > 0 {
		sort.SliceStable(ranks, func(i, j int) bool {
			if ranks[i].Distance != ranks[j].Distance {
				return ranks[i].Distance < ranks[j].Distance
			}
			return ranks[i].Target < ranks[j].Target
		})
		return `\` + ranks[0].Target
	}

	best, bestDistance := "", maxSuggestionDistance+1
	for _, k := range known {
		if d := fuzzy.LevenshteinDistance(name, k); d < bestDistance {
			best, bestDistance = k, d
		}
	}
	if best == "" {
		return ""
	}
	return `\` + best
}

// lineAround 返回位置 i 所在的行
func lineAround(s string, i int) string {
	start := strings.LastIndexByte(s[:i], '\n') + 1
	end := strings.IndexByte(s[i:], '\n')
	if end < 0 {
		end = len(s)
	} else {
		end += i
	}
	return strings.TrimSpace(s[start:end])
}

// truncate 按终端显示宽度截断
func truncate(s string) string {
	return runewidth.Truncate(s, ContextWidth, "…")
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
