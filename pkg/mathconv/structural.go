package mathconv

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

var fractionCommands = nameSet("frac", "dfrac", "vfrac")

// rewriteFractions \frac{A}{B} → A/B，不支持嵌套分式
func rewriteFractions(s string) string {
	return rewriteCommands(s, fractionCommands, func(s, _ string, end int) (string, int, bool) {
		num, next, ok := scanGroup(s, end, argumentDepth)
		if !ok {
			return "", end, false
		}
		den, next, ok := scanGroup(s, next, argumentDepth)
		if !ok {
			return "", end, false
		}
		return num + "/" + den, next, true
	})
}

var rootCommand = nameSet("sqrt")

// rewriteRoots \sqrt{A} → √A，\sqrt[N]{A} → N√A
func rewriteRoots(s string) string {
	return rewriteCommands(s, rootCommand, func(s, _ string, end int) (string, int, bool) {
		index, next, hasIndex := scanBracket(s, end)
		if !hasIndex {
			next = end
		}
		radicand, next, ok := scanGroup(s, next, argumentDepth)
		if !ok {
			return "", end, false
		}
		return index + "√" + radicand, next, true
	})
}

var bigOperators = map[string]string{
	"int":  "∫",
	"sum":  "Σ",
	"prod": "∏",
}

var bigOperatorCommands = nameSet("int", "sum", "prod")

// rewriteBigOperators \int、\sum、\prod 转为符号；_{下限}^{上限} 一并丢弃
func rewriteBigOperators(s string) string {
	return rewriteCommands(s, bigOperatorCommands, func(s, name string, end int) (string, int, bool) {
		next := end
		if end < len(s) && s[end] == '_' {
			if _, afterLower, ok := scanGroup(s, end+1, argumentDepth); ok &&
				afterLower < len(s) && s[afterLower] == '^' {
				if _, afterUpper, ok := scanGroup(s, afterLower+1, argumentDepth); ok {
					next = afterUpper
				}
			}
		}
		return bigOperators[name], next, true
	})
}

// rewriteScripts 去掉上下标标记：_{X}、^{X} → X，_x、^x → x。
// 花括号内容允许一层嵌套，内层不再处理；只扫描一遍。
// 占位符与转义的 \_、\^ 原样保留。
func rewriteScripts(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if end := placeholderEnd(s, i); end > 0 {
			b.WriteString(s[i:end])
			i = end
			continue
		}
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			b.WriteString(s[i : i+2])
			i += 2
			continue
		}
		if c != '_' && c != '^' {
			b.WriteByte(c)
			i++
			continue
		}
		if inner, end, ok := scanGroup(s, i+1, scriptDepth); ok {
			b.WriteString(inner)
			i = end
			continue
		}
		if i+1 < len(s) {
			r, size := utf8.DecodeRuneInString(s[i+1:])
			if r != '{' && r != '}' && !unicode.IsSpace(r) {
				b.WriteString(s[i+1 : i+1+size])
				i += 1 + size
				continue
			}
		}
		b.WriteByte(c)
		i++
	}
	return b.String()
}

var vectorCommands = nameSet("vec", "bvec")

// rewriteVectors \vec{A}、\bvec{A} → A
func rewriteVectors(s string) string {
	return rewriteCommands(s, vectorCommands, func(s, _ string, end int) (string, int, bool) {
		return scanGroup(s, end, argumentDepth)
	})
}

var (
	matrixPattern = regexp2.MustCompile(
		`\\begin\{(pmatrix|bmatrix|matrix|array)\}.*?\\end\{\1\}`,
		regexp2.Singleline)
	columnSeparator = regexp2.MustCompile(`\s*&\s*`, regexp2.None)
)

// rewriteMatrices 矩阵内行分隔符 \\ → ;，列分隔符 & → ,。
// 环境标记保留在输出中，这一点与 normalizeEnvironments 不同。
func rewriteMatrices(s string) string {
	return replaceFunc(matrixPattern, s, func(m regexp2.Match) string {
		block := strings.ReplaceAll(m.String(), `\\`, ";")
		return replaceFunc(columnSeparator, block, func(regexp2.Match) string { return "," })
	})
}

var sizingCommands = nameSet("left", "right", "lvert", "rvert")

// rewriteSizing \left( \right] 等 → 括号本身，\lvert、\rvert → |
func rewriteSizing(s string) string {
	return rewriteCommands(s, sizingCommands, func(s, name string, end int) (string, int, bool) {
		switch name {
		case "lvert", "rvert":
			return "|", end, true
		case "left":
			if end < len(s) && strings.IndexByte("([{<|", s[end]) >= 0 {
				return s[end : end+1], end + 1, true
			}
		case "right":
			if end < len(s) && strings.IndexByte(")]}>|", s[end]) >= 0 {
				return s[end : end+1], end + 1, true
			}
		}
		return "", end, false
	})
}
