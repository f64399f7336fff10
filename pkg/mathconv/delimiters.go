package mathconv

import "github.com/dlclark/regexp2"

var (
	// 行内公式 $...$，两端的美元符号都不能被转义
	dollarPattern = regexp2.MustCompile(`(?<!\\)\$(.*?)(?<!\\)\$`, regexp2.None)
	// \(...\)
	parenPattern = regexp2.MustCompile(`\\\((.*?)\\\)`, regexp2.None)
	// \[...\]
	bracketPattern = regexp2.MustCompile(`\\\[(.*?)\\\]`, regexp2.None)
)

func innerGroup(m regexp2.Match) string {
	return m.GroupByNumber(1).String()
}

// stripDelimiters 去掉数学模式定界符，只保留内部内容
func stripDelimiters(s string) string {
	s = replaceFunc(dollarPattern, s, innerGroup)
	s = replaceFunc(parenPattern, s, innerGroup)
	return replaceFunc(bracketPattern, s, innerGroup)
}
