package mathconv

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// displayEnvPattern 多行公式环境，结束标记必须与开始标记同名
var displayEnvPattern = regexp2.MustCompile(
	`\\begin\{(equation\*?|align\*?|gather\*?|multline\*?)\}(.*?)\\end\{\1\}`,
	regexp2.Singleline)

// normalizeEnvironments 将 equation/align/gather/multline 环境压缩为单行，
// 去掉环境标记，空白序列折叠为一个空格。
func normalizeEnvironments(s string) string {
	return replaceFunc(displayEnvPattern, s, func(m regexp2.Match) string {
		return strings.Join(strings.Fields(m.GroupByNumber(2).String()), " ")
	})
}
