package mathconv

// 花括号分组允许的最大嵌套深度。
// 深度 1 表示分组内不允许再出现花括号，深度 2 允许一层嵌套。
const (
	argumentDepth = 1 // \frac、\sqrt、\vec、\text 等命令的参数
	scriptDepth   = 2 // 上下标
)

// scanGroup 读取从 s[i] 开始的花括号分组。
// 返回去掉最外层花括号的内容和分组之后的位置。
// 嵌套超过 maxDepth、内容为空或分组未闭合时 ok 为 false。
// 反斜杠转义的字符（\{、\}、\\）不参与计数。
func scanGroup(s string, i, maxDepth int) (inner string, end int, ok bool) {
	if i >= len(s) || s[i] != '{' {
		return "", i, false
	}
	depth := 0
	for j := i; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case '{':
			depth++
			if depth > maxDepth {
				return "", i, false
			}
		case '}':
			depth--
			if depth == 0 {
				if j == i+1 {
					return "", i, false
				}
				return s[i+1 : j], j + 1, true
			}
		}
	}
	return "", i, false
}

// scanBracket 读取从 s[i] 开始的方括号可选参数，如 \sqrt[3] 中的 [3]
func scanBracket(s string, i int) (inner string, end int, ok bool) {
	if i >= len(s) || s[i] != '[' {
		return "", i, false
	}
	for j := i + 1; j < len(s); j++ {
		if s[j] == ']' {
			if j == i+1 {
				return "", i, false
			}
			return s[i+1 : j], j + 1, true
		}
	}
	return "", i, false
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// commandName 读取 s[i] 处反斜杠之后的命令名，返回名称与结束位置
func commandName(s string, i int) (string, int) {
	j := i + 1
	for j < len(s) && isLetter(s[j]) {
		j++
	}
	return s[i+1 : j], j
}

// commandRewriter 处理一个已识别的命令。
// end 是命令名之后的位置；返回替换文本与消费到的位置，ok 为 false 表示不替换。
type commandRewriter func(s, name string, end int) (replacement string, next int, ok bool)

// rewriteCommands 扫描文档中的 LaTeX 命令，对命令名完整匹配 names 的命令调用 fn。
// 反斜杠后跟非字母的转义序列（\\、\$、\{ 等）整体跳过。
func rewriteCommands(s string, names map[string]bool, fn commandRewriter) string {
	var (
		b       []byte
		last    int
		changed bool
	)
	for i := 0; i < len(s); {
		if s[i] != '\\' {
			i++
			continue
		}
		if i+1 < len(s) && !isLetter(s[i+1]) {
			i += 2
			continue
		}
		name, end := commandName(s, i)
		if !names[name] {
			i = end
			continue
		}
		repl, next, ok := fn(s, name, end)
		if !ok {
			i = end
			continue
		}
		b = append(b, s[last:i]...)
		b = append(b, repl...)
		last, i = next, next
		changed = true
	}
	if !changed {
		return s
	}
	return string(append(b, s[last:]...))
}

// nameSet 构造命令名集合
func nameSet(names ...string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
