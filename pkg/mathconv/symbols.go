package mathconv

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// Symbol 一条 LaTeX 命令到 Unicode 的映射
type Symbol struct {
	Command string // 带反斜杠的完整命令，如 \alpha
	Unicode string
}

// TableKind 符号表类别
type TableKind string

const (
	TableGreek    TableKind = "greek"
	TableOperator TableKind = "operator"
)

// SymbolTable 有序符号表
type SymbolTable struct {
	Kind    TableKind
	Entries []Symbol
}

// Lookup 按命令查找映射
func (t SymbolTable) Lookup(command string) (string, bool) {
	for _, e := range t.Entries {
		if e.Command == command {
			return e.Unicode, true
		}
	}
	return "", false
}

// GreekTable 希腊字母表：小写字母（omicron 与拉丁字母 o 相同，不收录）和常用的 7 个大写字母
var GreekTable = SymbolTable{Kind: TableGreek, Entries: []Symbol{
	{`\alpha`, "α"}, {`\beta`, "β"}, {`\gamma`, "γ"}, {`\delta`, "δ"},
	{`\epsilon`, "ε"}, {`\zeta`, "ζ"}, {`\eta`, "η"}, {`\theta`, "θ"},
	{`\iota`, "ι"}, {`\kappa`, "κ"}, {`\lambda`, "λ"}, {`\mu`, "μ"},
	{`\nu`, "ν"}, {`\xi`, "ξ"}, {`\pi`, "π"}, {`\rho`, "ρ"},
	{`\sigma`, "σ"}, {`\tau`, "τ"}, {`\upsilon`, "υ"}, {`\phi`, "φ"},
	{`\chi`, "χ"}, {`\psi`, "ψ"}, {`\omega`, "ω"},
	{`\Gamma`, "Γ"}, {`\Delta`, "Δ"}, {`\Theta`, "Θ"}, {`\Lambda`, "Λ"},
	{`\Pi`, "Π"}, {`\Sigma`, "Σ"}, {`\Omega`, "Ω"},
}}

// OperatorTable 运算符与杂项符号
var OperatorTable = SymbolTable{Kind: TableOperator, Entries: []Symbol{
	{`\times`, "×"}, {`\div`, "÷"}, {`\cdot`, "·"}, {`\pm`, "±"},
	{`\mp`, "∓"}, {`\leq`, "≤"}, {`\geq`, "≥"}, {`\neq`, "≠"},
	{`\approx`, "≈"}, {`\equiv`, "≡"}, {`\propto`, "∝"}, {`\in`, "∈"},
	{`\subset`, "⊂"}, {`\rightarrow`, "→"}, {`\Rightarrow`, "⇒"},
	{`\Leftrightarrow`, "⇔"}, {`\mapsto`, "↦"}, {`\partial`, "∂"},
	{`\nabla`, "∇"}, {`\infty`, "∞"}, {`\forall`, "∀"}, {`\exists`, "∃"},
	{`\emptyset`, "∅"}, {`\lceil`, "⌈"}, {`\rceil`, "⌉"}, {`\lfloor`, "⌊"},
	{`\rfloor`, "⌋"}, {`\langle`, "⟨"}, {`\rangle`, "⟩"}, {`\ldots`, "…"},
	{`\cdots`, "⋯"}, {`\vdots`, "⋮"}, {`\ddots`, "⋱"},
}}

// textWrappers 只保留参数的文本命令
var textWrappers = nameSet("mathrm", "text", "mbox")

// unwrapText \mathrm{m}、\text{kg}、\mbox{s} → 参数本身
func unwrapText(s string) string {
	return rewriteCommands(s, textWrappers, func(s, _ string, end int) (string, int, bool) {
		return scanGroup(s, end, argumentDepth)
	})
}

var (
	percentReplacer = strings.NewReplacer(`{\%}`, "%", `\%`, "%")
	degreeCommand   = nameSet("degree")
	circPattern     = regexp2.MustCompile(`\^\{\s*\\circ\s*\}`, regexp2.None)
)

// fixLiterals 百分号与角度符号
func fixLiterals(s string) string {
	s = percentReplacer.Replace(s)
	s = strings.ReplaceAll(s, "{%}", "%")
	s = rewriteCommands(s, degreeCommand, func(_, _ string, end int) (string, int, bool) {
		return "°", end, true
	})
	return replaceFunc(circPattern, s, func(regexp2.Match) string { return "°" })
}

// tableRewriter 构造一个按完整命令名替换符号表条目的阶段函数
func tableRewriter(t SymbolTable) func(string) string {
	values := make(map[string]string, len(t.Entries))
	names := make(map[string]bool, len(t.Entries))
	for _, e := range t.Entries {
		name := strings.TrimPrefix(e.Command, `\`)
		values[name] = e.Unicode
		names[name] = true
	}
	return func(s string) string {
		return rewriteCommands(s, names, func(_, name string, end int) (string, int, bool) {
			return values[name], end, true
		})
	}
}
