package mathconv

import (
	"sort"
	"strings"
)

// 阶段名称
const (
	StageEnvironments = "environments"
	StageDelimiters   = "delimiters"
	StageTextWrappers = "text-wrappers"
	StageLiterals     = "literals"
	StageGreek        = "greek"
	StageOperators    = "operators"
	StageFractions    = "fractions"
	StageRoots        = "roots"
	StageBigOperators = "big-operators"
	StageScripts      = "scripts"
	StageVectors      = "vectors"
	StageMatrices     = "matrices"
	StageSizing       = "sizing"
)

// Stage 流水线中的一个改写阶段
type Stage struct {
	Name  string
	Apply func(string) string
	// Triggers 该阶段会改写的字面片段，用于校验后续阶段不会重新引入它们
	Triggers []string
}

// StageResult 某一阶段执行后的文本
type StageResult struct {
	Name   string
	Output string
}

// reservedCommands 由结构化阶段处理的命令，不允许出现在符号表中
var reservedCommands = map[string]string{
	"begin": StageEnvironments, "end": StageEnvironments,
	"mathrm": StageTextWrappers, "text": StageTextWrappers, "mbox": StageTextWrappers,
	"degree": StageLiterals, "circ": StageLiterals,
	"frac": StageFractions, "dfrac": StageFractions, "vfrac": StageFractions,
	"sqrt": StageRoots,
	"int": StageBigOperators, "sum": StageBigOperators, "prod": StageBigOperators,
	"vec": StageVectors, "bvec": StageVectors,
	"left": StageSizing, "right": StageSizing, "lvert": StageSizing, "rvert": StageSizing,
}

// triggerRunes 符号输出中不能出现的字符，否则会被后续阶段再次匹配
const triggerRunes = `\$_^{}&`

// Option 流水线选项
type Option func(*options)

type options struct {
	extra map[TableKind][]Symbol
}

// WithSymbols 向指定符号表追加条目，条目在内置条目之后应用
func WithSymbols(kind TableKind, entries ...Symbol) Option {
	return func(o *options) {
		o.extra[kind] = append(o.extra[kind], entries...)
	}
}

// Pipeline 有序的转换流水线
type Pipeline struct {
	stages []Stage
	tables []SymbolTable
}

var defaultPipeline = MustNewPipeline()

// Convert 使用默认流水线转换文档
func Convert(doc string) string {
	return defaultPipeline.Convert(doc)
}

// Default 返回默认流水线
func Default() *Pipeline {
	return defaultPipeline
}

// NewPipeline 创建流水线，追加的符号表条目会先经过校验
func NewPipeline(opts ...Option) (*Pipeline, error) {
	o := &options{extra: make(map[TableKind][]Symbol)}
	for _, opt := range opts {
		opt(o)
	}

	for kind := range o.extra {
		if kind != TableGreek && kind != TableOperator {
			return nil, &TableError{Table: kind, Command: "-", Reason: "unknown table", Err: ErrInvalidSymbol}
		}
	}

	greek := extendTable(GreekTable, o.extra[TableGreek])
	operators := extendTable(OperatorTable, o.extra[TableOperator])
	if err := ValidateTables(greek, operators); err != nil {
		return nil, err
	}

	p := &Pipeline{tables: []SymbolTable{greek, operators}}
	p.stages = []Stage{
		{StageEnvironments, normalizeEnvironments, []string{`\begin{equation`, `\begin{align`, `\begin{gather`, `\begin{multline`}},
		{StageDelimiters, stripDelimiters, []string{"$", `\(`, `\)`, `\[`, `\]`}},
		{StageTextWrappers, unwrapText, []string{`\mathrm{`, `\text{`, `\mbox{`}},
		{StageLiterals, fixLiterals, []string{`\%`, `{%}`, `\degree`, `^{\circ}`}},
		{StageGreek, tableRewriter(greek), commands(greek)},
		{StageOperators, tableRewriter(operators), commands(operators)},
		{StageFractions, rewriteFractions, []string{`\frac{`, `\dfrac{`, `\vfrac{`}},
		{StageRoots, rewriteRoots, []string{`\sqrt`}},
		{StageBigOperators, rewriteBigOperators, []string{`\int`, `\sum`, `\prod`}},
		{StageScripts, rewriteScripts, []string{"_", "^"}},
		{StageVectors, rewriteVectors, []string{`\vec{`, `\bvec{`}},
		{StageMatrices, rewriteMatrices, []string{"&"}},
		{StageSizing, rewriteSizing, []string{`\left`, `\right`, `\lvert`, `\rvert`}},
	}
	return p, nil
}

// MustNewPipeline 与 NewPipeline 相同，出错时 panic
func MustNewPipeline(opts ...Option) *Pipeline {
	p, err := NewPipeline(opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// Convert 依次执行保护、各改写阶段和还原
func (p *Pipeline) Convert(doc string) string {
	protected := Protect(doc)
	text := protected.Text
	for _, stage := range p.stages {
		text = stage.Apply(text)
	}
	return Restore(text, protected.Spans)
}

// Trace 与 Convert 相同，但记录每个阶段的中间结果（占位符尚未还原）
func (p *Pipeline) Trace(doc string) []StageResult {
	protected := Protect(doc)
	text := protected.Text
	results := make([]StageResult, 0, len(p.stages)+1)
	for _, stage := range p.stages {
		text = stage.Apply(text)
		results = append(results, StageResult{Name: stage.Name, Output: text})
	}
	return append(results, StageResult{Name: "restore", Output: Restore(text, protected.Spans)})
}

// Stages 返回阶段列表的副本
func (p *Pipeline) Stages() []Stage {
	return append([]Stage(nil), p.stages...)
}

// Tables 返回生效的符号表（含追加条目）
func (p *Pipeline) Tables() []SymbolTable {
	return append([]SymbolTable(nil), p.tables...)
}

// KnownCommands 返回流水线能够处理的全部命令名（不含反斜杠），按字母排序
func (p *Pipeline) KnownCommands() []string {
	seen := make(map[string]bool)
	for name := range reservedCommands {
		seen[name] = true
	}
	for _, t := range p.tables {
		for _, e := range t.Entries {
			seen[strings.TrimPrefix(e.Command, `\`)] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidateTables 校验符号表：命令格式、重复条目、保留命令，
// 以及输出中不得含有会被后续阶段再次匹配的字符
func ValidateTables(tables ...SymbolTable) error {
	seen := make(map[string]TableKind)
	for _, t := range tables {
		for _, e := range t.Entries {
			name := strings.TrimPrefix(e.Command, `\`)
			if !strings.HasPrefix(e.Command, `\`) || name == "" || !allLetters(name) {
				return &TableError{Table: t.Kind, Command: e.Command, Reason: "command must be a backslash followed by letters", Err: ErrInvalidSymbol}
			}
			if e.Unicode == "" {
				return &TableError{Table: t.Kind, Command: e.Command, Reason: "empty replacement", Err: ErrInvalidSymbol}
			}
			if stage, ok := reservedCommands[name]; ok {
				return &TableError{Table: t.Kind, Command: e.Command, Reason: "handled by the " + stage + " stage", Err: ErrTableConflict}
			}
			if prev, ok := seen[name]; ok {
				return &TableError{Table: t.Kind, Command: e.Command, Reason: "already defined in " + string(prev) + " table", Err: ErrTableConflict}
			}
			if strings.ContainsAny(e.Unicode, triggerRunes) || strings.Contains(e.Unicode, placeholderPrefix) {
				return &TableError{Table: t.Kind, Command: e.Command, Reason: "replacement would be rewritten by a later stage", Err: ErrTableConflict}
			}
			seen[name] = t.Kind
		}
	}
	return nil
}

func extendTable(base SymbolTable, extra []Symbol) SymbolTable {
	entries := make([]Symbol, 0, len(base.Entries)+len(extra))
	entries = append(entries, base.Entries...)
	entries = append(entries, extra...)
	return SymbolTable{Kind: base.Kind, Entries: entries}
}

func commands(t SymbolTable) []string {
	out := make([]string, len(t.Entries))
	for i, e := range t.Entries {
		out[i] = e.Command
	}
	return out
}

func allLetters(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isLetter(s[i]) {
			return false
		}
	}
	return true
}
