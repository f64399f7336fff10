package document

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/Kunde21/markdownfmt/v3"
	"github.com/Kunde21/markdownfmt/v3/markdown"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
	"go.uber.org/zap"
)

// optOutKey front matter 中关闭转换的键，如 unicode_math: false
const optOutKey = "unicode_math"

// MarkdownProcessor Markdown 文档处理器
type MarkdownProcessor struct {
	opts   ProcessorOptions
	logger *zap.Logger
	meta   goldmark.Markdown
}

// NewMarkdownProcessor 创建 Markdown 处理器
func NewMarkdownProcessor(opts ProcessorOptions) *MarkdownProcessor {
	return &MarkdownProcessor{
		opts:   opts,
		logger: opts.logger(),
		meta:   goldmark.New(goldmark.WithExtensions(meta.Meta)),
	}
}

// GetFormat 返回处理器支持的格式
func (p *MarkdownProcessor) GetFormat() Format {
	return FormatMarkdown
}

// Process 转换文档正文；front matter 原样保留，声明 unicode_math: false 时跳过整篇文档
func (p *MarkdownProcessor) Process(ctx context.Context, doc string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	frontMatter, body := "", doc
	if p.opts.PreserveFrontMatter {
		frontMatter, body = SplitFrontMatter(doc)
	}

	if frontMatter != "" {
		values, err := p.parseFrontMatter(frontMatter)
		if err != nil || len(values) == 0 {
			// 以 --- 开头的分隔线不是 front matter，整篇转换
			p.logger.Debug("leading block is not front matter", zap.Error(err))
			frontMatter, body = "", doc
		} else if enabled, ok := values[optOutKey].(bool); ok && !enabled {
			return &Result{Text: doc, Skipped: true, Reason: optOutKey + ": false"}, nil
		}
	}

	converted := frontMatter + p.opts.pipeline().Convert(body)

	if p.opts.Reformat {
		formatted, err := markdownfmt.Process("", []byte(converted),
			markdown.WithCodeFormatters(markdown.GoCodeFormatter))
		if err != nil {
			return nil, fmt.Errorf("failed to reformat markdown: %w", err)
		}
		p.logger.Debug("reformatted markdown",
			zap.Int("before", len(converted)), zap.Int("after", len(formatted)))
		converted = string(formatted)
	}

	return &Result{Text: converted}, nil
}

// parseFrontMatter 解析 YAML front matter，只有键值映射才算有效
func (p *MarkdownProcessor) parseFrontMatter(frontMatter string) (map[string]interface{}, error) {
	pc := parser.NewContext()
	var buf bytes.Buffer
	if err := p.meta.Convert([]byte(frontMatter), &buf, parser.WithContext(pc)); err != nil {
		return nil, fmt.Errorf("failed to parse front matter: %w", err)
	}
	return meta.TryGet(pc)
}

// SplitFrontMatter 拆分文档开头以 --- 包围的 YAML front matter。
// 返回的 front matter 含两条分隔线及结尾换行；没有 front matter 时返回空串和原文。
func SplitFrontMatter(doc string) (frontMatter, body string) {
	first, rest, ok := cutLine(doc)
	if !ok || strings.TrimRight(first, " \t\r") != "---" {
		return "", doc
	}
	offset := len(doc) - len(rest)
	for rest != "" {
		line, next, _ := cutLine(rest)
		offset += len(rest) - len(next)
		if strings.TrimRight(line, " \t\r") == "---" {
			return doc[:offset], doc[offset:]
		}
		rest = next
	}
	return "", doc
}

// cutLine 切出第一行（不含换行符），found 表示是否存在换行
func cutLine(s string) (line, rest string, found bool) {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i], s[i+1:], true
	}
	return s, "", false
}
