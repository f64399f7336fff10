package document

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// skipSelector 这些元素内的文本不做转换
const skipSelector = "pre, code, script, style, math, textarea"

// HTMLProcessor HTML 文档处理器，只转换正文文本节点
type HTMLProcessor struct {
	opts   ProcessorOptions
	logger *zap.Logger
}

// NewHTMLProcessor 创建 HTML 处理器
func NewHTMLProcessor(opts ProcessorOptions) *HTMLProcessor {
	return &HTMLProcessor{
		opts:   opts,
		logger: opts.logger(),
	}
}

// GetFormat 返回处理器支持的格式
func (p *HTMLProcessor) GetFormat() Format {
	return FormatHTML
}

// Process 解析 HTML，转换文本节点后重新渲染。
// 不含 <html> 的片段按 body 内容解析，输出时不补全文档结构。
func (p *HTMLProcessor) Process(ctx context.Context, doc string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fullDocument := strings.Contains(strings.ToLower(doc), "<html")

	var root *html.Node
	if fullDocument {
		node, err := html.Parse(strings.NewReader(doc))
		if err != nil {
			return nil, fmt.Errorf("failed to parse html: %w", err)
		}
		root = node
	} else {
		body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
		nodes, err := html.ParseFragment(strings.NewReader(doc), body)
		if err != nil {
			return nil, fmt.Errorf("failed to parse html fragment: %w", err)
		}
		for _, n := range nodes {
			body.AppendChild(n)
		}
		root = body
	}

	gq := goquery.NewDocumentFromNode(root)
	skip := make(map[*html.Node]bool)
	gq.Find(skipSelector).Each(func(_ int, s *goquery.Selection) {
		for _, n := range s.Nodes {
			skip[n] = true
		}
	})

	pipeline := p.opts.pipeline()
	converted := 0
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if skip[n] {
			return
		}
		if n.Type == html.TextNode {
			if out := pipeline.Convert(n.Data); out != n.Data {
				n.Data = out
				converted++
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	p.logger.Debug("converted html text nodes", zap.Int("nodes", converted), zap.Int("skipped_elements", len(skip)))

	var buf bytes.Buffer
	if fullDocument {
		if err := html.Render(&buf, root); err != nil {
			return nil, fmt.Errorf("failed to render html: %w", err)
		}
	} else {
		for c := root.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return nil, fmt.Errorf("failed to render html: %w", err)
			}
		}
	}

	return &Result{Text: buf.String()}, nil
}
