// Package document 负责单个文件的读取、按格式转换与写回
package document

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/nerdneilsfield/go-unicode-math/pkg/mathconv"
)

// ErrUnsupportedFormat 没有为该扩展名注册处理器
var ErrUnsupportedFormat = errors.New("unsupported format")

// Format 文档格式
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Processor 定义文档处理器的核心接口
type Processor interface {
	// Process 转换整篇文档中的数学公式
	Process(ctx context.Context, text string) (*Result, error)

	// GetFormat 返回处理器支持的格式
	GetFormat() Format
}

// Result 单个文档的处理结果
type Result struct {
	Text string
	// Skipped 文档声明不需要转换时为 true，Text 为原文
	Skipped bool
	Reason  string
}

// ProcessorFactory 处理器工厂函数
type ProcessorFactory func(opts ProcessorOptions) (Processor, error)

// ProcessorOptions 处理器选项
type ProcessorOptions struct {
	// Pipeline 转换流水线，为空时使用默认流水线
	Pipeline *mathconv.Pipeline

	// PreserveFrontMatter 原样保留 YAML front matter
	PreserveFrontMatter bool

	// Reformat 转换后重新排版 Markdown
	Reformat bool

	Logger *zap.Logger
}

func (o ProcessorOptions) pipeline() *mathconv.Pipeline {
	if o.Pipeline == nil {
		return mathconv.Default()
	}
	return o.Pipeline
}

func (o ProcessorOptions) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
