package document

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Registry 格式处理器注册表
type Registry struct {
	mu         sync.RWMutex
	processors map[Format]ProcessorFactory
	extensions map[string]Format
}

// NewRegistry 创建空注册表
func NewRegistry() *Registry {
	return &Registry{
		processors: make(map[Format]ProcessorFactory),
		extensions: make(map[string]Format),
	}
}

// globalRegistry 全局注册表实例
var globalRegistry = NewRegistry()

// Register 注册处理器
func Register(format Format, factory ProcessorFactory) error {
	return globalRegistry.Register(format, factory)
}

// RegisterExtension 注册文件扩展名
func RegisterExtension(ext string, format Format) {
	globalRegistry.RegisterExtension(ext, format)
}

// GetProcessorByExtension 根据文件扩展名获取处理器
func GetProcessorByExtension(filename string, opts ProcessorOptions) (Processor, error) {
	return globalRegistry.GetProcessorByExtension(filename, opts)
}

// Default 返回全局注册表
func Default() *Registry {
	return globalRegistry
}

// Register 注册处理器到注册表
func (r *Registry) Register(format Format, factory ProcessorFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.processors[format]; exists {
		return fmt.Errorf("format %s already registered", format)
	}

	r.processors[format] = factory
	return nil
}

// RegisterExtension 注册文件扩展名映射
func (r *Registry) RegisterExtension(ext string, format Format) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// 标准化扩展名（去除点号，转小写）
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	r.extensions[ext] = format
}

// GetProcessor 获取指定格式的处理器
func (r *Registry) GetProcessor(format Format, opts ProcessorOptions) (Processor, error) {
	r.mu.RLock()
	factory, exists := r.processors[format]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: no processor registered for format %s", ErrUnsupportedFormat, format)
	}

	return factory(opts)
}

// GetProcessorByExtension 根据文件扩展名获取处理器
func (r *Registry) GetProcessorByExtension(filename string, opts ProcessorOptions) (Processor, error) {
	format, exists := r.GetFormatByExtension(filepath.Ext(filename))
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
	}

	return r.GetProcessor(format, opts)
}

// GetFormatByExtension 根据扩展名获取格式
func (r *Registry) GetFormatByExtension(ext string) (Format, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	format, exists := r.extensions[ext]
	return format, exists
}

// Extensions 返回已注册的扩展名（带点号），按字母排序
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.extensions))
	for ext := range r.extensions {
		exts = append(exts, "."+ext)
	}
	sort.Strings(exts)
	return exts
}

// init 初始化默认扩展名映射和处理器注册
func init() {
	_ = Register(FormatMarkdown, func(opts ProcessorOptions) (Processor, error) {
		return NewMarkdownProcessor(opts), nil
	})
	_ = Register(FormatHTML, func(opts ProcessorOptions) (Processor, error) {
		return NewHTMLProcessor(opts), nil
	})

	// Markdown
	RegisterExtension(".md", FormatMarkdown)
	RegisterExtension(".markdown", FormatMarkdown)

	// HTML
	RegisterExtension(".html", FormatHTML)
	RegisterExtension(".htm", FormatHTML)
}
