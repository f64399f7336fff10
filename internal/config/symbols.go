package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/nerdneilsfield/go-unicode-math/pkg/mathconv"
)

// SymbolEntry 扩展符号表中的一条映射
type SymbolEntry struct {
	Command string `toml:"command"`
	Unicode string `toml:"unicode"`
	Table   string `toml:"table"` // greek 或 operator，默认 operator
}

// SymbolFile 扩展符号表文件，条目按文件中的顺序追加
//
//	[[symbol]]
//	command = '\ohm'
//	unicode = "Ω"
type SymbolFile struct {
	Symbols []SymbolEntry `toml:"symbol"`
}

// LoadSymbols 读取 TOML 格式的扩展符号表
func LoadSymbols(path string) (*SymbolFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read symbols file: %w", err)
	}

	file := &SymbolFile{}
	if err := toml.Unmarshal(content, file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal symbols file %s: %w", path, err)
	}
	return file, nil
}

// Options 将条目转换为流水线选项
func (f *SymbolFile) Options() ([]mathconv.Option, error) {
	opts := make([]mathconv.Option, 0, len(f.Symbols))
	for i, e := range f.Symbols {
		kind := mathconv.TableOperator
		switch e.Table {
		case "", string(mathconv.TableOperator):
		case string(mathconv.TableGreek):
			kind = mathconv.TableGreek
		default:
			return nil, fmt.Errorf("%w: symbol #%d (%s): unknown table %q", ErrInvalidConfig, i+1, e.Command, e.Table)
		}
		opts = append(opts, mathconv.WithSymbols(kind, mathconv.Symbol{Command: e.Command, Unicode: e.Unicode}))
	}
	return opts, nil
}

// NewPipeline 按配置创建转换流水线，未配置扩展符号表时返回默认流水线
func (c *Config) NewPipeline() (*mathconv.Pipeline, error) {
	if c.SymbolsFile == "" {
		return mathconv.Default(), nil
	}
	file, err := LoadSymbols(c.SymbolsFile)
	if err != nil {
		return nil, err
	}
	opts, err := file.Options()
	if err != nil {
		return nil, err
	}
	return mathconv.NewPipeline(opts...)
}
