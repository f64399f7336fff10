package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerdneilsfield/go-unicode-math/pkg/mathconv"
)

func TestLoadSymbols(t *testing.T) {
	path := writeFile(t, t.TempDir(), "symbols.toml", `
[[symbol]]
command = '\ohm'
unicode = "Ω"

[[symbol]]
command = '\varphi'
unicode = "ϕ"
table = "greek"
`)

	file, err := LoadSymbols(path)
	require.NoError(t, err)
	require.Len(t, file.Symbols, 2)
	assert.Equal(t, `\ohm`, file.Symbols[0].Command)
	assert.Equal(t, "greek", file.Symbols[1].Table)

	opts, err := file.Options()
	require.NoError(t, err)

	p, err := mathconv.NewPipeline(opts...)
	require.NoError(t, err)
	assert.Equal(t, "R = 5 Ω, ϕ", p.Convert(`$R = 5 \ohm$, $\varphi$`))
}

func TestLoadSymbolsErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadSymbols(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	bad := writeFile(t, dir, "bad.toml", "[[symbol]\ncommand = ")
	_, err = LoadSymbols(bad)
	assert.Error(t, err)
}

func TestSymbolFileUnknownTable(t *testing.T) {
	file := &SymbolFile{Symbols: []SymbolEntry{{Command: `\x`, Unicode: "x", Table: "arrows"}}}
	_, err := file.Options()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestConfigNewPipeline(t *testing.T) {
	cfg := NewDefaultConfig()
	p, err := cfg.NewPipeline()
	require.NoError(t, err)
	assert.Same(t, mathconv.Default(), p)

	cfg.SymbolsFile = writeFile(t, t.TempDir(), "dup.toml", "[[symbol]]\ncommand = '\\alpha'\nunicode = \"a\"\ntable = \"greek\"\n")
	_, err = cfg.NewPipeline()
	require.Error(t, err)
	assert.True(t, errors.Is(err, mathconv.ErrTableConflict))
}
