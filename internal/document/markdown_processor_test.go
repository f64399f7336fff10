package document

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerdneilsfield/go-unicode-math/pkg/mathconv"
)

func TestSplitFrontMatter(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		frontMatter string
		body        string
	}{
		{"none", "# Title\n", "", "# Title\n"},
		{"simple", "---\ntitle: x\n---\nbody", "---\ntitle: x\n---\n", "body"},
		{"crlf", "---\r\ntitle: x\r\n---\r\nbody", "---\r\ntitle: x\r\n---\r\n", "body"},
		{"closing at end of file", "---\na: 1\n---", "---\na: 1\n---", ""},
		{"unclosed", "---\na: 1\nbody", "", "---\na: 1\nbody"},
		{"rule not at start", "text\n---\na\n---\n", "", "text\n---\na\n---\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm, body := SplitFrontMatter(tt.input)
			assert.Equal(t, tt.frontMatter, fm)
			assert.Equal(t, tt.body, body)
		})
	}
}

func TestMarkdownProcessor(t *testing.T) {
	ctx := context.Background()
	doc := "---\ntitle: $x$\n---\nArea $\\pi r^2$\n"

	t.Run("front matter preserved", func(t *testing.T) {
		p := NewMarkdownProcessor(ProcessorOptions{PreserveFrontMatter: true})
		res, err := p.Process(ctx, doc)
		require.NoError(t, err)
		assert.False(t, res.Skipped)
		assert.Equal(t, "---\ntitle: $x$\n---\nArea π r2\n", res.Text)
	})

	t.Run("front matter converted when not preserved", func(t *testing.T) {
		p := NewMarkdownProcessor(ProcessorOptions{})
		res, err := p.Process(ctx, doc)
		require.NoError(t, err)
		assert.Equal(t, "---\ntitle: x\n---\nArea π r2\n", res.Text)
	})

	t.Run("opt out", func(t *testing.T) {
		optOut := "---\nunicode_math: false\n---\n$\\alpha$\n"
		p := NewMarkdownProcessor(ProcessorOptions{PreserveFrontMatter: true})
		res, err := p.Process(ctx, optOut)
		require.NoError(t, err)
		assert.True(t, res.Skipped)
		assert.Equal(t, optOut, res.Text)
		assert.Equal(t, "unicode_math: false", res.Reason)
	})

	t.Run("explicit opt in", func(t *testing.T) {
		p := NewMarkdownProcessor(ProcessorOptions{PreserveFrontMatter: true})
		res, err := p.Process(ctx, "---\nunicode_math: true\n---\n$\\alpha$\n")
		require.NoError(t, err)
		assert.False(t, res.Skipped)
		assert.Equal(t, "---\nunicode_math: true\n---\nα\n", res.Text)
	})

	t.Run("leading thematic break is not front matter", func(t *testing.T) {
		p := NewMarkdownProcessor(ProcessorOptions{PreserveFrontMatter: true})
		res, err := p.Process(ctx, "---\nEnergy $E = \\alpha$ here.\n\n---\n\nmore $\\beta$\n")
		require.NoError(t, err)
		assert.False(t, res.Skipped)
		assert.Equal(t, "---\nEnergy E = α here.\n\n---\n\nmore β\n", res.Text)
	})

	t.Run("empty front matter block is converted", func(t *testing.T) {
		p := NewMarkdownProcessor(ProcessorOptions{PreserveFrontMatter: true})
		res, err := p.Process(ctx, "---\n---\n$\\gamma$\n")
		require.NoError(t, err)
		assert.Equal(t, "---\n---\nγ\n", res.Text)
	})

	t.Run("custom pipeline", func(t *testing.T) {
		pipeline, err := mathconv.NewPipeline(mathconv.WithSymbols(mathconv.TableOperator, mathconv.Symbol{Command: `\ohm`, Unicode: "Ω"}))
		require.NoError(t, err)
		p := NewMarkdownProcessor(ProcessorOptions{Pipeline: pipeline})
		res, err := p.Process(ctx, `$5 \ohm$`)
		require.NoError(t, err)
		assert.Equal(t, "5 Ω", res.Text)
	})

	t.Run("reformat", func(t *testing.T) {
		p := NewMarkdownProcessor(ProcessorOptions{Reformat: true})
		res, err := p.Process(ctx, "# Title\n\nText $x^2$\n")
		require.NoError(t, err)
		assert.Contains(t, res.Text, "# Title")
		assert.Contains(t, res.Text, "Text x2")
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := NewMarkdownProcessor(ProcessorOptions{}).Process(cancelled, doc)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
