package mathconv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceholder(t *testing.T) {
	assert.Equal(t, "@@PROTECTED_BLOCK_0@@", Placeholder(0))
	assert.Equal(t, "@@PROTECTED_BLOCK_12@@", Placeholder(12))
}

func TestProtect(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expectedText  string
		expectedSpans []string
	}{
		{
			name:          "fenced code block",
			input:         "Intro\n```go\nx := $a$\n```\nText",
			expectedText:  "Intro\n@@PROTECTED_BLOCK_0@@\nText",
			expectedSpans: []string{"```go\nx := $a$\n```"},
		},
		{
			name:          "image",
			input:         "See ![fig $x$](img.png) here",
			expectedText:  "See @@PROTECTED_BLOCK_0@@ here",
			expectedSpans: []string{"![fig $x$](img.png)"},
		},
		{
			name:          "html tags",
			input:         `a <span class="m">b</span> c`,
			expectedText:  "a @@PROTECTED_BLOCK_0@@b@@PROTECTED_BLOCK_1@@ c",
			expectedSpans: []string{`<span class="m">`, "</span>"},
		},
		{
			name:          "heading consumes its newline",
			input:         "# Title $x$\nbody",
			expectedText:  "@@PROTECTED_BLOCK_0@@body",
			expectedSpans: []string{"# Title $x$\n"},
		},
		{
			name:          "heading at end of document",
			input:         "text\n## End",
			expectedText:  "text\n@@PROTECTED_BLOCK_0@@",
			expectedSpans: []string{"## End"},
		},
		{
			name:          "table block spans consecutive lines",
			input:         "| a | b |\n|---|---|\n| 1 | 2 |\nafter",
			expectedText:  "@@PROTECTED_BLOCK_0@@after",
			expectedSpans: []string{"| a | b |\n|---|---|\n| 1 | 2 |\n"},
		},
		{
			name:          "scan order",
			input:         "# H\n![i](p)\n<b>x</b>",
			expectedText:  "@@PROTECTED_BLOCK_0@@@@PROTECTED_BLOCK_1@@\n@@PROTECTED_BLOCK_2@@x@@PROTECTED_BLOCK_3@@",
			expectedSpans: []string{"# H\n", "![i](p)", "<b>", "</b>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Protect(tt.input)
			assert.Equal(t, tt.expectedText, got.Text)
			assert.Equal(t, tt.expectedSpans, got.Spans)
			assert.Equal(t, tt.input, Restore(got.Text, got.Spans))
		})
	}
}

func TestProtectLeavesNonMatches(t *testing.T) {
	inputs := []string{
		"#hashtag without space",
		"####### seven hashes",
		"C# is a language",
		"a single | pipe",
		"$x_1$ plain math",
	}
	for _, input := range inputs {
		got := Protect(input)
		assert.Equal(t, input, got.Text, input)
		assert.Empty(t, got.Spans, input)
	}
}

func TestRestore(t *testing.T) {
	t.Run("unknown index is kept", func(t *testing.T) {
		assert.Equal(t, "@@PROTECTED_BLOCK_5@@", Restore("@@PROTECTED_BLOCK_5@@", []string{"a"}))
	})

	t.Run("restored text is not rescanned", func(t *testing.T) {
		spans := []string{"@@PROTECTED_BLOCK_1@@", "x"}
		assert.Equal(t, "@@PROTECTED_BLOCK_1@@ x", Restore("@@PROTECTED_BLOCK_0@@ @@PROTECTED_BLOCK_1@@", spans))
	})

	t.Run("index 1 does not match index 10", func(t *testing.T) {
		spans := make([]string, 11)
		for i := range spans {
			spans[i] = string(rune('a' + i))
		}
		assert.Equal(t, "b k", Restore("@@PROTECTED_BLOCK_1@@ @@PROTECTED_BLOCK_10@@", spans))
	})

	t.Run("no spans", func(t *testing.T) {
		assert.Equal(t, "plain", Restore("plain", nil))
	})
}

func TestPlaceholderEnd(t *testing.T) {
	s := "x @@PROTECTED_BLOCK_42@@ y"
	end := placeholderEnd(s, 2)
	require.Greater(t, end, 0)
	assert.Equal(t, "@@PROTECTED_BLOCK_42@@", s[2:end])

	assert.Equal(t, -1, placeholderEnd(s, 0))
	assert.Equal(t, -1, placeholderEnd("@@PROTECTED_BLOCK_@@", 0))
	assert.Equal(t, -1, placeholderEnd("@@PROTECTED_BLOCK_3", 0))
}
