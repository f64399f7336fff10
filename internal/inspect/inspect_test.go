package inspect

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerdneilsfield/go-unicode-math/pkg/mathconv"
)

func TestAnalyzeClean(t *testing.T) {
	report := Analyze("a.md", "Angle $\\alpha$\n", nil)
	assert.Equal(t, "a.md", report.Name)
	assert.True(t, report.Clean())
	assert.True(t, report.Changed)
	assert.Equal(t, 1, report.InlineMath)
	assert.Equal(t, 0, report.DisplayMath)
}

func TestAnalyzeCountsMath(t *testing.T) {
	doc := "Inline $a$ and $b$.\n\n$$\nx = 1\n$$\n"
	inline, display := countMath(doc)
	assert.Equal(t, 2, inline)
	assert.Equal(t, 1, display)

	inline, display = countMath("no math here\n")
	assert.Zero(t, inline)
	assert.Zero(t, display)
}

func TestAnalyzeLeftovers(t *testing.T) {
	doc := "$\\lamda + \\mathbb{R}$ and $\\frac{\\frac{1}{2}}{3}$ and $\\lamda$\n\n```\n\\alpha\n```\n"

	report := Analyze("b.md", doc, mathconv.Default())
	require.False(t, report.Clean())
	require.Len(t, report.Leftovers, 3)

	lamda := report.Leftovers[0]
	assert.Equal(t, `\lamda`, lamda.Command)
	assert.Equal(t, 2, lamda.Count)
	assert.False(t, lamda.Known)
	assert.Equal(t, `\lambda`, lamda.Suggestion)
	assert.Equal(t, `\lamda + \mathbb{R} and \frac{1/2}{3} and \lamda`, lamda.Context)

	assert.Equal(t, `\mathbb`, report.Leftovers[1].Command)

	frac := report.Leftovers[2]
	assert.Equal(t, `\frac`, frac.Command)
	assert.True(t, frac.Known)
	assert.Empty(t, frac.Suggestion)

	for _, l := range report.Leftovers {
		assert.NotEqual(t, `\alpha`, l.Command, "commands inside code blocks are not leftovers")
	}
}

func TestAnalyzeIgnoresEscapes(t *testing.T) {
	report := Analyze("c.md", "costs \\$5 \\\\ more\n", nil)
	assert.True(t, report.Clean())
}

func TestSuggest(t *testing.T) {
	known := mathconv.Default().KnownCommands()
	set := make(map[string]bool)
	for _, k := range known {
		set[k] = true
	}

	assert.Equal(t, `\alpha`, suggest("alph", known, set))
	assert.Equal(t, `\infty`, suggest("infy", known, set))
	assert.Equal(t, `\theta`, suggest("thetaa", known, set))
	assert.Empty(t, suggest("alpha", known, set))
	assert.Empty(t, suggest("operatorname", known, set))
}

func TestContextTruncated(t *testing.T) {
	doc := "$" + strings.Repeat("x + ", 40) + "\\unknowncmd$"
	report := Analyze("d.md", doc, nil)
	require.Len(t, report.Leftovers, 1)

	ctx := report.Leftovers[0].Context
	assert.LessOrEqual(t, runewidth.StringWidth(ctx), ContextWidth)
	assert.True(t, strings.HasSuffix(ctx, "…"))
}
