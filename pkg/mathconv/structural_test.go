package mathconv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewriteFractions(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"frac", `\frac{1}{2}`, "1/2"},
		{"dfrac", `\dfrac{a+b}{c}`, "a+b/c"},
		{"vfrac", `\vfrac{x}{y}`, "x/y"},
		{"nested only inner rewritten", `\frac{\frac{1}{2}}{3}`, `\frac{1/2}{3}`},
		{"missing denominator", `\frac{1}`, `\frac{1}`},
		{"escaped brace in argument", `\frac{a\}b}{c}`, `a\}b/c`},
		{"fracture is another command", `\fracture{1}{2}`, `\fracture{1}{2}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, rewriteFractions(tt.input))
		})
	}
}

func TestRewriteRoots(t *testing.T) {
	assert.Equal(t, "√x", rewriteRoots(`\sqrt{x}`))
	assert.Equal(t, "3√8", rewriteRoots(`\sqrt[3]{8}`))
	assert.Equal(t, `\sqrt[3]`, rewriteRoots(`\sqrt[3]`))
	assert.Equal(t, `\sqrt x`, rewriteRoots(`\sqrt x`))
}

func TestRewriteBigOperators(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`\sum_{i=0}^{n} i`, "Σ i"},
		{`\prod_{k}^{m} x`, "∏ x"},
		{`\int f`, "∫ f"},
		{`\int_0^1 f`, "∫_0^1 f"},
		{`\int_{a} f`, "∫_{a} f"},
		{`\integral`, `\integral`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, rewriteBigOperators(tt.input), tt.input)
	}
}

func TestRewriteScripts(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"single char superscript", "x^2", "x2"},
		{"single char subscript", "x_1", "x1"},
		{"braced", "x_{ij}", "xij"},
		{"one level of nesting", "x^{y^{z}}", "xy^{z}"},
		{"too deep keeps outer marker", "a^{b^{c^{d}}}", "a^{bc^{d}}"},
		{"multibyte script", "x^α", "xα"},
		{"whitespace after marker", "a_ b", "a_ b"},
		{"closing brace after marker", "x^}", "x^}"},
		{"marker at end", "x^", "x^"},
		{"escaped underscore", `a\_b`, `a\_b`},
		{"placeholder untouched", "a @@PROTECTED_BLOCK_3@@ b_c", "a @@PROTECTED_BLOCK_3@@ bc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, rewriteScripts(tt.input))
		})
	}
}

func TestRewriteVectors(t *testing.T) {
	assert.Equal(t, "F = ma", rewriteVectors(`\vec{F} = m\vec{a}`))
	assert.Equal(t, "v", rewriteVectors(`\bvec{v}`))
	assert.Equal(t, `\vector{x}`, rewriteVectors(`\vector{x}`))
}

func TestRewriteMatrices(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "pmatrix keeps markers",
			input:    `\begin{pmatrix}1 & 2 \\ 3 & 4\end{pmatrix}`,
			expected: `\begin{pmatrix}1,2 ; 3,4\end{pmatrix}`,
		},
		{
			name:     "multi line bmatrix",
			input:    "\\begin{bmatrix}\na & b \\\\\nc & d\n\\end{bmatrix}",
			expected: "\\begin{bmatrix}\na,b ;\nc,d\n\\end{bmatrix}",
		},
		{
			name:     "ampersand outside matrix untouched",
			input:    `a & b`,
			expected: `a & b`,
		},
		{
			name:     "mismatched end",
			input:    `\begin{matrix}1 & 2\end{pmatrix}`,
			expected: `\begin{matrix}1 & 2\end{pmatrix}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, rewriteMatrices(tt.input))
		})
	}
}

func TestRewriteSizing(t *testing.T) {
	assert.Equal(t, "( x ]", rewriteSizing(`\left( x \right]`))
	assert.Equal(t, "| x |", rewriteSizing(`\lvert x \rvert`))
	assert.Equal(t, "< x >", rewriteSizing(`\left< x \right>`))
	assert.Equal(t, `\left. x |`, rewriteSizing(`\left. x \right|`))
	assert.Equal(t, `\leftarrow`, rewriteSizing(`\leftarrow`))
}
