package stats

import (
	"bytes"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/stretchr/testify/assert"

	"github.com/nerdneilsfield/go-unicode-math/internal/inspect"
	"github.com/nerdneilsfield/go-unicode-math/pkg/mathconv"
)

func init() {
	color.NoColor = true
	text.DisableColors()
}

func TestShowSummary(t *testing.T) {
	var buf bytes.Buffer
	s := sampleSummary("r1")
	s.DryRun = true
	NewVisualizer(&buf).ShowSummary(s)

	out := buf.String()
	assert.Contains(t, out, "docs/a.md")
	assert.Contains(t, out, "converted")
	assert.Contains(t, out, "failed")
	assert.Contains(t, out, "boom")
	assert.Contains(t, out, "无公式")
	assert.Contains(t, out, "共 3 个文件")
	assert.Contains(t, out, "2 / 0 / 1")
	assert.Contains(t, out, "试运行")
}

func TestShowReports(t *testing.T) {
	var buf bytes.Buffer
	reports := []inspect.Report{
		{Name: "clean.md", InlineMath: 2},
		{Name: "dirty.md", Leftovers: []inspect.Leftover{
			{Command: `\lamda`, Count: 2, Suggestion: `\lambda`, Context: `\lamda + 1`},
			{Command: `\frac`, Count: 1, Known: true},
		}},
	}
	NewVisualizer(&buf).ShowReports(reports)

	out := buf.String()
	assert.Contains(t, out, "clean.md")
	assert.Contains(t, out, "dirty.md")
	assert.Contains(t, out, `\lambda`)
	assert.Contains(t, out, "参数形式不受支持")
}

func TestShowSymbols(t *testing.T) {
	var buf bytes.Buffer
	NewVisualizer(&buf).ShowSymbols(mathconv.Default().Tables())

	out := buf.String()
	assert.Contains(t, out, `\alpha`)
	assert.Contains(t, out, "U+03B1")
	assert.Contains(t, out, `\rightarrow`)
}

func TestShowOverviewAndRecentRuns(t *testing.T) {
	var buf bytes.Buffer
	v := NewVisualizer(&buf)
	v.ShowOverview(&StatisticsDB{TotalRuns: 1234, Encodings: map[string]int64{"utf-8": 3}})
	v.ShowRecentRuns([]*RunRecord{{InputDir: "docs", Files: 3, Duration: time.Second}})
	v.ShowRecentRuns(nil)

	out := buf.String()
	assert.Contains(t, out, "1,234")
	assert.Contains(t, out, "utf-8")
	assert.Contains(t, out, "(原地)")
	assert.Contains(t, out, "No runs recorded.")
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "999", formatNumber(999))
	assert.Equal(t, "1,234,567", formatNumber(1234567))
	assert.Equal(t, "512 B", formatBytes(512))
	assert.Equal(t, "1.5 KB", formatBytes(1536))
	assert.Equal(t, "0s", formatDuration(0))
	assert.Equal(t, "250ms", formatDuration(250*time.Millisecond))
	assert.Equal(t, "1.5s", formatDuration(1500*time.Millisecond))
	assert.Equal(t, "N/A", formatTime(time.Time{}))
	assert.Equal(t, "U+03B1 U+2192", codePoints("α→"))
}
