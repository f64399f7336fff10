package stats

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/nerdneilsfield/go-unicode-math/internal/batch"
	"github.com/nerdneilsfield/go-unicode-math/internal/inspect"
	"github.com/nerdneilsfield/go-unicode-math/pkg/mathconv"
)

// Visualizer 在终端中展示转换结果与统计数据
type Visualizer struct {
	w io.Writer
}

// NewVisualizer 创建可视化器
func NewVisualizer(w io.Writer) *Visualizer {
	return &Visualizer{w: w}
}

var statusColors = map[batch.Status]text.Colors{
	batch.StatusConverted: {text.FgGreen},
	batch.StatusSkipped:   {text.FgYellow},
	batch.StatusFailed:    {text.FgRed, text.Bold},
}

// ShowSummary 显示一次批量转换的逐文件结果与汇总
func (v *Visualizer) ShowSummary(s *batch.Summary) {
	tw := v.newTable()
	tw.AppendHeader(table.Row{"文件", "状态", "编码", "大小", "耗时", "说明"})
	for _, res := range s.Results {
		note := res.Reason
		switch {
		case res.Err != nil:
			note = res.Err.Error()
		case res.Status == batch.StatusConverted && !res.Changed:
			note = "无公式"
		}
		tw.AppendRow(table.Row{
			res.Source,
			statusColors[res.Status].Sprint(string(res.Status)),
			res.Encoding,
			formatBytes(int64(res.Bytes)),
			formatDuration(res.Duration),
			note,
		})
	}
	tw.AppendFooter(table.Row{
		fmt.Sprintf("共 %d 个文件", s.Total()),
		fmt.Sprintf("%d / %d / %d", s.Converted, s.Skipped, s.Failed),
		"", "", formatDuration(s.Duration), "",
	})
	tw.Render()

	if s.DryRun {
		color.New(color.FgYellow).Fprintln(v.w, "试运行：未写入任何文件")
	}
}

// ShowReports 显示 check 命令的检查结果
func (v *Visualizer) ShowReports(reports []inspect.Report) {
	for i, r := range reports {
		if i > 0 {
			fmt.Fprintln(v.w)
		}

		status := color.New(color.FgGreen).Sprint("✅")
		if !r.Clean() {
			status = color.New(color.FgRed).Sprint("❌")
		}
		v.printSection(fmt.Sprintf("%s %s", status, r.Name), [][]string{
			{"Inline math", strconv.Itoa(r.InlineMath)},
			{"Display math", strconv.Itoa(r.DisplayMath)},
			{"Leftover commands", strconv.Itoa(len(r.Leftovers))},
		})
		if r.Clean() {
			continue
		}

		tw := v.newTable()
		tw.AppendHeader(table.Row{"命令", "次数", "建议", "上下文"})
		for _, l := range r.Leftovers {
			suggestion := l.Suggestion
			if l.Known {
				suggestion = "（参数形式不受支持）"
			}
			tw.AppendRow(table.Row{l.Command, l.Count, suggestion, l.Context})
		}
		tw.Render()
	}
}

// ShowSymbols 显示符号表
func (v *Visualizer) ShowSymbols(tables []mathconv.SymbolTable) {
	tw := v.newTable()
	tw.AppendHeader(table.Row{"表", "命令", "Unicode", "码点"})
	for _, t := range tables {
		for _, e := range t.Entries {
			tw.AppendRow(table.Row{string(t.Kind), e.Command, e.Unicode, codePoints(e.Unicode)})
		}
		tw.AppendSeparator()
	}
	tw.Render()
}

// ShowOverview 显示历史统计总览
func (v *Visualizer) ShowOverview(stats *StatisticsDB) {
	title := color.New(color.FgCyan, color.Bold)
	title.Fprintln(v.w, "📊 Conversion Statistics Overview")
	title.Fprintln(v.w, strings.Repeat("=", 50))

	fmt.Fprintln(v.w)
	v.printSection("🎯 Overall Statistics", [][]string{
		{"Total Runs", formatNumber(stats.TotalRuns)},
		{"Total Files", formatNumber(stats.TotalFiles)},
		{"Converted", formatNumber(stats.TotalConverted)},
		{"Changed", formatNumber(stats.TotalChanged)},
		{"Skipped", formatNumber(stats.TotalSkipped)},
		{"Failed", formatNumber(stats.TotalFailed)},
		{"Total Size", formatBytes(stats.TotalBytes)},
		{"Total Duration", formatDuration(stats.TotalDuration)},
		{"Database Created", formatTime(stats.CreatedAt)},
		{"Last Updated", formatTime(stats.LastUpdated)},
	})

	if len(stats.Encodings) == 0 {
		return
	}
	encodings := make([]string, 0, len(stats.Encodings))
	for enc := range stats.Encodings {
		encodings = append(encodings, enc)
	}
	sort.Slice(encodings, func(i, j int) bool {
		if stats.Encodings[encodings[i]] != stats.Encodings[encodings[j]] {
			return stats.Encodings[encodings[i]] > stats.Encodings[encodings[j]]
		}
		return encodings[i] < encodings[j]
	})
	rows := make([][]string, 0, len(encodings))
	for _, enc := range encodings {
		rows = append(rows, []string{enc, formatNumber(stats.Encodings[enc])})
	}
	fmt.Fprintln(v.w)
	v.printSection("🔤 Source Encodings", rows)
}

// ShowRecentRuns 显示最近的运行记录
func (v *Visualizer) ShowRecentRuns(records []*RunRecord) {
	title := color.New(color.FgBlue, color.Bold)
	title.Fprintf(v.w, "🕒 Recent Runs (Last %d)\n", len(records))

	if len(records) == 0 {
		fmt.Fprintln(v.w, "No runs recorded.")
		return
	}

	tw := v.newTable()
	tw.AppendHeader(table.Row{"时间", "输入", "输出", "文件", "成功", "跳过", "失败", "耗时"})
	for _, r := range records {
		out := r.OutputDir
		if out == "" {
			out = "(原地)"
		}
		if r.DryRun {
			out += " [dry-run]"
		}
		tw.AppendRow(table.Row{formatTime(r.Timestamp), r.InputDir, out, r.Files, r.Converted, r.Skipped, r.Failed, formatDuration(r.Duration)})
	}
	tw.Render()
}

func (v *Visualizer) newTable() table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(v.w)
	tw.SetStyle(table.StyleLight)
	return tw
}

// printSection 打印一个统计部分
func (v *Visualizer) printSection(title string, data [][]string) {
	sectionColor := color.New(color.FgYellow, color.Bold)
	sectionColor.Fprintf(v.w, "%s\n", title)

	// 计算最大标签长度
	maxLabelLen := 0
	for _, row := range data {
		if len(row[0]) > maxLabelLen {
			maxLabelLen = len(row[0])
		}
	}

	labelColor := color.New(color.FgCyan)
	valueColor := color.New(color.FgWhite, color.Bold)
	for _, row := range data {
		labelColor.Fprintf(v.w, "  %-*s: ", maxLabelLen, row[0])
		valueColor.Fprintln(v.w, row[1])
	}
}

// codePoints 以 U+XXXX 形式列出字符串中的码点
func codePoints(s string) string {
	parts := make([]string, 0, len(s))
	for _, r := range s {
		parts = append(parts, fmt.Sprintf("U+%04X", r))
	}
	return strings.Join(parts, " ")
}

// formatNumber 格式化数字（添加千位分隔符）
func formatNumber(n int64) string {
	str := strconv.FormatInt(n, 10)
	if len(str) <= 3 {
		return str
	}

	var result strings.Builder
	for i, char := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result.WriteString(",")
		}
		result.WriteRune(char)
	}
	return result.String()
}

// formatBytes 格式化字节数
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	units := []string{"KB", "MB", "GB", "TB"}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), units[exp])
}

// formatDuration 格式化持续时间
func formatDuration(d time.Duration) string {
	if d == 0 {
		return "0s"
	}

	if d < time.Second {
		return fmt.Sprintf("%.0fms", float64(d.Nanoseconds())/1e6)
	}

	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}

	if d < time.Hour {
		return fmt.Sprintf("%.1fm", d.Minutes())
	}

	return fmt.Sprintf("%.1fh", d.Hours())
}

// formatTime 格式化时间
func formatTime(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}
