package stats

import (
	"time"
)

// StatisticsDB 统计数据库结构
type StatisticsDB struct {
	Version     string    `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	LastUpdated time.Time `json:"last_updated"`

	// 总体统计
	TotalRuns      int64         `json:"total_runs"`
	TotalFiles     int64         `json:"total_files"`
	TotalConverted int64         `json:"total_converted"`
	TotalChanged   int64         `json:"total_changed"`
	TotalSkipped   int64         `json:"total_skipped"`
	TotalFailed    int64         `json:"total_failed"`
	TotalBytes     int64         `json:"total_bytes"`
	TotalDuration  time.Duration `json:"total_duration"`

	// 检测到的源文件编码及文件数
	Encodings map[string]int64 `json:"encodings"`

	// 最近的运行记录，最新的在前
	RecentRuns []*RunRecord `json:"recent_runs"`
}

// RunRecord 一次批量转换的记录
type RunRecord struct {
	ID        string        `json:"id"`
	Timestamp time.Time     `json:"timestamp"`
	InputDir  string        `json:"input_dir"`
	OutputDir string        `json:"output_dir,omitempty"`
	DryRun    bool          `json:"dry_run"`
	Files     int           `json:"files"`
	Converted int           `json:"converted"`
	Changed   int           `json:"changed"`
	Skipped   int           `json:"skipped"`
	Failed    int           `json:"failed"`
	Bytes     int64         `json:"bytes"`
	Duration  time.Duration `json:"duration"`
}
