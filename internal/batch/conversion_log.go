package batch

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultLogFileName 默认的转换日志文件名
const DefaultLogFileName = "math_conversion_log.txt"

// LogPath 返回转换日志的位置：有输出目录时写在输出目录，否则写在输入目录
func LogPath(s *Summary, fileName string) string {
	if fileName == "" {
		fileName = DefaultLogFileName
	}
	dir := s.OutputDir
	if dir == "" {
		dir = s.InputDir
	}
	return filepath.Join(dir, fileName)
}

// WriteLog 将汇总按转换日志格式写入 w
func WriteLog(w io.Writer, s *Summary) error {
	var b strings.Builder
	fmt.Fprintf(&b, "LaTeX公式转换日志 - %s\n", s.StartedAt.Format(time.DateTime))
	fmt.Fprintf(&b, "运行ID: %s\n\n", s.RunID)
	fmt.Fprintf(&b, "共处理文件: %d个\n", s.Converted)
	for _, res := range s.Results {
		switch res.Status {
		case StatusConverted:
			fmt.Fprintf(&b, "成功处理: %s → %s\n", res.Source, res.Output)
		case StatusSkipped:
			fmt.Fprintf(&b, "跳过: %s (%s)\n", res.Source, res.Reason)
		case StatusFailed:
			fmt.Fprintf(&b, "处理失败: %s - %v\n", res.Source, res.Err)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// SaveLog 写入转换日志文件并返回其路径
func SaveLog(s *Summary, fileName string) (string, error) {
	path := LogPath(s, fileName)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create log file: %w", err)
	}
	if err := writeAndClose(f, s); err != nil {
		return "", err
	}
	return path, nil
}

// writeAndClose 写入日志后关闭文件，写入成功时返回关闭错误
func writeAndClose(w io.WriteCloser, s *Summary) error {
	if err := WriteLog(w, s); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write log file: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	return nil
}
