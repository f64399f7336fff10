// Package stats 记录历次批量转换的统计数据并在终端中展示
package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nerdneilsfield/go-unicode-math/internal/batch"
)

const (
	StatsDBVersion   = "1.0.0"
	MaxRecentRecords = 100
)

// DefaultPath 默认的统计文件位置
func DefaultPath() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "mathconv", "stats.json")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".mathconv", "stats.json")
	}
	return filepath.Join(".mathconv", "stats.json")
}

// Database 统计数据库
type Database struct {
	filePath string
	data     *StatisticsDB
	mutex    sync.RWMutex
	logger   *zap.Logger
}

// NewDatabase 创建统计数据库
func NewDatabase(filePath string, logger *zap.Logger) (*Database, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db := &Database{
		filePath: filePath,
		logger:   logger,
	}

	// 确保目录存在
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create stats directory: %w", err)
	}

	// 加载或创建数据
	if err := db.load(); err != nil {
		return nil, fmt.Errorf("failed to load stats database: %w", err)
	}

	return db, nil
}

// load 加载统计数据
func (db *Database) load() error {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	// 检查文件是否存在
	if _, err := os.Stat(db.filePath); os.IsNotExist(err) {
		db.data = &StatisticsDB{
			Version:     StatsDBVersion,
			CreatedAt:   time.Now(),
			LastUpdated: time.Now(),
			Encodings:   make(map[string]int64),
			RecentRuns:  make([]*RunRecord, 0),
		}
		return db.saveUnsafe()
	}

	data, err := os.ReadFile(db.filePath)
	if err != nil {
		return fmt.Errorf("failed to read stats file: %w", err)
	}

	var statsDB StatisticsDB
	if err := json.Unmarshal(data, &statsDB); err != nil {
		return fmt.Errorf("failed to parse stats file: %w", err)
	}

	// 初始化可能为 nil 的字段
	if statsDB.Encodings == nil {
		statsDB.Encodings = make(map[string]int64)
	}
	if statsDB.RecentRuns == nil {
		statsDB.RecentRuns = make([]*RunRecord, 0)
	}

	db.data = &statsDB
	db.logger.Debug("loaded statistics database",
		zap.String("version", statsDB.Version),
		zap.Time("created_at", statsDB.CreatedAt),
		zap.Int64("total_runs", statsDB.TotalRuns))

	return nil
}

// Save 保存统计数据
func (db *Database) Save() error {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	return db.saveUnsafe()
}

// saveUnsafe 不安全的保存（需要已持有锁）
func (db *Database) saveUnsafe() error {
	db.data.LastUpdated = time.Now()

	data, err := json.MarshalIndent(db.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal stats data: %w", err)
	}

	// 原子写入
	tempFile := db.filePath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temp stats file: %w", err)
	}

	if err := os.Rename(tempFile, db.filePath); err != nil {
		return fmt.Errorf("failed to rename stats file: %w", err)
	}

	return nil
}

// AddRun 记录一次批量转换并保存
func (db *Database) AddRun(s *batch.Summary) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	record := &RunRecord{
		ID:        s.RunID,
		Timestamp: s.StartedAt,
		InputDir:  s.InputDir,
		OutputDir: s.OutputDir,
		DryRun:    s.DryRun,
		Files:     s.Total(),
		Converted: s.Converted,
		Skipped:   s.Skipped,
		Failed:    s.Failed,
		Duration:  s.Duration,
	}
	for _, res := range s.Results {
		if res.Changed {
			record.Changed++
		}
		record.Bytes += int64(res.Bytes)
		if res.Encoding != "" {
			db.data.Encodings[res.Encoding]++
		}
	}

	// 更新总体统计
	db.data.TotalRuns++
	db.data.TotalFiles += int64(record.Files)
	db.data.TotalConverted += int64(record.Converted)
	db.data.TotalChanged += int64(record.Changed)
	db.data.TotalSkipped += int64(record.Skipped)
	db.data.TotalFailed += int64(record.Failed)
	db.data.TotalBytes += record.Bytes
	db.data.TotalDuration += record.Duration

	db.data.RecentRuns = append([]*RunRecord{record}, db.data.RecentRuns...)
	if len(db.data.RecentRuns) > MaxRecentRecords {
		db.data.RecentRuns = db.data.RecentRuns[:MaxRecentRecords]
	}

	db.logger.Debug("recorded run", zap.String("run_id", record.ID), zap.Int("files", record.Files))
	return db.saveUnsafe()
}

// GetStats 返回统计数据的副本
func (db *Database) GetStats() *StatisticsDB {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	cp := *db.data
	cp.Encodings = make(map[string]int64, len(db.data.Encodings))
	for k, v := range db.data.Encodings {
		cp.Encodings[k] = v
	}
	cp.RecentRuns = append([]*RunRecord(nil), db.data.RecentRuns...)
	return &cp
}

// GetRecentRuns 返回最近的运行记录
func (db *Database) GetRecentRuns(limit int) []*RunRecord {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	if limit <= 0 || limit > len(db.data.RecentRuns) {
		limit = len(db.data.RecentRuns)
	}
	return append([]*RunRecord(nil), db.data.RecentRuns[:limit]...)
}

// Path 返回统计文件路径
func (db *Database) Path() string {
	return db.filePath
}
