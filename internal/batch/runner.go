// Package batch 遍历目录并逐个转换文档，单个文件失败不影响其余文件
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nerdneilsfield/go-unicode-math/internal/document"
	"github.com/nerdneilsfield/go-unicode-math/internal/logger"
)

// Status 单个文件的处理状态
type Status string

const (
	StatusConverted Status = "converted"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// FileResult 单个文件的处理结果
type FileResult struct {
	Source   string
	Output   string
	Encoding string
	Status   Status
	// Changed 输出与输入不同
	Changed bool
	Reason  string
	Err     error
	Bytes   int
	// Duration 读取、转换与写入的总耗时
	Duration time.Duration
}

// Request 一次批量转换的参数
type Request struct {
	InputDir       string
	OutputDir      string // 为空时原地覆盖
	Extensions     []string
	Concurrency    int
	DryRun         bool
	FollowSymlinks bool
	Processor      document.ProcessorOptions

	// Progress 每完成一个文件调用一次，在收集结果的协程中串行执行
	Progress func(done, total int, result FileResult)
}

// Summary 批量转换汇总
type Summary struct {
	RunID     string
	StartedAt time.Time
	Duration  time.Duration
	InputDir  string
	OutputDir string
	DryRun    bool
	Results   []FileResult

	Converted int
	Skipped   int
	Failed    int
}

// Total 文件总数
func (s *Summary) Total() int {
	return len(s.Results)
}

// Runner 批量转换执行器
type Runner struct {
	registry *document.Registry
	logger   logger.Logger
}

// NewRunner 创建执行器；registry 为空时使用全局注册表
func NewRunner(registry *document.Registry, log logger.Logger) *Runner {
	if registry == nil {
		registry = document.Default()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Runner{registry: registry, logger: log}
}

// Run 执行批量转换。
// 文件级错误记录在对应的 FileResult 中；只有参数错误、遍历失败和取消会返回 error，
// 取消时返回已完成部分的汇总。
func (r *Runner) Run(ctx context.Context, req Request) (*Summary, error) {
	if req.Concurrency < 1 {
		req.Concurrency = 1
	}

	summary := &Summary{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
		InputDir:  req.InputDir,
		OutputDir: req.OutputDir,
		DryRun:    req.DryRun,
	}
	log := r.logger.With(zap.String("run_id", summary.RunID))

	var skipDirs []string
	if req.OutputDir != "" {
		if info, err := os.Stat(req.OutputDir); err == nil && !info.IsDir() {
			return nil, fmt.Errorf("%w: %s is a file", ErrInvalidOutput, req.OutputDir)
		}
		skipDirs = append(skipDirs, req.OutputDir)
	}

	files, err := Walk(ctx, req.InputDir, WalkOptions{
		Extensions:     req.Extensions,
		SkipDirs:       skipDirs,
		FollowSymlinks: req.FollowSymlinks,
	})
	if err != nil {
		return nil, err
	}
	log.Info("found files", zap.String("input", req.InputDir), zap.Int("count", len(files)))

	type result struct {
		index int
		res   FileResult
	}

	resultChan := make(chan result, len(files))
	var wg sync.WaitGroup

	// 限制并发数
	semaphore := make(chan struct{}, req.Concurrency)

	for i, path := range files {
		wg.Add(1)
		go func(idx int, path string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			resultChan <- result{index: idx, res: r.processFile(ctx, req, path, log)}
		}(i, path)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	// 收集结果，保持遍历顺序
	results := make([]FileResult, len(files))
	done := 0
	for res := range resultChan {
		results[res.index] = res.res
		done++
		if req.Progress != nil {
			req.Progress(done, len(files), res.res)
		}
	}

	summary.Results = results
	for _, res := range results {
		switch res.Status {
		case StatusConverted:
			summary.Converted++
		case StatusSkipped:
			summary.Skipped++
		case StatusFailed:
			summary.Failed++
		}
	}
	summary.Duration = time.Since(summary.StartedAt)

	log.Info("batch finished",
		zap.Int("converted", summary.Converted),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed),
		zap.Duration("duration", summary.Duration))

	return summary, ctx.Err()
}

// processFile 读取、转换并写入单个文件
func (r *Runner) processFile(ctx context.Context, req Request, path string, log logger.Logger) FileResult {
	start := time.Now()
	res := FileResult{Source: path}
	fileLog := log.With(zap.String("file", path))

	fail := func(err error) FileResult {
		res.Status = StatusFailed
		res.Err = err
		res.Duration = time.Since(start)
		fileLog.Error("failed to convert file", zap.Error(err))
		return res
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	out, err := document.OutputPath(req.InputDir, req.OutputDir, path)
	if err != nil {
		return fail(err)
	}
	res.Output = out

	processor, err := r.registry.GetProcessorByExtension(path, req.Processor)
	if err != nil {
		return fail(err)
	}

	text, enc, err := document.ReadText(path)
	if err != nil {
		return fail(fmt.Errorf("read: %w", err))
	}
	res.Encoding = enc
	res.Bytes = len(text)

	processed, err := processor.Process(ctx, text)
	if err != nil {
		return fail(err)
	}
	res.Changed = processed.Text != text

	// 原地覆盖且内容未变时不写文件
	inPlace := filepath.Clean(out) == filepath.Clean(path)
	if !req.DryRun && (res.Changed || !inPlace) {
		if err := document.WriteText(out, processed.Text); err != nil {
			return fail(fmt.Errorf("write: %w", err))
		}
	}

	res.Duration = time.Since(start)
	if processed.Skipped {
		res.Status = StatusSkipped
		res.Reason = processed.Reason
		fileLog.Info("skipped file", zap.String("reason", res.Reason))
		return res
	}

	res.Status = StatusConverted
	fileLog.Info("converted file",
		zap.String("output", out),
		zap.String("encoding", enc),
		zap.Bool("changed", res.Changed),
		zap.Duration("duration", res.Duration))
	return res
}
