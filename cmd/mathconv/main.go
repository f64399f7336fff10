package main

import (
	"os"

	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"

	"github.com/nerdneilsfield/go-unicode-math/internal/cli"
	"github.com/nerdneilsfield/go-unicode-math/internal/logger"
)

// Version information
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	// 初始化日志
	log := logger.NewLogger(false)
	defer func() {
		_ = log.Sync()
	}()

	// 容器中按 CPU 配额设置 GOMAXPROCS
	_, _ = maxprocs.Set(maxprocs.Logger(log.Sugar().Debugf))

	// 创建根命令
	rootCmd := cli.NewRootCommand(Version, Commit, BuildDate)

	// 执行命令
	if err := rootCmd.Execute(); err != nil {
		log.Error("执行命令失败", zap.Error(err))
		os.Exit(1)
	}
}
