package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nerdneilsfield/go-unicode-math/internal/logger"
	"github.com/nerdneilsfield/go-unicode-math/internal/stats"
)

var (
	// stats 命令的标志
	recentLimit int
	exportPath  string
)

// newStatsCommand 创建 stats 命令
func newStatsCommand() *cobra.Command {
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "查看历次转换的统计数据",
		Long: `查看历次批量转换的统计数据，包括:
- 累计处理的文件数与结果
- 源文件编码分布
- 最近的运行记录

示例:
  # 显示统计总览和最近 10 次运行
  mathconv stats

  # 显示最近 20 次运行
  mathconv stats --recent 20

  # 导出统计数据为 JSON
  mathconv stats --export stats.json`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runStatsCommand,
	}

	statsCmd.Flags().IntVar(&recentLimit, "recent", 10, "显示的最近运行记录数")
	statsCmd.Flags().StringVar(&exportPath, "export", "", "导出统计数据到文件（JSON 格式）")
	return statsCmd
}

func runStatsCommand(cmd *cobra.Command, args []string) error {
	log := logger.NewLoggerWithVerbose(debugMode, verboseMode)
	defer func() {
		_ = log.Sync()
	}()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	db, err := stats.NewDatabase(statsPath(cfg), log)
	if err != nil {
		return fmt.Errorf("failed to open stats database: %w", err)
	}

	if exportPath != "" {
		data, err := json.MarshalIndent(db.GetStats(), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal stats: %w", err)
		}
		if err := os.WriteFile(exportPath, data, 0o644); err != nil {
			return fmt.Errorf("failed to export stats: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "统计数据已导出到: %s\n", exportPath)
		return nil
	}

	vis := stats.NewVisualizer(cmd.OutOrStdout())
	vis.ShowOverview(db.GetStats())
	fmt.Fprintln(cmd.OutOrStdout())
	vis.ShowRecentRuns(db.GetRecentRuns(recentLimit))
	return nil
}
