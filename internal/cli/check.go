package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nerdneilsfield/go-unicode-math/internal/document"
	"github.com/nerdneilsfield/go-unicode-math/internal/inspect"
	"github.com/nerdneilsfield/go-unicode-math/internal/stats"
)

// ErrLeftoverCommands 转换后仍有 LaTeX 命令残留
var ErrLeftoverCommands = errors.New("leftover LaTeX commands")

var strictCheck bool

// newCheckCommand 创建 check 命令：试转换文件并报告残留命令，不写入任何文件
func newCheckCommand() *cobra.Command {
	checkCmd := &cobra.Command{
		Use:   "check [flags] file...",
		Short: "检查转换后残留的 LaTeX 命令",
		Long: `对给定文件执行一次不落盘的转换，统计其中的公式数量，
并列出转换后仍然残留的 LaTeX 命令及可能的拼写建议。`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE:         runCheck,
	}
	checkCmd.Flags().BoolVar(&strictCheck, "strict", false, "有残留命令时返回非零退出码")
	return checkCmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	pipeline, err := cfg.NewPipeline()
	if err != nil {
		return fmt.Errorf("failed to build pipeline: %w", err)
	}

	reports := make([]inspect.Report, 0, len(args))
	dirty := 0
	for _, path := range args {
		text, _, err := document.ReadText(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		report := inspect.Analyze(path, text, pipeline)
		if !report.Clean() {
			dirty++
		}
		reports = append(reports, report)
	}

	stats.NewVisualizer(cmd.OutOrStdout()).ShowReports(reports)

	if strictCheck && dirty > 0 {
		return fmt.Errorf("%w in %d of %d file(s)", ErrLeftoverCommands, dirty, len(args))
	}
	return nil
}
