package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var traceStages bool

// newConvertStringCommand 创建 convert-string 命令：转换一段文本并输出到标准输出
func newConvertStringCommand() *cobra.Command {
	convertCmd := &cobra.Command{
		Use:   "convert-string [text]",
		Short: "转换一段文本，未给出参数时读取标准输入",
		Example: `  mathconv convert-string '$\alpha + \beta$'
  cat note.md | mathconv convert-string --trace`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			pipeline, err := cfg.NewPipeline()
			if err != nil {
				return fmt.Errorf("failed to build pipeline: %w", err)
			}

			var input string
			if len(args) == 1 {
				input = args[0]
			} else {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				input = string(data)
			}

			out := cmd.OutOrStdout()
			if traceStages {
				for _, stage := range pipeline.Trace(input) {
					fmt.Fprintf(out, "== %s ==\n%s\n", stage.Name, stage.Output)
				}
				return nil
			}

			result := pipeline.Convert(input)
			if len(args) == 1 {
				fmt.Fprintln(out, result)
			} else {
				fmt.Fprint(out, result)
			}
			return nil
		},
	}
	convertCmd.Flags().BoolVar(&traceStages, "trace", false, "输出每个阶段之后的中间结果")
	return convertCmd
}
