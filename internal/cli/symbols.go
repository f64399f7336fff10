package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nerdneilsfield/go-unicode-math/internal/config"
	"github.com/nerdneilsfield/go-unicode-math/internal/stats"
	"github.com/nerdneilsfield/go-unicode-math/pkg/mathconv"
)

var symbolTable string

// newSymbolsCommand 创建 symbols 命令：列出生效的符号表
func newSymbolsCommand() *cobra.Command {
	symbolsCmd := &cobra.Command{
		Use:          "symbols",
		Short:        "列出符号表（含扩展符号表中的条目）",
		Args:         cobra.NoArgs,
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

			var tables []mathconv.SymbolTable
			for _, t := range pipeline.Tables() {
				if symbolTable == "all" || string(t.Kind) == symbolTable {
					tables = append(tables, t)
				}
			}
			if len(tables) == 0 {
				return fmt.Errorf("%w: unknown table %q", config.ErrInvalidConfig, symbolTable)
			}

			stats.NewVisualizer(cmd.OutOrStdout()).ShowSymbols(tables)
			return nil
		},
	}
	symbolsCmd.Flags().StringVar(&symbolTable, "table", "all", "要列出的符号表（greek、operator、all）")
	return symbolsCmd
}
