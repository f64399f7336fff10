package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nerdneilsfield/go-unicode-math/internal/batch"
	"github.com/nerdneilsfield/go-unicode-math/internal/config"
	"github.com/nerdneilsfield/go-unicode-math/internal/document"
	"github.com/nerdneilsfield/go-unicode-math/internal/logger"
	"github.com/nerdneilsfield/go-unicode-math/internal/stats"
)

var (
	// ErrFilesFailed 至少一个文件转换失败
	ErrFilesFailed = errors.New("some files failed to convert")

	// ErrConfirmationRequired 原地覆盖需要确认，但当前无法交互
	ErrConfirmationRequired = errors.New("confirmation required to overwrite files in place")
)

var (
	// 命令行标志变量
	cfgFile     string
	symbolsFile string
	statsFile   string
	debugMode   bool
	verboseMode bool // 输出每个文件的处理日志

	// 批量转换标志
	outputDir      string
	extensions     []string
	concurrency    int
	logFileName    string
	assumeYes      bool // 跳过交互式提问
	dryRun         bool // 只转换不写入
	noFrontMatter  bool
	reformat       bool
	followSymlinks bool
	noProgress     bool
)

// NewRootCommand 创建根命令
func NewRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mathconv [flags] [input_dir]",
		Short: "将 Markdown 文档中的 LaTeX 公式转换为 Unicode 文本",
		Long: `mathconv 递归处理目录中的 Markdown 文件，把 $...$、\(...\)、\[...\] 中的
LaTeX 公式改写为可直接阅读的 Unicode 文本，例如 \alpha → α、\frac{a}{b} → a/b。

代码块、图片、HTML 标签、标题和表格保持原样。
未指定输出目录时直接覆盖原文件，执行前会要求确认。

示例:
  # 交互式运行
  mathconv

  # 转换 notes 目录，结果写入 out 目录
  mathconv notes -o out

  # 原地转换且不提问
  mathconv notes -y

  # 检查转换后残留的 LaTeX 命令
  mathconv check notes/*.md`,
		Version:      fmt.Sprintf("%s (commit %s, built %s)", version, commit, buildDate),
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         runConvert,
	}

	addGlobalFlags(rootCmd)
	addConvertFlags(rootCmd)

	rootCmd.AddCommand(
		newCheckCommand(),
		newConvertStringCommand(),
		newSymbolsCommand(),
		newStatsCommand(),
	)
	return rootCmd
}

// runConvert 执行批量转换
func runConvert(cmd *cobra.Command, args []string) error {
	log := logger.NewLoggerWithVerbose(debugMode, verboseMode)
	defer func() {
		_ = log.Sync()
	}()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		cfg.InputDir = args[0]
	}
	out := cmd.OutOrStdout()

	// 未给出目录且未要求跳过提问时，在终端上交互式询问；否则使用配置中的目录
	canPrompt := interactive(cmd.InOrStdin())
	if len(args) == 0 && !assumeYes && canPrompt {
		if cfg.InputDir, err = prompter.Input("请输入要处理的目录路径", cfg.InputDir); err != nil {
			return err
		}
		if cfg.OutputDir, err = prompter.Input("请输入输出目录路径（留空则覆盖原文件）", cfg.OutputDir); err != nil {
			return err
		}
	}

	if cfg.OutputDir == "" && !cfg.DryRun && !assumeYes {
		fmt.Fprintln(out, "警告：未指定输出目录，将直接修改原文件！")
		if !canPrompt {
			return fmt.Errorf("%w: use --yes or --output when not running in a terminal", ErrConfirmationRequired)
		}
		ok, err := prompter.Confirm("是否继续？")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "操作已取消")
			return nil
		}
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	pipeline, err := cfg.NewPipeline()
	if err != nil {
		return fmt.Errorf("failed to build pipeline: %w", err)
	}

	req := batch.Request{
		InputDir:       cfg.InputDir,
		OutputDir:      cfg.OutputDir,
		Extensions:     cfg.Extensions,
		Concurrency:    cfg.Concurrency,
		DryRun:         cfg.DryRun,
		FollowSymlinks: cfg.FollowSymlinks,
		Processor: document.ProcessorOptions{
			Pipeline:            pipeline,
			PreserveFrontMatter: cfg.PreserveFrontMatter,
			Reformat:            cfg.ReformatMarkdown,
			Logger:              log,
		},
	}

	// 日志逐文件输出时不显示进度条
	var bar *progressBar
	if !noProgress && !cfg.Debug && !cfg.Verbose {
		bar = &progressBar{}
		req.Progress = bar.update
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	runner := batch.NewRunner(document.Default(), logger.NewZapLogger(log))
	summary, runErr := runner.Run(ctx, req)
	bar.stop()
	if summary == nil {
		return runErr
	}

	stats.NewVisualizer(out).ShowSummary(summary)
	fmt.Fprintf(out, "处理完成！共处理 %d 个文件\n", summary.Converted)

	if !cfg.DryRun {
		path, err := batch.SaveLog(summary, cfg.LogFileName)
		if err != nil {
			log.Warn("保存转换日志失败", zap.Error(err))
		} else {
			fmt.Fprintf(out, "详细日志已保存到: %s\n", path)
		}
	}

	recordRun(cfg, summary, log)

	if runErr != nil {
		return runErr
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrFilesFailed, summary.Failed, summary.Total())
	}
	return nil
}

// recordRun 把本次运行写入统计数据库，失败只记录警告
func recordRun(cfg *config.Config, summary *batch.Summary, log *zap.Logger) {
	db, err := stats.NewDatabase(statsPath(cfg), log)
	if err != nil {
		log.Warn("打开统计数据库失败", zap.Error(err))
		return
	}
	if err := db.AddRun(summary); err != nil {
		log.Warn("保存统计数据失败", zap.Error(err))
	}
}

func statsPath(cfg *config.Config) string {
	if cfg.StatsFile != "" {
		return cfg.StatsFile
	}
	return stats.DefaultPath()
}

// loadConfig 加载配置并应用命令行标志
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("加载配置失败: %w", err)
	}
	updateConfigFromFlags(cmd, cfg)
	return cfg, nil
}

// updateConfigFromFlags 用显式设置的命令行标志覆盖配置
func updateConfigFromFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("symbols") {
		cfg.SymbolsFile = symbolsFile
	}
	if flags.Changed("stats-file") {
		cfg.StatsFile = statsFile
	}
	if flags.Changed("debug") {
		cfg.Debug = debugMode
	}
	if flags.Changed("verbose") {
		cfg.Verbose = verboseMode
	}

	// 以下标志只在根命令上定义
	if flags.Lookup("output") == nil {
		return
	}
	if flags.Changed("output") {
		cfg.OutputDir = outputDir
	}
	if flags.Changed("ext") {
		cfg.Extensions = append([]string(nil), extensions...)
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency = concurrency
	}
	if flags.Changed("log-file") {
		cfg.LogFileName = logFileName
	}
	if flags.Changed("dry-run") {
		cfg.DryRun = dryRun
	}
	if flags.Changed("no-front-matter") {
		cfg.PreserveFrontMatter = !noFrontMatter
	}
	if flags.Changed("reformat") {
		cfg.ReformatMarkdown = reformat
	}
	if flags.Changed("follow-symlinks") {
		cfg.FollowSymlinks = followSymlinks
	}
}

// addGlobalFlags 添加所有子命令共用的标志
func addGlobalFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "配置文件路径")
	rootCmd.PersistentFlags().StringVar(&symbolsFile, "symbols", "", "扩展符号表文件（TOML）")
	rootCmd.PersistentFlags().StringVar(&statsFile, "stats-file", "", "统计数据文件路径")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "启用调试模式")
	rootCmd.PersistentFlags().BoolVarP(&verboseMode, "verbose", "v", false, "显示详细日志（包括每个文件的处理结果）")
}

// addConvertFlags 添加批量转换的标志
func addConvertFlags(rootCmd *cobra.Command) {
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "", "输出目录，留空则覆盖原文件")
	rootCmd.Flags().StringSliceVar(&extensions, "ext", nil, "处理的文件扩展名（默认 .md）")
	rootCmd.Flags().IntVarP(&concurrency, "concurrency", "j", 0, "并行处理的文件数")
	rootCmd.Flags().StringVar(&logFileName, "log-file", "", "转换日志文件名")
	rootCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "不进行交互式提问")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "预演模式，只转换不写入文件")
	rootCmd.Flags().BoolVar(&noFrontMatter, "no-front-matter", false, "不识别 YAML front matter")
	rootCmd.Flags().BoolVar(&reformat, "reformat", false, "转换后重新排版 Markdown")
	rootCmd.Flags().BoolVar(&followSymlinks, "follow-symlinks", false, "遍历时跟随符号链接")
	rootCmd.Flags().BoolVar(&noProgress, "no-progress", false, "不显示进度条")
}
