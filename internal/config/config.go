package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// ErrInvalidConfig 配置值不合法
var ErrInvalidConfig = errors.New("invalid config")

// Config 保存转换器的所有配置
type Config struct {
	InputDir            string   `mapstructure:"input_dir"`             // 输入目录
	OutputDir           string   `mapstructure:"output_dir"`            // 输出目录，为空时原地覆盖
	Extensions          []string `mapstructure:"extensions"`            // 处理的文件扩展名
	LogFileName         string   `mapstructure:"log_file_name"`         // 转换日志文件名
	Concurrency         int      `mapstructure:"concurrency"`           // 并行处理的文件数
	SymbolsFile         string   `mapstructure:"symbols_file"`          // 扩展符号表（TOML）
	PreserveFrontMatter bool     `mapstructure:"preserve_front_matter"` // 原样保留 YAML front matter
	ReformatMarkdown    bool     `mapstructure:"reformat_markdown"`     // 转换后用 markdownfmt 重新排版
	FollowSymlinks      bool     `mapstructure:"follow_symlinks"`       // 遍历时跟随符号链接
	StatsFile           string   `mapstructure:"stats_file"`            // 统计数据文件，为空时使用用户缓存目录
	Debug               bool     `mapstructure:"debug"`
	Verbose             bool     `mapstructure:"verbose"` // 输出每个文件的处理日志
	DryRun              bool     `mapstructure:"dry_run"` // 只转换不写入
}

// LoadConfig 从文件加载配置
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// 设置默认值
	setDefaults(v)

	// 如果配置路径已指定，则直接使用
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// 查找家目录中的配置文件
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}

		v.AddConfigPath(home)
		v.AddConfigPath(".")
		v.SetConfigName(".mathconv")
		v.SetConfigType("yaml")
	}

	// 读取环境变量
	v.AutomaticEnv()
	v.SetEnvPrefix("MATHCONV")

	if err := v.ReadInConfig(); err != nil {
		// 如果找不到配置文件，则使用默认值
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// NewDefaultConfig 创建一个新的默认配置
func NewDefaultConfig() *Config {
	return &Config{
		InputDir:            ".",
		OutputDir:           "",
		Extensions:          []string{".md"},
		LogFileName:         "math_conversion_log.txt",
		Concurrency:         4,
		PreserveFrontMatter: true,
	}
}

// setDefaults 设置默认配置值
func setDefaults(v *viper.Viper) {
	d := NewDefaultConfig()
	v.SetDefault("input_dir", d.InputDir)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("extensions", d.Extensions)
	v.SetDefault("log_file_name", d.LogFileName)
	v.SetDefault("concurrency", d.Concurrency)
	v.SetDefault("symbols_file", d.SymbolsFile)
	v.SetDefault("preserve_front_matter", d.PreserveFrontMatter)
	v.SetDefault("reformat_markdown", d.ReformatMarkdown)
	v.SetDefault("follow_symlinks", d.FollowSymlinks)
	v.SetDefault("stats_file", d.StatsFile)
	v.SetDefault("debug", d.Debug)
	v.SetDefault("verbose", d.Verbose)
	v.SetDefault("dry_run", d.DryRun)
}

// Validate 检查配置并规范化扩展名（小写、带点）
func (c *Config) Validate() error {
	if c.InputDir == "" {
		return fmt.Errorf("%w: input_dir is empty", ErrInvalidConfig)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("%w: concurrency must be at least 1, got %d", ErrInvalidConfig, c.Concurrency)
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("%w: no file extensions configured", ErrInvalidConfig)
	}
	for i, ext := range c.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" || ext == "." {
			return fmt.Errorf("%w: empty file extension", ErrInvalidConfig)
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.Extensions[i] = ext
	}
	if c.LogFileName == "" || strings.ContainsAny(c.LogFileName, `/\`) {
		return fmt.Errorf("%w: log_file_name must be a plain file name, got %q", ErrInvalidConfig, c.LogFileName)
	}
	return nil
}
