package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	InputFile    string `mapstructure:"input_file" yaml:"input_file"`
	OutputFile   string `mapstructure:"output_file" yaml:"output_file"`
	Title        string `mapstructure:"title" yaml:"title"`
	PageSize     string `mapstructure:"page_size" yaml:"page_size"`
	SampleLimit  int    `mapstructure:"sample_limit" yaml:"sample_limit"`
	Decimals     int    `mapstructure:"decimals" yaml:"decimals"`
	StrictSchema bool   `mapstructure:"strict_schema" yaml:"strict_schema"`
	// Delimiter for CSV input: "," | ";" | "tab"; empty picks by extension.
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	// MaxRows limits rows read; 0 means unlimited.
	MaxRows int `mapstructure:"max_rows" yaml:"max_rows"`
}

const configDirName = ".reportgen"

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.reportgen/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, configDirName)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Command flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("REPORTGEN")
	v.AutomaticEnv()

	v.SetDefault("input_file", "sample_data.csv")
	v.SetDefault("output_file", "report.pdf")
	v.SetDefault("title", "Automated Data Report")
	v.SetDefault("page_size", "Letter")
	v.SetDefault("sample_limit", 10)
	v.SetDefault("decimals", 2)
	v.SetDefault("strict_schema", false)
	v.SetDefault("delimiter", "")
	v.SetDefault("max_rows", 0)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, configDirName))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
