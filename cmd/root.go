package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/reportgen/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "reportgen",
	Short: "reportgen: turn a CSV/XLSX dataset into a formatted report",
	Long: `reportgen reads a tabular data file, computes summary statistics for its numeric
columns and renders a paginated report (PDF, XLSX or Markdown) with the statistics
and a sample of the records. Run without a subcommand it reads sample_data.csv and
writes report.pdf (both configurable).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := pipelineFromConfig(effectiveConfig())
		if err != nil {
			return err
		}
		return runPipeline(cmd, p)
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.reportgen/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

func loadConfig() {
	// A .env in the working directory may carry REPORTGEN_* settings.
	_ = godotenv.Load()
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c
}

// effectiveConfig returns the loaded configuration or built-in defaults.
func effectiveConfig() cfgpkg.Global {
	if cfg != nil {
		return *cfg
	}
	return cfgpkg.Global{
		InputFile:   "sample_data.csv",
		OutputFile:  "report.pdf",
		Title:       "Automated Data Report",
		PageSize:    "Letter",
		SampleLimit: 10,
		Decimals:    2,
	}
}
