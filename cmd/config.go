package cmd

import (
	"fmt"
	"strconv"
	"strings"

	cfgpkg "github.com/KaramelBytes/reportgen/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set reportgen configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := effectiveConfig()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "input_file: %s\n", c.InputFile)
		fmt.Fprintf(out, "output_file: %s\n", c.OutputFile)
		fmt.Fprintf(out, "title: %s\n", c.Title)
		fmt.Fprintf(out, "page_size: %s\n", c.PageSize)
		fmt.Fprintf(out, "sample_limit: %d\n", c.SampleLimit)
		fmt.Fprintf(out, "decimals: %d\n", c.Decimals)
		fmt.Fprintf(out, "strict_schema: %t\n", c.StrictSchema)
		if c.Delimiter != "" {
			fmt.Fprintf(out, "delimiter: %q\n", c.Delimiter)
		}
		if c.MaxRows > 0 {
			fmt.Fprintf(out, "max_rows: %d\n", c.MaxRows)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "input_file":
			cfg.InputFile = val
		case "output_file":
			cfg.OutputFile = val
		case "title":
			cfg.Title = val
		case "page_size":
			switch strings.ToLower(val) {
			case "letter":
				cfg.PageSize = "Letter"
			case "a4":
				cfg.PageSize = "A4"
			case "legal":
				cfg.PageSize = "Legal"
			default:
				return fmt.Errorf("invalid page_size: %s (use Letter, A4 or Legal)", val)
			}
		case "sample_limit":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for sample_limit: %v", val)
			}
			cfg.SampleLimit = i
		case "decimals":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for decimals: %v", val)
			}
			cfg.Decimals = i
		case "max_rows":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for max_rows: %v", val)
			}
			cfg.MaxRows = i
		case "strict_schema":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for strict_schema: %w", err)
			}
			cfg.StrictSchema = b
		case "delimiter":
			if _, err := parseDelimiter(val); err != nil {
				return err
			}
			cfg.Delimiter = val
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
