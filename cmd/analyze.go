package cmd

import (
	"fmt"

	"github.com/KaramelBytes/reportgen/internal/analysis"
	"github.com/KaramelBytes/reportgen/internal/dataset"
	"github.com/KaramelBytes/reportgen/internal/utils"
	"github.com/spf13/cobra"
)

var (
	anaOutputPath string
	anaJSON       bool
	anaDelimiter  string
	anaSheetName  string
	anaSheetIndex int
	anaMaxRows    int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a CSV/TSV/XLSX file and print column statistics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		opt := dataset.ReadOptions{SheetName: anaSheetName, SheetIndex: anaSheetIndex, MaxRows: anaMaxRows}
		d, err := parseDelimiter(anaDelimiter)
		if err != nil {
			return err
		}
		opt.Delimiter = d

		ds, err := dataset.ReadFile(path, opt)
		if err != nil {
			return err
		}
		res, ok := analysis.Analyze(ds)
		if !ok {
			fmt.Fprintf(cmd.OutOrStdout(), "✗ No records to analyze in %s\n", path)
			return nil
		}

		var body []byte
		if anaJSON {
			body, err = utils.PrettyJSON(res)
			if err != nil {
				return err
			}
			body = append(body, '\n')
		} else {
			body = []byte(res.Markdown())
		}
		if anaOutputPath != "" {
			if err := utils.SafeWriteFile(anaOutputPath, body); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote analysis to %s\n", anaOutputPath)
			return nil
		}
		_, err = cmd.OutOrStdout().Write(body)
		return err
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "optional path to write the analysis")
	analyzeCmd.Flags().BoolVar(&anaJSON, "json", false, "emit JSON instead of Markdown")
	analyzeCmd.Flags().StringVar(&anaDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | '|' | 'tab'")
	analyzeCmd.Flags().StringVar(&anaSheetName, "sheet-name", "", "XLSX: sheet name to analyze")
	analyzeCmd.Flags().IntVar(&anaSheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	analyzeCmd.Flags().IntVar(&anaMaxRows, "max-rows", 0, "maximum rows to read (0 = unlimited)")
}
