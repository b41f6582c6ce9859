package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/reportgen/internal/dataset"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const sampleCSV = "id,name,score\n1,ann,10\n2,bob,\n3,cy,20\n"

// runCmd executes the root command with args and captures its output.
func runCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	for _, c := range []*cobra.Command{rootCmd, generateCmd, analyzeCmd} {
		resetFlags(c.Flags())
		resetFlags(c.PersistentFlags())
	}
	var out, errb bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errb)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), errb.String(), err
}

// resetFlags clears values and Changed state left over from earlier invocations.
func resetFlags(fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(home); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return home
}

func TestGenerateWritesPDF(t *testing.T) {
	home := isolate(t)
	in := filepath.Join(home, "data.csv")
	if err := os.WriteFile(in, []byte(sampleCSV), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	outPath := filepath.Join(home, "out", "report.pdf")
	stdout, stderr, err := runCmd(t, "generate", "-i", in, "-o", outPath)
	if err != nil {
		t.Fatalf("generate: %v (stderr %s)", err, stderr)
	}
	for _, want := range []string{
		"AUTOMATED REPORT GENERATOR",
		"✓ Read 3 records from " + in,
		"✓ Data analysis completed",
		"✓ PDF report created: " + outPath,
		"✓ Report generation completed!",
	} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("stdout missing %q:\n%s", want, stdout)
		}
	}
	if _, err := os.Stat(outPath); err != nil {
		t.Fatalf("report not written: %v", err)
	}
}

func TestGenerateMissingInputIsNotAnError(t *testing.T) {
	home := isolate(t)
	outPath := filepath.Join(home, "report.pdf")
	stdout, _, err := runCmd(t, "generate", "-i", filepath.Join(home, "absent.csv"), "-o", outPath)
	if err != nil {
		t.Fatalf("expected graceful stop, got %v", err)
	}
	if !strings.Contains(stdout, "✗ File not found") || !strings.Contains(stdout, "Cannot generate report without data") {
		t.Fatalf("unexpected output:\n%s", stdout)
	}
	if _, err := os.Stat(outPath); !os.IsNotExist(err) {
		t.Fatalf("report should not exist: %v", err)
	}
}

func TestGenerateHeaderOnlyInput(t *testing.T) {
	home := isolate(t)
	in := filepath.Join(home, "empty.csv")
	if err := os.WriteFile(in, []byte("id,name\n"), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	stdout, _, err := runCmd(t, "generate", "-i", in, "-o", filepath.Join(home, "r.pdf"))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(stdout, "✓ Read 0 records") || !strings.Contains(stdout, "Cannot generate report without data") {
		t.Fatalf("unexpected output:\n%s", stdout)
	}
}

func TestRootRunsWithFixedDefaults(t *testing.T) {
	home := isolate(t)
	if err := os.WriteFile(filepath.Join(home, "sample_data.csv"), []byte(sampleCSV), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	stdout, _, err := runCmd(t)
	if err != nil {
		t.Fatalf("root: %v", err)
	}
	if !strings.Contains(stdout, "✓ PDF report created: report.pdf") {
		t.Fatalf("unexpected output:\n%s", stdout)
	}
	if _, err := os.Stat(filepath.Join(home, "report.pdf")); err != nil {
		t.Fatalf("report.pdf not written: %v", err)
	}
}

func TestGenerateMarkdownWithSampleLimit(t *testing.T) {
	home := isolate(t)
	in := filepath.Join(home, "data.csv")
	if err := os.WriteFile(in, []byte(sampleCSV), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	outPath := filepath.Join(home, "report.md")
	if _, _, err := runCmd(t, "generate", "-i", in, "-o", outPath, "--sample-limit", "2", "--title", "Weekly"); err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	md := string(b)
	for _, want := range []string{"# Weekly", "| score (Avg) | 15.00 |", "_Showing first 2 of 3 total records_"} {
		if !strings.Contains(md, want) {
			t.Fatalf("report missing %q:\n%s", want, md)
		}
	}
}

func TestGenerateUnsupportedOutput(t *testing.T) {
	home := isolate(t)
	_, _, err := runCmd(t, "generate", "-i", filepath.Join(home, "x.csv"), "-o", filepath.Join(home, "r.docx"))
	if err == nil || !strings.Contains(err.Error(), "unsupported report format") {
		t.Fatalf("expected unsupported format error, got %v", err)
	}
}

func TestAnalyzeJSON(t *testing.T) {
	home := isolate(t)
	in := filepath.Join(home, "data.csv")
	if err := os.WriteFile(in, []byte(sampleCSV), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	stdout, _, err := runCmd(t, "analyze", in, "--json")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var got struct {
		TotalRecords int                           `json:"total_records"`
		Columns      []string                      `json:"columns"`
		Stats        map[string]map[string]float64 `json:"stats"`
	}
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("decode json: %v\n%s", err, stdout)
	}
	if got.TotalRecords != 3 || len(got.Columns) != 3 {
		t.Fatalf("unexpected result: %+v", got)
	}
	if got.Stats["score"]["total"] != 30 || got.Stats["score"]["average"] != 15 {
		t.Fatalf("score stats = %v", got.Stats["score"])
	}
	if _, ok := got.Stats["name"]; ok {
		t.Fatalf("name must not have stats")
	}
}

func TestAnalyzeMarkdownToFile(t *testing.T) {
	home := isolate(t)
	in := filepath.Join(home, "data.csv")
	if err := os.WriteFile(in, []byte(sampleCSV), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	outPath := filepath.Join(home, "summary.md")
	if _, _, err := runCmd(t, "analyze", in, "-o", outPath); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	b, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(b), "- score: numeric (n=2)") {
		t.Fatalf("unexpected summary:\n%s", b)
	}
}

func TestConfigSetAndShow(t *testing.T) {
	home := isolate(t)
	if _, _, err := runCmd(t, "config", "set", "sample_limit", "7"); err != nil {
		t.Fatalf("config set: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, ".reportgen", "config.yaml")); err != nil {
		t.Fatalf("config not saved: %v", err)
	}
	stdout, _, err := runCmd(t, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(stdout, "sample_limit: 7") {
		t.Fatalf("unexpected config:\n%s", stdout)
	}
	if _, _, err := runCmd(t, "config", "set", "page_size", "tabloid"); err == nil {
		t.Fatalf("expected invalid page_size error")
	}
}

func TestGenerateInvalidConfiguredDelimiter(t *testing.T) {
	home := isolate(t)
	in := filepath.Join(home, "data.csv")
	if err := os.WriteFile(in, []byte(sampleCSV), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	t.Setenv("REPORTGEN_DELIMITER", "x")
	_, _, err := runCmd(t, "generate", "-i", in, "-o", filepath.Join(home, "r.pdf"))
	if err == nil || !strings.Contains(err.Error(), "unsupported --delimiter: x") {
		t.Fatalf("expected delimiter error, got %v", err)
	}
	if _, _, err := runCmd(t); err == nil {
		t.Fatalf("root command should reject the configured delimiter too")
	}
	// an explicit flag wins over the bad configured value
	if _, _, err := runCmd(t, "generate", "-i", in, "-o", filepath.Join(home, "r.pdf"), "--delimiter", ","); err != nil {
		t.Fatalf("generate with --delimiter: %v", err)
	}
}

func TestGenerateStrictOnUniformInput(t *testing.T) {
	home := isolate(t)
	in := filepath.Join(home, "data.csv")
	if err := os.WriteFile(in, []byte(sampleCSV), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	stdout, _, err := runCmd(t, "generate", "-i", in, "-o", filepath.Join(home, "r.pdf"), "--strict")
	if err != nil {
		t.Fatalf("generate --strict: %v", err)
	}
	if !strings.Contains(stdout, "✓ Report generation completed!") {
		t.Fatalf("unexpected output:\n%s", stdout)
	}
}

func TestCheckSchema(t *testing.T) {
	ds := dataset.Dataset{Records: []dataset.Record{
		dataset.NewRecord([]string{"id", "score"}, []string{"1", "2"}),
		dataset.NewRecord([]string{"id"}, []string{"2"}),
	}}
	if err := checkSchema(ds, false); err != nil {
		t.Fatalf("permissive mode should accept mismatched records: %v", err)
	}
	err := checkSchema(ds, true)
	var se *dataset.SchemaError
	if !errors.As(err, &se) || se.Row != 2 {
		t.Fatalf("expected schema error for row 2, got %v", err)
	}
}
