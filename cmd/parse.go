package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmirandah/e2kops/internal/e2k"
)

var (
	parseInput string
	parseJSON  bool
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse an .e2k export and report its contents",
	Long: `Parse an ETABS ".e2k" export and print what was found: section
counts plus the completeness check.

Examples:
  e2kops parse --input tower.e2k
  e2kops parse -i tower.e2k --json > parsed.json`,
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseInput, "input", "i", "", "Path to the .e2k export [required]")
	parseCmd.MarkFlagRequired("input")

	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "Dump the parsed model as JSON to stdout")
}

func runParse(cmd *cobra.Command, args []string) error {
	text, err := os.ReadFile(parseInput)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	raw := e2k.Parse(string(text))

	if parseJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(raw)
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     E2K PARSE REPORT")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("SECTIONS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Stories:\t%d\n", len(raw.Stories))
	fmt.Fprintf(w, "  Points:\t%d\n", len(raw.Points))
	fmt.Fprintf(w, "  Point assigns:\t%d\n", len(raw.PointAssigns))
	fmt.Fprintf(w, "  Lines:\t%d\n", len(raw.Lines))
	fmt.Fprintf(w, "  Line assigns:\t%d\n", len(raw.LineAssigns))
	fmt.Fprintf(w, "  Diaphragm names:\t%d\n", len(raw.DiaphragmNames))
	fmt.Fprintf(w, "  Materials:\t%d\n", len(raw.Materials.Properties))
	fmt.Fprintf(w, "  Rebar definitions:\t%d\n", len(raw.Rebar))
	fmt.Fprintf(w, "  Frame sections:\t%d\n", len(raw.FrameSections))
	fmt.Fprintf(w, "  Spring properties:\t%d\n", len(raw.SpringProps))
	w.Flush()
	fmt.Println()

	findings := raw.Check()
	if findings.Clean() && len(findings.Warnings) == 0 {
		fmt.Println("CHECK: clean")
		fmt.Println()
		return nil
	}

	fmt.Println("CHECK:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	for _, p := range findings.Problems {
		fmt.Printf("  ✗ %s\n", p)
	}
	for _, warning := range findings.Warnings {
		fmt.Printf("  ⚠ %s\n", warning)
	}
	fmt.Println()
	return nil
}
