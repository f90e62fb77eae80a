package cmd

import (
	"fmt"
	"os"

	"github.com/dmirandah/e2kops/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "e2kops",
	Short: "ETABS e2k to OpenSees model graph translator",
	Long: `e2kops - ETABS .e2k to OpenSees Translator

A CLI tool that reads an ETABS ".e2k" text export and assembles a
finite element model graph with deterministic tags.

The translation covers:
  - Story elevation resolution (heights and explicit elevations)
  - Node creation with story-encoded tags
  - Column and beam elements with rigid end zones
  - Rigid diaphragms with convex hull mass properties
  - Point springs and support restraints
  - JSON and CSV artifacts for every stage`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   e2kops v%-48s║\n", version.Version)
		fmt.Println("  ║   ETABS .e2k to OpenSees Translator                       ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  Reads an ETABS \".e2k\" text export and assembles a finite")
		fmt.Println("  element model graph with deterministic tags.")
		fmt.Println()
		fmt.Println("  Commands:")
		fmt.Println("    • translate  Run the full translation pipeline")
		fmt.Println("    • parse      Parse an .e2k file and report its contents")
		fmt.Println("    • stories    Show the resolved story elevations")
		fmt.Println("    • plan       Draw story plan views")
		fmt.Println()
		fmt.Println("  Use 'e2kops --help' to see available commands.")
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
