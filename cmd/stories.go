package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmirandah/e2kops/internal/config"
	"github.com/dmirandah/e2kops/internal/diagram"
	"github.com/dmirandah/e2kops/internal/e2k"
	"github.com/dmirandah/e2kops/internal/story"
)

var (
	storiesInput  string
	storiesConfig string
)

var storiesCmd = &cobra.Command{
	Use:   "stories",
	Short: "Show the resolved story elevations",
	Long: `Resolve story elevations from an ETABS ".e2k" export and print the
elevation profile with per-story counts.

Examples:
  e2kops stories --input tower.e2k`,
	RunE: runStories,
}

func init() {
	rootCmd.AddCommand(storiesCmd)

	storiesCmd.Flags().StringVarP(&storiesInput, "input", "i", "", "Path to the .e2k export [required]")
	storiesCmd.MarkFlagRequired("input")

	storiesCmd.Flags().StringVar(&storiesConfig, "config", "", "Path to a YAML config file")
}

func runStories(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(storiesConfig)
	if err != nil {
		return err
	}
	text, err := os.ReadFile(storiesInput)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	sg, err := story.Build(e2k.Parse(string(text)), cfg.Tolerances.Eps)
	if err != nil {
		return err
	}

	fmt.Print(diagram.ElevationProfile(sg.Order, sg.Elev))
	fmt.Println()
	return nil
}
