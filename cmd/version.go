package cmd

import (
	"fmt"

	"github.com/dmirandah/e2kops/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of e2kops",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("e2kops v%s\n", version.Version)
		fmt.Println("ETABS .e2k to OpenSees Translator")
		if version.GitCommit != "unknown" {
			fmt.Printf("commit %s, built %s\n", version.GitCommit, version.BuildTime)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
