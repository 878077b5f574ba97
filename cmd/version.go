package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hydrocad/hydrocad/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of hydrocad",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("hydrocad v%s\n", version.Version)
		fmt.Println("Parametric hydraulic channel and pipe modeler")
		fmt.Printf("commit %s, built %s\n", version.GitCommit, version.BuildTime)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
