package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hydrocad/hydrocad/internal/version"
)

var (
	cfgFile string
	verbose bool

	// log is a no-op unless --verbose enables development logging.
	log = zap.NewNop().Sugar()
)

var rootCmd = &cobra.Command{
	Use:   "hydrocad",
	Short: "Parametric hydraulic channel and pipe modeler",
	Long: `hydrocad - Hydraulic Channel CAD for CFD

A CLI tool that sweeps hydraulic cross-sections (trapezoidal,
rectangular, triangular, circular, commercial pipe) along a 3D
alignment and produces CFD-ready geometry.

This tool helps hydraulic engineers perform:
  - Channel and pipe solid generation with lining/wall thickness
  - CFD fluid-domain derivation with inlet/outlet/walls/top patches
  - Mesh topology validation (manifold, watertight, self-intersection)
  - Station-by-station hydraulic analysis (Manning's equation)
  - STL/OBJ/PLY and CSV/JSON report export

Project parameters are read from hydrocad.yaml and can be overridden
with flags or HYDROCAD_* environment variables.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			l, err := zap.NewDevelopment()
			if err == nil {
				log = l.Sugar()
			}
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   hydrocad v%-46s║\n", version.Version)
		fmt.Println("  ║   Hydraulic Channel CAD for CFD                           ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  A CLI tool for parametric hydraulic channel and pipe geometry.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Sweep solids along 3D alignments with twist-free sections")
		fmt.Println("    • CFD fluid domains with tagged boundary patches")
		fmt.Println("    • Mesh validation: manifold, watertight, self-intersections")
		fmt.Println("    • Hydraulic station reports with Manning capacity")
		fmt.Println()
		fmt.Println("  Use 'hydrocad --help' to see available commands.")
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

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Project file (default: hydrocad.yaml in the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable development logging")
}
