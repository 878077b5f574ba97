package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/hydrocad/hydrocad/internal/diagram"
	"github.com/hydrocad/hydrocad/internal/export"
	"github.com/hydrocad/hydrocad/internal/hydraulics"
)

var (
	sectionsShowProfile bool
	sectionsExportPath  string
)

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "Sample hydraulic cross-sections along the axis",
	Long: `Cut the axis at regular chainages and report the hydraulic
properties at each station: wetted area, wetted perimeter, hydraulic
radius, top width, and Manning velocity/discharge.

Stations at shared endpoints are deduplicated; a closed loop axis does
not emit its seam station twice.

Examples:
  hydrocad sections
  hydrocad sections --station-step 25 --water-depth 1.2
  hydrocad sections --export stations.csv`,
	Run: runSections,
}

func init() {
	rootCmd.AddCommand(sectionsCmd)

	sectionsCmd.Flags().Float64("station-start", 0, "First chainage in meters")
	sectionsCmd.Flags().Float64("station-end", 0, "Last chainage in meters (0 = axis end)")
	sectionsCmd.Flags().Float64("station-step", 0, "Chainage step in meters (overrides stations.step)")
	sectionsCmd.Flags().Float64("water-depth", 0, "Water depth in meters (default 75% of design depth)")
	sectionsCmd.Flags().Float64("manning-n", 0, "Manning roughness coefficient (default 0.015)")
	sectionsCmd.Flags().Float64("slope", 0, "Longitudinal slope override (default from axis)")
	sectionsCmd.Flags().BoolVar(&sectionsShowProfile, "profile", false, "Show terminal longitudinal profile graph")
	sectionsCmd.Flags().StringVar(&sectionsExportPath, "export", "", "Write the station report (extension picks csv or json)")
}

func runSections(cmd *cobra.Command, args []string) {
	pl, err := loadPipeline(cmd)
	if err != nil {
		fmt.Printf("Error loading project: %v\n", err)
		return
	}

	rep, err := hydraulics.SampleStations(pl.axis, pl.spec, pl.project.StationRange(), hydraulics.SampleOptions{
		WaterDepth: pl.project.Hydraulics.WaterDepth,
		ManningN:   pl.project.Hydraulics.ManningN,
		Slope:      pl.project.Hydraulics.Slope,
		Progress:   progressLogger("sections"),
	})
	if err != nil {
		fmt.Printf("Error sampling sections: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Printf("  Axis length %.2f m, %d stations, water depth %.2f m, n = %.3f\n",
		rep.AxisLength, len(rep.Samples), rep.WaterDepth, rep.ManningN)
	fmt.Println()

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{
		"Station (m)", "Z (m)", "Area (m²)", "Perimeter (m)", "R (m)", "Top width (m)", "V (m/s)", "Q (m³/s)",
	})
	for _, s := range rep.Samples {
		t.AppendRow(table.Row{
			fmt.Sprintf("%.1f", s.Station),
			fmt.Sprintf("%.3f", s.Position.Z),
			fmt.Sprintf("%.4f", s.Area),
			fmt.Sprintf("%.4f", s.WettedPerimeter),
			fmt.Sprintf("%.4f", s.HydraulicRadius),
			fmt.Sprintf("%.3f", s.TopWidth),
			fmt.Sprintf("%.3f", s.Velocity),
			fmt.Sprintf("%.4f", s.Discharge),
		})
	}
	t.Render()
	fmt.Println()

	if sectionsShowProfile {
		elevations := make([]float64, len(rep.Samples))
		for i, s := range rep.Samples {
			elevations[i] = s.Position.Z
		}
		fmt.Println(diagram.DrawLongitudinalProfile(elevations, "invert elevation along axis"))
	}

	if sectionsExportPath != "" {
		format := pl.project.Stations.Format
		switch filepath.Ext(sectionsExportPath) {
		case ".json":
			format = "json"
		case ".csv":
			format = "csv"
		}
		if err := export.SaveStations(sectionsExportPath, rep, format); err != nil {
			fmt.Printf("Error exporting stations: %v\n", err)
			return
		}
		fmt.Printf("Station report exported to: %s\n", sectionsExportPath)
	}
}
