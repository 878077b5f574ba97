package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hydrocad/hydrocad/internal/config"
	"github.com/hydrocad/hydrocad/internal/diagram"
	"github.com/hydrocad/hydrocad/internal/hydraulics"
	"github.com/hydrocad/hydrocad/internal/profile"
)

var (
	sectionShowDiagram bool
	sectionImageFile   string
)

var sectionCmd = &cobra.Command{
	Use:   "section",
	Short: "Inspect the configured cross-section",
	Long: `Show the section geometry and its hydraulic capacity at design
depth: profile points, lining or pipe wall resolution, and Manning
flow figures.

For pipes the wall thickness comes from the material catalog (HDPE
SDR, PVC schedule, concrete DN table), never from a free input.

Examples:
  hydrocad section
  hydrocad section --diagram
  hydrocad section -o section.png`,
	Run: runSection,
}

func init() {
	rootCmd.AddCommand(sectionCmd)

	sectionCmd.Flags().Float64("water-depth", 0, "Water depth in meters (default 75% of design depth)")
	sectionCmd.Flags().Float64("manning-n", 0, "Manning roughness coefficient (default 0.015)")
	sectionCmd.Flags().Float64("slope", 0, "Longitudinal slope (default 0.001)")
	sectionCmd.Flags().BoolVar(&sectionShowDiagram, "diagram", false, "Show ASCII section diagram")
	sectionCmd.Flags().StringVarP(&sectionImageFile, "output", "o", "", "Export section diagram to file (png, svg, pdf)")
}

func runSection(cmd *cobra.Command, args []string) {
	project, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		fmt.Printf("Error loading project: %v\n", err)
		return
	}
	spec := project.SectionSpec()
	if err := spec.Validate(); err != nil {
		fmt.Printf("Error in section parameters: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     CROSS-SECTION GEOMETRY")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Type:\t%s\n", spec.Type)
	switch spec.Type {
	case profile.Trapezoidal:
		fmt.Fprintf(w, "  Bottom width:\t%.3f m\n", spec.BottomWidth)
		fmt.Fprintf(w, "  Side slope:\t%.2f H:V\n", spec.SideSlope)
	case profile.Rectangular:
		fmt.Fprintf(w, "  Bottom width:\t%.3f m\n", spec.BottomWidth)
	case profile.Triangular:
		fmt.Fprintf(w, "  Side slope:\t%.2f H:V\n", spec.SideSlope)
	case profile.Circular:
		fmt.Fprintf(w, "  Diameter:\t%.3f m\n", spec.BottomWidth)
	case profile.Pipe:
		fmt.Fprintf(w, "  Material:\t%s\n", spec.PipeMaterial)
		fmt.Fprintf(w, "  Nominal size:\tDN%d\n", spec.PipeDN)
		if spec.PipeMaterial == profile.HDPE {
			fmt.Fprintf(w, "  SDR:\t%.0f\n", spec.PipeSDR)
		}
		if spec.PipeMaterial == profile.PVC {
			fmt.Fprintf(w, "  Schedule:\t%s\n", spec.PipeSchedule)
		}
		if wall, err := spec.PipeWallThickness(); err == nil {
			fmt.Fprintf(w, "  Wall thickness:\t%.1f mm\n", wall*1000)
		}
		if id, err := spec.PipeInnerDiameter(); err == nil {
			fmt.Fprintf(w, "  Inner diameter:\t%.1f mm\n", id*1000)
		}
	}
	if spec.Type.IsOpen() {
		fmt.Fprintf(w, "  Design depth:\t%.3f m\n", spec.Height)
		fmt.Fprintf(w, "  Freeboard:\t%.3f m\n", spec.Freeboard)
		fmt.Fprintf(w, "  Total height:\t%.3f m\n", spec.TotalHeight())
		fmt.Fprintf(w, "  Top width:\t%.3f m\n", spec.TopWidth())
		if spec.LiningThickness > 0 {
			fmt.Fprintf(w, "  Lining:\t%.0f mm\n", spec.LiningThickness*1000)
		}
	}
	w.Flush()
	fmt.Println()

	prof, err := profile.Build(spec)
	if err != nil {
		fmt.Printf("Error building profile: %v\n", err)
		return
	}
	rings := 1
	if prof.Outer != nil {
		rings = 2
	}
	fmt.Printf("  Profile: %d ring(s), %d points, %d edges per segment\n",
		rings, len(prof.Inner.Points), prof.Inner.EdgeCount())
	fmt.Println()

	depth := project.Hydraulics.WaterDepth
	if depth <= 0 {
		depth = 0.75 * designDepthOf(spec)
	}
	info, err := hydraulics.Compute(spec, depth, project.Hydraulics.Slope, project.Hydraulics.ManningN)
	if err != nil {
		fmt.Printf("Error computing hydraulics: %v\n", err)
		return
	}

	fmt.Println(diagram.DrawSummaryBox("HYDRAULICS AT DEPTH", []string{
		fmt.Sprintf("Water depth:       %.3f m", info.WaterDepth),
		fmt.Sprintf("Flow area:         %.4f m²", info.Area),
		fmt.Sprintf("Wetted perimeter:  %.4f m", info.WettedPerimeter),
		fmt.Sprintf("Hydraulic radius:  %.4f m", info.HydraulicRadius),
		fmt.Sprintf("Top width:         %.3f m", info.TopWidth),
		fmt.Sprintf("Manning n:         %.3f", info.ManningN),
		fmt.Sprintf("Slope:             %.4f", info.Slope),
		fmt.Sprintf("Velocity:          %.3f m/s", info.Velocity),
		fmt.Sprintf("Discharge:         %.4f m³/s", info.Discharge),
	}))

	if sectionShowDiagram {
		fmt.Println(diagram.DrawASCIISection(diagram.SectionDiagramData{
			Spec:       spec,
			WaterDepth: info.WaterDepth,
		}))
	}
	if sectionImageFile != "" {
		err := diagram.ExportSectionDiagram(diagram.SectionDiagramData{
			Title:      "Channel Section",
			Spec:       spec,
			WaterDepth: info.WaterDepth,
		}, sectionImageFile)
		if err != nil {
			fmt.Printf("Error exporting diagram: %v\n", err)
		} else {
			fmt.Printf("Diagram exported to: %s\n", sectionImageFile)
		}
	}
}

func designDepthOf(spec profile.SectionSpec) float64 {
	switch spec.Type {
	case profile.Circular:
		return spec.BottomWidth
	case profile.Pipe:
		if id, err := spec.PipeInnerDiameter(); err == nil {
			return id
		}
		return 0
	}
	return spec.Height
}
