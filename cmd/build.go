package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hydrocad/hydrocad/internal/diagram"
	"github.com/hydrocad/hydrocad/internal/export"
	"github.com/hydrocad/hydrocad/internal/hydraulics"
	"github.com/hydrocad/hydrocad/internal/mesh"
)

var (
	buildShowDiagram bool
	buildImageFile   string
	buildSkipExport  bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the channel sweep mesh from the project file",
	Long: `Sweep the configured cross-section along the axis and write the
resulting solid to the export directory.

The mesh is validated after building; the summary reports manifoldness,
watertightness, volume and self-intersections.

Examples:
  hydrocad build
  hydrocad build --config canal.yaml --format obj
  hydrocad build --step 2.5 --diagram`,
	Run: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().Float64("step", 0, "Sampling step in meters (overrides resolution.step)")
	buildCmd.Flags().Bool("adaptive", false, "Enable curvature-adaptive sampling")
	buildCmd.Flags().String("out-dir", "", "Export directory (overrides export.dir)")
	buildCmd.Flags().String("format", "", "Mesh format: stl, obj or ply (overrides export.format)")
	buildCmd.Flags().Bool("ascii", false, "ASCII STL instead of binary")
	buildCmd.Flags().BoolVar(&buildShowDiagram, "diagram", false, "Show ASCII section diagram")
	buildCmd.Flags().StringVarP(&buildImageFile, "output", "o", "", "Export section diagram to file (png, svg, pdf)")
	buildCmd.Flags().BoolVar(&buildSkipExport, "no-export", false, "Build and validate only, write no mesh file")
}

func runBuild(cmd *cobra.Command, args []string) {
	pl, err := loadPipeline(cmd)
	if err != nil {
		fmt.Printf("Error loading project: %v\n", err)
		return
	}

	m, err := mesh.BuildSweep(pl.set, pl.track, pl.prof, mesh.SweepOptions{
		Name:     pl.project.Name,
		Progress: progressLogger("sweep"),
	})
	if err != nil {
		fmt.Printf("Error building mesh: %v\n", err)
		return
	}

	openShell := pl.spec.Type.IsOpen() && pl.spec.LiningThickness == 0
	rep := mesh.Validate(m, mesh.ValidateOptions{ExpectOpenBoundary: openShell})

	fmt.Println()
	fmt.Println(diagram.DrawSummaryBox("SWEEP MESH "+pl.project.Name, summaryLines(pl, m, rep)))

	slope, err := hydraulics.SlopeFromAxis(pl.axis)
	if err == nil {
		fmt.Println(diagram.DrawSummaryBox("LONGITUDINAL PROFILE", []string{
			fmt.Sprintf("Start elevation:   %.3f m", slope.StartElevation),
			fmt.Sprintf("End elevation:     %.3f m", slope.EndElevation),
			fmt.Sprintf("Drop:              %.3f m", slope.ElevationDrop),
			fmt.Sprintf("Curve length:      %.2f m", slope.CurveLength),
			fmt.Sprintf("Horizontal length: %.2f m", slope.HorizontalLength),
			fmt.Sprintf("Average slope:     %.4f (%.2f%%)", slope.AverageSlope, slope.AverageSlopePercent),
		}))
	}

	if buildShowDiagram {
		fmt.Println(diagram.DrawASCIISection(diagram.SectionDiagramData{
			Spec:       pl.spec,
			WaterDepth: waterDepthFor(pl),
		}))
	}
	if buildImageFile != "" {
		err := diagram.ExportSectionDiagram(diagram.SectionDiagramData{
			Title:      "Channel Section " + pl.project.Name,
			Spec:       pl.spec,
			WaterDepth: waterDepthFor(pl),
		}, buildImageFile)
		if err != nil {
			fmt.Printf("Error exporting diagram: %v\n", err)
		} else {
			fmt.Printf("Diagram exported to: %s\n", buildImageFile)
		}
	}

	if buildSkipExport {
		return
	}
	path := filepath.Join(pl.project.Export.Dir, pl.project.Name)
	if err := saveMesh(path, m, pl.project.Export.Format, pl.project.Export.ASCII); err != nil {
		fmt.Printf("Error exporting mesh: %v\n", err)
		return
	}
	fmt.Printf("Mesh exported to: %s.%s\n", path, pl.project.Export.Format)
}

func summaryLines(pl *pipeline, m *mesh.Mesh, rep mesh.Report) []string {
	lines := []string{
		fmt.Sprintf("Axis length:        %.2f m", pl.set.Length),
		fmt.Sprintf("Frames:             %d (%d segments)", len(pl.track.Frames), pl.set.SegmentCount()),
		fmt.Sprintf("Vertices / faces:   %d / %d", m.VertexCount(), m.FaceCount()),
		fmt.Sprintf("Manifold:           %v", rep.IsManifold),
		fmt.Sprintf("Watertight:         %v", rep.IsWatertight),
		fmt.Sprintf("Self-intersections: %d", rep.SelfIntersectionCount),
		fmt.Sprintf("Surface area:       %.3f m²", rep.SurfaceArea),
	}
	if rep.IsWatertight {
		lines = append(lines, fmt.Sprintf("Enclosed volume:    %.3f m³", rep.Volume))
	}
	if pl.set.Cyclic {
		lines = append(lines, fmt.Sprintf("Seam twist fixed:   %.4f rad", pl.track.SeamMismatch))
	}
	return lines
}

func waterDepthFor(pl *pipeline) float64 {
	if d := pl.project.Hydraulics.WaterDepth; d > 0 {
		return d
	}
	return 0.75 * designDepthOf(pl.spec)
}

func saveMesh(path string, m *mesh.Mesh, format string, asciiSTL bool) error {
	switch format {
	case "stl", "STL", "":
		return export.SaveSTL(path, m, asciiSTL)
	case "obj", "OBJ":
		return export.SaveOBJ(path, m)
	case "ply", "PLY":
		return export.SavePLY(path, m)
	}
	return fmt.Errorf("unknown mesh format %q (use stl, obj or ply)", format)
}
