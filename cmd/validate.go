package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hydrocad/hydrocad/internal/diagram"
	"github.com/hydrocad/hydrocad/internal/export"
	"github.com/hydrocad/hydrocad/internal/mesh"
)

var (
	validateDomain   bool
	validateJSONPath string
	validateFast     bool
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Build and validate the project geometry",
	Long: `Rebuild the sweep mesh (or the CFD domain with --domain) from the
project file and run the full topology inspection: manifoldness,
watertightness, winding consistency, self-intersections, volume and
surface area.

Validation never fails the command; a broken mesh is reported, not
errored.

Examples:
  hydrocad validate
  hydrocad validate --domain --json report.json`,
	Run: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&validateDomain, "domain", false, "Validate the CFD domain instead of the sweep mesh")
	validateCmd.Flags().BoolVar(&validateFast, "fast", false, "Skip the self-intersection test")
	validateCmd.Flags().StringVar(&validateJSONPath, "json", "", "Write the validation report to a JSON file")
	validateCmd.Flags().Float64("step", 0, "Sampling step in meters (overrides resolution.step)")
}

func runValidate(cmd *cobra.Command, args []string) {
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

	opts := mesh.ValidateOptions{
		ExpectOpenBoundary:   pl.spec.Type.IsOpen() && pl.spec.LiningThickness == 0,
		SkipSelfIntersection: validateFast,
	}

	if validateDomain {
		dom, err := mesh.BuildDomain(m, pl.set, pl.track, pl.spec, mesh.DomainOptions{
			Name:            pl.project.Name + "_domain",
			InletExtension:  pl.project.Domain.InletExtension,
			OutletExtension: pl.project.Domain.OutletExtension,
			Progress:        progressLogger("domain"),
		})
		if err != nil {
			fmt.Printf("Error building domain: %v\n", err)
			return
		}
		m = dom
		opts.ExpectOpenBoundary = false
	}

	rep := mesh.Validate(m, opts)

	status := "SOUND"
	if !rep.IsManifold || rep.SelfIntersectionCount > 0 {
		status = "BROKEN"
	}
	fmt.Println()
	fmt.Println(diagram.DrawSummaryBox(fmt.Sprintf("VALIDATION %s: %s", m.Name, status), []string{
		fmt.Sprintf("Vertices:           %d", rep.VertexCount),
		fmt.Sprintf("Faces / triangles:  %d / %d", rep.FaceCount, rep.TriangleCount),
		fmt.Sprintf("Manifold:           %v", rep.IsManifold),
		fmt.Sprintf("Watertight:         %v", rep.IsWatertight),
		fmt.Sprintf("Consistent winding: %v", rep.OrientationConsistent),
		fmt.Sprintf("Boundary edges:     %d", rep.BoundaryEdgeCount),
		fmt.Sprintf("Non-manifold edges: %d", rep.NonManifoldEdgeCount),
		fmt.Sprintf("Self-intersections: %d", rep.SelfIntersectionCount),
		fmt.Sprintf("Volume:             %.3f m³", rep.Volume),
		fmt.Sprintf("Surface area:       %.3f m²", rep.SurfaceArea),
	}))

	if validateJSONPath != "" {
		f, err := os.Create(validateJSONPath)
		if err != nil {
			fmt.Printf("Error writing report: %v\n", err)
			return
		}
		defer f.Close()
		if err := export.WriteValidationJSON(f, rep); err != nil {
			fmt.Printf("Error writing report: %v\n", err)
			return
		}
		fmt.Printf("Validation report: %s\n", validateJSONPath)
	}
}
