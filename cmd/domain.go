package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hydrocad/hydrocad/internal/diagram"
	"github.com/hydrocad/hydrocad/internal/export"
	"github.com/hydrocad/hydrocad/internal/mesh"
)

var domainCmd = &cobra.Command{
	Use:   "domain",
	Short: "Derive the CFD fluid domain from the project",
	Long: `Build the watertight fluid volume for CFD: the full-height water
prism swept along the axis, closed with inlet and outlet caps and
tagged into boundary patches (inlet, outlet, walls, top).

A cyclic axis yields a closed ring domain without inlet/outlet. OBJ
export writes one group per patch so solvers can assign boundary
conditions by name.

Examples:
  hydrocad domain
  hydrocad domain --inlet-ext 5 --outlet-ext 10 --format obj`,
	Run: runDomain,
}

func init() {
	rootCmd.AddCommand(domainCmd)

	domainCmd.Flags().Float64("inlet-ext", 0, "Inlet extension length in meters")
	domainCmd.Flags().Float64("outlet-ext", 0, "Outlet extension length in meters")
	domainCmd.Flags().Float64("step", 0, "Sampling step in meters (overrides resolution.step)")
	domainCmd.Flags().String("out-dir", "", "Export directory (overrides export.dir)")
	domainCmd.Flags().String("format", "", "Mesh format: stl, obj or ply (overrides export.format)")
	domainCmd.Flags().Bool("ascii", false, "ASCII STL instead of binary")
}

func runDomain(cmd *cobra.Command, args []string) {
	pl, err := loadPipeline(cmd)
	if err != nil {
		fmt.Printf("Error loading project: %v\n", err)
		return
	}

	source, err := mesh.BuildSweep(pl.set, pl.track, pl.prof, mesh.SweepOptions{
		Name:     pl.project.Name,
		Progress: progressLogger("sweep"),
	})
	if err != nil {
		fmt.Printf("Error building source mesh: %v\n", err)
		return
	}

	inletExt, _ := cmd.Flags().GetFloat64("inlet-ext")
	outletExt, _ := cmd.Flags().GetFloat64("outlet-ext")
	if inletExt == 0 {
		inletExt = pl.project.Domain.InletExtension
	}
	if outletExt == 0 {
		outletExt = pl.project.Domain.OutletExtension
	}

	dom, err := mesh.BuildDomain(source, pl.set, pl.track, pl.spec, mesh.DomainOptions{
		Name:            pl.project.Name + "_domain",
		InletExtension:  inletExt,
		OutletExtension: outletExt,
		Progress:        progressLogger("domain"),
	})
	if err != nil {
		fmt.Printf("Error building domain: %v\n", err)
		return
	}

	rep := mesh.Validate(dom, mesh.ValidateOptions{})

	fmt.Println()
	fmt.Println(diagram.DrawSummaryBox("CFD DOMAIN "+dom.Name, []string{
		fmt.Sprintf("Vertices / faces:   %d / %d", dom.VertexCount(), dom.FaceCount()),
		fmt.Sprintf("Watertight:         %v", rep.IsWatertight),
		fmt.Sprintf("Non-manifold edges: %d", rep.NonManifoldEdgeCount),
		fmt.Sprintf("Self-intersections: %d", rep.SelfIntersectionCount),
		fmt.Sprintf("Fluid volume:       %.3f m³", rep.Volume),
		fmt.Sprintf("Surface area:       %.3f m²", rep.SurfaceArea),
	}))

	fmt.Println("BOUNDARY PATCHES:")
	fmt.Println("───────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Patch\tFaces\tArea (m²)\n")
	fmt.Fprintf(w, "  ─────\t─────\t─────────\n")
	for _, p := range []mesh.Patch{mesh.PatchInlet, mesh.PatchOutlet, mesh.PatchWalls, mesh.PatchTop} {
		faces, ok := dom.Patches[p]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "  %s\t%d\t%.3f\n", p, len(faces), dom.PatchArea(p))
	}
	w.Flush()
	fmt.Println()

	if !rep.IsWatertight {
		fmt.Println("  ⚠ domain is not watertight, check the axis and section parameters")
	}

	path := filepath.Join(pl.project.Export.Dir, dom.Name)
	if err := saveMesh(path, dom, pl.project.Export.Format, pl.project.Export.ASCII); err != nil {
		fmt.Printf("Error exporting domain: %v\n", err)
		return
	}
	fmt.Printf("Domain exported to: %s.%s\n", path, pl.project.Export.Format)

	reportPath := filepath.Join(pl.project.Export.Dir, dom.Name+"_validation.json")
	f, err := os.Create(reportPath)
	if err == nil {
		defer f.Close()
		if err := export.WriteValidationJSON(f, rep); err == nil {
			fmt.Printf("Validation report: %s\n", reportPath)
		}
	}
}
