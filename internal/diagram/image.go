package diagram

import (
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/hydrocad/hydrocad/internal/profile"
)

// SectionDiagramData holds data for drawing a cross-section diagram.
type SectionDiagramData struct {
	Title string
	Spec  profile.SectionSpec

	// WaterDepth draws the water surface and fills the flow area when
	// positive.
	WaterDepth float64 // m
}

// ExportSectionDiagram renders the cross-section outline, the lining
// shell when present, and the water prism to an image file. The format
// follows the file extension; unknown extensions fall back to PNG.
func ExportSectionDiagram(data SectionDiagramData, filename string) error {
	prof, err := profile.Build(data.Spec)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = data.Title
	if p.Title.Text == "" {
		p.Title.Text = "Channel Section"
	}
	p.X.Label.Text = "Width (m)"
	p.Y.Label.Text = "Height (m)"

	// Water prism below the outline so the outline stays visible.
	if data.WaterDepth > 0 {
		waterPts := clipBelowDepth(prof.Inner, data.WaterDepth)
		if len(waterPts) >= 3 {
			water, err := plotter.NewPolygon(waterPts)
			if err != nil {
				return err
			}
			water.Color = color.RGBA{R: 100, G: 149, B: 237, A: 150}
			water.LineStyle.Color = color.RGBA{R: 0, G: 0, B: 139, A: 255}
			p.Add(water)
		}
	}

	innerLine, err := plotter.NewLine(ringXYs(prof.Inner))
	if err != nil {
		return err
	}
	innerLine.LineStyle.Width = vg.Points(2)
	innerLine.LineStyle.Color = color.Black
	p.Add(innerLine)

	if prof.Outer != nil {
		outerLine, err := plotter.NewLine(ringXYs(*prof.Outer))
		if err != nil {
			return err
		}
		outerLine.LineStyle.Width = vg.Points(1.5)
		outerLine.LineStyle.Color = color.Gray{Y: 110}
		outerLine.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		p.Add(outerLine)
	}

	if data.WaterDepth > 0 {
		left, right := widthAtDepth(prof.Inner, data.WaterDepth)
		if right > left {
			surface, err := plotter.NewLine(plotter.XYs{
				{X: left, Y: data.WaterDepth},
				{X: right, Y: data.WaterDepth},
			})
			if err != nil {
				return err
			}
			surface.LineStyle.Width = vg.Points(1.5)
			surface.LineStyle.Color = color.RGBA{R: 0, G: 0, B: 200, A: 255}
			surface.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
			p.Add(surface)
		}
	}

	width := 8 * vg.Inch
	height := 6 * vg.Inch

	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		os.MkdirAll(dir, 0o755)
	}

	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}

// ringXYs converts a profile ring to a plottable polyline, closing the
// loop for closed rings.
func ringXYs(r profile.Ring) plotter.XYs {
	pts := make(plotter.XYs, 0, len(r.Points)+1)
	for _, p := range r.Points {
		pts = append(pts, plotter.XY{X: p.X, Y: p.Y})
	}
	if r.Closed && len(r.Points) > 0 {
		pts = append(pts, pts[0])
	}
	return pts
}

// clipBelowDepth returns the part of the section polygon below the
// water surface, with crossing points inserted at the surface level.
func clipBelowDepth(r profile.Ring, depth float64) plotter.XYs {
	n := len(r.Points)
	if n < 3 {
		return nil
	}
	edges := n - 1
	if r.Closed {
		edges = n
	}

	var out plotter.XYs
	for i := 0; i < edges+1 && i < n; i++ {
		cur := r.Points[i]
		if cur.Y <= depth {
			out = append(out, plotter.XY{X: cur.X, Y: cur.Y})
		}
		if i >= edges {
			break
		}
		next := r.Points[(i+1)%n]
		below := cur.Y <= depth
		nextBelow := next.Y <= depth
		if below != nextBelow {
			t := (depth - cur.Y) / (next.Y - cur.Y)
			out = append(out, plotter.XY{X: cur.X + t*(next.X-cur.X), Y: depth})
		}
	}
	return out
}

// widthAtDepth returns the leftmost and rightmost outline crossings at
// the given depth.
func widthAtDepth(r profile.Ring, depth float64) (float64, float64) {
	n := len(r.Points)
	edges := n - 1
	if r.Closed {
		edges = n
	}

	var xs []float64
	for i := 0; i < edges; i++ {
		cur := r.Points[i]
		next := r.Points[(i+1)%n]
		if (cur.Y <= depth && next.Y > depth) || (next.Y <= depth && cur.Y > depth) {
			t := (depth - cur.Y) / (next.Y - cur.Y)
			xs = append(xs, cur.X+t*(next.X-cur.X))
		}
	}
	if len(xs) < 2 {
		return 0, 0
	}
	left, right := xs[0], xs[0]
	for _, x := range xs {
		if x < left {
			left = x
		}
		if x > right {
			right = x
		}
	}
	return left, right
}
