// Package config loads hydrocad project files: the YAML description of
// an axis, its cross-section and the build/export settings, layered
// with environment variables and CLI flags.
package config

import (
	"fmt"

	"github.com/hydrocad/hydrocad/internal/geom"
	"github.com/hydrocad/hydrocad/internal/hydraulics"
	"github.com/hydrocad/hydrocad/internal/profile"
)

// Project is the unmarshalled hydrocad.yaml plus flag/env overrides.
type Project struct {
	Name string `koanf:"name"`

	Axis       AxisConfig       `koanf:"axis"`
	Section    SectionConfig    `koanf:"section"`
	Resolution ResolutionConfig `koanf:"resolution"`
	Domain     DomainConfig     `koanf:"domain"`
	Hydraulics HydraulicsConfig `koanf:"hydraulics"`
	Stations   StationsConfig   `koanf:"stations"`
	Export     ExportConfig     `koanf:"export"`

	Verbose bool `koanf:"verbose"`
}

// AxisConfig holds the alignment polyline. Points are [x, y, z]
// triples in meters, z up.
type AxisConfig struct {
	Points [][]float64 `koanf:"points"`
	Cyclic bool        `koanf:"cyclic"`
}

// SectionConfig mirrors profile.SectionSpec with YAML-friendly keys.
type SectionConfig struct {
	Type            string  `koanf:"type"`
	BottomWidth     float64 `koanf:"bottom_width"`
	SideSlope       float64 `koanf:"side_slope"`
	Height          float64 `koanf:"height"`
	Freeboard       float64 `koanf:"freeboard"`
	LiningThickness float64 `koanf:"lining_thickness"`
	CircleSegments  int     `koanf:"circle_segments"`

	PipeMaterial string  `koanf:"pipe_material"`
	PipeDN       int     `koanf:"pipe_dn"`
	PipeSDR      float64 `koanf:"pipe_sdr"`
	PipeSchedule string  `koanf:"pipe_schedule"`
}

// ResolutionConfig selects the axis sampling policy.
type ResolutionConfig struct {
	Step          float64 `koanf:"step"`
	Adaptive      bool    `koanf:"adaptive"`
	MaxRefinement int     `koanf:"max_refinement"`
}

// DomainConfig holds the CFD domain parameters.
type DomainConfig struct {
	InletExtension  float64 `koanf:"inlet_extension"`
	OutletExtension float64 `koanf:"outlet_extension"`
}

// HydraulicsConfig holds flow parameters. Zero values select the
// engine defaults (n = 0.015, slope from axis, depth 75% of design).
type HydraulicsConfig struct {
	ManningN   float64 `koanf:"manning_n"`
	WaterDepth float64 `koanf:"water_depth"`
	Slope      float64 `koanf:"slope"`
}

// StationsConfig selects the section-cut chainages.
type StationsConfig struct {
	Start  float64 `koanf:"start"`
	End    float64 `koanf:"end"`
	Step   float64 `koanf:"step"`
	Format string  `koanf:"format"`
}

// ExportConfig holds mesh export settings.
type ExportConfig struct {
	Dir    string `koanf:"dir"`
	Format string `koanf:"format"`
	ASCII  bool   `koanf:"ascii"`
}

// GeomAxis converts the configured points into an engine axis.
func (p *Project) GeomAxis() (geom.Axis, error) {
	axis := geom.Axis{Cyclic: p.Axis.Cyclic}
	for i, pt := range p.Axis.Points {
		if len(pt) != 3 {
			return geom.Axis{}, fmt.Errorf("axis point %d: want [x, y, z], got %d values", i, len(pt))
		}
		axis.Points = append(axis.Points, geom.Vec3{X: pt[0], Y: pt[1], Z: pt[2]})
	}
	return axis, nil
}

// SectionSpec converts the section block into an engine spec.
func (p *Project) SectionSpec() profile.SectionSpec {
	return profile.SectionSpec{
		Type:            profile.SectionType(p.Section.Type),
		BottomWidth:     p.Section.BottomWidth,
		SideSlope:       p.Section.SideSlope,
		Height:          p.Section.Height,
		Freeboard:       p.Section.Freeboard,
		LiningThickness: p.Section.LiningThickness,
		CircleSegments:  p.Section.CircleSegments,
		PipeMaterial:    profile.PipeMaterial(p.Section.PipeMaterial),
		PipeDN:          p.Section.PipeDN,
		PipeSDR:         p.Section.PipeSDR,
		PipeSchedule:    profile.PipeSchedule(p.Section.PipeSchedule),
	}
}

// GeomResolution converts the resolution block.
func (p *Project) GeomResolution() geom.Resolution {
	return geom.Resolution{
		Step:          p.Resolution.Step,
		Adaptive:      p.Resolution.Adaptive,
		MaxRefinement: p.Resolution.MaxRefinement,
	}
}

// StationRange converts the stations block.
func (p *Project) StationRange() hydraulics.StationRange {
	return hydraulics.StationRange{
		Start: p.Stations.Start,
		End:   p.Stations.End,
		Step:  p.Stations.Step,
	}
}
