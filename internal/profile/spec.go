// Package profile generates 2D cross-section outlines for hydraulic
// channels and pipes in the local frame of an axis station.
package profile

import "fmt"

// SectionType identifies the cross-section family.
type SectionType string

const (
	Trapezoidal SectionType = "TRAP"
	Rectangular SectionType = "RECT"
	Triangular  SectionType = "TRI"
	Circular    SectionType = "CIRC"
	Pipe        SectionType = "PIPE"
)

// IsOpen reports whether the section is an open channel (no roof) as
// opposed to a closed tube.
func (t SectionType) IsOpen() bool {
	switch t {
	case Trapezoidal, Rectangular, Triangular:
		return true
	}
	return false
}

// SectionSpec holds the numeric parameters of one cross-section. All
// lengths are in meters unless noted. It is a plain value struct
// populated from host-side storage; the engine never retains it.
type SectionSpec struct {
	Type SectionType `json:"type"`

	// BottomWidth is the floor width for trapezoidal and rectangular
	// sections and the diameter for circular sections.
	BottomWidth float64 `json:"bottom_width,omitempty"`

	// SideSlope is the horizontal-to-vertical wall slope (Z:1) for
	// trapezoidal and triangular sections.
	SideSlope float64 `json:"side_slope,omitempty"`

	// Height is the design water depth; Freeboard is added above it.
	Height    float64 `json:"height,omitempty"`
	Freeboard float64 `json:"freeboard,omitempty"`

	// LiningThickness > 0 generates a structural outer shell for open
	// sections. Pipe wall thickness is never set here; it comes from
	// the material catalog.
	LiningThickness float64 `json:"lining_thickness,omitempty"`

	// CircleSegments is the circle tessellation for circular and pipe
	// sections. Values < 8 use the default of 32.
	CircleSegments int `json:"circle_segments,omitempty"`

	// Pipe parameters, used only when Type == Pipe.
	PipeMaterial PipeMaterial `json:"pipe_material,omitempty"`
	PipeDN       int          `json:"pipe_dn,omitempty"` // nominal outer diameter, mm
	PipeSDR      float64      `json:"pipe_sdr,omitempty"`
	PipeSchedule PipeSchedule `json:"pipe_schedule,omitempty"`
}

// InvalidParametersError indicates a SectionSpec violating a geometric
// constraint.
type InvalidParametersError struct {
	Reason string
}

func (e *InvalidParametersError) Error() string {
	return "invalid section parameters: " + e.Reason
}

// TotalHeight returns the channel height including freeboard. For
// circular sections it is the diameter, for pipes the nominal outer
// diameter.
func (s SectionSpec) TotalHeight() float64 {
	switch s.Type {
	case Circular:
		return s.BottomWidth
	case Pipe:
		return float64(s.PipeDN) / 1000
	}
	return s.Height + s.Freeboard
}

// TopWidth returns the width at total height.
func (s SectionSpec) TopWidth() float64 {
	switch s.Type {
	case Trapezoidal:
		return s.BottomWidth + 2*s.SideSlope*s.TotalHeight()
	case Triangular:
		return 2 * s.SideSlope * s.TotalHeight()
	case Circular:
		return s.BottomWidth
	case Pipe:
		return float64(s.PipeDN) / 1000
	}
	return s.BottomWidth
}

// Validate checks the geometric constraints for the section type.
func (s SectionSpec) Validate() error {
	if s.LiningThickness < 0 {
		return &InvalidParametersError{Reason: "lining thickness must not be negative"}
	}
	switch s.Type {
	case Trapezoidal:
		if s.BottomWidth <= 0 {
			return &InvalidParametersError{Reason: "bottom width must be positive"}
		}
		if s.SideSlope < 0 {
			return &InvalidParametersError{Reason: "side slope must not be negative"}
		}
		if s.Height <= 0 || s.Freeboard < 0 {
			return &InvalidParametersError{Reason: "height must be positive and freeboard non-negative"}
		}
		if s.TopWidth() <= 0 {
			return &InvalidParametersError{Reason: "side slope produces a self-crossing profile at this height"}
		}
	case Rectangular:
		if s.BottomWidth <= 0 {
			return &InvalidParametersError{Reason: "bottom width must be positive"}
		}
		if s.Height <= 0 || s.Freeboard < 0 {
			return &InvalidParametersError{Reason: "height must be positive and freeboard non-negative"}
		}
	case Triangular:
		if s.SideSlope <= 0 {
			return &InvalidParametersError{Reason: "triangular section needs a positive side slope"}
		}
		if s.Height <= 0 || s.Freeboard < 0 {
			return &InvalidParametersError{Reason: "height must be positive and freeboard non-negative"}
		}
	case Circular:
		if s.BottomWidth <= 0 {
			return &InvalidParametersError{Reason: "diameter must be positive"}
		}
	case Pipe:
		if _, err := s.PipeWallThickness(); err != nil {
			return err
		}
	default:
		return &InvalidParametersError{Reason: fmt.Sprintf("unknown section type %q", s.Type)}
	}
	return nil
}
