package profile

import "fmt"

// Commercial pipe catalog. Wall thickness is resolved from the material
// standard, never typed in directly: HDPE walls follow the Standard
// Dimension Ratio (t = OD/SDR), PVC and concrete walls come from the
// dimension tables below.

// PipeMaterial is a commercial pipe material family.
type PipeMaterial string

const (
	HDPE     PipeMaterial = "HDPE"
	PVC      PipeMaterial = "PVC"
	Concrete PipeMaterial = "CONCRETE"
)

// PipeSchedule is a PVC wall thickness class.
type PipeSchedule string

const (
	Schedule40 PipeSchedule = "SCH40"
	Schedule80 PipeSchedule = "SCH80"
)

// NominalDiameters lists the catalogued nominal outer diameters in mm.
var NominalDiameters = []int{110, 160, 200, 250, 315, 400, 500, 630, 800, 1000, 1200}

// hdpeSDRs are the catalogued HDPE PE100 dimension ratios with their
// pressure ratings (SDR 11 = PN 16, SDR 17 = PN 10).
var hdpeSDRs = []float64{11, 17}

// pvcWallMM maps nominal diameter to Schedule 40 / Schedule 80 wall
// thickness in mm.
var pvcWallMM = map[int][2]float64{
	110:  {5.3, 8.1},
	160:  {7.1, 10.9},
	200:  {8.2, 12.7},
	250:  {9.3, 15.1},
	315:  {10.3, 17.4},
	400:  {12.7, 21.4},
	500:  {15.2, 26.2},
	630:  {17.5, 30.1},
	800:  {20.6, 34.9},
	1000: {24.6, 41.2},
	1200: {28.0, 47.2},
}

// concreteWallMM maps nominal diameter to reinforced concrete pipe wall
// thickness in mm (ASTM C76 wall B proportions).
var concreteWallMM = map[int]float64{
	110:  47,
	160:  51,
	200:  54,
	250:  58,
	315:  64,
	400:  71,
	500:  79,
	630:  90,
	800:  104,
	1000: 121,
	1200: 138,
}

// PipeWallThickness resolves the wall thickness in meters for the
// spec's material, nominal size and standard. It fails with
// InvalidParameters when the combination is not catalogued.
func (s SectionSpec) PipeWallThickness() (float64, error) {
	if !validDN(s.PipeDN) {
		return 0, &InvalidParametersError{Reason: fmt.Sprintf("nominal diameter DN%d not in catalog", s.PipeDN)}
	}
	od := float64(s.PipeDN) // mm

	switch s.PipeMaterial {
	case HDPE:
		if !validSDR(s.PipeSDR) {
			return 0, &InvalidParametersError{Reason: fmt.Sprintf("HDPE SDR %.0f not in catalog (use 11 or 17)", s.PipeSDR)}
		}
		return od / s.PipeSDR / 1000, nil
	case PVC:
		walls, ok := pvcWallMM[s.PipeDN]
		if !ok {
			return 0, &InvalidParametersError{Reason: fmt.Sprintf("no PVC wall data for DN%d", s.PipeDN)}
		}
		switch s.PipeSchedule {
		case Schedule40:
			return walls[0] / 1000, nil
		case Schedule80:
			return walls[1] / 1000, nil
		}
		return 0, &InvalidParametersError{Reason: fmt.Sprintf("unknown PVC schedule %q", s.PipeSchedule)}
	case Concrete:
		wall, ok := concreteWallMM[s.PipeDN]
		if !ok {
			return 0, &InvalidParametersError{Reason: fmt.Sprintf("no concrete wall data for DN%d", s.PipeDN)}
		}
		return wall / 1000, nil
	}
	return 0, &InvalidParametersError{Reason: fmt.Sprintf("unknown pipe material %q", s.PipeMaterial)}
}

// PipeInnerDiameter returns the hydraulic (inner) diameter in meters:
// nominal outer diameter minus twice the resolved wall thickness.
func (s SectionSpec) PipeInnerDiameter() (float64, error) {
	wall, err := s.PipeWallThickness()
	if err != nil {
		return 0, err
	}
	return float64(s.PipeDN)/1000 - 2*wall, nil
}

func validDN(dn int) bool {
	for _, d := range NominalDiameters {
		if d == dn {
			return true
		}
	}
	return false
}

func validSDR(sdr float64) bool {
	for _, s := range hdpeSDRs {
		if s == sdr {
			return true
		}
	}
	return false
}
