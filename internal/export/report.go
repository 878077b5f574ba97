package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/hydrocad/hydrocad/internal/hydraulics"
	"github.com/hydrocad/hydrocad/internal/mesh"
)

// stationColumns is the station table layout shared by the CSV and
// spreadsheet consumers downstream.
var stationColumns = []string{
	"station_m", "x", "y", "z",
	"hydraulic_area_m2", "wetted_perimeter_m", "hydraulic_radius_m",
	"top_width_m", "water_depth_m",
}

// WriteStationsCSV writes one row per station sample.
func WriteStationsCSV(w io.Writer, rep *hydraulics.StationReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(stationColumns); err != nil {
		return fmt.Errorf("stations csv header: %w", err)
	}
	for _, s := range rep.Samples {
		row := []string{
			strconv.FormatFloat(s.Station, 'f', 3, 64),
			strconv.FormatFloat(s.Position.X, 'f', 6, 64),
			strconv.FormatFloat(s.Position.Y, 'f', 6, 64),
			strconv.FormatFloat(s.Position.Z, 'f', 6, 64),
			strconv.FormatFloat(s.Area, 'f', 4, 64),
			strconv.FormatFloat(s.WettedPerimeter, 'f', 4, 64),
			strconv.FormatFloat(s.HydraulicRadius, 'f', 4, 64),
			strconv.FormatFloat(s.TopWidth, 'f', 4, 64),
			strconv.FormatFloat(s.WaterDepth, 'f', 4, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("stations csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteStationsJSON writes the full station report, outlines included.
func WriteStationsJSON(w io.Writer, rep *hydraulics.StationReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("stations json: %w", err)
	}
	return nil
}

// WriteValidationJSON writes a mesh validation report.
func WriteValidationJSON(w io.Writer, rep mesh.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("validation json: %w", err)
	}
	return nil
}

// SaveStations writes the station report to path as CSV or JSON based
// on the format string ("csv" or "json").
func SaveStations(path string, rep *hydraulics.StationReport, format string) error {
	switch format {
	case "csv", "CSV":
		path = ensureExt(path, ".csv")
	case "json", "JSON":
		path = ensureExt(path, ".json")
	default:
		return fmt.Errorf("export stations: unknown format %q", format)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export stations: %w", err)
	}
	defer f.Close()

	if format == "csv" || format == "CSV" {
		err = WriteStationsCSV(f, rep)
	} else {
		err = WriteStationsJSON(f, rep)
	}
	if err != nil {
		return fmt.Errorf("export stations %s: %w", path, err)
	}
	return f.Close()
}
