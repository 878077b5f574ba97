package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// configFileUsed tracks which project file the last Load picked up.
var configFileUsed string

// findConfigFile resolves the project file to use.
// Priority: explicit path > hydrocad.yaml > hydrocad.yml.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"hydrocad.yaml", "hydrocad.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load reads the project configuration. Precedence, highest first:
// flags > HYDROCAD_* environment variables > project file > defaults.
func Load(cfgFile string, flags *pflag.FlagSet) (*Project, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"name":                      "channel",
		"section.type":              "TRAP",
		"section.freeboard":         0.3,
		"resolution.step":           5.0,
		"resolution.max_refinement": 3,
		"hydraulics.manning_n":      0.015,
		"stations.step":             10.0,
		"stations.format":           "csv",
		"export.dir":                ".",
		"export.format":             "stl",
		"verbose":                   false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	configFileUsed = findConfigFile(cfgFile)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading project file %s: %w", configFileUsed, err)
		}
	}

	// HYDROCAD_SECTION_TYPE -> section.type; single-underscore keys map
	// onto the first config level only, nested keys use the block name.
	if err := k.Load(env.Provider("HYDROCAD_", ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, "HYDROCAD_"))
		return strings.Replace(key, "_", ".", 1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			// Kebab-case flags map onto dotted keys: --section-type is
			// section.type, --manning-n is hydraulics.manning_n.
			return flagKey(f.Name), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var p Project
	if err := k.Unmarshal("", &p); err != nil {
		return nil, fmt.Errorf("unable to decode project file: %w", err)
	}
	return &p, nil
}

// flagKey maps a CLI flag name onto its config key.
func flagKey(name string) string {
	switch name {
	case "step":
		return "resolution.step"
	case "adaptive":
		return "resolution.adaptive"
	case "manning-n":
		return "hydraulics.manning_n"
	case "water-depth":
		return "hydraulics.water_depth"
	case "slope":
		return "hydraulics.slope"
	case "station-start":
		return "stations.start"
	case "station-end":
		return "stations.end"
	case "station-step":
		return "stations.step"
	case "out-dir":
		return "export.dir"
	case "format":
		return "export.format"
	case "ascii":
		return "export.ascii"
	}
	return strings.ReplaceAll(name, "-", "_")
}

// FileUsed returns the project file path picked up by the last Load.
func FileUsed() string {
	return configFileUsed
}
