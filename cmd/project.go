package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hydrocad/hydrocad/internal/config"
	"github.com/hydrocad/hydrocad/internal/geom"
	"github.com/hydrocad/hydrocad/internal/profile"
)

// pipeline bundles the engine inputs derived from one project file:
// the axis, its samples and frames, and the section profile.
type pipeline struct {
	project *config.Project
	axis    geom.Axis
	spec    profile.SectionSpec
	set     *geom.SampleSet
	track   *geom.FrameTrack
	prof    *profile.Profile
}

// loadPipeline reads the project file (with flag overrides from the
// invoking command) and runs the sampling and framing stages.
func loadPipeline(cmd *cobra.Command) (*pipeline, error) {
	p, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}
	if used := config.FileUsed(); used != "" {
		log.Debugf("using project file %s", used)
	}

	axis, err := p.GeomAxis()
	if err != nil {
		return nil, err
	}
	if len(axis.Points) == 0 {
		return nil, fmt.Errorf("project has no axis points (set axis.points in %s)", projectFileName())
	}

	set, err := geom.SampleAxis(axis, p.GeomResolution())
	if err != nil {
		return nil, fmt.Errorf("sampling axis: %w", err)
	}
	log.Debugf("sampled %d stations over %.2f m", len(set.Samples), set.Length)

	track, err := geom.PropagateFrames(set, geom.Vec3{})
	if err != nil {
		return nil, fmt.Errorf("propagating frames: %w", err)
	}

	spec := p.SectionSpec()
	prof, err := profile.Build(spec)
	if err != nil {
		return nil, fmt.Errorf("building section profile: %w", err)
	}

	return &pipeline{
		project: p,
		axis:    axis,
		spec:    spec,
		set:     set,
		track:   track,
		prof:    prof,
	}, nil
}

func projectFileName() string {
	if cfgFile != "" {
		return cfgFile
	}
	return "hydrocad.yaml"
}

// progressLogger reports build progress through the verbose logger.
func progressLogger(op string) geom.ProgressFunc {
	return func(fraction float64, message string) {
		log.Debugf("%s %3.0f%% %s", op, fraction*100, message)
	}
}
