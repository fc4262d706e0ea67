package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/planwright/planwright/pkg/pipeline"
	"github.com/planwright/planwright/pkg/plan"
)

// buildCommand creates the build command, the main entry point of the CLI.
func (c *CLI) buildCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:   "build [plan file]",
		Short: "Build wall geometry from a floor plan",
		Long: `Build wall geometry from a floor plan.

The build command reads a plan file (JSON or TOML), derives the minimal
merged wall segments with door openings, maps them into world coordinates
and writes the requested output formats.

Results are cached locally for faster subsequent runs; use --refresh to
force recomputation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			return c.runBuild(cmd.Context(), args[0], formats, output, noCache, refresh)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format), base path (multiple), or - for stdout")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), svg, dot, png (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cached results")

	return cmd
}

// runBuild loads the plan and executes the pipeline.
func (c *CLI) runBuild(ctx context.Context, input string, formats []string, output string, noCache, refresh bool) error {
	p, err := plan.Load(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	name := p.Name
	if name == "" {
		name = input
	}
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Building %s...", name))
	spinner.Start()

	result, err := runner.Execute(ctx, pipeline.Options{
		Plan:    p,
		Formats: formats,
		Refresh: refresh,
		Logger:  c.Logger,
	})
	if err != nil {
		spinner.StopWithError("Build failed")
		return err
	}
	spinner.Stop()

	printSuccess("Built %s", name)
	printStats(result.Stats.RoomCount, result.Stats.DoorCount, result.Stats.SegmentCount,
		result.CacheInfo.TopologyHit && result.CacheInfo.RenderHit)

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   formats,
		input:     input,
		output:    output,
	})
}
