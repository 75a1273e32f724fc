package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/graph"
	"github.com/matzehuels/mindmap/pkg/pipeline"
)

// layoutSuffix is appended to derived layout file names so a JSON layout
// never overwrites a JSON graph of the same base name.
const layoutSuffix = ".layout.json"

// renderCommand creates the render command, which runs the whole pipeline.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output string
		lf     layoutFlags
		rf     renderFlags
		cf     cacheFlags
	)

	cmd := &cobra.Command{
		Use:   "render [graph.json]",
		Short: "Render a graph to SVG, PNG, PDF, JSON or DOT",
		Long: `Render a graph to SVG, PNG, PDF, JSON or DOT.

The render command reduces the graph to a tree, lays it out and writes one
file per requested format. PNG output is rasterized at --scale times the
natural size onto an opaque white background.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.loadOptions()
			if err != nil {
				return err
			}
			lf.apply(cmd, &opts)
			rf.apply(cmd, &opts)
			cf.apply(&opts)
			return c.runRender(cmd.Context(), args[0], output, opts, cf.noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	lf.register(cmd)
	rf.register(cmd, true)
	cf.register(cmd)

	return cmd
}

// runRender loads the graph and runs the full pipeline.
func (c *CLI) runRender(ctx context.Context, input, output string, opts pipeline.Options, noCache bool) error {
	logger := loggerFromContext(ctx)

	g, err := graph.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}
	logger.Debug("loaded graph", "nodes", g.NodeCount(), "edges", g.EdgeCount())

	runner, err := c.newRunner(opts.Cache, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(logger)
	sp := c.ui.spin(ctx, "Rendering...")
	defer sp.stop()

	result, err := runner.Execute(ctx, g, opts)
	if errors.Is(err, errors.ErrCodeEmptyGraph) {
		sp.stop()
		c.ui.nothingToShow()
		return nil
	}
	if err != nil {
		sp.fail("Render failed")
		return err
	}
	sp.stop()
	prog.done("rendered", "formats", len(result.Artifacts))

	if err := c.writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		cacheHit:  result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit,
	}); err != nil {
		return err
	}
	c.ui.summary(plural(result.Stats.TreeNodes, "node"), plural(g.EdgeCount(), "edge"), origin(result.CacheInfo.RenderHit))
	return nil
}

// =============================================================================
// Artifact Output
// =============================================================================

// artifactWriteParams describes a set of rendered artifacts to write.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	cacheHit  bool
}

// writeArtifacts writes each requested format to its own file and prints
// the written paths.
func (c *CLI) writeArtifacts(p artifactWriteParams) error {
	formats := p.formats
	if len(formats) == 0 {
		formats = []string{pipeline.FormatSVG}
	}

	var written []string
	for _, format := range formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}
		path := outputPath(p.output, p.input, format, len(formats) == 1)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}

	status := "Rendered"
	if p.cacheHit {
		status = "Rendered (cached)"
	}
	c.ui.success("%s %s", status, plural(len(written), "file"))
	for _, path := range written {
		c.ui.file(path)
	}
	return nil
}

// outputPath derives the file path for one format. An explicit output is
// used verbatim when only one format is written.
func outputPath(output, input, format string, single bool) string {
	if single && output != "" {
		return output
	}
	base := basePath(output, input)
	if format == pipeline.FormatJSON {
		return base + layoutSuffix
	}
	return base + "." + format
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
