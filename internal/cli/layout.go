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
	"github.com/matzehuels/mindmap/pkg/layout"
	"github.com/matzehuels/mindmap/pkg/pipeline"
)

// layoutCommand creates the layout command for computing diagram layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		lf     layoutFlags
		cf     cacheFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [graph.json]",
		Short: "Compute a diagram layout from a graph",
		Long: `Compute a diagram layout from a graph.

The layout command reduces the graph to a tree and computes node positions,
edge routes and wrapped labels at natural size. The output is a layout.json
file (same format as 'render -f json') that can be rendered to SVG/PNG/PDF
using the 'visualize' command.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.loadOptions()
			if err != nil {
				return err
			}
			lf.apply(cmd, &opts)
			cf.apply(&opts)
			return c.runLayout(cmd.Context(), args[0], output, opts, cf.noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	lf.register(cmd)
	cf.register(cmd)

	return cmd
}

// runLayout loads the graph, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input, output string, opts pipeline.Options, noCache bool) error {
	g, err := graph.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	runner, err := c.newRunner(opts.Cache, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	sp := c.ui.spin(ctx, "Computing layout...")
	defer sp.stop()

	_, l, _, cacheHit, err := runner.LayoutWithCacheInfo(ctx, g, opts)
	if errors.Is(err, errors.ErrCodeEmptyGraph) {
		sp.stop()
		c.ui.nothingToShow()
		return nil
	}
	if err != nil {
		sp.fail("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	sp.stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(input, filepath.Ext(input)) + layoutSuffix
	}
	if err := writeLayoutFile(l, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	c.ui.success("Layout complete")
	c.ui.file(outputPath)
	c.ui.summary(plural(len(l.Nodes), "node"), fmt.Sprintf("depth %d", l.MaxDepth), fmt.Sprintf("%.0fx%.0f px", l.Width, l.Height), origin(cacheHit))
	c.ui.nextStep("Render", appName+" visualize "+outputPath)

	return nil
}

func writeLayoutFile(l *layout.Layout, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := layout.Write(l, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
