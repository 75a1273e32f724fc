package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/export"
	"github.com/matzehuels/mindmap/pkg/graph"
	"github.com/matzehuels/mindmap/pkg/pipeline"
)

// exportCommand creates the export command for timestamped diagram PNGs.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		dir    string
		prefix string
		lf     layoutFlags
		rf     renderFlags
		cf     cacheFlags
	)

	cmd := &cobra.Command{
		Use:   "export [graph.json]",
		Short: "Save a diagram as a timestamped PNG",
		Long: `Save a diagram as a timestamped PNG.

The diagram is drawn at its natural size, rasterized at twice that size onto
an opaque white background and saved as <prefix>-<unix-millis>.png.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.loadOptions()
			if err != nil {
				return err
			}
			lf.apply(cmd, &opts)
			rf.apply(cmd, &opts)
			cf.apply(&opts)
			return c.runExport(cmd.Context(), args[0], dir, prefix, opts, cf.noCache)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "output directory")
	cmd.Flags().StringVarP(&prefix, "prefix", "p", appName, "file name prefix")
	lf.register(cmd)
	rf.register(cmd, false)
	cf.register(cmd)

	return cmd
}

// runExport lays out the graph and saves it as one PNG in dir.
func (c *CLI) runExport(ctx context.Context, input, dir, prefix string, opts pipeline.Options, noCache bool) error {
	logger := loggerFromContext(ctx)

	g, err := graph.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	runner, err := c.newRunner(opts.Cache, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(logger)
	sp := c.ui.spin(ctx, "Exporting diagram...")
	defer sp.stop()

	f, err := runner.ExportDiagram(ctx, g, prefix, export.DirSaver{Dir: dir}, opts)
	if errors.Is(err, errors.ErrCodeEmptyGraph) {
		sp.stop()
		c.ui.nothingToShow()
		return nil
	}
	if err != nil {
		sp.fail("Export failed")
		return err
	}
	sp.stop()
	prog.done("exported diagram", "prefix", prefix)

	c.ui.success("Saved diagram")
	c.ui.file(filepath.Join(dir, f.Name))
	return nil
}
