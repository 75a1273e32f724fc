package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/pkg/export"
	"github.com/matzehuels/mindmap/pkg/pipeline"
)

// textCommand creates the text command for paginated page exports.
func (c *CLI) textCommand() *cobra.Command {
	var (
		dir    string
		prefix string
		title  string
		pf     pageFlags
	)

	cmd := &cobra.Command{
		Use:   "text [notes.md|-]",
		Short: "Save long text as paginated PNG pages",
		Long: `Save long text as paginated PNG pages.

Markdown is reduced to plain text, wrapped to the page width and split into
pages. Each page is saved as <prefix>-<unix-millis>.png, or with a -<page>
suffix when there is more than one page. Use - to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.loadOptions()
			if err != nil {
				return err
			}
			pf.apply(cmd, &opts)
			if title == "" {
				title = titleFromPath(args[0])
			}
			return c.runText(cmd.Context(), cmd.InOrStdin(), args[0], dir, prefix, title, opts)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "output directory")
	cmd.Flags().StringVarP(&prefix, "prefix", "p", "notes", "file name prefix")
	cmd.Flags().StringVar(&title, "title", "", "page header title (default: input file name)")
	pf.register(cmd)

	return cmd
}

// runText reads the input and saves its pages into dir. Pages saved before
// a failure are kept and listed.
func (c *CLI) runText(ctx context.Context, stdin io.Reader, input, dir, prefix, title string, opts pipeline.Options) error {
	text, err := readText(stdin, input)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(nil, nil, c.Logger)
	defer runner.Close()

	sp := c.ui.spin(ctx, "Exporting pages...")
	defer sp.stop()

	files, err := runner.ExportText(ctx, title, text, prefix, export.DirSaver{Dir: dir}, opts)
	if err != nil {
		sp.fail("Export failed")
		for _, f := range files {
			c.ui.file(filepath.Join(dir, f.Name))
		}
		return err
	}
	sp.stop()

	c.ui.success("Saved %s", plural(len(files), "page"))
	for _, f := range files {
		c.ui.file(filepath.Join(dir, f.Name))
	}
	return nil
}

func readText(stdin io.Reader, input string) (string, error) {
	var (
		data []byte
		err  error
	)
	if input == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(input)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", input, err)
	}
	return string(data), nil
}

// titleFromPath turns "notes/big-idea.md" into "big-idea".
func titleFromPath(path string) string {
	if path == "-" {
		return ""
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
