package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/psptools/psplib/pkg/errors"
	"github.com/psptools/psplib/pkg/graph"
	"github.com/psptools/psplib/pkg/instance"
)

// visualizeOpts holds the command-line flags for the visualize command.
type visualizeOpts struct {
	format      string // dot, svg, or png
	output      string // output file path (derived from input if empty)
	name        string // override instance name
	skipDummies bool   // omit the supersource and sink jobs
}

// newVisualizeCmd creates the visualize command, which renders the precedence
// graph of an instance.
func newVisualizeCmd() *cobra.Command {
	opts := visualizeOpts{}

	cmd := &cobra.Command{
		Use:   "visualize <file>",
		Short: "Render the precedence graph of an instance",
		Long: `Render the precedence graph of an instance as DOT, SVG, or PNG.

Examples:
  psplib visualize j301_1.sm                      # SVG next to the input
  psplib visualize j301_1.sm --format png -o g.png
  psplib visualize j301_1.sm --format dot --skip-dummies`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runVisualize(c.Context(), &opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: dot, svg, or png (default from config)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (derived from input if empty)")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "instance name (overrides the file name)")
	cmd.Flags().BoolVar(&opts.skipDummies, "skip-dummies", false, "omit the supersource and sink jobs")

	return cmd
}

// runVisualize loads the instance, builds the precedence graph, and writes
// the rendered output.
func runVisualize(ctx context.Context, opts *visualizeOpts, path string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	format := opts.format
	if format == "" {
		format = cfg.Format
	}
	format = strings.ToLower(format)
	switch format {
	case "dot", "svg", "png":
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown format: %s (expected dot, svg, or png)", format)
	}

	in, err := loadInstance(ctx, cfg, path, opts.name, false)
	if err != nil {
		return err
	}

	g := graph.FromInstance(in, excluded(in, opts.skipDummies)...)
	dot := graph.ToDOT(g)

	var out []byte
	switch format {
	case "dot":
		out = []byte(dot)
	case "svg":
		out, err = graph.RenderSVG(ctx, dot)
	case "png":
		out, err = graph.RenderPNG(ctx, dot)
	}
	if err != nil {
		return err
	}

	dest := opts.output
	if dest == "" {
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		dest = base + "." + format
	}
	if err := os.WriteFile(dest, out, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to write %s", dest)
	}

	printSuccess("Wrote %s", dest)
	printDetail("%d nodes, %d edges", len(g.Nodes()), len(g.Edges()))
	return nil
}

// excluded returns the job IDs to omit from the graph. The supersource and
// sink are identified as the lowest and highest job IDs.
func excluded(in *instance.Instance, skipDummies bool) []instance.JobID {
	if !skipDummies || len(in.Jobs) == 0 {
		return nil
	}
	lo, hi := in.Jobs[0].ID, in.Jobs[0].ID
	for _, j := range in.Jobs[1:] {
		if j.ID < lo {
			lo = j.ID
		}
		if j.ID > hi {
			hi = j.ID
		}
	}
	if lo == hi {
		return []instance.JobID{lo}
	}
	return []instance.JobID{lo, hi}
}
