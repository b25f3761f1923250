package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/psptools/psplib/pkg/cache"
	"github.com/psptools/psplib/pkg/errors"
	"github.com/psptools/psplib/pkg/instance"
	pkgio "github.com/psptools/psplib/pkg/io"
	"github.com/psptools/psplib/pkg/psplib"
)

// cacheTTL is how long decoded instances stay in the cache. Instance files
// are immutable in practice, so the TTL is generous.
const cacheTTL = 30 * 24 * time.Hour

// parseOpts holds the command-line flags for the parse command.
type parseOpts struct {
	output  string // output file path (stdout if empty)
	name    string // override instance name
	indent  int    // spaces per JSON indentation level
	refresh bool   // bypass the instance cache
}

// newParseCmd creates the parse command. It decodes a PSPLIB instance file
// (or re-validates a JSON instance file) and emits the JSON encoding.
func newParseCmd() *cobra.Command {
	opts := parseOpts{indent: pkgio.DefaultIndent}

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Decode an instance file and emit its JSON encoding",
		Long: `Decode a PSPLIB instance file and emit its JSON encoding.

The input format is auto-detected: files ending in .json (or starting with
'{') are read as JSON and re-validated; everything else is decoded as a
single-mode PSPLIB file.

Examples:
  psplib parse j301_1.sm                  # PSPLIB to JSON on stdout
  psplib parse j301_1.sm -o j301_1.json   # PSPLIB to JSON file
  psplib parse j301_1.json                # validate and re-emit JSON`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runParse(c.Context(), &opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "instance name (overrides the file name)")
	cmd.Flags().IntVar(&opts.indent, "indent", opts.indent, "spaces per JSON indentation level")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the instance cache")

	return cmd
}

// runParse loads the instance and writes its JSON encoding to the selected output.
func runParse(ctx context.Context, opts *parseOpts, path string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	in, err := loadInstance(ctx, cfg, path, opts.name, opts.refresh)
	if err != nil {
		return err
	}

	if opts.output == "" {
		return pkgio.WriteJSON(in, os.Stdout, opts.indent)
	}
	if err := pkgio.ExportJSON(in, opts.output, opts.indent); err != nil {
		return err
	}
	printSuccess("Wrote %s", opts.output)
	printDetail("%d jobs, %d resources", len(in.Jobs), len(in.Resources))
	return nil
}

// isJSONInput reports whether the file should be read as JSON rather than
// PSPLIB. Detection is by extension first, then by leading byte.
func isJSONInput(path string, data []byte) bool {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return true
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// loadInstance reads path and returns the decoded instance. PSPLIB decode
// results are cached keyed by a hash of the file contents; JSON inputs are
// always re-validated since validation is the point of reading them.
func loadInstance(ctx context.Context, cfg config, path, name string, refresh bool) (*instance.Instance, error) {
	logger := loggerFromContext(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "instance file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to read %s", path)
	}

	if isJSONInput(path, data) {
		logger.Debugf("Reading %s as JSON", path)
		return pkgio.Unmarshal(data)
	}

	if name == "" {
		name = filepath.Base(path)
	}

	c, err := openCache(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	key := "instance:" + cache.Hash(data)
	if !refresh {
		if cached, ok, err := c.Get(ctx, key); err == nil && ok {
			logger.Debugf("Cache hit for %s", path)
			if in, err := pkgio.Unmarshal(cached); err == nil {
				return in, nil
			}
			// A corrupt entry falls through to a fresh decode.
			logger.Warnf("Discarding corrupt cache entry for %s", path)
		}
	}

	p := newProgress(logger)
	in, err := psplib.Decode(bytes.NewReader(data), name)
	if err != nil {
		return nil, err
	}
	p.done("Decoded " + name)

	if encoded, err := pkgio.Marshal(in, pkgio.DefaultIndent); err == nil {
		if err := c.Set(ctx, key, encoded, cacheTTL); err != nil {
			logger.Warnf("Failed to cache %s: %v", path, err)
		}
	}

	return in, nil
}
