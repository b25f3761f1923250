package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/psptools/psplib/internal/server"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr string // listen address
	dir  string // directory of instance files
}

// newServeCmd creates the serve command, which exposes a directory of
// instances over HTTP.
func newServeCmd() *cobra.Command {
	opts := serveOpts{addr: ":8080", dir: "."}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a directory of instances over HTTP",
		Long: `Serve a directory of instances over HTTP.

Endpoints:
  GET /api/instances                list available instances
  GET /api/instances/{name}         JSON encoding of an instance
  GET /api/instances/{name}/graph   precedence graph in DOT format`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return runServe(c.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.addr, "addr", "a", opts.addr, "listen address")
	cmd.Flags().StringVarP(&opts.dir, "dir", "d", opts.dir, "directory of instance files")

	return cmd
}

// runServe starts the HTTP server and shuts it down when ctx is canceled.
func runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)
	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           server.New(opts.dir, logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Serving %s on %s", opts.dir, opts.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
