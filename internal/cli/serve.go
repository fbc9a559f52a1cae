package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/molviz/molforge/pkg/api"
	"github.com/molviz/molforge/pkg/cache"
	"github.com/molviz/molforge/pkg/pipeline"
)

// serveCommand creates the serve command for running the layout HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr          string
		noCache       bool
		redisAddr     string
		redisPassword string
		redisDB       int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the layout HTTP API",
		Long: `Run the layout HTTP API.

The serve command starts an HTTP server exposing the layout pipeline under
/api/v1. Layout results are cached in the local file cache by default; pass
--redis-addr to share the cache between instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, noCache, redisAddr, redisPassword, redisDB)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", "", "Redis address for a shared cache (host:port)")
	cmd.Flags().StringVar(&redisPassword, "redis-password", "", "Redis password")
	cmd.Flags().IntVar(&redisDB, "redis-db", 0, "Redis database number")

	return cmd
}

// runServe starts the HTTP server and blocks until ctx is cancelled.
func (c *CLI) runServe(ctx context.Context, addr string, noCache bool, redisAddr, redisPassword string, redisDB int) error {
	store, err := c.serveCache(ctx, noCache, redisAddr, redisPassword, redisDB)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}

	runner := pipeline.NewRunner(store, nil, c.Logger)
	defer runner.Close()

	server := &http.Server{
		Addr:              addr,
		Handler:           api.NewServer(runner, c.Logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Infof("Listening on %s", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		c.Logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// serveCache selects the cache backend for the server: Redis when an address
// is given, the local file cache otherwise.
func (c *CLI) serveCache(ctx context.Context, noCache bool, redisAddr, redisPassword string, redisDB int) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     redisAddr,
			Password: redisPassword,
			DB:       redisDB,
		})
	}
	return newCache(false)
}
