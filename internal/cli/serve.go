package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sheetgraph/internal/server"
	"github.com/matzehuels/sheetgraph/pkg/cache"
	"github.com/matzehuels/sheetgraph/pkg/pipeline"
)

const (
	// apiKeyPrefix keeps API results apart from detect results in a shared
	// file cache.
	apiKeyPrefix = "api:"

	// memoryCacheEntries bounds the in-process cache of serve --memory-cache.
	memoryCacheEntries = 1024
)

// serveCommand runs the detection API until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr        string
		noCache     bool
		memoryCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the detection API",
		Long: `Run the detection API.

Routes:
  GET  /healthz              build information
  GET  /v1/metrics           fitness metrics and weights
  GET  /v1/metrics/{name}    one fitness metric
  POST /v1/detect            detect the tables of a sheet document
  POST /v1/evaluate          compare detected and ground-truth tables

Results are stored in the local file cache under their own keys, or in
process with --memory-cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			runner, err := c.newServerRunner(noCache, memoryCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			srv := server.New(runner, cfg, c.Logger)
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&memoryCache, "memory-cache", false, "keep results in memory instead of the file cache")

	return cmd
}

// newServerRunner creates the API runner. Its keys carry apiKeyPrefix.
func (c *CLI) newServerRunner(noCache, memory bool) (*pipeline.Runner, error) {
	var (
		store cache.Cache
		err   error
	)
	switch {
	case noCache:
		store = cache.NewNullCache()
	case memory:
		store = cache.NewMemoryCache(memoryCacheEntries)
	default:
		if store, err = newCache(false); err != nil {
			return nil, err
		}
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), apiKeyPrefix)
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}
