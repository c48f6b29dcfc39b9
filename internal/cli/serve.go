package cli

import (
	"cmp"
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/instantview/internal/server"
	"github.com/matzehuels/instantview/pkg/cache"
	"github.com/matzehuels/instantview/pkg/observability"
	"github.com/matzehuels/instantview/pkg/pipeline"
)

// serveCommand creates the serve command running the HTTP layout service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		cfg      server.Config
		cacheCfg cache.Config
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP layout service",
		Long: `Run the HTTP layout service.

Routes:
  POST /v1/layout           page document in, layout JSON out
  POST /v1/render/{format}  page document in, svg, png, pdf, json or dot out
  GET  /healthz             liveness probe
  GET  /version             build information

Layouts and renders are cached in the backend chosen with --cache. Redis and
MongoDB let several instances share one cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), cfg, cacheCfg)
		},
	}

	cmd.Flags().StringVar(&cfg.Addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().DurationVar(&cfg.Timeout, "timeout", server.DefaultTimeout, "per-request deadline")
	cmd.Flags().Int64Var(&cfg.MaxBodyBytes, "max-body", server.DefaultMaxBodyBytes, "largest accepted document in bytes")
	cmd.Flags().StringVar(&cacheCfg.Backend, "cache", cache.BackendFile, "cache backend: file, redis, mongo, none")
	cmd.Flags().StringVar(&cacheCfg.URL, "cache-url", "", "redis:// or mongodb:// connection string")
	cmd.Flags().StringVar(&cacheCfg.Dir, "cache-dir", "", "file cache directory (default: the user cache dir)")
	cmd.Flags().StringVar(&cacheCfg.Database, "cache-db", "", "MongoDB database name")
	cmd.Flags().StringVar(&cacheCfg.Collection, "cache-collection", "", "MongoDB collection name")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg server.Config, cacheCfg cache.Config) error {
	store, err := cache.Open(ctx, cacheCfg)
	if err != nil {
		return fmt.Errorf("open %s cache: %w", cacheCfg.Backend, err)
	}
	runner := pipeline.NewRunner(store, nil, c.Logger)
	defer runner.Close()

	c.Logger.Debug("cache ready", "backend", cmp.Or(cacheCfg.Backend, cache.BackendFile))
	if c.Logger.GetLevel() <= log.DebugLevel {
		observability.NewLogHooks(c.Logger).Install()
		defer observability.Reset()
	}
	printInfo("Listening on %s", StyleLink.Render("http://"+displayAddr(cfg.Addr)))
	return server.New(cfg, runner, c.Logger).Run(ctx)
}

// displayAddr turns a listen address such as ":8080" into a dialable host.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
