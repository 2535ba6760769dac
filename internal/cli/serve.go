package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/astroviz/starplot/internal/server"
	"github.com/astroviz/starplot/pkg/cache"
	"github.com/astroviz/starplot/pkg/config"
	"github.com/astroviz/starplot/pkg/pipeline"
)

// serveCommand creates the HTTP server command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the plot rendering HTTP server",
		Long: `Start an HTTP server exposing the rendering pipeline.

Routes:
  POST /api/v1/plots      render measurement datasets
  GET  /api/v1/colormaps  list available colormaps
  GET  /healthz           health check
  GET  /metrics           Prometheus metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			store, err := serverCache(cmd, cfg.Server)
			if err != nil {
				return err
			}

			runner := pipeline.NewRunner(store, nil, c.Logger)
			defer runner.Close()

			srv, err := server.New(cfg.Server, runner, c.Logger, nil)
			if err != nil {
				return err
			}
			return srv.Start(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&configPath, "config", "", "path to config file")

	return cmd
}

// serverCache picks the cache backend from the server configuration.
func serverCache(cmd *cobra.Command, cfg config.Server) (cache.Cache, error) {
	switch cfg.Cache {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("cache backend %q requires redis_addr", cfg.Cache)
		}
		return cache.NewRedisCache(cmd.Context(), cache.RedisConfig{Addr: cfg.RedisAddr})
	case "", config.CacheFile:
		return newCache(false)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache)
	}
}
