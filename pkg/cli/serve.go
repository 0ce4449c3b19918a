package cli

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/cheapamd/camd/pkg/aggregator"
	"github.com/cheapamd/camd/pkg/cache"
	"github.com/cheapamd/camd/pkg/config"
	"github.com/cheapamd/camd/pkg/logging"
	"github.com/cheapamd/camd/pkg/server"
	ver "github.com/cheapamd/camd/pkg/version"
)

const serviceName = "camd-api"

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:                  "serve",
		EnableShellCompletion: true,
		Usage:                 "Serve the offering comparison as an HTTP API",
		Description: `Runs the same aggregation pipeline behind an HTTP API:

  GET /v1/offerings   query offerings (class=, providers=, model=,
                      available=, no_cache= parameters)
  GET /health         liveness
  GET /ready          readiness
  GET /metrics        Prometheus metrics

The port defaults to 8080 and can be overridden with --port or the PORT
environment variable.`,
		Flags: []cli.Flag{
			demoFlag,
			providerFlag,
			&cli.IntFlag{
				Name:  "port",
				Usage: "Listen port (overrides PORT)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logging.SetDefaultStructuredLogger(serviceName, ver.Version)
			slog.Info("starting",
				"name", serviceName,
				"version", ver.Version,
				"commit", ver.Commit,
				"date", ver.Date,
			)

			providers, cfg, err := resolveProviders(cmd)
			if err != nil {
				return err
			}

			srvCfg := server.DefaultConfig()
			if port := cmd.Int("port"); port != 0 {
				srvCfg.Port = int(port)
			}

			s := server.New(
				server.WithName(serviceName),
				server.WithVersion(ver.Version),
				server.WithConfig(srvCfg),
				server.WithAggregator(aggregator.New(providers)),
				server.WithCache(cache.NewFileStore(config.CachePath()), cfg.CacheWindow()),
			)

			if err := s.Run(ctx); err != nil {
				slog.Error("server exited with error", "error", err)
				return err
			}
			return nil
		},
	}
}
