package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/cheapamd/camd/pkg/aggregator"
	"github.com/cheapamd/camd/pkg/cache"
	"github.com/cheapamd/camd/pkg/config"
	"github.com/cheapamd/camd/pkg/offering"
	"github.com/cheapamd/camd/pkg/provider"
	"github.com/cheapamd/camd/pkg/provider/demo"
	"github.com/cheapamd/camd/pkg/serializer"
)

// parseOutputFormat extracts and validates the output format from CLI flags.
// Returns the validated format or an error if the format is unknown.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	outFormat := serializer.Format(cmd.String("format"))
	if outFormat.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q, valid formats are: %s",
			outFormat, strings.Join(serializer.SupportedFormats(), ", "))
	}
	return outFormat, nil
}

// resolveProviders builds the provider set for a command invocation.
// --demo short-circuits to the built-in sample adapter; otherwise the
// credential config decides, optionally narrowed by --provider.
func resolveProviders(cmd *cli.Command) ([]provider.Provider, *config.Config, error) {
	if cmd.Bool("demo") {
		return []provider.Provider{demo.NewProvider()}, &config.Config{}, nil
	}

	cfg, err := config.LoadOrEnv()
	if err != nil {
		return nil, nil, err
	}

	providers, err := provider.FromConfig(cfg, cmd.String("provider"))
	if err != nil {
		return nil, nil, err
	}
	if len(providers) == 0 {
		return nil, nil, fmt.Errorf("no providers configured, run 'camd setup' or use --demo")
	}
	return providers, cfg, nil
}

// collectOfferings runs the aggregation pipeline, consulting the on-disk
// result cache unless bypass is set. Demo runs never touch the cache.
func collectOfferings(ctx context.Context, cmd *cli.Command, providers []provider.Provider,
	cfg *config.Config, filter offering.Filter, bypassCache bool) ([]offering.Offering, error) {

	agg := aggregator.New(providers)

	if bypassCache || cmd.Bool("demo") {
		return agg.Collect(ctx, filter), nil
	}

	store := cache.NewFileStore(config.CachePath())
	key := cache.Key(provider.Names(providers), filter)
	return cache.GetOrFetch(ctx, store, key, cfg.CacheWindow(),
		func(ctx context.Context) ([]offering.Offering, error) {
			return agg.Collect(ctx, filter), nil
		})
}
