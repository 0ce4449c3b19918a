package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/cheapamd/camd/pkg/hardware"
	"github.com/cheapamd/camd/pkg/offering"
	"github.com/cheapamd/camd/pkg/provider"
)

func deployCmd() *cli.Command {
	return &cli.Command{
		Name:                  "deploy",
		EnableShellCompletion: true,
		Usage:                 "Rent the cheapest available instance for a hardware model",
		ArgsUsage:             "<model>",
		Description: `Runs a fresh query (never the cache), picks the cheapest available
offering for the given model, and issues a single provision request to
that provider. No polling or rollback; check the provider console for
instance state.

# Examples

Cheapest MI300X anywhere:
  camd deploy MI300X

Pin the provider and instance type:
  camd deploy MI300X --provider runpod --type "MI300X 2x"

Dry run against sample data:
  camd deploy MI300X --demo`,
		Flags: []cli.Flag{
			demoFlag,
			providerFlag,
			&cli.StringFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "Restrict to a specific instance type",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			model := cmd.Args().First()
			if model == "" {
				return fmt.Errorf("usage: camd deploy <model>")
			}

			spec, ok := hardware.Lookup(model)
			if !ok {
				return hardware.UnknownModelError(model)
			}

			providers, cfg, err := resolveProviders(cmd)
			if err != nil {
				return err
			}

			filter := offering.Filter{Model: spec.Model, AvailableOnly: true}
			offerings, err := collectOfferings(ctx, cmd, providers, cfg, filter, true)
			if err != nil {
				return err
			}

			if t := cmd.String("type"); t != "" {
				var narrowed []offering.Offering
				for _, o := range offerings {
					if o.InstanceType == t {
						narrowed = append(narrowed, o)
					}
				}
				offerings = narrowed
			}

			if len(offerings) == 0 {
				return fmt.Errorf("no available %s offerings found", spec.Model)
			}

			// Offerings come back sorted, cheapest per unit first.
			target := offerings[0]

			deployer, err := deployerFor(providers, target.Provider)
			if err != nil {
				return err
			}

			slog.Info("deploying",
				"provider", target.Provider,
				"instance_type", target.InstanceType,
				"price_per_hour", target.PricePerHour,
			)

			result, err := deployer.Deploy(ctx, target)
			if err != nil {
				return fmt.Errorf("deployment failed: %w", err)
			}

			fmt.Printf("deployed %s on %s\n", result.InstanceType, result.Provider)
			fmt.Printf("  instance id:    %s\n", result.InstanceID)
			fmt.Printf("  price per hour: $%.2f\n", result.PricePerHour)
			if result.Message != "" {
				fmt.Printf("  %s\n", result.Message)
			}
			return nil
		},
	}
}

func deployerFor(providers []provider.Provider, name string) (provider.Deployer, error) {
	for _, p := range providers {
		if p.Name() != name {
			continue
		}
		d, ok := p.(provider.Deployer)
		if !ok {
			return nil, fmt.Errorf("provider %s does not support deployment", name)
		}
		return d, nil
	}
	return nil, fmt.Errorf("provider %s is not active in this invocation", name)
}
