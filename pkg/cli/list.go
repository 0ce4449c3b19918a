package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/cheapamd/camd/pkg/offering"
	"github.com/cheapamd/camd/pkg/serializer"
)

func listCmd() *cli.Command {
	return &cli.Command{
		Name:                  "list",
		EnableShellCompletion: true,
		Usage:                 "List current AMD offerings across providers, cheapest first",
		ArgsUsage:             "[gpu|cpu]",
		Description: `Queries every configured provider concurrently and renders a price
comparison, grouped by hardware class with the cheapest option per unit
marked. Provider failures are logged and skipped so one broken API never
hides the others' prices.

Results are cached for a few minutes (CAMD_CACHE_MINUTES to tune,
--no-cache to bypass).

# Examples

Compare everything:
  camd list

GPUs only, as JSON:
  camd list gpu --format json

Try it without credentials:
  camd list --demo

Only RunPod, skipping the cache:
  camd list --provider runpod --no-cache`,
		Flags: []cli.Flag{
			demoFlag,
			providerFlag,
			formatFlag,
			outputFlag,
			&cli.BoolFlag{
				Name:  "no-cache",
				Usage: "Bypass the result cache and query providers directly",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			var filter offering.Filter
			if arg := cmd.Args().First(); arg != "" {
				class, err := offering.ParseClass(arg)
				if err != nil {
					return fmt.Errorf("%w (expected gpu or cpu)", err)
				}
				filter.Class = class
			}

			providers, cfg, err := resolveProviders(cmd)
			if err != nil {
				return err
			}

			offerings, err := collectOfferings(ctx, cmd, providers, cfg, filter, cmd.Bool("no-cache"))
			if err != nil {
				return err
			}

			// An empty comparison is an answer, not an error.
			if len(offerings) == 0 && outFormat == serializer.FormatTable {
				fmt.Println("no hardware found")
				return nil
			}

			ser, err := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			if err != nil {
				return err
			}
			defer func() {
				if closer, ok := ser.(serializer.Closer); ok {
					if err := closer.Close(); err != nil {
						slog.Warn("failed to close serializer", "error", err)
					}
				}
			}()

			return ser.Serialize(ctx, offerings)
		},
	}
}
