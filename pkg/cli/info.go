package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/cheapamd/camd/pkg/hardware"
	"github.com/cheapamd/camd/pkg/offering"
	"github.com/cheapamd/camd/pkg/serializer"
)

func infoCmd() *cli.Command {
	return &cli.Command{
		Name:                  "info",
		EnableShellCompletion: true,
		Usage:                 "Show specifications for an AMD hardware model",
		ArgsUsage:             "<model>",
		Description: `Looks the model up in the built-in hardware catalog. This is purely
local; when provider credentials are configured, current pricing for the
model is appended, and silently omitted when they are not.

# Examples

  camd info MI300X
  camd info "EPYC 9654" --format yaml`,
		Flags: []cli.Flag{
			demoFlag,
			formatFlag,
			outputFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			model := cmd.Args().First()
			if model == "" {
				return fmt.Errorf("usage: camd info <model>")
			}

			spec, ok := hardware.Lookup(model)
			if !ok {
				return hardware.UnknownModelError(model)
			}

			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			// Pricing is best effort: no credentials, or every provider
			// failing, degrades to the bare spec.
			var offerings []offering.Offering
			if providers, cfg, perr := resolveProviders(cmd); perr == nil {
				filter := offering.Filter{Model: spec.Model}
				offerings, err = collectOfferings(ctx, cmd, providers, cfg, filter, false)
				if err != nil {
					slog.Debug("live pricing unavailable", "error", err)
					offerings = nil
				}
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

			if outFormat == serializer.FormatTable {
				if err := ser.Serialize(ctx, spec); err != nil {
					return err
				}
				if len(offerings) > 0 {
					return ser.Serialize(ctx, offerings)
				}
				return nil
			}

			out := struct {
				Spec      hardware.Spec       `json:"spec" yaml:"spec"`
				Offerings []offering.Offering `json:"offerings,omitempty" yaml:"offerings,omitempty"`
			}{Spec: spec, Offerings: offerings}
			return ser.Serialize(ctx, out)
		},
	}
}
