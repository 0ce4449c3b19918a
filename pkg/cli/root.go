package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/cheapamd/camd/pkg/logging"
	"github.com/cheapamd/camd/pkg/serializer"
	ver "github.com/cheapamd/camd/pkg/version"
)

// Flags shared between commands.
var (
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Value:   "",
		Usage:   "Output file path ('-' or empty for stdout)",
	}

	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   string(serializer.FormatTable),
		Usage:   fmt.Sprintf("Output format (%s)", strings.Join(serializer.SupportedFormats(), ", ")),
	}

	providerFlag = &cli.StringFlag{
		Name:    "provider",
		Aliases: []string{"p"},
		Usage:   "Restrict the query to a single provider",
	}

	demoFlag = &cli.BoolFlag{
		Name:  "demo",
		Usage: "Use built-in sample data instead of live provider APIs",
	}
)

// New builds the camd root command.
func New() *cli.Command {
	return &cli.Command{
		Name:                  "camd",
		Usage:                 "Compare AMD GPU and CPU cloud offerings by price",
		Version:               ver.Version,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "log-json",
				Usage: "Emit logs as JSON",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefault(logging.Options{
				Debug: cmd.Bool("debug"),
				JSON:  cmd.Bool("log-json"),
			})
			return ctx, nil
		},
		Commands: []*cli.Command{
			setupCmd(),
			listCmd(),
			deployCmd(),
			infoCmd(),
			serveCmd(),
		},
	}
}
