package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/cheapamd/camd/pkg/config"
	camderrors "github.com/cheapamd/camd/pkg/errors"
	"github.com/cheapamd/camd/pkg/provider"
)

// providerPrompts maps provider names to their console URL, shown so the
// user knows where to find a key.
var providerPrompts = map[string]string{
	string(provider.TypeRunpod): "https://www.runpod.io/console/user/settings",
	string(provider.TypeVultr):  "https://my.vultr.com/settings/#settingsapi",
}

func setupCmd() *cli.Command {
	return &cli.Command{
		Name:                  "setup",
		EnableShellCompletion: true,
		Usage:                 "Configure provider API keys",
		Description: `Interactively prompts for an API key per supported provider and writes
them to ` + "~/.camd/config.yaml" + ` with owner-only permissions. Press enter to
skip a provider; an existing key is kept when skipped.

Keys can also be supplied per invocation via RUNPOD_API_KEY and
VULTR_API_KEY without running setup.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runSetup(os.Stdin, os.Stdout)
		},
	}
}

func runSetup(in io.Reader, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		if !camderrors.HasCode(err, camderrors.ErrCodeConfigMissing) {
			return err
		}
		// First run: start from an empty config.
		cfg = &config.Config{Providers: make(map[string]config.Credential)}
	}
	if cfg.Providers == nil {
		cfg.Providers = make(map[string]config.Credential)
	}

	fmt.Fprintln(out, "camd setup: enter an API key per provider, or press enter to skip.")
	fmt.Fprintln(out)

	reader := bufio.NewReader(in)
	for _, name := range provider.SupportedTypesAsStrings() {
		if name == string(provider.TypeDemo) {
			continue
		}

		if url, ok := providerPrompts[name]; ok {
			fmt.Fprintf(out, "%s (get a key at %s)\n", name, url)
		}
		if _, configured := cfg.Credential(name); configured {
			fmt.Fprintf(out, "%s API key [configured, enter to keep]: ", name)
		} else {
			fmt.Fprintf(out, "%s API key [enter to skip]: ", name)
		}

		key, err := readSecret(in, reader)
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		fmt.Fprintln(out)

		key = strings.TrimSpace(key)
		if key != "" {
			cfg.Providers[name] = config.Credential{APIKey: key}
		}
	}

	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Fprintf(out, "configuration written to %s\n", config.Path())
	if len(cfg.ConfiguredProviders()) == 0 {
		fmt.Fprintln(out, "no providers configured yet; try 'camd list --demo'")
	} else {
		fmt.Fprintln(out, "run 'camd list' to compare offerings")
	}
	return nil
}

// readSecret reads a key without echo when stdin is a terminal, and
// falls back to plain line reading otherwise (pipes, tests).
func readSecret(in io.Reader, reader *bufio.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		return string(b), err
	}

	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		if err == io.EOF {
			return "", nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
