// Package provider builds adapters from configuration and re-exports the
// shared adapter contract from pkg/provider/common.
package provider

import (
	"fmt"
	"sort"

	"github.com/cheapamd/camd/pkg/config"
	"github.com/cheapamd/camd/pkg/provider/common"
	"github.com/cheapamd/camd/pkg/provider/demo"
	"github.com/cheapamd/camd/pkg/provider/runpod"
	"github.com/cheapamd/camd/pkg/provider/vultr"
)

// Re-exported so callers outside the provider tree work with a single
// package.
type (
	Type         = common.Type
	Provider     = common.Provider
	Deployer     = common.Deployer
	DeployResult = common.DeployResult
)

const (
	TypeRunpod = common.TypeRunpod
	TypeVultr  = common.TypeVultr
	TypeDemo   = common.TypeDemo
)

// ParseType converts a string to a provider Type.
func ParseType(s string) (Type, error) {
	return common.ParseType(s)
}

// SupportedTypesAsStrings returns supported provider types as strings.
func SupportedTypesAsStrings() []string {
	return common.SupportedTypesAsStrings()
}

// New creates a provider adapter of the given type from configuration.
// Credential-backed providers require a non-empty API key.
func New(t Type, cfg *config.Config) (Provider, error) {
	switch t {
	case TypeDemo:
		return demo.NewProvider(), nil
	case TypeRunpod:
		cred, ok := cfg.Credential(string(TypeRunpod))
		if !ok {
			return nil, fmt.Errorf("no API key configured for provider %s", TypeRunpod)
		}
		return runpod.NewProvider(cred.APIKey), nil
	case TypeVultr:
		cred, ok := cfg.Credential(string(TypeVultr))
		if !ok {
			return nil, fmt.Errorf("no API key configured for provider %s", TypeVultr)
		}
		return vultr.NewProvider(cred.APIKey), nil
	}
	return nil, fmt.Errorf("provider %s is not supported", t)
}

// FromConfig builds adapters for every configured provider, optionally
// restricted to a single provider name. The result is sorted by name so
// downstream behavior is deterministic.
func FromConfig(cfg *config.Config, only string) ([]Provider, error) {
	names := cfg.ConfiguredProviders()
	if only != "" {
		t, err := ParseType(only)
		if err != nil {
			return nil, err
		}
		if t == TypeDemo {
			return []Provider{demo.NewProvider()}, nil
		}
		if _, ok := cfg.Credential(only); !ok {
			return nil, fmt.Errorf("provider %s is not configured, run 'camd setup'", only)
		}
		names = []string{only}
	}
	sort.Strings(names)

	providers := make([]Provider, 0, len(names))
	for _, name := range names {
		t, err := ParseType(name)
		if err != nil {
			// Unknown entries in the config file are skipped, not fatal.
			continue
		}
		p, err := New(t, cfg)
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}
	return providers, nil
}

// Names returns the names of the given providers, in order.
func Names(providers []Provider) []string {
	names := make([]string, len(providers))
	for i, p := range providers {
		names[i] = p.Name()
	}
	return names
}
