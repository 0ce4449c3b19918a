package provider_test

import (
	"testing"

	"github.com/cheapamd/camd/pkg/config"
	"github.com/cheapamd/camd/pkg/provider"
)

func testConfig() *config.Config {
	return &config.Config{
		Providers: map[string]config.Credential{
			"runpod": {APIKey: "rp-key"},
			"vultr":  {APIKey: "vu-key"},
		},
	}
}

func TestNew_AllTypes(t *testing.T) {
	cfg := testConfig()

	for _, name := range provider.SupportedTypesAsStrings() {
		t.Run(name, func(t *testing.T) {
			typ, err := provider.ParseType(name)
			if err != nil {
				t.Fatalf("ParseType(%q) failed: %v", name, err)
			}
			p, err := provider.New(typ, cfg)
			if err != nil {
				t.Fatalf("New(%q) failed: %v", name, err)
			}
			if p.Name() != name {
				t.Errorf("provider name = %q, want %q", p.Name(), name)
			}
		})
	}
}

func TestNew_MissingCredential(t *testing.T) {
	if _, err := provider.New(provider.TypeRunpod, &config.Config{}); err == nil {
		t.Error("expected error for missing runpod credential")
	}
}

func TestParseType_Unknown(t *testing.T) {
	if _, err := provider.ParseType("lambda"); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestFromConfig_SortedAndComplete(t *testing.T) {
	providers, err := provider.FromConfig(testConfig(), "")
	if err != nil {
		t.Fatalf("FromConfig failed: %v", err)
	}

	names := provider.Names(providers)
	if len(names) != 2 || names[0] != "runpod" || names[1] != "vultr" {
		t.Errorf("expected [runpod vultr], got %v", names)
	}
}

func TestFromConfig_SingleProvider(t *testing.T) {
	providers, err := provider.FromConfig(testConfig(), "vultr")
	if err != nil {
		t.Fatalf("FromConfig failed: %v", err)
	}
	if len(providers) != 1 || providers[0].Name() != "vultr" {
		t.Errorf("expected only vultr, got %v", provider.Names(providers))
	}
}

func TestFromConfig_DemoNeedsNoCredentials(t *testing.T) {
	providers, err := provider.FromConfig(&config.Config{}, "demo")
	if err != nil {
		t.Fatalf("FromConfig failed: %v", err)
	}
	if len(providers) != 1 || providers[0].Name() != "demo" {
		t.Errorf("expected demo provider, got %v", provider.Names(providers))
	}
}

func TestFromConfig_UnconfiguredProvider(t *testing.T) {
	if _, err := provider.FromConfig(&config.Config{}, "runpod"); err == nil {
		t.Error("expected error for unconfigured provider")
	}
}

func TestFromConfig_SkipsUnknownConfigEntries(t *testing.T) {
	cfg := &config.Config{
		Providers: map[string]config.Credential{
			"runpod":  {APIKey: "rp-key"},
			"unknown": {APIKey: "x"},
		},
	}

	providers, err := provider.FromConfig(cfg, "")
	if err != nil {
		t.Fatalf("FromConfig failed: %v", err)
	}
	if len(providers) != 1 || providers[0].Name() != "runpod" {
		t.Errorf("expected only runpod, got %v", provider.Names(providers))
	}
}
