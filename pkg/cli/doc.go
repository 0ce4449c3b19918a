// Package cli implements the command-line interface for the camd tool.
//
// # Overview
//
// camd compares AMD GPU and CPU rental offerings across cloud providers.
// It queries each configured provider concurrently, normalizes prices to
// USD per hour per unit, and renders a sorted comparison so the cheapest
// option is immediately visible. Results are cached briefly to keep
// repeated invocations fast.
//
// # Commands
//
// setup - Configure provider credentials:
//
//	camd setup
//
// Interactively prompts for an API key per supported provider. Keys are
// written to ~/.camd/config.yaml with owner-only permissions. Providers
// without a key are simply skipped at query time.
//
// list - Compare current offerings (the main command):
//
//	camd list                 # both hardware classes
//	camd list gpu             # GPUs only
//	camd list cpu --format json
//	camd list --demo          # built-in sample data, no credentials
//	camd list --provider runpod --no-cache
//
// Queries all configured providers in parallel. A provider that fails is
// logged and skipped; the comparison is built from whatever succeeded.
//
// deploy - Rent the cheapest matching instance:
//
//	camd deploy MI300X
//	camd deploy "EPYC 9654" --provider vultr
//
// Performs a fresh query, picks the cheapest available offering for the
// model, and issues a single provision request to that provider.
//
// info - Show hardware details from the built-in catalog:
//
//	camd info MI300X
//
// Local catalog lookup. When credentials are configured, current pricing
// is appended; without credentials the spec alone is shown.
//
// serve - Run the aggregation pipeline as an HTTP API:
//
//	camd serve
//	PORT=9090 camd serve --demo
//
// # Global Flags
//
//	--debug     Enable debug logging (also CAMD_DEBUG=1)
//	--log-json  Emit logs as JSON
//
// # Environment
//
//	CAMD_CONFIG_DIR     Override the ~/.camd configuration directory
//	CAMD_CACHE_MINUTES  Override the 5-minute result cache window
//	CAMD_DEBUG          Enable debug logging
//	RUNPOD_API_KEY      RunPod credential, overrides the config file
//	VULTR_API_KEY       Vultr credential, overrides the config file
//
// # Version
//
// The reported version is injected at build time:
//
//	go build -ldflags="-X 'github.com/cheapamd/camd/pkg/version.Version=1.0.0'"
package cli
