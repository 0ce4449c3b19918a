// Package common defines the adapter contract every cloud provider
// implements. Each adapter translates its provider's listing API response
// into the shared offering shape; it performs network I/O only and mutates
// no shared state.
package common

import (
	"context"
	"fmt"

	"github.com/cheapamd/camd/pkg/offering"
)

const (
	// TypeRunpod is the RunPod GraphQL adapter.
	TypeRunpod Type = "runpod"

	// TypeVultr is the Vultr REST adapter.
	TypeVultr Type = "vultr"

	// TypeDemo is the credential-free demo adapter.
	TypeDemo Type = "demo"
)

// Type identifies a provider adapter.
type Type string

// ParseType converts a string to a provider Type.
func ParseType(s string) (Type, error) {
	switch s {
	case string(TypeRunpod):
		return TypeRunpod, nil
	case string(TypeVultr):
		return TypeVultr, nil
	case string(TypeDemo):
		return TypeDemo, nil
	default:
		return "", fmt.Errorf("unknown provider: %s", s)
	}
}

// SupportedTypes returns all supported provider types.
func SupportedTypes() []Type {
	return []Type{TypeRunpod, TypeVultr, TypeDemo}
}

// SupportedTypesAsStrings returns supported provider types as strings.
func SupportedTypesAsStrings() []string {
	types := SupportedTypes()
	strs := make([]string, len(types))
	for i, t := range types {
		strs[i] = string(t)
	}
	return strs
}

// Provider fetches normalized hardware offerings from one cloud provider.
// Fetch fails with structured AUTH_ERROR, NETWORK_ERROR, or PARSE_ERROR
// codes; the aggregator contains these failures.
type Provider interface {
	Name() string
	Fetch(ctx context.Context) ([]offering.Offering, error)
}

// DeployResult describes the outcome of a single deployment call.
type DeployResult struct {
	Provider     string  `json:"provider" yaml:"provider"`
	InstanceID   string  `json:"instanceId" yaml:"instanceId"`
	InstanceType string  `json:"instanceType" yaml:"instanceType"`
	PricePerHour float64 `json:"pricePerHour" yaml:"pricePerHour"`
	Message      string  `json:"message,omitempty" yaml:"message,omitempty"`
}

// Deployer is implemented by providers that can provision an offering.
// Deploy is a single opaque API call: no polling, no retries, no rollback.
type Deployer interface {
	Provider
	Deploy(ctx context.Context, o offering.Offering) (*DeployResult, error)
}
