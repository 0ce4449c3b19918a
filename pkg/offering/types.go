// Package offering defines the normalized hardware offering shape shared by
// all provider adapters, plus the deterministic ordering used for display.
package offering

import (
	"fmt"
	"slices"
	"strings"
)

const (
	// ClassGPU marks GPU instance offerings.
	ClassGPU Class = "gpu"

	// ClassCPU marks CPU instance offerings.
	ClassCPU Class = "cpu"
)

// Class identifies the hardware class of an offering.
type Class string

// ParseClass converts a string to a Class.
func ParseClass(s string) (Class, error) {
	switch strings.ToLower(s) {
	case string(ClassGPU):
		return ClassGPU, nil
	case string(ClassCPU):
		return ClassCPU, nil
	default:
		return "", fmt.Errorf("unknown hardware class: %s", s)
	}
}

// SupportedClasses returns all supported hardware classes.
func SupportedClasses() []Class {
	return []Class{ClassGPU, ClassCPU}
}

// Offering is one priced hardware configuration available from a provider
// at query time. Prices are hourly USD. UnitCount is the number of GPUs
// (or CPU packages) in the instance and is always >= 1.
type Offering struct {
	Provider     string   `json:"provider" yaml:"provider"`
	Class        Class    `json:"class" yaml:"class"`
	Model        string   `json:"model" yaml:"model"`
	InstanceType string   `json:"instanceType" yaml:"instanceType"`
	UnitCount    int      `json:"unitCount" yaml:"unitCount"`
	MemoryGB     float64  `json:"memoryGBPerUnit" yaml:"memoryGBPerUnit"`
	VCPUs        int      `json:"vcpus,omitempty" yaml:"vcpus,omitempty"`
	PricePerHour float64  `json:"pricePerHour" yaml:"pricePerHour"`
	Region       string   `json:"region,omitempty" yaml:"region,omitempty"`
	Spot         bool     `json:"spot" yaml:"spot"`
	Available    bool     `json:"available" yaml:"available"`
	StockStatus  string   `json:"stockStatus,omitempty" yaml:"stockStatus,omitempty"`
	Features     []string `json:"features,omitempty" yaml:"features,omitempty"`

	// ProviderID is the provider-native identifier for this configuration,
	// used when deploying (e.g. a RunPod GPU type ID or a Vultr plan ID).
	ProviderID string `json:"providerId,omitempty" yaml:"providerId,omitempty"`
}

// PricePerUnit returns the effective hourly price of a single unit.
// This is the sort key for all price comparisons.
func (o Offering) PricePerUnit() float64 {
	if o.UnitCount <= 0 {
		return o.PricePerHour
	}
	return o.PricePerHour / float64(o.UnitCount)
}

// Validate checks the offering invariants.
func (o Offering) Validate() error {
	if o.Provider == "" {
		return fmt.Errorf("offering has no provider")
	}
	if o.UnitCount < 1 {
		return fmt.Errorf("offering %s/%s: unit count %d, must be >= 1", o.Provider, o.InstanceType, o.UnitCount)
	}
	if o.PricePerHour < 0 {
		return fmt.Errorf("offering %s/%s: negative price %f", o.Provider, o.InstanceType, o.PricePerHour)
	}
	return nil
}

// Sort orders offerings by ascending price per unit, breaking ties by
// provider name. The sort is stable so repeated invocations over the same
// data produce identical output.
func Sort(offerings []Offering) {
	slices.SortStableFunc(offerings, func(a, b Offering) int {
		switch {
		case a.PricePerUnit() < b.PricePerUnit():
			return -1
		case a.PricePerUnit() > b.PricePerUnit():
			return 1
		default:
			return strings.Compare(a.Provider, b.Provider)
		}
	})
}

// GroupByClass splits offerings into per-class groups, preserving input
// order within each group. Classes are returned in the fixed order of
// SupportedClasses so rendering is deterministic.
func GroupByClass(offerings []Offering) map[Class][]Offering {
	groups := make(map[Class][]Offering)
	for _, o := range offerings {
		groups[o.Class] = append(groups[o.Class], o)
	}
	return groups
}
