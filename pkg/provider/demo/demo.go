// Package demo implements the credential-free demo adapter. It returns a
// fixed, hardcoded sequence of offerings and never fails, so the tool is
// usable without any API keys.
package demo

import (
	"context"
	"fmt"

	"github.com/cheapamd/camd/pkg/offering"
	"github.com/cheapamd/camd/pkg/provider/common"
)

// Name is the provider name tag on demo offerings.
const Name = "demo"

// Provider is the demo adapter.
type Provider struct{}

// NewProvider creates a demo adapter.
func NewProvider() *Provider {
	return &Provider{}
}

func (p *Provider) Name() string {
	return Name
}

// Fetch returns the fixed demo offerings. It never fails.
func (p *Provider) Fetch(_ context.Context) ([]offering.Offering, error) {
	return Offerings(), nil
}

// Deploy returns a canned result without any network call.
func (p *Provider) Deploy(_ context.Context, o offering.Offering) (*common.DeployResult, error) {
	return &common.DeployResult{
		Provider:     Name,
		InstanceID:   "demo-0001",
		InstanceType: o.InstanceType,
		PricePerHour: o.PricePerHour,
		Message:      fmt.Sprintf("demo deployment of %s, no instance was created", o.InstanceType),
	}, nil
}

// Offerings returns the fixed demo data set. The mix intentionally covers
// both hardware classes, spot and on-demand pricing, multi-GPU counts, and
// unavailable stock, so every rendering path is exercised without
// credentials.
func Offerings() []offering.Offering {
	return []offering.Offering{
		{
			Provider: Name, Class: offering.ClassGPU, Model: "MI300X",
			InstanceType: "MI300X-1x", UnitCount: 1, MemoryGB: 192, VCPUs: 24,
			PricePerHour: 2.49, Region: "Global", Available: false, StockStatus: "unavailable",
			Features: []string{"On-demand pricing", "High demand GPU", "Pre-installed PyTorch + ROCm"},
		},
		{
			Provider: Name, Class: offering.ClassGPU, Model: "MI300X",
			InstanceType: "MI300X-spot", UnitCount: 1, MemoryGB: 192, VCPUs: 24,
			PricePerHour: 1.25, Region: "Global (Spot)", Spot: true, Available: true, StockStatus: "low",
			Features: []string{"Spot instance (-50%)", "Interruptible", "Best value"},
		},
		{
			Provider: Name, Class: offering.ClassGPU, Model: "MI300X",
			InstanceType: "MI300X-2x", UnitCount: 2, MemoryGB: 192, VCPUs: 48,
			PricePerHour: 4.98, Region: "Global", Available: true, StockStatus: "low",
			Features: []string{"2x MI300X cluster", "Infinity Fabric Link", "384GB total memory"},
		},
		{
			Provider: Name, Class: offering.ClassGPU, Model: "MI300X",
			InstanceType: "MI300X-4x", UnitCount: 4, MemoryGB: 192, VCPUs: 96,
			PricePerHour: 9.96, Region: "Global", Available: false, StockStatus: "unavailable",
			Features: []string{"4x MI300X cluster", "Full mesh connectivity", "768GB total memory"},
		},
		{
			Provider: Name, Class: offering.ClassGPU, Model: "MI300X",
			InstanceType: "MI300X-8x", UnitCount: 8, MemoryGB: 192, VCPUs: 192,
			PricePerHour: 19.92, Region: "Global", Available: false, StockStatus: "unavailable",
			Features: []string{"8x MI300X cluster (max)", "1.5TB total memory", "Rarely available"},
		},
		{
			Provider: Name, Class: offering.ClassCPU, Model: "EPYC 9654",
			InstanceType: "epyc-96c-384gb", UnitCount: 1, MemoryGB: 384, VCPUs: 192,
			PricePerHour: 2.10, Region: "us-east", Available: true, StockStatus: "high",
			Features: []string{"96 cores / 192 threads", "Zen 4"},
		},
		{
			Provider: Name, Class: offering.ClassCPU, Model: "EPYC 9654",
			InstanceType: "epyc-96c-384gb-spot", UnitCount: 1, MemoryGB: 384, VCPUs: 192,
			PricePerHour: 1.05, Region: "us-east (Spot)", Spot: true, Available: true, StockStatus: "medium",
			Features: []string{"Spot instance (-50%)", "Interruptible"},
		},
	}
}
