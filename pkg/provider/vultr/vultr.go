// Package vultr implements the Vultr provider adapter. Vultr lists plans
// over a plain REST API with monthly pricing; the adapter keeps the AMD
// GPU plans and the AMD high-performance CPU plans and normalizes monthly
// cost to an hourly price.
package vultr

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cheapamd/camd/pkg/httpclient"
	"github.com/cheapamd/camd/pkg/offering"
	"github.com/cheapamd/camd/pkg/provider/common"
	"github.com/cheapamd/camd/pkg/version"

	camderrors "github.com/cheapamd/camd/pkg/errors"
)

// Name is the provider name tag on Vultr offerings.
const Name = "vultr"

const defaultBaseURL = "https://api.vultr.com/v2"

// hoursPerMonth converts Vultr's monthly list prices to hourly, matching
// how Vultr itself meters usage.
const hoursPerMonth = 730

// Provider is the Vultr adapter.
type Provider struct {
	client  *httpclient.Client
	baseURL string
}

// NewProvider creates a Vultr adapter using the given API key.
func NewProvider(apiKey string) *Provider {
	return &Provider{
		client:  httpclient.New(version.UserAgent(), apiKey),
		baseURL: defaultBaseURL,
	}
}

// NewProviderWithURL creates an adapter against a custom endpoint, used in
// tests.
func NewProviderWithURL(apiKey, baseURL string) *Provider {
	p := NewProvider(apiKey)
	p.baseURL = baseURL
	return p
}

func (p *Provider) Name() string {
	return Name
}

type plansResponse struct {
	Plans []plan `json:"plans"`
}

type plan struct {
	ID          string   `json:"id"`
	VCPUCount   int      `json:"vcpu_count"`
	RAM         int      `json:"ram"` // MB
	MonthlyCost float64  `json:"monthly_cost"`
	Type        string   `json:"type"`
	GPUVRAMGB   float64  `json:"gpu_vram_gb"`
	GPUType     string   `json:"gpu_type"`
	GPUCount    int      `json:"gpu_count"`
	Locations   []string `json:"locations"`
}

// Fetch lists Vultr plans and maps the AMD hardware into offerings.
func (p *Provider) Fetch(ctx context.Context) ([]offering.Offering, error) {
	var resp plansResponse
	if err := p.client.GetJSON(ctx, p.baseURL+"/plans?per_page=500", &resp); err != nil {
		return nil, fmt.Errorf("vultr plans request failed: %w", err)
	}
	if resp.Plans == nil {
		return nil, camderrors.New(camderrors.ErrCodeParse, "vultr response has no plans")
	}

	var offerings []offering.Offering
	for _, pl := range resp.Plans {
		o, ok := mapPlan(pl)
		if !ok {
			continue
		}
		offerings = append(offerings, o)
	}

	slog.Debug("vultr fetch complete",
		slog.Int("plans", len(resp.Plans)),
		slog.Int("offerings", len(offerings)),
	)
	return offerings, nil
}

// mapPlan converts one Vultr plan to an offering, or reports that the plan
// is not AMD hardware. GPU plans carry a gpu_type like "AMD_MI300X"; the
// AMD CPU plans are the high-performance ("vhp") family with an -amd
// suffix on the plan ID.
func mapPlan(pl plan) (offering.Offering, bool) {
	region := ""
	if len(pl.Locations) > 0 {
		region = pl.Locations[0]
	}

	switch {
	case strings.HasPrefix(pl.GPUType, "AMD"):
		count := pl.GPUCount
		if count < 1 {
			count = 1
		}
		return offering.Offering{
			Provider:     Name,
			Class:        offering.ClassGPU,
			Model:        gpuModel(pl.GPUType),
			InstanceType: pl.ID,
			UnitCount:    count,
			MemoryGB:     pl.GPUVRAMGB,
			VCPUs:        pl.VCPUCount,
			PricePerHour: pl.MonthlyCost / hoursPerMonth,
			Region:       region,
			Available:    len(pl.Locations) > 0,
			StockStatus:  stockStatus(len(pl.Locations)),
			ProviderID:   pl.ID,
		}, true

	case strings.HasPrefix(pl.Type, "vhp") && strings.HasSuffix(pl.ID, "-amd"):
		return offering.Offering{
			Provider:     Name,
			Class:        offering.ClassCPU,
			Model:        "EPYC",
			InstanceType: pl.ID,
			UnitCount:    1,
			MemoryGB:     float64(pl.RAM) / 1024,
			VCPUs:        pl.VCPUCount,
			PricePerHour: pl.MonthlyCost / hoursPerMonth,
			Region:       region,
			Available:    len(pl.Locations) > 0,
			StockStatus:  stockStatus(len(pl.Locations)),
			ProviderID:   pl.ID,
		}, true
	}
	return offering.Offering{}, false
}

// gpuModel turns "AMD_MI300X" into "MI300X".
func gpuModel(gpuType string) string {
	model := strings.TrimPrefix(gpuType, "AMD_")
	return strings.ReplaceAll(model, "_", " ")
}

func stockStatus(locations int) string {
	switch {
	case locations == 0:
		return "unavailable"
	case locations < 3:
		return "low"
	default:
		return "available"
	}
}

type createInstanceRequest struct {
	Region string `json:"region"`
	Plan   string `json:"plan"`
	OSID   int    `json:"os_id"`
	Label  string `json:"label"`
}

type createInstanceResponse struct {
	Instance *struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	} `json:"instance"`
}

// ubuntuOSID is Vultr's OS id for the current Ubuntu LTS image.
const ubuntuOSID = 1743

// Deploy creates an instance of the offering's plan with a single API
// call. No polling, no rollback.
func (p *Provider) Deploy(ctx context.Context, o offering.Offering) (*common.DeployResult, error) {
	req := createInstanceRequest{
		Region: o.Region,
		Plan:   o.ProviderID,
		OSID:   ubuntuOSID,
		Label:  "camd-" + strings.ToLower(strings.ReplaceAll(o.Model, " ", "-")),
	}

	var resp createInstanceResponse
	if err := p.client.PostJSON(ctx, p.baseURL+"/instances", req, &resp); err != nil {
		return nil, fmt.Errorf("vultr instance create failed: %w", err)
	}
	if resp.Instance == nil {
		return nil, camderrors.New(camderrors.ErrCodeParse, "vultr create response has no instance")
	}

	return &common.DeployResult{
		Provider:     Name,
		InstanceID:   resp.Instance.ID,
		InstanceType: o.InstanceType,
		PricePerHour: o.PricePerHour,
		Message:      fmt.Sprintf("instance %s is %s", resp.Instance.ID, resp.Instance.Status),
	}, nil
}
