// Package runpod implements the RunPod provider adapter. RunPod exposes a
// GraphQL API; the adapter queries GPU types, keeps the AMD Instinct
// models, and expands each into the instance configurations RunPod sells
// (on-demand, spot, and 2x/4x/8x clusters).
package runpod

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

// Name is the provider name tag on RunPod offerings.
const Name = "runpod"

const defaultGraphqlURL = "https://api.runpod.io/graphql"

// Published on-demand price per MI300X GPU-hour, used when the API omits
// pricing fields. Spot runs at roughly half of on-demand.
const (
	fallbackHourlyPrice = 2.49
	spotDiscount        = 0.5
	vcpusPerGPU         = 24
)

// multiGPUCounts are the cluster sizes RunPod offers beyond a single GPU.
var multiGPUCounts = []int{2, 4, 8}

// Provider is the RunPod adapter.
type Provider struct {
	client *httpclient.Client
	url    string
}

// NewProvider creates a RunPod adapter using the given API key.
func NewProvider(apiKey string) *Provider {
	return &Provider{
		client: httpclient.New(version.UserAgent(), apiKey),
		url:    defaultGraphqlURL,
	}
}

// NewProviderWithURL creates an adapter against a custom endpoint, used in
// tests.
func NewProviderWithURL(apiKey, url string) *Provider {
	p := NewProvider(apiKey)
	p.url = url
	return p
}

func (p *Provider) Name() string {
	return Name
}

const gpuTypesQuery = `
query GetGPUTypes {
    gpuTypes {
        id
        displayName
        memoryInGb
        securePrice
        communityPrice
        secureSpotPrice
        communitySpotPrice
    }
}`

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlResponse struct {
	Data *struct {
		GPUTypes []gpuType `json:"gpuTypes"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

type gpuType struct {
	ID                 string   `json:"id"`
	DisplayName        string   `json:"displayName"`
	MemoryInGB         float64  `json:"memoryInGb"`
	SecurePrice        *float64 `json:"securePrice"`
	CommunityPrice     *float64 `json:"communityPrice"`
	SecureSpotPrice    *float64 `json:"secureSpotPrice"`
	CommunitySpotPrice *float64 `json:"communitySpotPrice"`
}

// Fetch queries RunPod's GPU types and maps the AMD models into offerings.
func (p *Provider) Fetch(ctx context.Context) ([]offering.Offering, error) {
	var resp graphqlResponse
	if err := p.client.PostJSON(ctx, p.url, graphqlRequest{Query: gpuTypesQuery}, &resp); err != nil {
		return nil, fmt.Errorf("runpod gpu types query failed: %w", err)
	}

	if len(resp.Errors) > 0 {
		msg := resp.Errors[0].Message
		if strings.Contains(strings.ToLower(msg), "unauthorized") || strings.Contains(strings.ToLower(msg), "not authenticated") {
			return nil, camderrors.Newf(camderrors.ErrCodeAuth, "runpod rejected the API key: %s", msg)
		}
		return nil, camderrors.Newf(camderrors.ErrCodeParse, "runpod graphql error: %s", msg)
	}
	if resp.Data == nil {
		return nil, camderrors.New(camderrors.ErrCodeParse, "runpod response has no data")
	}

	var offerings []offering.Offering
	for _, gt := range resp.Data.GPUTypes {
		model, ok := amdModel(gt)
		if !ok {
			continue
		}
		offerings = append(offerings, expand(gt, model)...)
	}

	slog.Debug("runpod fetch complete",
		slog.Int("gpu_types", len(resp.Data.GPUTypes)),
		slog.Int("offerings", len(offerings)),
	)
	return offerings, nil
}

// amdModel extracts the short AMD model name from a GPU type, or reports
// that the type is not an AMD Instinct part.
func amdModel(gt gpuType) (string, bool) {
	name := gt.DisplayName
	if name == "" {
		name = gt.ID
	}
	if !strings.Contains(name, "MI") && !strings.Contains(strings.ToUpper(name), "AMD") {
		return "", false
	}
	for _, model := range []string{"MI325X", "MI300X", "MI250X"} {
		if strings.Contains(name, model) {
			return model, true
		}
	}
	return "", false
}

// expand turns one GPU type into the configurations RunPod sells: a single
// on-demand GPU, a single spot GPU, and the multi-GPU clusters.
func expand(gt gpuType, model string) []offering.Offering {
	price := onDemandPrice(gt)
	spotPrice := spotPriceOf(gt, price)
	memory := gt.MemoryInGB
	if memory == 0 {
		memory = 192
	}

	offerings := []offering.Offering{
		{
			Provider: Name, Class: offering.ClassGPU, Model: model,
			InstanceType: fmt.Sprintf("%s-1x", model), UnitCount: 1,
			MemoryGB: memory, VCPUs: vcpusPerGPU, PricePerHour: price,
			Region: "Global", Available: true, StockStatus: "check_availability",
			ProviderID: gt.ID,
			Features:   []string{"On-demand pricing", "Pre-installed PyTorch + ROCm"},
		},
		{
			Provider: Name, Class: offering.ClassGPU, Model: model,
			InstanceType: fmt.Sprintf("%s-spot", model), UnitCount: 1,
			MemoryGB: memory, VCPUs: vcpusPerGPU, PricePerHour: spotPrice,
			Region: "Global (Spot)", Spot: true, Available: true, StockStatus: "check_availability",
			ProviderID: gt.ID,
			Features:   []string{"Spot pricing", "Interruptible"},
		},
	}

	for _, count := range multiGPUCounts {
		offerings = append(offerings, offering.Offering{
			Provider: Name, Class: offering.ClassGPU, Model: model,
			InstanceType: fmt.Sprintf("%s-%dx", model, count), UnitCount: count,
			MemoryGB: memory, VCPUs: vcpusPerGPU * count, PricePerHour: price * float64(count),
			Region: "Global", Available: true, StockStatus: "check_availability",
			ProviderID: gt.ID,
			Features: []string{
				fmt.Sprintf("%dx %s cluster", count, model),
				fmt.Sprintf("%.0fGB total memory", memory*float64(count)),
			},
		})
	}
	return offerings
}

func onDemandPrice(gt gpuType) float64 {
	if gt.SecurePrice != nil && *gt.SecurePrice > 0 {
		return *gt.SecurePrice
	}
	if gt.CommunityPrice != nil && *gt.CommunityPrice > 0 {
		return *gt.CommunityPrice
	}
	return fallbackHourlyPrice
}

func spotPriceOf(gt gpuType, onDemand float64) float64 {
	if gt.SecureSpotPrice != nil && *gt.SecureSpotPrice > 0 {
		return *gt.SecureSpotPrice
	}
	if gt.CommunitySpotPrice != nil && *gt.CommunitySpotPrice > 0 {
		return *gt.CommunitySpotPrice
	}
	return onDemand * spotDiscount
}

const deployMutation = `
mutation DeployPod($gpuTypeId: String!, $gpuCount: Int!) {
    podFindAndDeployOnDemand(input: {gpuTypeId: $gpuTypeId, gpuCount: $gpuCount, cloudType: SECURE}) {
        id
        machineId
    }
}`

type deployResponse struct {
	Data *struct {
		Pod *struct {
			ID        string `json:"id"`
			MachineID string `json:"machineId"`
		} `json:"podFindAndDeployOnDemand"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Deploy provisions the offering with a single API call. There is no
// polling and no rollback; RunPod either allocates a pod or reports why
// not.
func (p *Provider) Deploy(ctx context.Context, o offering.Offering) (*common.DeployResult, error) {
	req := graphqlRequest{
		Query: deployMutation,
		Variables: map[string]any{
			"gpuTypeId": o.ProviderID,
			"gpuCount":  o.UnitCount,
		},
	}

	var resp deployResponse
	if err := p.client.PostJSON(ctx, p.url, req, &resp); err != nil {
		return nil, fmt.Errorf("runpod deploy failed: %w", err)
	}
	if len(resp.Errors) > 0 {
		return nil, camderrors.Newf(camderrors.ErrCodeParse, "runpod deploy error: %s", resp.Errors[0].Message)
	}
	if resp.Data == nil || resp.Data.Pod == nil {
		return nil, camderrors.New(camderrors.ErrCodeParse, "runpod deploy response has no pod")
	}

	return &common.DeployResult{
		Provider:     Name,
		InstanceID:   resp.Data.Pod.ID,
		InstanceType: o.InstanceType,
		PricePerHour: o.PricePerHour,
		Message:      fmt.Sprintf("pod %s allocated on machine %s", resp.Data.Pod.ID, resp.Data.Pod.MachineID),
	}, nil
}
