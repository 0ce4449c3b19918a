package aggregator

import (
	"context"
	"errors"
	"testing"
	"time"

	camderrors "github.com/cheapamd/camd/pkg/errors"
	"github.com/cheapamd/camd/pkg/offering"
	"github.com/cheapamd/camd/pkg/provider"
)

// fakeProvider is a scripted adapter for aggregation tests.
type fakeProvider struct {
	name      string
	offerings []offering.Offering
	err       error
	delay     time.Duration
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Fetch(ctx context.Context) ([]offering.Offering, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.offerings, nil
}

func gpuOffering(prov string, price float64, units int) offering.Offering {
	return offering.Offering{
		Provider: prov, Class: offering.ClassGPU, Model: "MI300X",
		InstanceType: "x", UnitCount: units, PricePerHour: price, Available: true,
	}
}

func TestCollect_MergesAllProviders(t *testing.T) {
	agg := New([]provider.Provider{
		&fakeProvider{name: "a", offerings: []offering.Offering{gpuOffering("a", 2.49, 1)}},
		&fakeProvider{name: "b", offerings: []offering.Offering{gpuOffering("b", 1.99, 1)}},
	})

	got := agg.Collect(context.Background(), offering.Filter{})
	if len(got) != 2 {
		t.Fatalf("expected 2 offerings, got %d", len(got))
	}
	if got[0].Provider != "b" {
		t.Errorf("expected cheapest (b) first, got %s", got[0].Provider)
	}
}

func TestCollect_PartialFailure(t *testing.T) {
	agg := New([]provider.Provider{
		&fakeProvider{name: "ok", offerings: []offering.Offering{gpuOffering("ok", 2.49, 1)}},
		&fakeProvider{name: "down", err: camderrors.New(camderrors.ErrCodeNetwork, "unreachable")},
	})

	got := agg.Collect(context.Background(), offering.Filter{})

	if len(got) != 1 {
		t.Fatalf("expected 1 offering from the surviving provider, got %d", len(got))
	}
	if got[0].Provider != "ok" {
		t.Errorf("unexpected provider %s", got[0].Provider)
	}
}

func TestCollect_TotalFailureIsEmptyNotError(t *testing.T) {
	agg := New([]provider.Provider{
		&fakeProvider{name: "a", err: errors.New("boom")},
		&fakeProvider{name: "b", err: errors.New("boom")},
	})

	got := agg.Collect(context.Background(), offering.Filter{})
	if len(got) != 0 {
		t.Errorf("expected empty result, got %d offerings", len(got))
	}
}

func TestCollect_FilterRestrictsClass(t *testing.T) {
	cpu := offering.Offering{
		Provider: "a", Class: offering.ClassCPU, Model: "EPYC 9654",
		InstanceType: "c", UnitCount: 1, PricePerHour: 0.5, Available: true,
	}
	agg := New([]provider.Provider{
		&fakeProvider{name: "a", offerings: []offering.Offering{gpuOffering("a", 2.49, 1), cpu}},
	})

	got := agg.Collect(context.Background(), offering.Filter{Class: offering.ClassCPU})
	if len(got) != 1 {
		t.Fatalf("expected 1 cpu offering, got %d", len(got))
	}
	for _, o := range got {
		if o.Class == offering.ClassGPU {
			t.Fatal("cpu filter returned a GPU offering")
		}
	}
}

func TestCollect_SlowProviderTimesOutAsFailure(t *testing.T) {
	agg := New([]provider.Provider{
		&fakeProvider{name: "fast", offerings: []offering.Offering{gpuOffering("fast", 2.49, 1)}},
		&fakeProvider{name: "slow", delay: time.Second, offerings: []offering.Offering{gpuOffering("slow", 0.1, 1)}},
	})
	agg.FetchTimeout = 50 * time.Millisecond

	got := agg.Collect(context.Background(), offering.Filter{})
	if len(got) != 1 || got[0].Provider != "fast" {
		t.Errorf("expected only the fast provider's offering, got %v", got)
	}
}

func TestCollect_TagsOfferingsMissingProvider(t *testing.T) {
	untagged := offering.Offering{
		Class: offering.ClassGPU, Model: "MI300X",
		InstanceType: "x", UnitCount: 1, PricePerHour: 2.49, Available: true,
	}
	agg := New([]provider.Provider{
		&fakeProvider{name: "acme", offerings: []offering.Offering{untagged}},
	})

	got := agg.Collect(context.Background(), offering.Filter{})
	if len(got) != 1 {
		t.Fatalf("expected the untagged offering to survive, got %d offerings", len(got))
	}
	if got[0].Provider != "acme" {
		t.Errorf("provider = %q, want the source adapter name", got[0].Provider)
	}
}

func TestCollect_DropsInvalidOfferings(t *testing.T) {
	bad := offering.Offering{Provider: "a", Class: offering.ClassGPU, UnitCount: 0, PricePerHour: 1}
	agg := New([]provider.Provider{
		&fakeProvider{name: "a", offerings: []offering.Offering{bad, gpuOffering("a", 2.49, 1)}},
	})

	got := agg.Collect(context.Background(), offering.Filter{})
	if len(got) != 1 {
		t.Errorf("expected invalid offering to be dropped, got %d", len(got))
	}
}

func TestCollect_DeterministicOrderAcrossRuns(t *testing.T) {
	// Same price per unit from two providers; completion order varies with
	// the injected delay but output order must not.
	make2 := func(aDelay, bDelay time.Duration) []offering.Offering {
		agg := New([]provider.Provider{
			&fakeProvider{name: "a", delay: aDelay, offerings: []offering.Offering{gpuOffering("a", 5.0, 2)}},
			&fakeProvider{name: "b", delay: bDelay, offerings: []offering.Offering{gpuOffering("b", 2.5, 1)}},
		})
		return agg.Collect(context.Background(), offering.Filter{})
	}

	first := make2(20*time.Millisecond, 0)
	second := make2(0, 20*time.Millisecond)

	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("expected 2 offerings each, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Provider != second[i].Provider {
			t.Fatalf("ordering depends on completion order: %v vs %v", first, second)
		}
	}
	if first[0].Provider != "a" {
		t.Errorf("tie must break by provider name, got %s first", first[0].Provider)
	}
}
