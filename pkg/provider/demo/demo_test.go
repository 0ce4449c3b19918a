package demo

import (
	"context"
	"reflect"
	"testing"

	"github.com/cheapamd/camd/pkg/offering"
)

func TestFetch_NeverFailsAndNeedsNoCredentials(t *testing.T) {
	p := NewProvider()

	offerings, err := p.Fetch(context.Background())
	if err != nil {
		t.Fatalf("demo fetch must never fail, got %v", err)
	}
	if len(offerings) == 0 {
		t.Fatal("demo fetch must return a non-empty sequence")
	}
}

func TestFetch_IsFixed(t *testing.T) {
	p := NewProvider()

	first, _ := p.Fetch(context.Background())
	second, _ := p.Fetch(context.Background())

	if !reflect.DeepEqual(first, second) {
		t.Error("demo data must be identical across calls")
	}
}

func TestOfferings_CoverBothClassesAndAreValid(t *testing.T) {
	var gpus, cpus, spot, unavailable int
	for _, o := range Offerings() {
		if err := o.Validate(); err != nil {
			t.Errorf("invalid demo offering: %v", err)
		}
		if o.Provider != Name {
			t.Errorf("demo offering tagged %q, want %q", o.Provider, Name)
		}
		switch o.Class {
		case offering.ClassGPU:
			gpus++
		case offering.ClassCPU:
			cpus++
		}
		if o.Spot {
			spot++
		}
		if !o.Available {
			unavailable++
		}
	}

	if gpus == 0 || cpus == 0 {
		t.Errorf("demo data must cover both classes, got gpu=%d cpu=%d", gpus, cpus)
	}
	if spot == 0 {
		t.Error("demo data must include a spot offering")
	}
	if unavailable == 0 {
		t.Error("demo data must include an unavailable offering")
	}
}

func TestDeploy_ReturnsCannedResult(t *testing.T) {
	p := NewProvider()

	result, err := p.Deploy(context.Background(), Offerings()[1])
	if err != nil {
		t.Fatalf("demo deploy must not fail: %v", err)
	}
	if result.Provider != Name || result.InstanceID == "" {
		t.Errorf("unexpected result: %+v", result)
	}
}
