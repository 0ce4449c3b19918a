package hardware

import (
	"strings"
	"testing"

	"github.com/cheapamd/camd/pkg/offering"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		input string
		model string
		ok    bool
	}{
		{"MI300X", "MI300X", true},
		{"mi300x", "MI300X", true},
		{"  Mi300X ", "MI300X", true},
		{"EPYC 9654", "EPYC 9654", true},
		{"epyc9654", "EPYC 9654", true},
		{"H100", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			spec, ok := Lookup(tt.input)
			if ok != tt.ok {
				t.Fatalf("Lookup(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && spec.Model != tt.model {
				t.Errorf("Lookup(%q) = %s, want %s", tt.input, spec.Model, tt.model)
			}
		})
	}
}

func TestLookup_SpecFields(t *testing.T) {
	spec, ok := Lookup("MI300X")
	if !ok {
		t.Fatal("MI300X missing from catalog")
	}
	if spec.Class != offering.ClassGPU {
		t.Errorf("MI300X class = %s, want gpu", spec.Class)
	}
	if spec.MemoryGB != 192 {
		t.Errorf("MI300X memory = %v, want 192", spec.MemoryGB)
	}
	if spec.ComputeUnits != 304 {
		t.Errorf("MI300X compute units = %d, want 304", spec.ComputeUnits)
	}
}

func TestSuggest(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"MI300", "MI300X"},
		{"mi300z", "MI300X"},
		{"MI325", "MI325X"},
		{"completely-unrelated-name", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Suggest(tt.input); got != tt.want {
				t.Errorf("Suggest(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestUnknownModelError(t *testing.T) {
	err := UnknownModelError("MI300")
	if !strings.Contains(err.Error(), "did you mean MI300X") {
		t.Errorf("expected suggestion in error, got %q", err.Error())
	}

	err = UnknownModelError("zzzzzzzz")
	if !strings.Contains(err.Error(), "supported models") {
		t.Errorf("expected model list in error, got %q", err.Error())
	}
}

func TestModels_Sorted(t *testing.T) {
	models := Models()
	if len(models) < 3 {
		t.Fatalf("expected at least 3 catalog entries, got %d", len(models))
	}
	for i := 1; i < len(models); i++ {
		if models[i-1] > models[i] {
			t.Errorf("models not sorted: %s > %s", models[i-1], models[i])
		}
	}
}
