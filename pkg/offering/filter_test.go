package offering

import "testing"

func TestFilter_Apply(t *testing.T) {
	offerings := []Offering{
		{Provider: "a", Class: ClassGPU, Model: "MI300X", Available: true},
		{Provider: "b", Class: ClassCPU, Model: "EPYC 9654", Available: true},
		{Provider: "c", Class: ClassGPU, Model: "MI300X", Available: false},
	}

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"empty matches all", Filter{}, 3},
		{"gpu only", Filter{Class: ClassGPU}, 2},
		{"cpu only", Filter{Class: ClassCPU}, 1},
		{"model case-insensitive", Filter{Model: "mi300x"}, 2},
		{"available only", Filter{AvailableOnly: true}, 2},
		{"combined", Filter{Class: ClassGPU, AvailableOnly: true}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply(offerings)
			if len(got) != tt.want {
				t.Errorf("Apply() returned %d offerings, want %d", len(got), tt.want)
			}
			for _, o := range got {
				if !tt.filter.Matches(o) {
					t.Errorf("offering %+v should not have passed filter", o)
				}
			}
		})
	}
}

func TestFilter_CPUFilterExcludesGPU(t *testing.T) {
	offerings := []Offering{
		{Provider: "a", Class: ClassGPU},
		{Provider: "b", Class: ClassCPU},
	}

	for _, o := range (Filter{Class: ClassCPU}).Apply(offerings) {
		if o.Class == ClassGPU {
			t.Fatal("cpu filter returned a GPU offering")
		}
	}
}

func TestFilter_Key(t *testing.T) {
	if (Filter{}).Key() != "all" {
		t.Errorf("empty filter key = %q, want all", (Filter{}).Key())
	}
	if (Filter{Class: ClassGPU}).Key() == (Filter{Class: ClassCPU}).Key() {
		t.Error("gpu and cpu filters must not share a key")
	}
	if (Filter{Class: ClassGPU}).Key() != (Filter{Class: ClassGPU}).Key() {
		t.Error("filter key must be stable")
	}
}
