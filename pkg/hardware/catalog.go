// Package hardware provides the static AMD hardware specification catalog
// used by the info command. Lookups are local only and never touch the
// network.
package hardware

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/cheapamd/camd/pkg/offering"
)

// Spec describes one AMD hardware model.
type Spec struct {
	Model            string         `json:"model" yaml:"model"`
	Class            offering.Class `json:"class" yaml:"class"`
	Memory           string         `json:"memory" yaml:"memory"`
	MemoryGB         float64        `json:"memoryGB" yaml:"memoryGB"`
	MemoryBandwidth  string         `json:"memoryBandwidth,omitempty" yaml:"memoryBandwidth,omitempty"`
	ComputeUnits     int            `json:"computeUnits,omitempty" yaml:"computeUnits,omitempty"`
	Cores            int            `json:"cores,omitempty" yaml:"cores,omitempty"`
	TFLOPSFP16       float64        `json:"tflopsFP16,omitempty" yaml:"tflopsFP16,omitempty"`
	Architecture     string         `json:"architecture" yaml:"architecture"`
	TDPWatts         int            `json:"tdpWatts" yaml:"tdpWatts"`
	ComparableNvidia string         `json:"comparableNvidia,omitempty" yaml:"comparableNvidia,omitempty"`
	UseCases         []string       `json:"useCases" yaml:"useCases"`
}

var catalog = map[string]Spec{
	"MI300X": {
		Model:            "MI300X",
		Class:            offering.ClassGPU,
		Memory:           "192GB HBM3",
		MemoryGB:         192,
		MemoryBandwidth:  "5.3TB/s",
		ComputeUnits:     304,
		TFLOPSFP16:       1307.4,
		Architecture:     "CDNA 3",
		TDPWatts:         750,
		ComparableNvidia: "H100/H200",
		UseCases:         []string{"LLM Training", "Inference", "HPC"},
	},
	"MI325X": {
		Model:            "MI325X",
		Class:            offering.ClassGPU,
		Memory:           "256GB HBM3E",
		MemoryGB:         256,
		MemoryBandwidth:  "6.0TB/s",
		ComputeUnits:     304,
		TFLOPSFP16:       1307.4,
		Architecture:     "CDNA 3",
		TDPWatts:         1000,
		ComparableNvidia: "H200",
		UseCases:         []string{"LLM Training", "Inference"},
	},
	"MI250X": {
		Model:            "MI250X",
		Class:            offering.ClassGPU,
		Memory:           "128GB HBM2E",
		MemoryGB:         128,
		MemoryBandwidth:  "3.2TB/s",
		ComputeUnits:     220,
		TFLOPSFP16:       383,
		Architecture:     "CDNA 2",
		TDPWatts:         560,
		ComparableNvidia: "A100",
		UseCases:         []string{"HPC", "Training"},
	},
	"EPYC 9654": {
		Model:        "EPYC 9654",
		Class:        offering.ClassCPU,
		Memory:       "12-channel DDR5",
		MemoryGB:     0,
		Cores:        96,
		Architecture: "Zen 4",
		TDPWatts:     360,
		UseCases:     []string{"General Compute", "Virtualization", "HPC"},
	},
}

// Lookup returns the spec for a model name. Matching is case-insensitive
// and tolerates missing spaces ("epyc9654").
func Lookup(model string) (Spec, bool) {
	normalized := normalize(model)
	for name, spec := range catalog {
		if normalize(name) == normalized {
			return spec, true
		}
	}
	return Spec{}, false
}

// Models returns all catalog model names, sorted.
func Models() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Suggest returns the catalog model closest to the given (unknown) name,
// or "" when nothing is close enough to be a plausible typo.
func Suggest(model string) string {
	const maxDistance = 3

	normalized := normalize(model)
	best := ""
	bestDist := maxDistance + 1
	for _, name := range Models() {
		d := levenshtein.ComputeDistance(normalized, normalize(name))
		if d < bestDist {
			best = name
			bestDist = d
		}
	}
	if bestDist > maxDistance {
		return ""
	}
	return best
}

func normalize(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "")
}

// UnknownModelError formats the standard unknown-model message, including a
// suggestion when one exists.
func UnknownModelError(model string) error {
	if s := Suggest(model); s != "" {
		return fmt.Errorf("unknown hardware model %q (did you mean %s?)", model, s)
	}
	return fmt.Errorf("unknown hardware model %q, supported models: %s", model, strings.Join(Models(), ", "))
}
