package offering

import "strings"

// Filter restricts an aggregation to a subset of offerings.
// The zero value matches everything.
type Filter struct {
	// Class restricts to a single hardware class when non-empty.
	Class Class

	// Model restricts to a specific hardware model (case-insensitive)
	// when non-empty.
	Model string

	// AvailableOnly drops offerings marked unavailable.
	AvailableOnly bool
}

// Matches reports whether the offering passes the filter.
func (f Filter) Matches(o Offering) bool {
	if f.Class != "" && o.Class != f.Class {
		return false
	}
	if f.Model != "" && !strings.EqualFold(f.Model, o.Model) {
		return false
	}
	if f.AvailableOnly && !o.Available {
		return false
	}
	return true
}

// Apply returns the offerings that pass the filter, preserving order.
func (f Filter) Apply(offerings []Offering) []Offering {
	if f == (Filter{}) {
		return offerings
	}
	out := make([]Offering, 0, len(offerings))
	for _, o := range offerings {
		if f.Matches(o) {
			out = append(out, o)
		}
	}
	return out
}

// Key returns a stable cache-key fragment for the filter so differently
// filtered queries never share a cache slot.
func (f Filter) Key() string {
	class := "all"
	if f.Class != "" {
		class = string(f.Class)
	}
	parts := []string{class}
	if f.Model != "" {
		parts = append(parts, strings.ToLower(f.Model))
	}
	if f.AvailableOnly {
		parts = append(parts, "available")
	}
	return strings.Join(parts, ":")
}
