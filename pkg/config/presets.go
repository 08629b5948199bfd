package config

import (
	"fmt"
	"slices"
	"strings"
)

// MixPreset is a named operation mix.
type MixPreset struct {
	Name        string
	Description string
	Mix         MixConfig
}

var mixPresets = []MixPreset{
	{
		Name:        "mixed",
		Description: "Balanced mix that keeps the list size roughly stable",
		Mix:         DefaultMix(),
	},
	{
		Name:        "append-heavy",
		Description: "Mostly appends, exercising tail growth and new blocks",
		Mix:         MixConfig{Append: 70, Insert: 5, Remove: 5, Get: 15, Iterate: 1, Compact: 4},
	},
	{
		Name:        "churn",
		Description: "Random inserts and removes, exercising neighbour moves and splits",
		Mix:         MixConfig{Append: 5, Insert: 45, Remove: 45, Get: 3, Compact: 2},
	},
	{
		Name:        "read-heavy",
		Description: "Mostly indexed reads and writes over a slowly changing list",
		Mix:         MixConfig{Append: 5, Insert: 5, Remove: 5, Get: 60, Set: 20, Iterate: 5},
	},
	{
		Name:        "iterate",
		Description: "Frequent full traversals with removal through the iterator",
		Mix:         MixConfig{Append: 30, Insert: 20, Remove: 10, Get: 5, Iterate: 30, Compact: 5},
	},
}

// MixPresets returns the built-in operation mixes.
func MixPresets() []MixPreset {
	return slices.Clone(mixPresets)
}

// LookupMix returns the mix of the named preset.
func LookupMix(name string) (MixConfig, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, p := range mixPresets {
		if p.Name == name {
			return p.Mix, nil
		}
	}
	return MixConfig{}, fmt.Errorf("unknown mix preset %q (valid: %s)", name, strings.Join(MixPresetNames(), ", "))
}

// MixPresetNames returns the preset names in sorted order.
func MixPresetNames() []string {
	names := make([]string, 0, len(mixPresets))
	for _, p := range mixPresets {
		names = append(names, p.Name)
	}
	slices.Sort(names)
	return names
}
