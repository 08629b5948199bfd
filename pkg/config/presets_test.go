package config

import (
	"strings"
	"testing"
)

func TestLookupMix(t *testing.T) {
	mix, err := LookupMix("mixed")
	if err != nil {
		t.Fatalf("LookupMix(mixed) failed: %v", err)
	}
	if mix != DefaultMix() {
		t.Errorf("Expected mixed preset to equal DefaultMix, got %+v", mix)
	}

	if _, err := LookupMix("  CHURN "); err != nil {
		t.Errorf("Expected lookup to ignore case and whitespace, got: %v", err)
	}
}

func TestLookupMix_Unknown(t *testing.T) {
	_, err := LookupMix("nope")
	if err == nil {
		t.Fatal("Expected error for unknown preset")
	}
	if !strings.Contains(err.Error(), "append-heavy") {
		t.Errorf("Expected error to list valid presets, got: %v", err)
	}
}

func TestMixPresets_Valid(t *testing.T) {
	for _, p := range MixPresets() {
		cfg := GetDefaultConfig()
		cfg.Workload.Name = p.Name
		cfg.Workload.Mix = p.Mix
		if err := Validate(cfg); err != nil {
			t.Errorf("Preset %q does not validate: %v", p.Name, err)
		}
	}
}

func TestMixPresetNames_Sorted(t *testing.T) {
	names := MixPresetNames()
	want := []string{"append-heavy", "churn", "iterate", "mixed", "read-heavy"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("Expected %v, got %v", want, names)
	}
}
