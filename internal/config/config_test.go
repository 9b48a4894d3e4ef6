package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultScenario(t *testing.T) {
	sc := DefaultScenario()

	if sc.TimeStep <= 0 {
		t.Error("default scenario has invalid timestep")
	}
	if sc.Duration <= 0 {
		t.Error("default scenario has invalid duration")
	}
	if sc.Chemistry == "" {
		t.Error("default scenario has no chemistry")
	}
	if sc.AirFlowRate != 2*sc.FuelFlowRate {
		t.Errorf("default flows not at 2:1: %f/%f", sc.AirFlowRate, sc.FuelFlowRate)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")

	sc := DefaultScenario()
	sc.Chemistry = "sofc"
	sc.Setpoints.Voltage = 0.65
	sc.Seed = 99

	if err := Save(path, sc); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Chemistry != "sofc" || loaded.Setpoints.Voltage != 0.65 || loaded.Seed != 99 {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}

func TestLoadFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("chemistry: afc\n"), 0644); err != nil {
		t.Fatal(err)
	}

	sc, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if sc.Chemistry != "afc" {
		t.Errorf("expected afc, got %s", sc.Chemistry)
	}
	if sc.Duration != DefaultDuration || sc.TimeStep != DefaultTimeStep {
		t.Error("unspecified fields should keep defaults")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestPresets(t *testing.T) {
	for _, name := range ListPresets() {
		sc := GetPreset(name)
		if sc == nil {
			t.Fatalf("preset %q missing", name)
		}
		if sc.Duration <= 0 || sc.TimeStep <= 0 {
			t.Errorf("preset %q has invalid timing", name)
		}
		if sc.Disturbance == "" {
			t.Errorf("preset %q has no disturbance schedule", name)
		}
	}

	if GetPreset("afterburner") != nil {
		t.Error("expected nil for unknown preset")
	}

	// GetPreset returns a copy, not the shared map entry.
	a := GetPreset("startup")
	a.Duration = 1
	if GetPreset("startup").Duration == 1 {
		t.Error("preset mutation leaked into the shared table")
	}
}
