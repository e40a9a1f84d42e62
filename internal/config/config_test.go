package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/physics"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Family != "lorenz" {
		t.Errorf("expected family lorenz, got %s", cfg.Family)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
	if len(cfg.Families) != physics.Count {
		t.Errorf("expected %d families, got %d", physics.Count, len(cfg.Families))
	}
	if cfg.AspectRatio() != 1.0 {
		t.Errorf("expected aspect 1.0, got %f", cfg.AspectRatio())
	}
}

func TestGetPreset(t *testing.T) {
	fc, ok := GetPreset("lorenz")
	if !ok {
		t.Fatal("expected preset, got none")
	}
	if fc.Params.A != 10 || fc.Params.B != 28 || fc.Params.C != 8.0/3.0 {
		t.Errorf("unexpected lorenz params: %+v", fc.Params)
	}
	if fc.Initial.Point() != (dynamo.Point3{X: 0.8, Y: 0.5, Z: 4.1}) {
		t.Errorf("unexpected lorenz seed: %v", fc.Initial)
	}

	byID, ok := GetPreset("2")
	if !ok || byID.MaxLength != 3000 {
		t.Errorf("expected halvorsen by id with max length 3000, got %+v", byID)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if _, ok := GetPreset("rossler"); ok {
		t.Error("expected no preset for unknown family")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	want := []string{"lorenz", "banlue", "halvorsen", "aizawa", "luchen", "genesio"}
	if len(names) != len(want) {
		t.Fatalf("expected %d presets, got %d", len(want), len(names))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("index %d: expected %s, got %s", i, want[i], names[i])
		}
	}
}

func TestPresetsAreSane(t *testing.T) {
	for name, fc := range Presets {
		if fc.Dt <= 0 || fc.Zoom <= 0 || fc.MaxLength < 1 {
			t.Errorf("%s: invalid preset %+v", name, fc)
		}
	}
}

func TestLoadMergesFamilyOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attractors.yaml")
	data := `
family: aizawa
screen:
  width: 800
  height: 600
families:
  lorenz:
    params:
      b: 99.5
  aizawa:
    max_length: 250
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Family != "aizawa" {
		t.Errorf("expected family aizawa, got %s", cfg.Family)
	}
	if cfg.Screen.Width != 800 || cfg.Screen.Height != 600 {
		t.Errorf("unexpected screen %+v", cfg.Screen)
	}
	if cfg.Frustum.Near != DefaultNear {
		t.Errorf("expected default near, got %f", cfg.Frustum.Near)
	}

	lorenz := cfg.FamilyConfig(physics.Lorenz)
	if lorenz.Params.B != 99.5 {
		t.Errorf("expected overridden b 99.5, got %f", lorenz.Params.B)
	}
	if lorenz.Params.A != 10 || lorenz.Dt != 0.005 {
		t.Errorf("override should keep other preset fields, got %+v", lorenz)
	}
	if got := cfg.FamilyConfig(physics.Aizawa).MaxLength; got != 250 {
		t.Errorf("expected aizawa max length 250, got %d", got)
	}
	if got := cfg.FamilyConfig(physics.Genesio); got != Presets["genesio"] {
		t.Errorf("untouched family should equal preset, got %+v", got)
	}
	if Presets["lorenz"].Params.B != 28 {
		t.Error("loading a config must not mutate presets")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown family", "family: rossler\n"},
		{"unknown family override", "families:\n  rossler:\n    dt: 0.1\n"},
		{"zero dt", "families:\n  lorenz:\n    dt: 0\n"},
		{"zero max length", "families:\n  genesio:\n    max_length: 0\n"},
		{"bad rotation mode", "render:\n  rotation_mode: sometimes\n"},
		{"bad frustum", "frustum:\n  near: 1\n  far: 0.5\n"},
		{"bad gradient", "gradient:\n  initial: [300, 0, 0, 0]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "c.yaml")
			if err := os.WriteFile(path, []byte(tt.data), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if !errors.Is(err, dynamo.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := DefaultConfig()
	cfg.Family = "halvorsen"
	cfg.Render.RotationMode = RotationPerFrame
	fc := cfg.Families["halvorsen"]
	fc.Zoom = 0.33
	cfg.Families["halvorsen"] = fc

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Family != "halvorsen" || loaded.Render.RotationMode != RotationPerFrame {
		t.Errorf("unexpected loaded config: %+v", loaded)
	}
	if loaded.FamilyConfig(physics.Halvorsen).Zoom != 0.33 {
		t.Errorf("expected zoom 0.33, got %f", loaded.FamilyConfig(physics.Halvorsen).Zoom)
	}
	if loaded.Gradient != cfg.Gradient {
		t.Errorf("gradient mismatch: %+v vs %+v", loaded.Gradient, cfg.Gradient)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
