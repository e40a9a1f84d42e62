package config

import (
	"sort"

	"github.com/san-kum/attractors/internal/physics"
)

// Presets holds the compiled-in constants of each family, keyed by family
// name. Midpoints were estimated from the observed bounding box of long runs.
var Presets = map[string]FamilyConfig{
	"lorenz": {
		Dt: 0.005, Zoom: 0.17,
		Params:    ParamsConfig{A: 10.0, B: 28.0, C: 8.0 / 3.0},
		Initial:   Vec3{0.8, 0.5, 4.1},
		Midpoint:  Vec3{1.94, 3.53, 25.57},
		Rotation:  RotationConfig{DAngleY: 0.000001},
		MaxLength: 1000,
	},
	"banlue": {
		Dt: 0.02, Zoom: 0.25,
		Params:    ParamsConfig{A: 2},
		Initial:   Vec3{0.8, 0.5, 0.1},
		Midpoint:  Vec3{-0.18, -0.34, 0.75},
		Rotation:  RotationConfig{DAngleX: 0.000002, DAngleY: 0.000001},
		MaxLength: 1000,
	},
	"halvorsen": {
		Dt: 0.02, Zoom: 0.2,
		Params:    ParamsConfig{A: 1.97},
		Initial:   Vec3{0.8, 0.5, 4.1},
		Midpoint:  Vec3{-2.28, -3.88, -4.41},
		Rotation:  RotationConfig{DAngleX: 0.000002, DAngleY: 0.000001},
		MaxLength: 3000,
	},
	"aizawa": {
		Dt: 0.0145, Zoom: 0.65,
		Params:    ParamsConfig{A: 0.25, B: 0.96, C: 3.5},
		Initial:   Vec3{0.01, 0.01, 0.01},
		Midpoint:  Vec3{-0.01, 0.05, 0.61},
		Rotation:  RotationConfig{DAngleY: 0.000001, DAngleZ: 0.0000005},
		MaxLength: 1000,
	},
	"luchen": {
		Dt: 0.0027, Zoom: 0.19,
		Params:    ParamsConfig{A: -10.0, B: -4.0, C: 18.1},
		Initial:   Vec3{0.8, 0.5, 4.1},
		Midpoint:  Vec3{3.29, 4.07, 18.24},
		Rotation:  RotationConfig{AngleX: 1.2, AngleY: 0.2, AngleZ: 4.2, DAngleY: 0.000001},
		MaxLength: 2000,
	},
	"genesio": {
		Dt: 0.022, Zoom: 0.75,
		Params:    ParamsConfig{A: 0.439, B: 1.1, C: 1.0},
		Initial:   Vec3{0.1, 0.1, 0.0},
		Midpoint:  Vec3{0.34, 0.14, 0.05},
		Rotation:  RotationConfig{DAngleY: 0.000002, DAngleZ: 0.000001},
		MaxLength: 1000,
	},
}

// GetPreset returns the compiled-in constants for a family name or id.
func GetPreset(family string) (FamilyConfig, bool) {
	f, err := physics.ParseFamily(family)
	if err != nil {
		return FamilyConfig{}, false
	}
	fc, ok := Presets[f.String()]
	return fc, ok
}

// ListPresets returns the preset names in family id order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		fi, _ := physics.ParseFamily(names[i])
		fj, _ := physics.ParseFamily(names[j])
		return fi < fj
	})
	return names
}

func clonePresets() map[string]FamilyConfig {
	m := make(map[string]FamilyConfig, len(Presets))
	for k, v := range Presets {
		m[k] = v
	}
	return m
}
