package config

import "sort"

// Presets holds named parameter sets per scenario, keyed by scenario name
// and then preset name. Values are keyed by scenario parameter name.
var Presets = map[string]map[string]map[string]float64{
	"vectors": {
		"perpendicular": {"a_mag": 10, "a_angle": 0, "b_mag": 10, "b_angle": 90},
		"opposed":       {"a_mag": 10, "a_angle": 0, "b_mag": 10, "b_angle": 180},
		"textbook":      {"a_mag": 15, "a_angle": 30, "b_mag": 20, "b_angle": 120},
	},
	"projectile": {
		"max_range":  {"v0": 50, "angle": 45},
		"lob":        {"v0": 30, "angle": 75},
		"line_drive": {"v0": 40, "angle": 15},
		"quiz":       {"v0": 20, "angle": 45},
	},
	"forces": {
		"at_rest":   {"mass": 10, "force": 0, "angle": 0, "mu_static": 0.5, "mu_kinetic": 0.3},
		"breakaway": {"mass": 10, "force": 60, "angle": 0, "mu_static": 0.5, "mu_kinetic": 0.3},
		"lift_off":  {"mass": 5, "force": 100, "angle": 60, "mu_static": 0.5, "mu_kinetic": 0.3},
		"ice":       {"mass": 10, "force": 20, "angle": 0, "mu_static": 0.1, "mu_kinetic": 0.05},
	},
	"energy": {
		"drop_50": {"mass": 10, "height": 50},
		"tower":   {"mass": 1, "height": 100},
		"ledge":   {"mass": 50, "height": 10},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(scenario, preset string) map[string]float64 {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	values, ok := scenarioPresets[preset]
	if !ok {
		return nil
	}
	out := make(map[string]float64, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}

func ListPresets(scenario string) []string {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenarioPresets))
	for name := range scenarioPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
