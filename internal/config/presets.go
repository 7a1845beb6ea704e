package config

import (
	"fmt"
	"strings"
)

// Preset selects how often new tiles are 4s.
type Preset string

const (
	PresetEasy   Preset = "easy"
	PresetNormal Preset = "normal"
	PresetHard   Preset = "hard"
)

// Presets lists presets in menu order.
var Presets = []Preset{PresetEasy, PresetNormal, PresetHard}

// ParsePreset converts a preset name. Empty selects normal.
func ParsePreset(s string) (Preset, error) {
	switch Preset(strings.ToLower(strings.TrimSpace(s))) {
	case PresetEasy:
		return PresetEasy, nil
	case PresetNormal, "":
		return PresetNormal, nil
	case PresetHard:
		return PresetHard, nil
	}
	return "", fmt.Errorf("config: unknown preset %q (use easy, normal or hard)", s)
}

// Spawn4Prob returns the probability of spawning a 4 under the preset.
func (p Preset) Spawn4Prob() float64 {
	switch p {
	case PresetEasy:
		return 0.05
	case PresetHard:
		return 0.25
	default:
		return 0.10
	}
}

// ApplyPreset sets the preset and its spawn probability, replacing any
// explicit spawn4_prob.
func ApplyPreset(cfg *Config, p Preset) {
	cfg.Preset = string(p)
	cfg.Rules.Spawn4Prob = p.Spawn4Prob()
}
