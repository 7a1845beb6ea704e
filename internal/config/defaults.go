package config

import (
	_ "embed"
)

//go:embed defaults/t2048.yaml
var defaultYAML []byte

// Default returns the hard-coded configuration used when no YAML can be read.
func Default() Config {
	return Config{
		Variant: "classic",
		Preset:  string(PresetNormal),
		Scores: ScoresConfig{
			Limit: 5,
		},
		Input: InputConfig{
			TickRate:       30,
			SwipeThreshold: 2,
			Mouse:          true,
		},
		Feedback: FeedbackConfig{
			Bell: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
