// Package config provides YAML-based configuration loading for term2048,
// with environment overrides and difficulty presets.
package config

// Config contains all user-tunable settings.
type Config struct {
	Variant  string         `yaml:"variant" env:"T2048_VARIANT"`
	Preset   string         `yaml:"preset" env:"T2048_PRESET"`
	Rules    RulesConfig    `yaml:"rules"`
	Scores   ScoresConfig   `yaml:"scores"`
	Input    InputConfig    `yaml:"input"`
	Feedback FeedbackConfig `yaml:"feedback"`
	Log      LogConfig      `yaml:"log"`
}

// RulesConfig overrides the selected variant's rules.
// Zero values keep the variant default.
type RulesConfig struct {
	Size       int     `yaml:"size" env:"T2048_SIZE"`
	WinTile    int     `yaml:"win_tile" env:"T2048_WIN_TILE"`
	Spawn4Prob float64 `yaml:"spawn4_prob" env:"T2048_SPAWN4_PROB"` // 0 means use the preset; it never disables 4s
	Endless    bool    `yaml:"endless" env:"T2048_ENDLESS"`         // Disables the win tile
}

// ScoresConfig controls the high-score table.
type ScoresConfig struct {
	Limit  int    `yaml:"limit" env:"T2048_SCORES_LIMIT"` // Entries kept per variant
	DBPath string `yaml:"db_path" env:"T2048_DB"`         // Empty means ~/.t2048/scores.db
}

// InputConfig controls input sampling.
type InputConfig struct {
	TickRate       int  `yaml:"tick_rate" env:"T2048_FPS"`
	SwipeThreshold int  `yaml:"swipe_threshold" env:"T2048_SWIPE_THRESHOLD"` // In terminal cells
	Mouse          bool `yaml:"mouse" env:"T2048_MOUSE"`
}

// FeedbackConfig controls the terminal bell.
type FeedbackConfig struct {
	Bell       bool `yaml:"bell" env:"T2048_BELL"`
	BellOnMove bool `yaml:"bell_on_move" env:"T2048_BELL_ON_MOVE"`
}

// LogConfig controls the application log.
type LogConfig struct {
	Level string `yaml:"level" env:"T2048_LOG_LEVEL"`
	File  string `yaml:"file" env:"T2048_LOG_FILE"` // Empty means ~/.t2048/t2048.log while the TUI runs
}

// Limits for validated values.
const (
	MinSize = 2
	MaxSize = 8
)
