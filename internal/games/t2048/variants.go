// Package t2048 implements a 2048 game session: a small state machine that
// drives the grid engine, tracks the score and reports events.
package t2048

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/term2048/internal/config"
	"github.com/vovakirdan/term2048/internal/games/t2048/engine"
)

// Variant is a named rule set. Scores are kept per variant ID.
type Variant struct {
	ID          string
	Name        string
	Description string
	Rules       engine.Rules
}

// Variants lists the built-in rule sets in menu order.
var Variants = []Variant{
	{
		ID:          "classic",
		Name:        "Classic",
		Description: "4x4 board, reach 2048",
		Rules:       engine.Rules{Size: 4, WinTile: 2048, Spawn4Prob: engine.DefaultSpawn4Prob},
	},
	{
		ID:          "mini",
		Name:        "Mini",
		Description: "3x3 board, reach 256",
		Rules:       engine.Rules{Size: 3, WinTile: 256, Spawn4Prob: engine.DefaultSpawn4Prob},
	},
	{
		ID:          "big",
		Name:        "Big",
		Description: "5x5 board, reach 4096",
		Rules:       engine.Rules{Size: 5, WinTile: 4096, Spawn4Prob: engine.DefaultSpawn4Prob},
	},
	{
		ID:          "endless",
		Name:        "Endless",
		Description: "4x4 board, no target",
		Rules:       engine.Rules{Size: 4, WinTile: 0, Spawn4Prob: engine.DefaultSpawn4Prob},
	},
}

// VariantCount returns the number of built-in variants.
func VariantCount() int {
	return len(Variants)
}

// GetVariant returns the variant at the given index (0-based).
// Returns nil if index is out of range.
func GetVariant(index int) *Variant {
	if index < 0 || index >= len(Variants) {
		return nil
	}
	return &Variants[index]
}

// VariantIDs returns the IDs of all built-in variants.
func VariantIDs() []string {
	ids := make([]string, len(Variants))
	for i, v := range Variants {
		ids[i] = v.ID
	}
	return ids
}

// VariantByID looks up a built-in variant. Empty selects classic.
func VariantByID(id string) (Variant, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return Variants[0], nil
	}
	for _, v := range Variants {
		if v.ID == id {
			return v, nil
		}
	}
	return Variant{}, fmt.Errorf("t2048: unknown variant %q (available: %s)", id, strings.Join(VariantIDs(), ", "))
}

// Endless reports whether the variant has no win tile.
func (v Variant) Endless() bool {
	return v.Rules.WinTile <= 0
}

// Resolve builds the effective variant from configuration.
// Rule overrides produce a separate score key so results stay comparable:
// a preset-only change appends the preset name, anything else "-custom".
func Resolve(cfg config.Config) (Variant, error) {
	base, err := VariantByID(cfg.Variant)
	if err != nil {
		return Variant{}, err
	}

	v := base
	if cfg.Rules.Size > 0 {
		v.Rules.Size = cfg.Rules.Size
	}
	if cfg.Rules.WinTile > 0 {
		v.Rules.WinTile = cfg.Rules.WinTile
	}
	if cfg.Rules.Endless {
		v.Rules.WinTile = 0
	}
	if cfg.Rules.Spawn4Prob > 0 {
		v.Rules.Spawn4Prob = cfg.Rules.Spawn4Prob
	}

	if v.Rules == base.Rules {
		return v, nil
	}

	onlySpawn := v.Rules.Size == base.Rules.Size && v.Rules.WinTile == base.Rules.WinTile
	if p, err := config.ParsePreset(cfg.Preset); err == nil && onlySpawn && v.Rules.Spawn4Prob == p.Spawn4Prob() {
		v.ID = base.ID + "-" + string(p)
		v.Name = fmt.Sprintf("%s (%s)", base.Name, p)
		return v, nil
	}

	v.ID = base.ID + "-custom"
	v.Name = base.Name + " (custom)"
	v.Description = describe(v.Rules)
	return v, nil
}

func describe(r engine.Rules) string {
	if r.WinTile <= 0 {
		return fmt.Sprintf("%dx%d board, no target", r.Size, r.Size)
	}
	return fmt.Sprintf("%dx%d board, reach %d", r.Size, r.Size, r.WinTile)
}
