package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed" // No speed-up on reflections
)

// ParsePreset converts a CLI value to a preset. Empty means no preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// IsFixedPreset returns true if the preset disables speed progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyBreakoutPreset modifies the physics section based on a difficulty preset.
// Normal keeps the loaded values.
func ApplyBreakoutPreset(cfg *BreakoutConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Physics.BaseSpeed = 3
		cfg.Physics.MaxSpeed = 8
		cfg.Physics.Acceleration = 0.015
		cfg.Physics.PaddleStep = 6
	case DifficultyHard:
		cfg.Physics.BaseSpeed = 5
		cfg.Physics.MaxSpeed = 12
		cfg.Physics.Acceleration = 0.03
	case DifficultyFixed:
		cfg.Physics.Acceleration = 0
	}

	if cfg.Physics.MaxSpeed < cfg.Physics.BaseSpeed {
		cfg.Physics.MaxSpeed = cfg.Physics.BaseSpeed
	}
}
