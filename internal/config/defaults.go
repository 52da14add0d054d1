package config

import (
	_ "embed"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

// DefaultBreakoutConfig returns the default Breakout configuration.
// It mirrors defaults/breakout.yaml and is used when the embedded file
// cannot be parsed.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Physics: BreakoutPhysics{
			BaseSpeed:    4,
			MaxSpeed:     10,
			Acceleration: 0.02,
			PaddleStep:   5,
			Bounce:       BounceAngled,
		},
		Layout: BreakoutLayout{
			BallRadiusRatio:   0.012,
			PaddleWidthRatio:  0.15,
			PaddleHeight:      12,
			PaddleBottomGap:   20,
			LaunchGap:         10,
			LaunchAngleMin:    30,
			LaunchAngleMax:    90,
			DenseGridMinWidth: 600,
			DenseGrid:         GridSize{Rows: 5, Cols: 8},
			SparseGrid:        GridSize{Rows: 4, Cols: 5},
			BlockHeight:       20,
			BlockPadding:      8,
			ColumnInset:       10,
			TopMargin:         50,
		},
		Host: BreakoutHost{
			CellWidthPx:  8,
			CellHeightPx: 20,
			WideViewport: 800,
			WideArena:    ArenaSize{Width: 700, Height: 500},
			NarrowScaleW: 0.5,
			NarrowScaleH: 0.6,
			KeyHoldTicks: 8,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "breakout", "breakout_classic":
		return defaultBreakoutYAML
	default:
		return nil
	}
}
