// Package config provides YAML-based game configuration loading and
// difficulty presets for the arcade.
package config

import (
	"errors"
	"fmt"
	"math"
)

// Bounce profiles for the paddle.
const (
	BounceAngled = "angled" // Steer by impact offset (canonical)
	BounceFixed  = "fixed"  // Plain vertical reflection
)

// BreakoutConfig contains all configuration for Breakout.
type BreakoutConfig struct {
	Physics BreakoutPhysics `yaml:"physics"`
	Layout  BreakoutLayout  `yaml:"layout"`
	Host    BreakoutHost    `yaml:"host"`
}

// BreakoutPhysics defines ball and paddle motion. Units are arena pixels per tick.
type BreakoutPhysics struct {
	BaseSpeed    float64 `yaml:"base_speed"`
	MaxSpeed     float64 `yaml:"max_speed"`
	Acceleration float64 `yaml:"acceleration"` // Fractional speed-up per reflection
	PaddleStep   float64 `yaml:"paddle_step"`
	Bounce       string  `yaml:"bounce"` // "angled" or "fixed"
}

// GridSize is a block grid shape.
type GridSize struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// BreakoutLayout defines how geometry is derived from the arena on reset.
type BreakoutLayout struct {
	BallRadiusRatio   float64  `yaml:"ball_radius_ratio"`  // of arena width
	PaddleWidthRatio  float64  `yaml:"paddle_width_ratio"` // of arena width
	PaddleHeight      float64  `yaml:"paddle_height"`
	PaddleBottomGap   float64  `yaml:"paddle_bottom_gap"` // between paddle and arena bottom
	LaunchGap         float64  `yaml:"launch_gap"`        // between ball and paddle at launch
	LaunchAngleMin    float64  `yaml:"launch_angle_min"`  // degrees from horizontal
	LaunchAngleMax    float64  `yaml:"launch_angle_max"`
	DenseGridMinWidth float64  `yaml:"dense_grid_min_width"`
	DenseGrid         GridSize `yaml:"dense_grid"`
	SparseGrid        GridSize `yaml:"sparse_grid"`
	BlockHeight       float64  `yaml:"block_height"`
	BlockPadding      float64  `yaml:"block_padding"`
	ColumnInset       float64  `yaml:"column_inset"` // subtracted from each column share
	TopMargin         float64  `yaml:"top_margin"`
}

// ArenaSize is a width/height pair in arena pixels.
type ArenaSize struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// BreakoutHost defines how the terminal host derives an arena from its viewport.
type BreakoutHost struct {
	CellWidthPx  float64   `yaml:"cell_width_px"`
	CellHeightPx float64   `yaml:"cell_height_px"`
	WideViewport float64   `yaml:"wide_viewport"` // viewport width above which WideArena is used
	WideArena    ArenaSize `yaml:"wide_arena"`
	NarrowScaleW float64   `yaml:"narrow_scale_w"`
	NarrowScaleH float64   `yaml:"narrow_scale_h"`
	KeyHoldTicks int       `yaml:"key_hold_ticks"` // ticks a key press counts as held
}

// ErrInvalidConfig is returned when a configuration fails validation.
var ErrInvalidConfig = errors.New("config: invalid breakout config")

// Validate checks that the configuration can drive a simulation.
func (c BreakoutConfig) Validate() error {
	p, l, h := c.Physics, c.Layout, c.Host
	if !finite(
		p.BaseSpeed, p.MaxSpeed, p.Acceleration, p.PaddleStep,
		l.BallRadiusRatio, l.PaddleWidthRatio, l.PaddleHeight, l.PaddleBottomGap, l.LaunchGap,
		l.LaunchAngleMin, l.LaunchAngleMax, l.DenseGridMinWidth, l.BlockHeight, l.BlockPadding,
		l.ColumnInset, l.TopMargin,
		h.CellWidthPx, h.CellHeightPx, h.WideViewport, h.WideArena.Width, h.WideArena.Height,
		h.NarrowScaleW, h.NarrowScaleH,
	) {
		return fmt.Errorf("%w: values must be finite", ErrInvalidConfig)
	}

	switch {
	case p.BaseSpeed <= 0:
		return fmt.Errorf("%w: base_speed must be positive", ErrInvalidConfig)
	case p.MaxSpeed < p.BaseSpeed:
		return fmt.Errorf("%w: max_speed %.2f below base_speed %.2f", ErrInvalidConfig, p.MaxSpeed, p.BaseSpeed)
	case p.Acceleration < 0:
		return fmt.Errorf("%w: acceleration must not be negative", ErrInvalidConfig)
	case p.PaddleStep <= 0:
		return fmt.Errorf("%w: paddle_step must be positive", ErrInvalidConfig)
	case p.Bounce != BounceAngled && p.Bounce != BounceFixed:
		return fmt.Errorf("%w: unknown bounce profile %q", ErrInvalidConfig, p.Bounce)
	}

	switch {
	case l.BallRadiusRatio <= 0 || l.PaddleWidthRatio <= 0 || l.PaddleWidthRatio > 1:
		return fmt.Errorf("%w: ball/paddle ratios out of range", ErrInvalidConfig)
	case l.PaddleHeight <= 0 || l.BlockHeight <= 0:
		return fmt.Errorf("%w: paddle_height and block_height must be positive", ErrInvalidConfig)
	case l.LaunchAngleMin < 0 || l.LaunchAngleMax > 90 || l.LaunchAngleMin > l.LaunchAngleMax:
		return fmt.Errorf("%w: launch angle range [%.0f, %.0f] invalid", ErrInvalidConfig, l.LaunchAngleMin, l.LaunchAngleMax)
	case l.DenseGrid.Rows < 1 || l.DenseGrid.Cols < 1 || l.SparseGrid.Rows < 1 || l.SparseGrid.Cols < 1:
		return fmt.Errorf("%w: block grids need at least one row and column", ErrInvalidConfig)
	}

	if h.CellWidthPx <= 0 || h.CellHeightPx <= 0 || h.WideArena.Width <= 0 || h.WideArena.Height <= 0 ||
		h.NarrowScaleW <= 0 || h.NarrowScaleH <= 0 {
		return fmt.Errorf("%w: host sizing must be positive", ErrInvalidConfig)
	}
	return nil
}

// finite reports whether no value is NaN or infinite.
func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
