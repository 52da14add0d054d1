package breakout

import (
	"math"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Arena is the bounded play area in arena pixels.
type Arena struct {
	Width  float64
	Height float64
}

// Valid reports whether both dimensions are positive and finite.
func (a Arena) Valid() bool {
	return a.Width > 0 && a.Height > 0 && !math.IsInf(a.Width, 0) && !math.IsInf(a.Height, 0)
}

// GridSize is a block grid shape.
type GridSize struct {
	Rows, Cols int
}

// LayoutParams controls how geometry is derived from an arena.
type LayoutParams struct {
	BallRadiusRatio   float64 // of arena width
	PaddleWidthRatio  float64 // of arena width
	PaddleHeight      float64
	PaddleBottomGap   float64 // between paddle bottom and arena bottom
	LaunchGap         float64 // between ball edge and paddle top at launch
	LaunchAngleMin    float64 // degrees from horizontal
	LaunchAngleMax    float64
	DenseGridMinWidth float64 // arenas at least this wide get DenseGrid
	DenseGrid         GridSize
	SparseGrid        GridSize
	BlockHeight       float64
	BlockPadding      float64
	ColumnInset       float64 // subtracted from each column's share of the width
	TopMargin         float64
}

// DefaultLayoutParams returns the stock layout: a 700 px arena yields a 5x8 grid.
func DefaultLayoutParams() LayoutParams {
	return DefaultParams().Layout
}

// Layout is the geometry derived from an arena at reset.
type Layout struct {
	Arena      Arena
	BallRadius float64
	Paddle     core.RectF // Initial paddle rect, centered
	BallStartX float64
	BallStartY float64

	Grid         GridSize
	BlockW       float64
	BlockH       float64
	BlockPadding float64
	OffsetTop    float64
	OffsetLeft   float64
}

// minBlockWidth keeps blocks hittable on arenas too narrow for the grid.
const minBlockWidth = 1.0

// ComputeLayout derives ball, paddle and block geometry from the arena.
// The arena must be valid.
func ComputeLayout(a Arena, p LayoutParams) Layout {
	l := Layout{Arena: a}

	l.BallRadius = a.Width * p.BallRadiusRatio

	paddleW := a.Width * p.PaddleWidthRatio
	paddleY := a.Height - p.PaddleHeight - p.PaddleBottomGap
	l.Paddle = core.RectF{
		X: (a.Width - paddleW) / 2,
		Y: paddleY,
		W: paddleW,
		H: p.PaddleHeight,
	}

	l.BallStartX = a.Width / 2
	l.BallStartY = paddleY - l.BallRadius - p.LaunchGap

	l.Grid = p.SparseGrid
	if a.Width >= p.DenseGridMinWidth {
		l.Grid = p.DenseGrid
	}

	l.BlockW = math.Max(a.Width/float64(l.Grid.Cols)-p.ColumnInset, minBlockWidth)
	l.BlockH = p.BlockHeight
	l.BlockPadding = p.BlockPadding
	l.OffsetTop = p.TopMargin
	l.OffsetLeft = (a.Width - float64(l.Grid.Cols)*(l.BlockW+l.BlockPadding)) / 2

	return l
}

// BlockRect returns the rectangle of the block at (row, col).
func (l Layout) BlockRect(row, col int) core.RectF {
	return core.RectF{
		X: float64(col)*(l.BlockW+l.BlockPadding) + l.OffsetLeft,
		Y: float64(row)*(l.BlockH+l.BlockPadding) + l.OffsetTop,
		W: l.BlockW,
		H: l.BlockH,
	}
}

// BottomLimit is the y beyond which the ball must meet the paddle or be lost.
func (l Layout) BottomLimit() float64 {
	return l.Paddle.Y - l.BallRadius
}
