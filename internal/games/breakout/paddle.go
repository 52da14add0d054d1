package breakout

import (
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Paddle is the player's paddle. Y is fixed for the whole run.
type Paddle struct {
	X      float64 // Left edge
	Y      float64 // Top edge
	Width  float64
	Height float64
}

// Rect returns the paddle rectangle.
func (p *Paddle) Rect() core.RectF {
	return core.RectF{X: p.X, Y: p.Y, W: p.Width, H: p.Height}
}

// CenterX returns the paddle's horizontal center.
func (p *Paddle) CenterX() float64 {
	return p.X + p.Width/2
}

// Move applies one tick of input. A pointer target centers the paddle on it
// and overrides the direction flags; otherwise left and right each shift by
// step, so holding both cancels out. The result is clamped to the arena.
func (p *Paddle) Move(in Input, step, arenaW float64) {
	if in.PointerX != nil {
		p.X = *in.PointerX - p.Width/2
	} else {
		if in.MoveLeft {
			p.X -= step
		}
		if in.MoveRight {
			p.X += step
		}
	}
	p.X = core.ClampF(p.X, 0, arenaW-p.Width)
}
