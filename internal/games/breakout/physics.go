package breakout

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// BounceProfile selects how the paddle reflects the ball.
type BounceProfile int

const (
	BounceAngled BounceProfile = iota // Steer by impact offset, always upward
	BounceFixed                       // Vertical reflection only
)

// String returns the profile name used in configuration.
func (p BounceProfile) String() string {
	if p == BounceFixed {
		return "fixed"
	}
	return "angled"
}

// maxSteer scales the hit point in [-0.5, 0.5] to a deflection from straight
// up, so an edge hit leaves at 30 degrees off vertical.
const maxSteer = math.Pi / 3

// Ball is the ball state in arena pixels. Speed always equals the magnitude
// of (DX, DY).
type Ball struct {
	X, Y   float64 // Center
	DX, DY float64 // Velocity per tick
	Speed  float64
	Radius float64
}

// ReflectX reverses horizontal velocity.
func (b *Ball) ReflectX() {
	b.DX = -b.DX
}

// ReflectY reverses vertical velocity.
func (b *Ball) ReflectY() {
	b.DY = -b.DY
}

// SpeedUp scales the velocity by (1 + accel), keeping its direction.
// Speed never grows past maxSpeed and is never reduced.
func (b *Ball) SpeedUp(accel, maxSpeed float64) {
	if b.Speed >= maxSpeed {
		return
	}
	b.Speed = math.Min(b.Speed*(1+accel), maxSpeed)
	angle := math.Atan2(b.DY, b.DX)
	b.DX = math.Cos(angle) * b.Speed
	b.DY = math.Sin(angle) * b.Speed
}

// Steer redirects the ball upward at an angle proportional to hitPoint,
// which ranges over [-0.5, 0.5] from the paddle's left to right edge.
// The magnitude is preserved.
func (b *Ball) Steer(hitPoint float64) {
	angle := hitPoint * maxSteer
	current := math.Hypot(b.DX, b.DY)
	b.DX = math.Sin(angle) * current
	b.DY = -math.Cos(angle) * current
	b.Speed = current
}

// HitPoint returns where x struck the paddle, -0.5 at the left edge and
// 0.5 at the right edge.
func HitPoint(x float64, paddle core.RectF) float64 {
	return core.ClampF((x-paddle.X)/paddle.W-0.5, -0.5, 0.5)
}

// LaunchVelocity draws an upward velocity of the given speed. The angle from
// horizontal is uniform in [minDeg, maxDeg] and the horizontal sign is a coin flip.
func LaunchVelocity(rng *rand.Rand, speed, minDeg, maxDeg float64) (dx, dy float64) {
	deg := minDeg + rng.Float64()*(maxDeg-minDeg)
	angle := deg * math.Pi / 180

	sign := 1.0
	if rng.Intn(2) == 0 {
		sign = -1
	}

	return math.Cos(angle) * speed * sign, -math.Sin(angle) * speed
}
