package breakout

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

func TestBallSpeedUpPreservesDirection(t *testing.T) {
	b := Ball{DX: 3, DY: -4, Speed: 5}
	before := math.Atan2(b.DY, b.DX)

	b.SpeedUp(0.02, 10)

	if !approx(b.Speed, 5.1) {
		t.Errorf("Speed = %v, expected 5.1", b.Speed)
	}
	if !approx(math.Hypot(b.DX, b.DY), b.Speed) {
		t.Errorf("|v| = %v, expected %v", math.Hypot(b.DX, b.DY), b.Speed)
	}
	if !approx(math.Atan2(b.DY, b.DX), before) {
		t.Error("SpeedUp should not change direction")
	}
}

func TestBallSpeedUpCapped(t *testing.T) {
	b := Ball{DX: 0, DY: 9.95, Speed: 9.95}

	b.SpeedUp(0.02, 10)
	if !approx(b.Speed, 10) {
		t.Errorf("Speed = %v, expected clamp to 10", b.Speed)
	}

	// At the cap nothing changes
	dx, dy := b.DX, b.DY
	b.SpeedUp(0.02, 10)
	if b.Speed != 10 || b.DX != dx || b.DY != dy {
		t.Errorf("SpeedUp at cap changed state: %+v", b)
	}

	// Above the cap speed is not reduced
	fast := Ball{DX: 12, Speed: 12}
	fast.SpeedUp(0.02, 10)
	if fast.Speed != 12 {
		t.Errorf("SpeedUp reduced speed to %v", fast.Speed)
	}
}

func TestBallSteer(t *testing.T) {
	tests := []struct {
		name     string
		hitPoint float64
		angle    float64 // from straight up, positive to the right
	}{
		{"center", 0, 0},
		{"right edge", 0.5, math.Pi / 6},
		{"left edge", -0.5, -math.Pi / 6},
		{"quarter right", 0.25, math.Pi / 12},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := Ball{DX: 1, DY: 3, Speed: math.Hypot(1, 3)}
			b.Steer(tc.hitPoint)

			if b.DY >= 0 {
				t.Errorf("Steer should always send the ball up, DY = %v", b.DY)
			}
			if !approx(b.Speed, math.Hypot(1, 3)) || !approx(math.Hypot(b.DX, b.DY), b.Speed) {
				t.Errorf("Steer changed magnitude: speed=%v |v|=%v", b.Speed, math.Hypot(b.DX, b.DY))
			}
			if got := math.Atan2(b.DX, -b.DY); !approx(got, tc.angle) {
				t.Errorf("angle from vertical = %v, expected %v", got, tc.angle)
			}
		})
	}
}

func TestHitPoint(t *testing.T) {
	paddle := core.RectF{X: 100, Y: 0, W: 50, H: 10}

	tests := []struct {
		x, expected float64
	}{
		{100, -0.5},
		{125, 0},
		{150, 0.5},
		{137.5, 0.25},
		{160, 0.5}, // clamped
	}
	for _, tc := range tests {
		if got := HitPoint(tc.x, paddle); !approx(got, tc.expected) {
			t.Errorf("HitPoint(%v) = %v, expected %v", tc.x, got, tc.expected)
		}
	}
}

func TestLaunchVelocity(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	sawLeft, sawRight := false, false

	for range 1000 {
		dx, dy := LaunchVelocity(rng, 4, 30, 90)

		if dy >= 0 {
			t.Fatalf("launch must go up, dy = %v", dy)
		}
		if !approx(math.Hypot(dx, dy), 4) {
			t.Fatalf("launch magnitude = %v, expected 4", math.Hypot(dx, dy))
		}
		deg := math.Atan2(-dy, math.Abs(dx)) * 180 / math.Pi
		if deg < 30-1e-9 || deg > 90+1e-9 {
			t.Fatalf("launch angle %v outside [30, 90]", deg)
		}
		if dx < 0 {
			sawLeft = true
		} else if dx > 0 {
			sawRight = true
		}
	}

	if !sawLeft || !sawRight {
		t.Errorf("both horizontal directions should occur (left=%v right=%v)", sawLeft, sawRight)
	}
}

func TestBounceProfileString(t *testing.T) {
	if BounceAngled.String() != "angled" || BounceFixed.String() != "fixed" {
		t.Error("unexpected profile names")
	}
}
