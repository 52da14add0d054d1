package breakout

import (
	"testing"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

func newTestField() *BlockField {
	return NewBlockField(ComputeLayout(Arena{Width: 700, Height: 500}, DefaultLayoutParams()))
}

func TestNewBlockFieldAllAlive(t *testing.T) {
	f := newTestField()

	if f.Rows != 5 || f.Cols != 8 || f.Total() != 40 {
		t.Fatalf("field is %dx%d (%d), expected 5x8", f.Rows, f.Cols, f.Total())
	}
	if f.CountAlive() != 40 {
		t.Errorf("CountAlive() = %d, expected 40", f.CountAlive())
	}
}

func TestBlockFieldHitTestStrict(t *testing.T) {
	f := newTestField()
	r := f.Blocks[0][0].Rect // x 8..85.5, y 50..70

	tests := []struct {
		name string
		x, y float64
		hit  bool
	}{
		{"center", r.CenterX(), r.Y + r.H/2, true},
		{"left edge", r.X, r.Y + 5, false},
		{"top edge", r.X + 5, r.Y, false},
		{"right edge", r.Right(), r.Y + 5, false},
		{"bottom edge", r.X + 5, r.Bottom(), false},
		{"gap between blocks", r.Right() + 4, r.Y + 5, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos, ok := f.HitTest(tc.x, tc.y)
			if ok != tc.hit {
				t.Fatalf("HitTest(%v, %v) hit = %v, expected %v", tc.x, tc.y, ok, tc.hit)
			}
			if ok && pos != (GridPos{}) {
				t.Errorf("hit %+v, expected (0, 0)", pos)
			}
		})
	}
}

func TestBlockFieldHitTestRowMajorFirst(t *testing.T) {
	f := newTestField()

	// Make (1, 0) and (0, 3) overlap the same point; row 0 wins.
	shared := core.RectF{X: 500, Y: 300, W: 20, H: 20}
	f.Blocks[1][0].Rect = shared
	f.Blocks[0][3].Rect = shared

	pos, ok := f.HitTest(510, 310)
	if !ok || pos != (GridPos{Row: 0, Col: 3}) {
		t.Fatalf("HitTest = %+v/%v, expected (0, 3)", pos, ok)
	}

	f.Kill(pos)
	pos, ok = f.HitTest(510, 310)
	if !ok || pos != (GridPos{Row: 1, Col: 0}) {
		t.Errorf("after kill HitTest = %+v/%v, expected (1, 0)", pos, ok)
	}
}

func TestBlockFieldKillOnce(t *testing.T) {
	f := newTestField()
	pos := GridPos{Row: 2, Col: 5}

	if !f.Kill(pos) {
		t.Fatal("first Kill should succeed")
	}
	if f.Kill(pos) {
		t.Error("second Kill should report the block already dead")
	}
	if f.CountAlive() != 39 {
		t.Errorf("CountAlive() = %d, expected 39", f.CountAlive())
	}
	if f.Kill(GridPos{Row: 9, Col: 0}) || f.Kill(GridPos{Row: 0, Col: -1}) {
		t.Error("out of range Kill should fail")
	}

	// Dead blocks are invisible to collision
	r := f.Blocks[2][5].Rect
	if _, ok := f.HitTest(r.CenterX(), r.Y+r.H/2); ok {
		t.Error("dead block should not be hit")
	}
}
