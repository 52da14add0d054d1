package breakout

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

var stdArena = Arena{Width: 700, Height: 500}

func newTestSim(t *testing.T, params Params, seed int64) *Simulation {
	t.Helper()
	s := NewSimulation(params, rand.New(rand.NewSource(seed)))
	if err := s.Reset(stdArena, DefaultDifficulty()); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	return s
}

// setBall places the ball with velocity (dx, dy) and a consistent speed.
func setBall(s *Simulation, x, y, dx, dy float64) {
	s.ball.X, s.ball.Y = x, y
	s.ball.DX, s.ball.DY = dx, dy
	s.ball.Speed = math.Hypot(dx, dy)
}

func TestResetInitialState(t *testing.T) {
	s := newTestSim(t, DefaultParams(), 1)

	if s.Phase() != PhasePlaying || s.Ticks() != 0 {
		t.Errorf("phase=%v ticks=%d, expected playing/0", s.Phase(), s.Ticks())
	}
	b := s.Ball()
	if !approx(b.X, 350) || !approx(b.Y, 449.6) {
		t.Errorf("ball at (%v, %v), expected (350, 449.6)", b.X, b.Y)
	}
	if b.Speed != 4 || !approx(math.Hypot(b.DX, b.DY), 4) || b.DY >= 0 {
		t.Errorf("launch velocity (%v, %v) speed %v", b.DX, b.DY, b.Speed)
	}
	if p := s.Paddle(); !approx(p.X, 297.5) {
		t.Errorf("paddle X = %v, expected centered at 297.5", p.X)
	}

	rs := s.RenderState()
	if len(rs.Blocks) != 40 || rs.Alive != 40 || rs.Grid != (GridSize{Rows: 5, Cols: 8}) {
		t.Errorf("render state blocks=%d alive=%d grid=%+v", len(rs.Blocks), rs.Alive, rs.Grid)
	}
	if rs.Arena != stdArena || rs.Phase != PhasePlaying {
		t.Errorf("render state arena=%+v phase=%v", rs.Arena, rs.Phase)
	}
}

func TestResetIdempotent(t *testing.T) {
	s := newTestSim(t, DefaultParams(), 1)
	first := s.Layout()

	// Play into a terminal state, then reset again
	setBall(s, 50, 457, 0, 4)
	s.Advance(Input{MoveLeft: true})
	if s.Phase() != PhaseLost {
		t.Fatalf("setup: expected lost, got %v", s.Phase())
	}

	if err := s.Reset(stdArena, DefaultDifficulty()); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if s.Layout() != first {
		t.Error("layout differs between resets on the same arena")
	}
	if s.Phase() != PhasePlaying || s.Ticks() != 0 || s.field.CountAlive() != 40 {
		t.Errorf("after reset phase=%v ticks=%d alive=%d", s.Phase(), s.Ticks(), s.field.CountAlive())
	}
	if !approx(s.Paddle().X, first.Paddle.X) {
		t.Error("paddle should be re-centered")
	}
}

func TestResetRejectsInvalidArena(t *testing.T) {
	s := newTestSim(t, DefaultParams(), 1)
	before := s.Snapshot()

	for _, a := range []Arena{{0, 500}, {700, 0}, {-1, 500}, {math.NaN(), 500}, {math.Inf(1), 500}, {700, math.Inf(1)}} {
		err := s.Reset(a, DefaultDifficulty())
		if !errors.Is(err, ErrInvalidArena) {
			t.Errorf("Reset(%+v) error = %v, expected ErrInvalidArena", a, err)
		}
	}

	after := s.Snapshot()
	if before.Hash() != after.Hash() {
		t.Error("failed Reset must leave state untouched")
	}
}

func TestResetRejectsInvalidDifficulty(t *testing.T) {
	s := NewSimulation(DefaultParams(), rand.New(rand.NewSource(1)))

	tests := []DifficultyParams{
		{BaseSpeed: 0, MaxSpeed: 10, Acceleration: 0.02, PaddleStep: 5},
		{BaseSpeed: 4, MaxSpeed: 3, Acceleration: 0.02, PaddleStep: 5},
		{BaseSpeed: 4, MaxSpeed: 10, Acceleration: -1, PaddleStep: 5},
		{BaseSpeed: 4, MaxSpeed: math.Inf(1), Acceleration: 0.02, PaddleStep: 5},
		{BaseSpeed: 4, MaxSpeed: math.NaN(), Acceleration: 0.02, PaddleStep: 5},
		{BaseSpeed: 4, MaxSpeed: 10, Acceleration: 0.02, PaddleStep: math.NaN()},
	}
	for _, d := range tests {
		if err := s.Reset(stdArena, d); !errors.Is(err, ErrInvalidDifficulty) {
			t.Errorf("Reset with %+v error = %v, expected ErrInvalidDifficulty", d, err)
		}
	}
}

func TestAdvanceBeforeReset(t *testing.T) {
	s := NewSimulation(DefaultParams(), nil)
	d := s.Advance(Input{MoveRight: true})
	if d.PhaseChanged || s.Ticks() != 0 {
		t.Errorf("Advance before Reset changed state: %+v ticks=%d", d, s.Ticks())
	}
}

func TestBlockHitAtCenter(t *testing.T) {
	s := newTestSim(t, DefaultParams(), 1)
	r := s.field.Blocks[0][0].Rect
	setBall(s, r.CenterX(), r.Y+r.H/2, 0, -4)

	d := s.Advance(Input{})

	if s.field.Blocks[0][0].Alive {
		t.Error("block (0, 0) should be destroyed")
	}
	if d.BlockHit == nil || *d.BlockHit != (GridPos{}) {
		t.Errorf("BlockHit = %v, expected (0, 0)", d.BlockHit)
	}
	b := s.Ball()
	if b.DY <= 0 {
		t.Errorf("DY = %v, expected reflection downward", b.DY)
	}
	if !approx(b.Speed, 4.08) {
		t.Errorf("Speed = %v, expected 4.08", b.Speed)
	}
	if s.Phase() != PhasePlaying || s.field.CountAlive() != 39 {
		t.Errorf("phase=%v alive=%d", s.Phase(), s.field.CountAlive())
	}
}

func TestOneBlockPerTick(t *testing.T) {
	s := newTestSim(t, DefaultParams(), 1)
	shared := s.field.Blocks[2][2].Rect
	s.field.Blocks[3][3].Rect = shared
	setBall(s, shared.CenterX(), shared.Y+shared.H/2, 0, -0.5)

	s.Advance(Input{})
	if s.field.CountAlive() != 39 {
		t.Fatalf("alive = %d, expected exactly one block destroyed", s.field.CountAlive())
	}
	if s.field.Blocks[2][2].Alive || !s.field.Blocks[3][3].Alive {
		t.Error("the row-major first block should be the one destroyed")
	}
}

func TestLastBlockWinsOverPaddleMiss(t *testing.T) {
	setup := func(keepLast bool) *Simulation {
		s := newTestSim(t, DefaultParams(), 1)
		for row := range s.field.Rows {
			for col := range s.field.Cols {
				s.field.Blocks[row][col].Alive = false
			}
		}
		// Far from the paddle and past the bottom limit next tick
		last := &s.field.Blocks[4][7]
		last.Rect.X, last.Rect.Y, last.Rect.W, last.Rect.H = 10, 455, 20, 20
		last.Alive = keepLast
		setBall(s, 20, 465, 0, 4)
		return s
	}

	s := setup(true)
	d := s.Advance(Input{})
	if s.Phase() != PhaseWon || d.Phase != PhaseWon || !d.PhaseChanged {
		t.Errorf("phase = %v (delta %+v), expected won", s.Phase(), d)
	}

	control := setup(false)
	control.Advance(Input{})
	if control.Phase() != PhaseLost {
		t.Errorf("without the block the ball should be lost, got %v", control.Phase())
	}
}

func TestLostFreezesBall(t *testing.T) {
	s := newTestSim(t, DefaultParams(), 1)

	var calls int
	var from, to Phase
	s.OnPhaseChange(func(f, tt Phase) {
		calls++
		from, to = f, tt
	})

	setBall(s, 50, 457, 0, 4)
	d := s.Advance(Input{})

	if s.Phase() != PhaseLost || !d.PhaseChanged {
		t.Fatalf("phase = %v, expected lost", s.Phase())
	}
	if b := s.Ball(); b.X != 50 || b.Y != 457 {
		t.Errorf("ball moved to (%v, %v) on the losing tick", b.X, b.Y)
	}
	if calls != 1 || from != PhasePlaying || to != PhaseLost {
		t.Errorf("listener calls=%d from=%v to=%v", calls, from, to)
	}

	// Terminal state is stable
	before := s.Snapshot().Hash()
	for range 10 {
		d := s.Advance(Input{MoveRight: true})
		if d.PhaseChanged || d.Phase != PhaseLost {
			t.Fatalf("terminal Advance returned %+v", d)
		}
	}
	if s.Snapshot().Hash() != before {
		t.Error("state changed after the run ended")
	}
	if calls != 1 {
		t.Errorf("listener called %d times, expected once", calls)
	}
}

func TestPaddleBounceAngled(t *testing.T) {
	t.Run("center goes straight up", func(t *testing.T) {
		s := newTestSim(t, DefaultParams(), 1)
		setBall(s, 350, 457, 0, 4)

		d := s.Advance(Input{})
		b := s.Ball()
		if s.Phase() != PhasePlaying || d.Reflections != 1 {
			t.Fatalf("phase=%v reflections=%d", s.Phase(), d.Reflections)
		}
		if !approx(b.DX, 0) || !approx(b.DY, -4.08) {
			t.Errorf("velocity = (%v, %v), expected (0, -4.08)", b.DX, b.DY)
		}
	})

	t.Run("right edge deflects 30 degrees", func(t *testing.T) {
		s := newTestSim(t, DefaultParams(), 1)
		setBall(s, 402.5, 457, 0, 4) // paddle right edge

		s.Advance(Input{})
		b := s.Ball()
		if got := math.Atan2(b.DX, -b.DY); !approx(got, math.Pi/6) {
			t.Errorf("deflection = %v rad, expected pi/6", got)
		}
		if !approx(b.Speed, 4.08) {
			t.Errorf("Speed = %v, expected 4.08", b.Speed)
		}
	})
}

func TestPaddleBounceFixed(t *testing.T) {
	s := newTestSim(t, Params{Layout: DefaultLayoutParams(), Bounce: BounceFixed}, 1)
	setBall(s, 350, 457, 2, 3)

	s.Advance(Input{})
	b := s.Ball()
	if !approx(b.DX, 2.04) || !approx(b.DY, -3.06) {
		t.Errorf("velocity = (%v, %v), expected (2.04, -3.06)", b.DX, b.DY)
	}
}

func TestWallReflections(t *testing.T) {
	tests := []struct {
		name           string
		x, y, dx, dy   float64
		wantDX, wantDY float64 // expected signs
	}{
		{"left wall", 10, 200, -3, 1, 1, 1},
		{"right wall", 690, 200, 3, 1, -1, 1},
		{"top wall", 350, 10, 1, -3, 1, 1},
		{"top left corner", 10, 10, -3, -3, 1, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestSim(t, DefaultParams(), 1)
			setBall(s, tc.x, tc.y, tc.dx, tc.dy)
			speed := s.ball.Speed

			d := s.Advance(Input{})
			b := s.Ball()
			if math.Signbit(b.DX) != (tc.wantDX < 0) || math.Signbit(b.DY) != (tc.wantDY < 0) {
				t.Errorf("velocity = (%v, %v)", b.DX, b.DY)
			}
			if b.Speed <= speed {
				t.Errorf("speed %v should grow from %v", b.Speed, speed)
			}
			if d.Reflections == 0 {
				t.Error("expected a reflection")
			}
		})
	}
}

func TestPaddleInputThroughAdvance(t *testing.T) {
	s := newTestSim(t, DefaultParams(), 1)
	start := s.Paddle().X

	s.Advance(Input{MoveLeft: true, MoveRight: true})
	if s.Paddle().X != start {
		t.Errorf("both directions moved paddle from %v to %v", start, s.Paddle().X)
	}

	s.Advance(Input{MoveLeft: true})
	if !approx(s.Paddle().X, start-5) {
		t.Errorf("paddle X = %v, expected %v", s.Paddle().X, start-5)
	}

	x := 100.0
	s.Advance(Input{MoveRight: true, PointerX: &x})
	if !approx(s.Paddle().X, 47.5) {
		t.Errorf("pointer should center paddle at 100, X = %v", s.Paddle().X)
	}
}

// autopilot returns an input that mostly tracks the ball, with random noise.
func autopilot(rng *rand.Rand, s *Simulation) Input {
	switch rng.Intn(4) {
	case 0:
		return Input{MoveLeft: rng.Intn(2) == 0, MoveRight: rng.Intn(2) == 0}
	default:
		x := s.Ball().X
		return Input{PointerX: &x}
	}
}

func TestAdvanceInvariants(t *testing.T) {
	diff := DefaultDifficulty()

	for seed := int64(1); seed <= 20; seed++ {
		s := newTestSim(t, DefaultParams(), seed)
		inputs := rand.New(rand.NewSource(seed * 31))
		prevSpeed := s.Ball().Speed
		prevAlive := s.field.CountAlive()

		for tick := 0; tick < 20000 && !s.Phase().Terminal(); tick++ {
			d := s.Advance(autopilot(inputs, s))
			b := s.Ball()

			if math.Abs(math.Hypot(b.DX, b.DY)-b.Speed) > 1e-9 {
				t.Fatalf("seed %d tick %d: |v|=%v speed=%v", seed, tick, math.Hypot(b.DX, b.DY), b.Speed)
			}
			if b.Speed < prevSpeed-1e-9 || b.Speed > diff.MaxSpeed+1e-9 {
				t.Fatalf("seed %d tick %d: speed %v (prev %v)", seed, tick, b.Speed, prevSpeed)
			}
			p := s.Paddle()
			if p.X < 0 || p.X > stdArena.Width-p.Width {
				t.Fatalf("seed %d tick %d: paddle X %v outside arena", seed, tick, p.X)
			}

			alive := s.field.CountAlive()
			expected := prevAlive
			if d.BlockHit != nil {
				expected--
			}
			if alive != expected {
				t.Fatalf("seed %d tick %d: alive %d, expected %d", seed, tick, alive, expected)
			}
			if (s.Phase() == PhaseWon) != (alive == 0) {
				t.Fatalf("seed %d tick %d: phase %v with %d alive", seed, tick, s.Phase(), alive)
			}
			if d.PhaseChanged && !d.Phase.Terminal() {
				t.Fatalf("seed %d tick %d: changed into non-terminal %v", seed, tick, d.Phase)
			}

			prevSpeed, prevAlive = b.Speed, alive
		}
	}
}

func TestDeterminism(t *testing.T) {
	a := newTestSim(t, DefaultParams(), 42)
	b := newTestSim(t, DefaultParams(), 42)
	inA := rand.New(rand.NewSource(5))
	inB := rand.New(rand.NewSource(5))

	for tick := range 2000 {
		a.Advance(autopilot(inA, a))
		b.Advance(autopilot(inB, b))
		if tick%100 == 0 {
			sa, sb := a.Snapshot(), b.Snapshot()
			if sa.Hash() != sb.Hash() {
				t.Fatalf("runs diverged at tick %d", tick)
			}
		}
	}

	fresh := newTestSim(t, DefaultParams(), 42)
	other := newTestSim(t, DefaultParams(), 43)
	if fresh.Ball().DX == other.Ball().DX {
		t.Error("different seeds should launch differently")
	}
}

func TestPhaseString(t *testing.T) {
	if PhasePlaying.String() != "playing" || PhaseLost.String() != "lost" || PhaseWon.String() != "won" {
		t.Error("unexpected phase names")
	}
	if PhasePlaying.Terminal() || !PhaseLost.Terminal() || !PhaseWon.Terminal() {
		t.Error("unexpected Terminal() results")
	}
}
