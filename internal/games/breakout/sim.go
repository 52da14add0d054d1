package breakout

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Phase is the lifecycle state of a run. Lost and Won are terminal until
// the next Reset.
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseLost
	PhaseWon
)

// String returns a lowercase phase name.
func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseLost:
		return "lost"
	case PhaseWon:
		return "won"
	default:
		return "unknown"
	}
}

func (p Phase) valid() bool {
	return p == PhasePlaying || p == PhaseLost || p == PhaseWon
}

// Terminal reports whether the phase ends the run.
func (p Phase) Terminal() bool {
	return p == PhaseLost || p == PhaseWon
}

// ErrInvalidArena is returned by Reset for non-positive or infinite arena dimensions.
var ErrInvalidArena = errors.New("breakout: arena dimensions must be positive and finite")

// ErrInvalidDifficulty is returned by Reset for unusable speed settings.
var ErrInvalidDifficulty = errors.New("breakout: invalid difficulty")

// Params are the fixed rules of a simulation.
type Params struct {
	Layout LayoutParams
	Bounce BounceProfile
}

// DefaultParams returns the rules of the default configuration: stock
// layout, angled bounce.
func DefaultParams() Params {
	params, _ := ParamsFromConfig(config.DefaultBreakoutConfig())
	return params
}

// DifficultyParams are the speed settings for a run, in arena pixels per tick.
type DifficultyParams struct {
	BaseSpeed    float64 // Launch speed
	MaxSpeed     float64 // Speed-up ceiling
	Acceleration float64 // Fractional speed-up per reflection
	PaddleStep   float64 // Paddle displacement per tick of held direction
}

// DefaultDifficulty returns the normal difficulty.
func DefaultDifficulty() DifficultyParams {
	_, diff := ParamsFromConfig(config.DefaultBreakoutConfig())
	return diff
}

func (d DifficultyParams) validate() error {
	finite := func(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
	if !finite(d.MaxSpeed) || !finite(d.Acceleration) || !finite(d.PaddleStep) ||
		!(d.BaseSpeed > 0) || d.MaxSpeed < d.BaseSpeed || d.Acceleration < 0 || d.PaddleStep < 0 {
		return fmt.Errorf("%w: %+v", ErrInvalidDifficulty, d)
	}
	return nil
}

// Input is the player intent for one tick.
type Input struct {
	MoveLeft  bool
	MoveRight bool
	PointerX  *float64 // Absolute paddle center target; overrides the flags
}

// Delta describes what happened during one Advance.
type Delta struct {
	Phase        Phase
	PhaseChanged bool
	BlockHit     *GridPos // Block destroyed this tick, if any
	Reflections  int      // Wall, paddle and block reflections this tick
}

// PhaseListener is notified when a run enters a new phase.
type PhaseListener func(from, to Phase)

// Simulation owns all gameplay state for one run. Advance is not safe for
// concurrent use; the host drives it from a single loop.
type Simulation struct {
	params Params
	diff   DifficultyParams
	rng    *rand.Rand

	layout Layout
	ball   Ball
	paddle Paddle
	field  *BlockField
	phase  Phase
	ticks  int
	ready  bool

	listeners []PhaseListener
}

// NewSimulation creates a simulation that draws launch angles from rng.
// A nil rng is seeded from the clock. Call Reset before Advance.
func NewSimulation(params Params, rng *rand.Rand) *Simulation {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano())) //#nosec G404 -- gameplay randomness
	}
	return &Simulation{params: params, rng: rng}
}

// OnPhaseChange registers fn to be called at the end of the tick that
// enters Lost or Won.
func (s *Simulation) OnPhaseChange(fn PhaseListener) {
	s.listeners = append(s.listeners, fn)
}

// Reset starts a fresh run on the given arena. On error the previous
// state is kept.
func (s *Simulation) Reset(arena Arena, diff DifficultyParams) error {
	if !arena.Valid() {
		return fmt.Errorf("%w: got %vx%v", ErrInvalidArena, arena.Width, arena.Height)
	}
	if err := diff.validate(); err != nil {
		return err
	}

	s.build(ComputeLayout(arena, s.params.Layout), diff)

	dx, dy := LaunchVelocity(s.rng, diff.BaseSpeed, s.params.Layout.LaunchAngleMin, s.params.Layout.LaunchAngleMax)
	s.ball.DX, s.ball.DY = dx, dy
	s.ball.Speed = diff.BaseSpeed
	return nil
}

// build installs a fresh run on a validated layout: centered paddle, ball
// at its start position at rest, every block alive.
func (s *Simulation) build(l Layout, diff DifficultyParams) {
	s.diff = diff
	s.layout = l

	s.paddle = Paddle{
		X:      l.Paddle.X,
		Y:      l.Paddle.Y,
		Width:  l.Paddle.W,
		Height: l.Paddle.H,
	}
	s.ball = Ball{
		X:      l.BallStartX,
		Y:      l.BallStartY,
		Radius: l.BallRadius,
	}

	s.field = NewBlockField(l)
	s.phase = PhasePlaying
	s.ticks = 0
	s.ready = true
}

// Advance runs one tick. Once the run is Lost or Won, it returns the
// unchanged terminal state.
//
// Order: paddle input, block collision at the current position (with the
// win check), walls and bottom boundary against the tentative position,
// then integration. Resolving blocks first means a hit on the last block
// wins even if the ball would also miss the paddle this tick.
func (s *Simulation) Advance(in Input) Delta {
	d := Delta{Phase: s.phase}
	if !s.ready || s.phase != PhasePlaying {
		return d
	}
	s.ticks++

	s.paddle.Move(in, s.diff.PaddleStep, s.layout.Arena.Width)

	b := &s.ball

	if pos, ok := s.field.HitTest(b.X, b.Y); ok {
		s.field.Kill(pos)
		b.ReflectY()
		s.speedUp()
		d.Reflections++
		d.BlockHit = &pos
		if s.field.CountAlive() == 0 {
			return s.enter(d, PhaseWon)
		}
	}

	nx, ny := b.X+b.DX, b.Y+b.DY
	if nx > s.layout.Arena.Width-b.Radius || nx < b.Radius {
		b.ReflectX()
		s.speedUp()
		d.Reflections++
	}
	if ny < b.Radius {
		b.ReflectY()
		s.speedUp()
		d.Reflections++
	} else if ny > s.layout.BottomLimit() {
		if !s.paddle.Rect().SpansX(b.X) {
			return s.enter(d, PhaseLost)
		}
		s.bounceOffPaddle()
		d.Reflections++
	}

	b.X += b.DX
	b.Y += b.DY
	return d
}

// bounceOffPaddle sends the ball back up according to the bounce profile.
func (s *Simulation) bounceOffPaddle() {
	b := &s.ball
	switch s.params.Bounce {
	case BounceFixed:
		if b.DY > 0 {
			b.ReflectY()
		}
	default:
		b.Steer(HitPoint(b.X, s.paddle.Rect()))
	}
	s.speedUp()
}

func (s *Simulation) speedUp() {
	s.ball.SpeedUp(s.diff.Acceleration, s.diff.MaxSpeed)
}

// enter moves the run into a terminal phase and notifies listeners.
func (s *Simulation) enter(d Delta, to Phase) Delta {
	from := s.phase
	s.phase = to
	d.Phase = to
	d.PhaseChanged = true
	for _, fn := range s.listeners {
		fn(from, to)
	}
	return d
}

// Phase returns the current phase.
func (s *Simulation) Phase() Phase {
	return s.phase
}

// Ticks returns the number of ticks advanced since the last Reset.
func (s *Simulation) Ticks() int {
	return s.ticks
}

// Layout returns the geometry derived at the last Reset.
func (s *Simulation) Layout() Layout {
	return s.layout
}

// Ball returns a copy of the ball state.
func (s *Simulation) Ball() Ball {
	return s.ball
}

// Paddle returns a copy of the paddle state.
func (s *Simulation) Paddle() Paddle {
	return s.paddle
}

// Difficulty returns the speed settings of the current run.
func (s *Simulation) Difficulty() DifficultyParams {
	return s.diff
}

// BallView is the drawable part of the ball.
type BallView struct {
	X, Y, Radius float64
}

// BlockView is one block as seen by a renderer.
type BlockView struct {
	Row, Col int
	Rect     core.RectF
	Alive    bool
}

// RenderState is everything a host needs to draw a frame.
type RenderState struct {
	Arena  Arena
	Ball   BallView
	Paddle core.RectF
	Blocks []BlockView // Row-major
	Grid   GridSize
	Alive  int
	Phase  Phase
	Speed  float64
}

// RenderState returns a read-only view of the current state.
func (s *Simulation) RenderState() RenderState {
	rs := RenderState{
		Arena:  s.layout.Arena,
		Ball:   BallView{X: s.ball.X, Y: s.ball.Y, Radius: s.ball.Radius},
		Paddle: s.paddle.Rect(),
		Phase:  s.phase,
		Speed:  s.ball.Speed,
	}
	if s.field == nil {
		return rs
	}

	rs.Grid = GridSize{Rows: s.field.Rows, Cols: s.field.Cols}
	rs.Blocks = make([]BlockView, 0, s.field.Total())
	for row := range s.field.Rows {
		for col := range s.field.Cols {
			b := s.field.Blocks[row][col]
			rs.Blocks = append(rs.Blocks, BlockView{Row: row, Col: col, Rect: b.Rect, Alive: b.Alive})
			if b.Alive {
				rs.Alive++
			}
		}
	}
	return rs
}
