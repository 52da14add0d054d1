package breakout

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/registry"
)

// Visual characters for rendering
const (
	PaddleChar = '='
	BallChar   = '●'
	BlockChar  = '█'
)

// Block colors by row (cycling through)
var BlockColors = []core.Color{
	core.ColorBrightBlue,
	core.ColorBlue,
	core.ColorCyan,
	core.ColorBrightCyan,
	core.ColorBrightBlue,
}

// Screen requirements
const (
	minScreenW = 30
	minScreenH = 20
	hudRows    = 1
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// Game adapts a Simulation to the arcade platform: it sizes an arena from
// the terminal, gates the first tick behind a start key, handles pause and
// restart, and renders the arena scaled onto the screen buffer.
type Game struct {
	classic bool

	sim       *Simulation
	rng       *rand.Rand
	cfg       config.BreakoutConfig
	configErr error // Load failure that forced the built-in defaults
	diff      DifficultyParams

	runtime core.RuntimeConfig
	arena   Arena

	started    bool
	paused     bool
	finishedAt int // Tick count when the run ended

	playH          int // Rows available to the arena
	screenTooSmall bool
}

// New creates a Breakout game with the angled paddle bounce.
func New() *Game {
	return &Game{}
}

// NewClassic creates a Breakout game with plain vertical paddle reflection.
func NewClassic() *Game {
	return &Game{classic: true}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.classic {
		return "breakout_classic"
	}
	return "breakout"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.classic {
		return "Breakout (Classic Bounce)"
	}
	return "Breakout"
}

// Reset loads configuration, sizes the arena for the screen and starts a
// fresh run waiting for the start key.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := EffectiveConfig(g.classic)
	if err != nil {
		cfg = config.DefaultBreakoutConfig()
	}
	g.cfg = cfg
	g.configErr = err

	params, diff := ParamsFromConfig(cfg)
	g.diff = diff
	g.rng = rand.New(rand.NewSource(runtime.Seed)) //#nosec G404 -- gameplay randomness
	g.sim = NewSimulation(params, g.rng)
	g.sim.OnPhaseChange(func(_, _ Phase) {
		g.finishedAt = g.sim.Ticks()
	})

	g.playH = runtime.ScreenH - hudRows
	g.screenTooSmall = runtime.ScreenW < minScreenW || runtime.ScreenH < minScreenH
	g.arena = ArenaForScreen(cfg.Host, runtime.ScreenW, g.playH)

	g.started = false
	g.paused = false
	g.finishedAt = 0

	if g.screenTooSmall {
		return
	}
	if err := g.sim.Reset(g.arena, g.diff); err != nil || !fitsArena(g.sim.Layout()) {
		g.screenTooSmall = true
	}
}

// EffectiveConfig loads the configuration a game runs with: the config file
// set via SetConfigPath, then the difficulty preset, then the classic bounce.
func EffectiveConfig(classic bool) (config.BreakoutConfig, error) {
	cfg, err := config.LoadBreakout(configPath)
	if err != nil {
		return config.BreakoutConfig{}, err
	}
	if difficultyPreset != "" {
		config.ApplyBreakoutPreset(&cfg, difficultyPreset)
	}
	if classic {
		cfg.Physics.Bounce = config.BounceFixed
	}
	return cfg, nil
}

// ConfigErr returns the configuration error from the last Reset, if the
// game is running on the built-in defaults because of it.
func (g *Game) ConfigErr() error {
	return g.configErr
}

// fitsArena reports whether the block grid ends above the launch position.
func fitsArena(l Layout) bool {
	last := l.BlockRect(l.Grid.Rows-1, 0)
	return last.Bottom() < l.BallStartY-l.BallRadius
}

// restart begins a new run on the same arena, keeping the RNG stream so
// each restart launches at a fresh angle.
func (g *Game) restart() {
	if err := g.sim.Reset(g.arena, g.diff); err != nil {
		g.screenTooSmall = true
		return
	}
	g.started = true
	g.paused = false
	g.finishedAt = 0
}

// ParamsFromConfig splits a configuration into simulation rules and speeds.
func ParamsFromConfig(cfg config.BreakoutConfig) (Params, DifficultyParams) {
	l := cfg.Layout
	params := Params{
		Layout: LayoutParams{
			BallRadiusRatio:   l.BallRadiusRatio,
			PaddleWidthRatio:  l.PaddleWidthRatio,
			PaddleHeight:      l.PaddleHeight,
			PaddleBottomGap:   l.PaddleBottomGap,
			LaunchGap:         l.LaunchGap,
			LaunchAngleMin:    l.LaunchAngleMin,
			LaunchAngleMax:    l.LaunchAngleMax,
			DenseGridMinWidth: l.DenseGridMinWidth,
			DenseGrid:         GridSize{Rows: l.DenseGrid.Rows, Cols: l.DenseGrid.Cols},
			SparseGrid:        GridSize{Rows: l.SparseGrid.Rows, Cols: l.SparseGrid.Cols},
			BlockHeight:       l.BlockHeight,
			BlockPadding:      l.BlockPadding,
			ColumnInset:       l.ColumnInset,
			TopMargin:         l.TopMargin,
		},
		Bounce: BounceAngled,
	}
	if cfg.Physics.Bounce == config.BounceFixed {
		params.Bounce = BounceFixed
	}

	diff := DifficultyParams{
		BaseSpeed:    cfg.Physics.BaseSpeed,
		MaxSpeed:     cfg.Physics.MaxSpeed,
		Acceleration: cfg.Physics.Acceleration,
		PaddleStep:   cfg.Physics.PaddleStep,
	}
	return params, diff
}

// ArenaForScreen derives the arena from a terminal play area. The viewport
// is estimated from the cell size; wide viewports get the fixed wide arena,
// narrow ones a fraction of the viewport.
func ArenaForScreen(h config.BreakoutHost, cols, rows int) Arena {
	vw := float64(cols) * h.CellWidthPx
	vh := float64(rows) * h.CellHeightPx
	if vw > h.WideViewport {
		return Arena{Width: h.WideArena.Width, Height: h.WideArena.Height}
	}
	return Arena{Width: vw * h.NarrowScaleW, Height: vh * h.NarrowScaleH}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	// Handle restart
	if in.Has(core.ActionRestart) && g.sim.Phase().Terminal() {
		g.restart()
		return core.StepResult{State: g.State(), Restarted: !g.screenTooSmall}
	}

	// Wait for the start key on a fresh game
	if !g.started {
		if in.Has(core.ActionStart) {
			g.started = true
		}
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) && !g.sim.Phase().Terminal() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	d := g.sim.Advance(g.translate(in))
	return core.StepResult{State: g.State(), PhaseChanged: d.PhaseChanged}
}

// translate converts platform input to simulation input. Pointer positions
// outside the play area, including the HUD row, are ignored.
func (g *Game) translate(in core.InputFrame) Input {
	out := Input{
		MoveLeft:  in.Has(core.ActionLeft),
		MoveRight: in.Has(core.ActionRight),
	}
	col, row, ok := in.Pointer()
	if ok && col >= 0 && col < g.runtime.ScreenW && row >= hudRows && row < g.runtime.ScreenH {
		x := (float64(col) + 0.5) / float64(g.runtime.ScreenW) * g.arena.Width
		out.PointerX = &x
	}
	return out
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.sim == nil || g.screenTooSmall {
		return core.GameState{}
	}
	phase := g.sim.Phase()
	return core.GameState{
		Phase:    phase.String(),
		Started:  g.started,
		GameOver: phase.Terminal(),
		Won:      phase == PhaseWon,
		Paused:   g.paused,
	}
}

// Fingerprint returns a hash of the full simulation state.
func (g *Game) Fingerprint() uint64 {
	if g.sim == nil {
		return 0
	}
	snap := g.sim.Snapshot()
	return snap.Hash()
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.screenTooSmall || g.sim == nil {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", minScreenW, minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}

	rs := g.sim.RenderState()
	v := newViewport(rs.Arena, dst.Width(), g.playH, hudRows)

	g.renderHUD(dst, rs)
	g.renderBlocks(dst, rs, v)
	g.renderPaddle(dst, rs, v)
	g.renderBall(dst, rs, v)
	g.renderOverlay(dst)
}

// viewport maps arena pixels to screen cells.
type viewport struct {
	sx, sy     float64
	cols, rows int
	top        int
}

func newViewport(a Arena, cols, rows, top int) viewport {
	return viewport{
		sx:   float64(cols) / a.Width,
		sy:   float64(rows) / a.Height,
		cols: cols,
		rows: rows,
		top:  top,
	}
}

func (v viewport) col(x float64) int {
	return core.Clamp(int(x*v.sx), 0, v.cols-1)
}

func (v viewport) row(y float64) int {
	return v.top + core.Clamp(int(y*v.sy), 0, v.rows-1)
}

// span returns the inclusive cell range covered by [from, to), at least one cell.
func span(from, to int) (int, int) {
	if to <= from {
		return from, from
	}
	return from, to - 1
}

// renderHUD draws remaining blocks, ball speed and the bounce profile.
func (g *Game) renderHUD(dst *core.Screen, rs RenderState) {
	blocksText := fmt.Sprintf("Blocks: %d/%d", rs.Alive, len(rs.Blocks))
	dst.DrawText(1, 0, blocksText)

	speedText := fmt.Sprintf("Speed: %.2f/%.0f", rs.Speed, g.diff.MaxSpeed)
	if config.IsFixedPreset(difficultyPreset) {
		speedText = fmt.Sprintf("Speed: %.2f (fixed)", rs.Speed)
	}
	dst.DrawTextCentered(0, speedText)

	profileText := g.cfg.Physics.Bounce
	if difficultyPreset != "" {
		profileText = string(difficultyPreset) + " · " + profileText
	}
	dst.DrawText(dst.Width()-len([]rune(profileText))-1, 0, profileText)
}

// renderBlocks draws all alive blocks.
func (g *Game) renderBlocks(dst *core.Screen, rs RenderState, v viewport) {
	for _, b := range rs.Blocks {
		if !b.Alive {
			continue
		}

		x0, x1 := span(v.col(b.Rect.X), int(b.Rect.Right()*v.sx))
		y0, y1 := span(v.row(b.Rect.Y), v.top+int(b.Rect.Bottom()*v.sy))
		color := BlockColors[b.Row%len(BlockColors)]

		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				dst.SetColored(x, y, BlockChar, color)
			}
		}
	}
}

// renderPaddle draws the player's paddle.
func (g *Game) renderPaddle(dst *core.Screen, rs RenderState, v viewport) {
	x0, x1 := span(v.col(rs.Paddle.X), int(rs.Paddle.Right()*v.sx))
	y := v.row(rs.Paddle.Y)
	for x := x0; x <= x1; x++ {
		dst.SetColored(x, y, PaddleChar, core.ColorCyan)
	}
}

// renderBall draws the ball.
func (g *Game) renderBall(dst *core.Screen, rs RenderState, v viewport) {
	dst.SetColored(v.col(rs.Ball.X), v.row(rs.Ball.Y), BallChar, core.ColorBrightRed)
}

// renderOverlay draws game state messages.
func (g *Game) renderOverlay(dst *core.Screen) {
	switch {
	case g.sim.Phase() == PhaseLost:
		g.drawCenteredBox(dst, "GAME OVER", "Press R to restart")

	case g.sim.Phase() == PhaseWon:
		secs := float64(g.finishedAt) / float64(max(g.runtime.TickRate, 1))
		subtitle := fmt.Sprintf("Cleared in %.1fs  |  Press R to restart", secs)
		g.drawCenteredBox(dst, "CLEAR!", subtitle)

	case !g.started:
		dst.DrawTextCentered(dst.Height()/2, "Press SPACE to start")

	case g.paused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	titleX := boxX + (boxW-len(title))/2
	dst.DrawText(titleX, boxY+1, title)

	subtitleX := boxX + (boxW-len(subtitle))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}

// Register the games with the registry
func init() {
	registry.Register("breakout", func() registry.Game {
		return New()
	})
	registry.Register("breakout_classic", func() registry.Game {
		return NewClassic()
	})
}
