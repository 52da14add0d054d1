package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/registry"
)

// helpRows is the number of rows reserved below the game for key help.
const helpRows = 1

// Options tune how a Model hosts a game.
type Options struct {
	// Logger receives session events. Nil discards them.
	Logger *log.Logger

	// KeyHoldTicks is how long a direction stays active after a key press.
	KeyHoldTicks int

	// ScreenshotDir is where Ctrl+S writes screen dumps.
	// Defaults to ~/.arcade/screenshots.
	ScreenshotDir string

	// Embedded makes the back key return to the caller instead of quitting.
	Embedded bool

	// Renderer styles the game screen. SSH sessions pass the session's
	// renderer; nil uses the local terminal.
	Renderer *lipgloss.Renderer
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game   registry.Game
	screen *core.Screen
	config core.RuntimeConfig
	opts   Options
	logger *log.Logger

	palette Palette
	keys    GameKeyMap
	help    help.Model
	holds   heldKeys

	inputFrame core.InputFrame
	gameState  core.GameState
	tickID     int64
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game. cfg holds the
// full terminal size; one row is kept for the help line.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	cfg.ScreenH = max(cfg.ScreenH-helpRows, 0)

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		opts:       opts,
		logger:     logger.With("game", game.ID()),
		palette:    NewPalette(opts.Renderer),
		keys:       DefaultGameKeyMap(),
		help:       h,
		holds:      newHeldKeys(opts.KeyHoldTicks),
		inputFrame: core.NewInputFrame(),
		tickID:     nextTickID(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Debug("game initialized", "cols", m.config.ScreenW, "rows", m.config.ScreenH, "seed", m.config.Seed)
	m.logConfigFallback()

	// Start the tick loop
	return tickCmd(m.tickID, m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		// Only plain motion over the game steers; the help row is not part of it
		if msg.Action == tea.MouseActionMotion && msg.Y >= 0 && msg.Y < m.config.ScreenH {
			m.inputFrame.SetPointer(msg.X, msg.Y)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.ID != m.tickID {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Back):
		if m.opts.Embedded {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionLeft, core.ActionRight:
		m.holds.press(action)
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize re-lays out the game for the new terminal size. The current
// run is discarded.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = max(msg.Height-helpRows, 0)
	m.screen.Resize(m.config.ScreenW, m.config.ScreenH)
	m.help.Width = msg.Width

	m.holds.release()
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.logger.Debug("resized", "cols", msg.Width, "rows", msg.Height)
	m.logConfigFallback()

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.holds.apply(&m.inputFrame)

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	if result.PhaseChanged {
		m.logPhase(result.State)
	}
	if result.Restarted {
		m.logger.Info("run restarted")
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.tickID, m.config.TickRate)
}

// logPhase records the end of a run along with the state fingerprint.
func (m Model) logPhase(st core.GameState) {
	fields := []any{"phase", st.Phase}
	if fp, ok := m.game.(registry.Fingerprinter); ok {
		fields = append(fields, "fingerprint", fmt.Sprintf("%016x", fp.Fingerprint()))
	}
	m.logger.Info("run finished", fields...)
}

// logConfigFallback warns when the game could not load its configuration
// and runs on built-in defaults.
func (m Model) logConfigFallback() {
	if cr, ok := m.game.(registry.ConfigReporter); ok {
		if err := cr.ConfigErr(); err != nil {
			m.logger.Warn("config load failed, using defaults", "error", err)
		}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	path, err := m.writeScreenshot()
	if err != nil {
		m.logger.Error("screenshot failed", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

func (m *Model) writeScreenshot() (string, error) {
	m.game.Render(m.screen)

	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("tui: cannot get home directory: %w", err)
		}
		dir = filepath.Join(home, ".arcade", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("tui: cannot create screenshot directory: %w", err)
	}

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("tui: cannot write screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Render game to screen buffer
	m.game.Render(m.screen)

	return m.palette.Render(m.screen) + "\n" + m.help.View(m.keys)
}

// State returns the game state as of the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),      // Use alternate screen buffer
		tea.WithMouseAllMotion(), // Paddle follows the pointer
	)

	_, err := p.Run()
	return err
}
