package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-jumper/internal/audio"
	"github.com/vovakirdan/tui-jumper/internal/config"
	"github.com/vovakirdan/tui-jumper/internal/core"
	"github.com/vovakirdan/tui-jumper/internal/registry"
	"github.com/vovakirdan/tui-jumper/internal/storage"
)

// Options wires optional platform services into a game model.
type Options struct {
	Ledger      *storage.Ledger     // Finished runs are recorded here
	Sound       SoundPlayer // nil plays nothing
	Volumes     config.JumperAudio
	HoldTimeout time.Duration // See HoldTracker
	Player      string        // Name recorded with each run
	Logger      *log.Logger
	SkipTitle   bool // Start playing without the title screen
	Embedded    bool // Esc returns to a menu instead of only pausing
	SharedRuns  bool // Other sessions read the same ledger; no clearing
}

// SoundPlayer is the part of audio.SoundManager the model drives.
type SoundPlayer interface {
	Enabled() bool
	Play(clip audio.Clip, ch audio.Channel, volume float64) error
	Busy(ch audio.Channel) bool
	Stop(ch audio.Channel)
}

// seeded is implemented by games that can report their current run seed.
type seeded interface {
	Seed() int64
}

// GameModel is the Bubble Tea model that runs one game: title screen,
// fixed-rate ticks, key holds, sound cues and run bookkeeping.
type GameModel struct {
	id         int64 // Tick owner
	game       registry.Game
	screen     *core.Screen
	opts       Options
	logger     *log.Logger
	config     core.RuntimeConfig
	frame      core.InputFrame
	hold       *HoldTracker
	keys       *KeyMapper
	state      core.GameState
	started    bool
	runTicks   int  // Unpaused ticks of the current run
	saved      bool // Whether the current game over has been recorded
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model for game. A zero seed picks one from the clock.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, opts Options) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Player == "" {
		opts.Player = "local"
	}

	return GameModel{
		id:      newTickOwner(),
		game:    game,
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:    opts,
		logger:  logger,
		config:  cfg,
		frame:   core.NewInputFrame(),
		hold:    NewHoldTracker(opts.HoldTimeout),
		keys:    NewKeyMapper(),
		started: opts.SkipTitle,
	}
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	if m.started {
		m.startMusic()
	}
	return tickCmd(m.config.TickRate, m.id)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Owner != m.id {
			return m, nil
		}
		return m.handleTick(msg.At)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "error", err)
		} else {
			m.logger.Info("screenshot saved", "path", path)
		}
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	if !m.started {
		switch action {
		case core.ActionConfirm:
			m.started = true
			m.startMusic()
		case core.ActionBack:
			m.backToMenu = m.opts.Embedded
		}
		return m, nil
	}

	if action == core.ActionBack {
		if m.opts.Embedded && (m.state.GameOver || m.state.Paused) {
			m.backToMenu = true
			m.stopMusic()
			return m, nil
		}
		// Esc pauses while playing, and resumes in standalone play
		if m.state.GameOver {
			return m, nil
		}
		action = core.ActionPause
	}

	if action != core.ActionNone {
		m.hold.Press(action, now, &m.frame)
	}
	return m, nil
}

// handleResize processes window resize events. A new size restarts the
// session because the world is as wide as the screen.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	if msg.Width == m.config.ScreenW && msg.Height == m.config.ScreenH {
		return m, nil
	}

	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if m.started && !m.state.GameOver && m.runTicks > 0 {
		m.logger.Debug("run abandoned by resize", "game", m.game.ID(), "score", m.state.Score)
	}
	m.game.Reset(m.config)
	m.state = m.game.State()
	m.hold.Reset()
	m.frame.Clear()
	m.runTicks = 0
	m.saved = false

	return m, nil
}

// handleTick runs one simulation step.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.hold.Expire(now, &m.frame)

	if !m.started {
		m.frame.Clear()
		return m, tickCmd(m.config.TickRate, m.id)
	}

	result := m.game.Step(m.frame)
	m.frame.Clear()
	m.state = result.State

	for _, cue := range result.Cues {
		switch cue {
		case core.CueRestart:
			m.runTicks = 0
			m.saved = false
			m.startMusic()
		case core.CueGameOver:
			m.stopMusic()
		}
		m.playCue(cue)
	}

	if !m.state.GameOver && !m.state.Paused {
		m.runTicks++
	}

	// Record each game over once
	if m.state.GameOver && !m.saved {
		m.saveRun()
		m.saved = true
	}

	return m, tickCmd(m.config.TickRate, m.id)
}

// ClipForCue maps a simulation cue to the sound it plays.
func ClipForCue(c core.Cue) (audio.Clip, bool) {
	switch c {
	case core.CueJump:
		return audio.ClipJump, true
	case core.CueSpring:
		return audio.ClipSpring, true
	case core.CueBreak:
		return audio.ClipBreak, true
	case core.CueCoin:
		return audio.ClipCoin, true
	case core.CueGameOver:
		return audio.ClipGameOver, true
	case core.CueRestart:
		return audio.ClipRestart, true
	}
	return 0, false
}

func (m GameModel) playCue(c core.Cue) {
	if m.opts.Sound == nil {
		return
	}
	clip, ok := ClipForCue(c)
	if !ok {
		return
	}
	if err := m.opts.Sound.Play(clip, audio.ChannelEffects, m.opts.Volumes.EffectsVolume); err != nil {
		m.logger.Debug("cue not played", "cue", c, "error", err)
	}
}

// startMusic starts the background loop unless it is already running.
func (m GameModel) startMusic() {
	sm := m.opts.Sound
	if sm == nil || !sm.Enabled() || sm.Busy(audio.ChannelMusic) {
		return
	}
	if err := sm.Play(audio.ClipMusic, audio.ChannelMusic, m.opts.Volumes.MusicVolume); err != nil {
		m.logger.Warn("music not started", "error", err)
	}
}

// stopMusic silences the background loop; it restarts with the next run.
func (m GameModel) stopMusic() {
	if m.opts.Sound != nil {
		m.opts.Sound.Stop(audio.ChannelMusic)
	}
}

// saveRun records the finished run in the ledger.
func (m GameModel) saveRun() {
	run := storage.Run{
		GameID:   m.game.ID(),
		Player:   m.opts.Player,
		Score:    m.state.Score,
		Coins:    m.state.Coins,
		Duration: time.Duration(m.runTicks) * time.Second / time.Duration(m.config.TickRate),
	}
	if s, ok := m.game.(seeded); ok {
		run.Seed = s.Seed()
	}

	m.logger.Info("run finished",
		"game", run.GameID,
		"player", run.Player,
		"score", run.Score,
		"coins", run.Coins,
		"duration", run.Duration,
	)

	if m.opts.Ledger == nil {
		return
	}
	if _, err := m.opts.Ledger.SaveRun(run); err != nil {
		m.logger.Warn("run not recorded", "error", err)
	}
}

// saveScreenshot writes the current frame as plain text under
// ~/.jumper/screenshots and returns the file path.
func (m GameModel) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".jumper", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create %s: %w", dir, err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("cannot write screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	if !m.started {
		return renderTitle(m.game.Title(), m.state.Best, m.config.ScreenW, m.config.ScreenH)
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the game state after the last tick.
func (m GameModel) State() core.GameState {
	return m.state
}

// Started reports whether the title screen has been dismissed.
func (m GameModel) Started() bool {
	return m.started
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays one game in the terminal until the user quits.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewGameModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
