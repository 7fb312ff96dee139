// Package jumper implements an endless vertical platformer.
// The player bounces off platforms automatically and steers left or right;
// the camera follows upward and falling out of view ends the run.
package jumper

import (
	"github.com/vovakirdan/tui-jumper/internal/config"
	"github.com/vovakirdan/tui-jumper/internal/core"
	"github.com/vovakirdan/tui-jumper/internal/registry"
)

// Minimum screen size for a playable column.
const (
	MinScreenW = 20
	MinScreenH = 12
)

// Mode selects a ruleset variant.
type Mode int

const (
	ModeStandard Mode = iota // Every platform kind, coins
	ModeClassic              // Normal platforms only
)

// Game implements the jumper game logic. All state lives on the instance;
// independent games (one per SSH session) never share anything.
type Game struct {
	mode     Mode
	runtime  core.RuntimeConfig
	cfg      config.JumperConfig
	colors   config.Colors
	fixedCfg *config.JumperConfig

	player *Player
	level  *Level
	camera *Camera

	score    int
	best     int // Session best; survives restarts, never persisted
	paused   bool
	tooSmall bool
	tick     int
	runs     int   // Restarts since Reset; offsets the seed
	seed     int64 // Seed of the current run

	steer steering
	cues  []core.Cue
}

// steering turns press/release events into a held direction.
// The most recently pressed direction wins while both are held.
type steering struct {
	left, right bool
	last        core.Action
}

func (s *steering) apply(events []core.KeyEvent) {
	for _, ev := range events {
		switch ev.Action {
		case core.ActionLeft:
			s.left = !ev.Released
		case core.ActionRight:
			s.right = !ev.Released
		default:
			continue
		}
		if !ev.Released {
			s.last = ev.Action
		}
	}
}

func (s *steering) dir() int {
	switch {
	case s.left && s.right && s.last == core.ActionLeft:
		return -1
	case s.left && s.right:
		return 1
	case s.left:
		return -1
	case s.right:
		return 1
	default:
		return 0
	}
}

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// New creates a new jumper game instance.
func New() *Game {
	return &Game{mode: ModeStandard}
}

// NewClassic creates a game with only normal platforms.
func NewClassic() *Game {
	return &Game{mode: ModeClassic}
}

// NewWithConfig creates a game that uses cfg instead of loading from disk.
func NewWithConfig(mode Mode, cfg config.JumperConfig) *Game {
	return &Game{mode: mode, fixedCfg: &cfg}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeClassic {
		return "jumper_classic"
	}
	return "jumper"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeClassic {
		return "Jumper Classic"
	}
	return "Jumper"
}

// Reset initializes the game for a new session. The session best is kept.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cfg = g.loadConfig()

	colors, err := g.cfg.Palette.Resolve()
	if err != nil {
		colors, _ = config.DefaultJumperConfig().Palette.Resolve()
	}
	g.colors = colors

	g.tooSmall = runtime.ScreenW < MinScreenW || runtime.ScreenH < MinScreenH
	w, h := float64(runtime.ScreenW), float64(runtime.ScreenH)

	g.player = NewPlayer(g.cfg, g.colors, w, h)
	g.camera = NewCamera(h * g.cfg.Camera.FollowRatio)
	g.level = NewLevel(g.cfg, runtime.Seed, w, h)
	g.runs = 0
	g.resetRun(runtime.Seed)
}

func (g *Game) loadConfig() config.JumperConfig {
	var cfg config.JumperConfig
	if g.fixedCfg != nil {
		cfg = *g.fixedCfg
	} else {
		loaded, err := config.LoadJumper(configPath)
		if err != nil {
			loaded = config.DefaultJumperConfig()
		}
		cfg = loaded
	}

	if g.mode == ModeClassic {
		cfg.Platforms.Weights = config.KindWeights{Normal: 1}
		cfg.Platforms.CoinChance = 0
	}
	return cfg
}

// resetRun starts a fresh run in the current session.
func (g *Game) resetRun(seed int64) {
	g.seed = seed
	g.camera.Reset()
	g.player.Reset()
	g.level.Reset(seed, g.player.Box())
	g.score = 0
	g.paused = false
	g.tick = 0
	g.steer = steering{}
}

// Step advances the game by one tick: input, player, level, then camera
// and score. Rendering is left to the caller.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.cues = g.cues[:0]
	if g.tooSmall {
		return g.result()
	}

	// Held keys are tracked in every state so a release is never lost
	g.steer.apply(in.Events)

	if !g.player.Alive() {
		// Only restart is accepted here; quit is handled by the platform
		if in.Has(core.ActionRestart) {
			g.runs++
			g.resetRun(g.runtime.Seed + int64(g.runs))
			g.cues = append(g.cues, core.CueRestart)
		}
		return g.result()
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return g.result()
	}

	g.tick++

	landing := g.player.Update(g.steer.dir(), g.level, g.camera.Y)
	g.level.Update(g.camera.Y)

	if landing.Landed {
		switch landing.Kind {
		case KindSpring:
			g.cues = append(g.cues, core.CueSpring)
		case KindNormal, KindMoving, KindBreakable:
			g.cues = append(g.cues, core.CueJump)
		}
	}
	if landing.Broke {
		g.cues = append(g.cues, core.CueBreak)
	}
	if landing.Coin {
		g.cues = append(g.cues, core.CueCoin)
		g.player.ChangeColorIfNeeded()
	}

	if landing.Died {
		// Score stays frozen at its value before the fall
		g.cues = append(g.cues, core.CueGameOver)
		return g.result()
	}

	g.camera.Update(g.player.Box())
	g.score = Score(g.camera.Y, g.cfg.Score.UnitsPerMeter)
	if g.score > g.best {
		g.best = g.score
	}

	return g.result()
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Cues: g.cues}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Score:  g.score,
		Best:   g.best,
		Paused: g.paused,
	}
	if g.player != nil {
		st.Coins = g.player.Coins
		st.GameOver = !g.player.Alive()
	}
	return st
}

// Seed returns the seed of the current run.
func (g *Game) Seed() int64 {
	return g.seed
}

// Config returns the configuration in effect after Reset.
func (g *Game) Config() config.JumperConfig {
	return g.cfg
}

// Register the game variants with the registry
func init() {
	registry.Register("jumper", func() registry.Game {
		return New()
	})
	registry.Register("jumper_classic", func() registry.Game {
		return NewClassic()
	})
}
