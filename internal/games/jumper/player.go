package jumper

import (
	"math"

	"github.com/vovakirdan/tui-jumper/internal/config"
	"github.com/vovakirdan/tui-jumper/internal/core"
)

// PlayerState is derived from vertical velocity, except Dead which is sticky.
type PlayerState uint8

const (
	StateFalling PlayerState = iota
	StateRising
	StateDead
)

// String returns the state name.
func (s PlayerState) String() string {
	switch s {
	case StateFalling:
		return "falling"
	case StateRising:
		return "rising"
	case StateDead:
		return "dead"
	default:
		return "unknown"
	}
}

// Landing describes what happened to the player during one Update.
type Landing struct {
	Landed bool
	Kind   Kind   // Kind of the platform landed on
	Seq    uint64 // Seq of the platform landed on
	Broke  bool   // The platform was breakable and is gone
	Coin   bool   // A coin was collected
	Died   bool   // The player fell out of view this tick
}

// Player is the jumper avatar. Positions are world space, Y grows downward.
type Player struct {
	X, Y   float64
	VX, VY float64
	W, H   float64
	Coins  int
	Color  core.Color

	dead    bool
	phys    config.JumperPhysics
	palette []core.Color
	every   int
	worldW  float64
	worldH  float64
	startX  float64
	startY  float64
}

// NewPlayer creates a player standing at the configured start position.
func NewPlayer(cfg config.JumperConfig, colors config.Colors, worldW, worldH float64) *Player {
	p := &Player{
		W:       cfg.Player.Width,
		H:       cfg.Player.Height,
		phys:    cfg.Physics,
		palette: colors.Player,
		every:   colors.ColorEveryCoins,
		worldW:  worldW,
		worldH:  worldH,
	}
	p.startX = worldW/2 - p.W/2
	p.startY = worldH*cfg.Player.StartY - p.H
	if p.startY < 0 {
		p.startY = 0
	}
	p.Reset()
	return p
}

// Reset puts the player back at the start, alive and at rest.
func (p *Player) Reset() {
	p.X, p.Y = p.startX, p.startY
	p.VX, p.VY = 0, 0
	p.Coins = 0
	p.dead = false
	p.Color = core.ColorDefault
	if len(p.palette) > 0 {
		p.Color = p.palette[0]
	}
}

// Box returns the player's collision box.
func (p *Player) Box() core.Box {
	return core.NewBox(p.X, p.Y, p.W, p.H)
}

// Bottom returns the Y of the player's feet.
func (p *Player) Bottom() float64 {
	return p.Y + p.H
}

// Alive reports whether the player is still in play.
func (p *Player) Alive() bool {
	return !p.dead
}

// State returns the current player state.
func (p *Player) State() PlayerState {
	switch {
	case p.dead:
		return StateDead
	case p.VY < 0:
		return StateRising
	default:
		return StateFalling
	}
}

// Update integrates one tick. dir is -1, 0 or 1 for left, none or right.
// cameraY is the top of the visible area, used for the death check.
func (p *Player) Update(dir int, level *Level, cameraY float64) Landing {
	var res Landing
	if p.dead {
		return res
	}

	p.VX = float64(dir) * p.phys.MoveSpeed
	p.X = core.Wrap(p.X+p.VX, p.worldW)

	p.VY += p.phys.Gravity
	if p.VY > p.phys.TerminalVelocity {
		p.VY = p.phys.TerminalVelocity
	}

	prevBottom := p.Bottom()
	p.Y += p.VY

	if p.VY > 0 {
		p.resolveLanding(level, prevBottom, &res)
	}

	res.Coin = p.collectCoin(level)

	if p.Y > cameraY+p.worldH {
		p.dead = true
		p.VX, p.VY = 0, 0
		res.Died = true
	}

	return res
}

// resolveLanding snaps the player onto the platform it fell through from
// above this tick. Penetration is measured along the fall from prevBottom,
// so with several candidates the first surface crossed wins.
func (p *Player) resolveLanding(level *Level, prevBottom float64, res *Landing) {
	bottom := p.Bottom()

	var (
		best    Handle
		bestP   Platform
		bestPen = math.Inf(1)
	)
	level.Band(prevBottom, bottom, func(h Handle, pl Platform) bool {
		if !p.overlapsX(pl.Box()) {
			return true
		}
		if pen := pl.Y - prevBottom; pen < bestPen {
			best, bestP, bestPen = h, pl, pen
		}
		return true
	})

	if !best.Valid() {
		return
	}

	p.Y = bestP.Y - p.H
	switch bestP.Kind {
	case KindSpring:
		p.VY = -p.phys.SpringImpulse
	case KindNormal, KindMoving, KindBreakable:
		p.VY = -p.phys.JumpImpulse
	}

	res.Landed = true
	res.Kind = bestP.Kind
	res.Seq = bestP.Seq
	if bestP.Kind == KindBreakable {
		res.Broke = level.Remove(best)
	}
}

// collectCoin picks up at most one coin touching the player.
func (p *Player) collectCoin(level *Level) bool {
	// A coin box spans [top-1, top); it touches the player when top is in (Y, Bottom+1)
	var got Handle
	box := p.Box()
	level.Band(box.Y, box.Bottom()+1, func(h Handle, pl Platform) bool {
		if !pl.Coin {
			return true
		}
		cb := pl.CoinBox()
		if box.Intersects(cb) || box.Shift(-p.worldW, 0).Intersects(cb) {
			got = h
			return false
		}
		return true
	})

	if !got.Valid() || !level.TakeCoin(got) {
		return false
	}
	p.Coins++
	return true
}

// overlapsX reports horizontal overlap, counting the copy of the player
// that shows on the left edge while it straddles the right one.
func (p *Player) overlapsX(b core.Box) bool {
	box := p.Box()
	return box.OverlapsX(b) || box.Shift(-p.worldW, 0).OverlapsX(b)
}

// ChangeColorIfNeeded steps through the palette every few coins.
func (p *Player) ChangeColorIfNeeded() bool {
	if p.every <= 0 || len(p.palette) == 0 {
		return false
	}
	c := p.palette[(p.Coins/p.every)%len(p.palette)]
	if c == p.Color {
		return false
	}
	p.Color = c
	return true
}
