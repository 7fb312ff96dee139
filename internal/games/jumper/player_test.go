package jumper

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-jumper/internal/config"
	"github.com/vovakirdan/tui-jumper/internal/core"
)

const (
	testW = 80.0
	testH = 24.0
)

// newTestLevel builds a level holding exactly the given platforms.
// Platforms must be listed lowest first.
func newTestLevel(platforms ...Platform) *Level {
	cfg := config.DefaultJumperConfig()
	l := &Level{
		spawner:   NewSpawner(1, testW, cfg),
		pool:      NewPool(32),
		width:     testW,
		height:    testH,
		lookahead: cfg.Platforms.Lookahead,
	}
	for i, p := range platforms {
		p.Seq = uint64(i + 1)
		if p.W == 0 {
			p.W = 9
		}
		if p.H == 0 {
			p.H = 1
		}
		l.pool.Spawn(p)
	}
	return l
}

func newTestPlayer(mutate func(*config.JumperConfig)) *Player {
	cfg := config.DefaultJumperConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	colors, _ := cfg.Palette.Resolve()
	return NewPlayer(cfg, colors, testW, testH)
}

func TestPlayerStartPosition(t *testing.T) {
	p := newTestPlayer(nil)
	if p.Bottom() != testH*0.75 {
		t.Errorf("start bottom = %v, expected %v", p.Bottom(), testH*0.75)
	}
	if center := p.X + p.W/2; center != testW/2 {
		t.Errorf("start center = %v, expected %v", center, testW/2)
	}
	if p.State() != StateFalling || !p.Alive() {
		t.Errorf("new player should be falling and alive, got %v", p.State())
	}
}

func TestPlayerGravityAndTerminalVelocity(t *testing.T) {
	p := newTestPlayer(nil)
	level := newTestLevel()
	p.Y, p.VY = 0, 0

	p.Update(0, level, 1e6)
	if math.Abs(p.VY-0.04) > 1e-12 {
		t.Errorf("VY after one tick = %v, expected 0.04", p.VY)
	}
	if p.Y <= 0 {
		t.Errorf("gravity should pull the player down, Y = %v", p.Y)
	}

	for i := 0; i < 100; i++ {
		p.Update(0, level, 1e6)
	}
	if p.VY != 1.2 {
		t.Errorf("VY should cap at terminal velocity 1.2, got %v", p.VY)
	}
}

func TestPlayerLandsFromAbove(t *testing.T) {
	p := newTestPlayer(nil)
	level := newTestLevel(Platform{X: 30, Y: 20})

	p.X, p.Y, p.VY = 32, 17.5, 0.6 // bottom 19.5, falling
	res := p.Update(0, level, 0)

	if !res.Landed || res.Kind != KindNormal {
		t.Fatalf("expected a normal landing, got %+v", res)
	}
	if p.VY != -1.0 {
		t.Errorf("VY after landing = %v, expected -jump_impulse", p.VY)
	}
	if p.Bottom() != 20 {
		t.Errorf("player should rest on the surface, bottom = %v", p.Bottom())
	}
	if p.State() != StateRising {
		t.Errorf("state after landing = %v, expected rising", p.State())
	}
}

func TestPlayerCollisionEntry(t *testing.T) {
	tests := []struct {
		name     string
		x, y, vy float64
		dir      int
		land     bool
	}{
		{"falling onto top", 32, 17.5, 0.6, 0, true},
		{"side entry below the top", 26.6, 19, 0.5, 1, false},
		{"rising through from below", 32, 19.5, -0.8, 0, false},
		{"falling beside the platform", 20, 17.5, 0.6, 0, false},
		{"exactly touching the top", 32, 18, 0, 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := newTestPlayer(nil)
			level := newTestLevel(Platform{X: 30, Y: 20})
			p.X, p.Y, p.VY = tc.x, tc.y, tc.vy

			res := p.Update(tc.dir, level, 0)
			if res.Landed != tc.land {
				t.Errorf("Landed = %v, expected %v (player %+v)", res.Landed, tc.land, p.Box())
			}
		})
	}
}

func TestPlayerPicksFirstSurfaceCrossed(t *testing.T) {
	p := newTestPlayer(nil)
	level := newTestLevel(
		Platform{X: 30, Y: 20.5},
		Platform{X: 30, Y: 20},
	)

	p.X, p.Y, p.VY = 32, 17.6, 1.2 // bottom 19.6 -> 20.8, crosses both
	res := p.Update(0, level, 0)

	if !res.Landed || res.Seq != 2 {
		t.Fatalf("expected landing on the upper platform (seq 2), got %+v", res)
	}
	if p.Bottom() != 20 {
		t.Errorf("bottom = %v, expected 20", p.Bottom())
	}
}

func TestPlayerPlatformKinds(t *testing.T) {
	tests := []struct {
		kind  Kind
		vy    float64
		broke bool
	}{
		{KindNormal, -1.0, false},
		{KindMoving, -1.0, false},
		{KindBreakable, -1.0, true},
		{KindSpring, -1.6, false},
	}

	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			p := newTestPlayer(nil)
			level := newTestLevel(Platform{X: 30, Y: 20, Kind: tc.kind})
			p.X, p.Y, p.VY = 32, 17.5, 0.6

			res := p.Update(0, level, 0)
			if !res.Landed || res.Kind != tc.kind {
				t.Fatalf("expected landing on %v, got %+v", tc.kind, res)
			}
			if p.VY != tc.vy {
				t.Errorf("VY = %v, expected %v", p.VY, tc.vy)
			}
			if res.Broke != tc.broke {
				t.Errorf("Broke = %v, expected %v", res.Broke, tc.broke)
			}
			if tc.broke && level.Len() != 0 {
				t.Errorf("breakable platform should be removed, %d left", level.Len())
			}
			if !tc.broke && level.Len() != 1 {
				t.Errorf("platform should remain, %d left", level.Len())
			}
		})
	}
}

func TestPlayerHorizontalWrap(t *testing.T) {
	p := newTestPlayer(func(c *config.JumperConfig) { c.Physics.MoveSpeed = 1 })
	level := newTestLevel()
	p.Y, p.VY = 0, -0.5

	p.X = 0
	p.Update(-1, level, 0)
	if p.X != testW-1 {
		t.Errorf("x after moving left from 0 = %v, expected %v", p.X, testW-1)
	}
	if core.Wrap(p.X, testW) != p.X {
		t.Error("wrapped position should be a fixed point of Wrap")
	}

	p.X = testW - 1
	p.Update(1, level, 0)
	if p.X != 0 {
		t.Errorf("x after moving right from the last column = %v, expected 0", p.X)
	}

	p.Update(0, level, 0)
	if p.X != 0 || p.VX != 0 {
		t.Errorf("no input should mean no horizontal motion, x=%v vx=%v", p.X, p.VX)
	}
}

func TestPlayerLandsWhileStraddlingEdge(t *testing.T) {
	p := newTestPlayer(nil)
	level := newTestLevel(Platform{X: 0, Y: 20})

	// Spans 78.5..81.5, i.e. columns 78-79 and 0-1 on screen
	p.X, p.Y, p.VY = 78.5, 17.5, 0.6
	res := p.Update(0, level, 0)
	if !res.Landed {
		t.Error("player straddling the right edge should land on a platform at x=0")
	}
}

func TestPlayerDiesBelowCamera(t *testing.T) {
	p := newTestPlayer(nil)
	level := newTestLevel()

	p.Y, p.VY = 23, 1.0
	res := p.Update(0, level, 0)
	if !res.Died || p.Alive() || p.State() != StateDead {
		t.Fatalf("player below the visible area should die, got %+v state=%v", res, p.State())
	}

	// Dead is sticky and frozen
	x, y := p.X, p.Y
	res = p.Update(1, level, 0)
	if res != (Landing{}) || p.X != x || p.Y != y {
		t.Error("dead player must not move")
	}

	p.Reset()
	if !p.Alive() || p.State() == StateDead {
		t.Error("Reset should revive the player")
	}
}

func TestPlayerCollectsCoin(t *testing.T) {
	p := newTestPlayer(nil)
	level := newTestLevel(Platform{X: 30, Y: 20, Coin: true})

	p.X, p.Y, p.VY = 33, 17.5, 0.6
	res := p.Update(0, level, 0)
	if !res.Coin || p.Coins != 1 {
		t.Fatalf("expected coin pickup, got %+v coins=%d", res, p.Coins)
	}
	if level.Platforms()[0].Coin {
		t.Error("collected coin should be cleared from the platform")
	}

	p.Y, p.VY = 17.5, 0.6
	if res := p.Update(0, level, 0); res.Coin || p.Coins != 1 {
		t.Error("a coin can only be collected once")
	}
}

func TestPlayerChangeColorIfNeeded(t *testing.T) {
	p := newTestPlayer(nil)
	first := p.Color

	p.Coins = 4
	if p.ChangeColorIfNeeded() {
		t.Error("color should not change before color_every_coins coins")
	}

	p.Coins = 5
	if !p.ChangeColorIfNeeded() {
		t.Fatal("color should change at color_every_coins coins")
	}
	if p.Color == first {
		t.Error("color should differ from the starting color")
	}
	if p.ChangeColorIfNeeded() {
		t.Error("repeated call at the same coin count should be a no-op")
	}

	p.Reset()
	if p.Color != first || p.Coins != 0 {
		t.Error("Reset should restore the first palette color and clear coins")
	}
}
