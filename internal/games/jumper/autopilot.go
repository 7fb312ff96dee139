package jumper

import (
	"math"

	"github.com/vovakirdan/tui-jumper/internal/core"
)

// Autopilot steers the player for headless runs. While rising it aims at
// the highest platform still within jump reach; while falling, at the
// nearest platform below its feet.
type Autopilot struct {
	dir int
}

// Frame returns the input for the next tick of g.
func (a *Autopilot) Frame(g *Game) core.InputFrame {
	in := core.NewInputFrame()
	if g.player == nil || !g.player.Alive() {
		a.dir = 0
		return in
	}

	want := 0
	if t, ok := a.target(g); ok {
		p := g.player
		w := g.player.worldW
		dx := (t.X + t.W/2) - (p.X + p.W/2)
		dx = core.Wrap(dx+w/2, w) - w/2 // shortest way round
		if math.Abs(dx) > g.cfg.Physics.MoveSpeed/2 {
			want = 1
			if dx < 0 {
				want = -1
			}
		}
	}

	if want != a.dir {
		if a.dir != 0 {
			in.Release(actionFor(a.dir))
		}
		if want != 0 {
			in.Set(actionFor(want))
		}
		a.dir = want
	}
	return in
}

// Reset forgets the held direction.
func (a *Autopilot) Reset() {
	a.dir = 0
}

func (a *Autopilot) target(g *Game) (Platform, bool) {
	p := g.player
	feet := p.Bottom()

	reach := 0.0
	if p.VY < 0 {
		reach = p.VY * p.VY / (2 * g.cfg.Physics.Gravity)
	}

	var (
		above, below       Platform
		haveAbove, haveBel bool
	)
	g.level.pool.Each(func(_ Handle, pl *Platform) {
		switch {
		case pl.Y < feet && feet-pl.Y <= reach-0.5:
			if !haveAbove || pl.Y < above.Y {
				above, haveAbove = *pl, true
			}
		case pl.Y >= feet:
			if !haveBel || pl.Y < below.Y {
				below, haveBel = *pl, true
			}
		}
	})

	if haveAbove {
		return above, true
	}
	return below, haveBel
}

func actionFor(dir int) core.Action {
	if dir < 0 {
		return core.ActionLeft
	}
	return core.ActionRight
}
