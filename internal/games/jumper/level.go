package jumper

import (
	"math"

	"github.com/vovakirdan/tui-jumper/internal/config"
	"github.com/vovakirdan/tui-jumper/internal/core"
)

// Level owns the live platform column: it moves, recycles and tops it up.
type Level struct {
	spawner   *Spawner
	pool      *Pool
	width     float64
	height    float64
	lookahead int
	dropped   int // spawns refused because the pool was full
}

// NewLevel creates a level for a world of the given size.
func NewLevel(cfg config.JumperConfig, seed int64, width, height float64) *Level {
	l := &Level{
		spawner:   NewSpawner(seed, width, cfg),
		width:     width,
		height:    height,
		lookahead: cfg.Platforms.Lookahead,
	}
	if l.lookahead < 1 {
		l.lookahead = 1
	}
	l.pool = NewPool(l.capacity())
	return l
}

// capacity bounds the live platform count: everything between the visible
// bottom and one gap past the lookahead region, at the tightest spacing.
func (l *Level) capacity() int {
	span := l.height + float64(l.lookahead+1)*l.spawner.MaxGap()
	return int(math.Ceil(span/l.spawner.MinGap())) + 2
}

// Reset clears the column and seeds it for a new run: a platform directly
// under start, then calm platforms up past the initial camera.
func (l *Level) Reset(seed int64, start core.Box) {
	l.spawner.Reset(seed)
	l.pool.Reset(l.capacity())
	l.dropped = 0

	anchor := l.spawner.Anchor(start.X+start.W/2, start.Bottom())
	l.pool.Spawn(anchor)

	// The opening screen only gets plain ledges
	last := anchor.Y
	for last > 0 {
		p := l.spawner.NextCalm(last)
		if _, ok := l.pool.Spawn(p); !ok {
			l.dropped++
			break
		}
		last = p.Y
	}

	l.topUp(0)
}

// Update advances moving platforms, drops platforms below the visible area
// and spawns new ones above it. cameraY is the camera's current top.
func (l *Level) Update(cameraY float64) {
	l.pool.Each(func(_ Handle, p *Platform) {
		if p.Kind != KindMoving {
			return
		}
		p.X += p.VX
		if maxX := l.width - p.W; p.X > maxX {
			p.X = maxX
			p.VX = -p.VX
		}
		if p.X < 0 {
			p.X = 0
			p.VX = -p.VX
		}
	})

	bottom := cameraY + l.height
	for {
		h, p, ok := l.pool.Oldest()
		if !ok || p.Y <= bottom {
			break
		}
		l.pool.Remove(h)
	}

	l.topUp(cameraY)
}

// topUp spawns until the newest platform is at least lookahead maximum gaps
// above the visible top.
func (l *Level) topUp(cameraY float64) {
	limit := cameraY - float64(l.lookahead)*l.spawner.MaxGap()
	for {
		_, top, ok := l.pool.Newest()
		if !ok {
			// Only reachable when every platform was recycled; restart below the camera
			top = Platform{Y: cameraY + l.height}
		}
		if ok && top.Y <= limit {
			return
		}

		p := l.spawner.Next(top.Y)
		if _, spawned := l.pool.Spawn(p); !spawned {
			l.dropped++
			return
		}
	}
}

// Band calls fn for every platform whose top lies in [lo, hi].
func (l *Level) Band(lo, hi float64, fn func(h Handle, p Platform) bool) {
	l.pool.Band(lo, hi, fn)
}

// Remove deletes a platform. Stale handles are ignored.
func (l *Level) Remove(h Handle) bool {
	return l.pool.Remove(h)
}

// TakeCoin clears the coin on a platform. Returns false if there was none.
func (l *Level) TakeCoin(h Handle) bool {
	p, ok := l.pool.Get(h)
	if !ok || !p.Coin {
		return false
	}
	s := &l.pool.slots[h.index]
	s.p.Coin = false
	return true
}

// Platforms returns a copy of the live platforms, lowest first.
func (l *Level) Platforms() []Platform {
	out := make([]Platform, 0, l.pool.Len())
	l.pool.Each(func(_ Handle, p *Platform) {
		out = append(out, *p)
	})
	return out
}

// Len returns the live platform count.
func (l *Level) Len() int {
	return l.pool.Len()
}

// Cap returns the pool capacity.
func (l *Level) Cap() int {
	return l.pool.Cap()
}

// Dropped returns how many spawns the full pool refused since Reset.
func (l *Level) Dropped() int {
	return l.dropped
}

// MaxGap returns the effective maximum gap between consecutive platforms.
func (l *Level) MaxGap() float64 {
	return l.spawner.MaxGap()
}

// Draw renders the platforms and their coins. It never mutates the level.
func (l *Level) Draw(dst *core.Screen, cameraY float64, colors config.Colors) {
	l.pool.Each(func(_ Handle, p *Platform) {
		row := int(math.Floor(p.Y - cameraY))
		if row < 0 || row >= dst.Height() {
			return
		}

		x := int(math.Round(p.X))
		w := int(math.Round(p.W))

		switch p.Kind {
		case KindNormal:
			dst.DrawHLine(x, row, w, NormalChar, colors.Normal)
		case KindMoving:
			dst.DrawHLine(x, row, w, MovingChar, colors.Moving)
		case KindBreakable:
			dst.DrawHLine(x, row, w, BreakableChar, colors.Breakable)
		case KindSpring:
			dst.DrawHLine(x, row, w, SpringChar, colors.Spring)
			dst.SetColored(x+w/2, row-1, SpringCoil, colors.Spring)
		}

		if p.Coin {
			cb := p.CoinBox()
			dst.SetColored(int(math.Round(cb.X)), row-1, CoinChar, colors.Coin)
		}
	})
}
