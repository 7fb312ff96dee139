package jumper

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-jumper/internal/config"
)

// Spawner decides where and what the next platform is.
// It only returns values; the Level owns placement.
type Spawner struct {
	rng      *rand.Rand
	cfg      config.JumperPlatforms
	screenW  float64
	minGap   float64
	maxGap   float64
	seq      uint64
	lastKind Kind
}

// NewSpawner creates a spawner with the given RNG seed.
// The gap range is clamped to what a normal jump can reach, so even a
// config that skipped validation cannot produce an impossible gap.
func NewSpawner(seed int64, screenW float64, cfg config.JumperConfig) *Spawner {
	s := &Spawner{
		cfg:     cfg.Platforms,
		screenW: screenW,
		minGap:  cfg.Platforms.MinGap,
		maxGap:  cfg.Platforms.MaxGap,
	}

	if reach := cfg.MaxReachableGap(); s.maxGap > reach {
		s.maxGap = reach
	}
	if s.minGap > s.maxGap {
		s.minGap = s.maxGap
	}
	if s.minGap <= 0 {
		// Keeps Y strictly decreasing even for degenerate physics
		s.minGap = math.SmallestNonzeroFloat64
		s.maxGap = math.Max(s.maxGap, s.minGap)
	}

	s.Reset(seed)
	return s
}

// Reset reseeds the RNG and restarts the spawn sequence.
func (s *Spawner) Reset(seed int64) {
	s.rng = rand.New(rand.NewSource(seed))
	s.seq = 0
	s.lastKind = KindNormal
}

// MinGap returns the effective minimum vertical gap.
func (s *Spawner) MinGap() float64 {
	return s.minGap
}

// MaxGap returns the effective (reachable) maximum vertical gap.
func (s *Spawner) MaxGap() float64 {
	return s.maxGap
}

// Anchor returns a normal platform centered under x at the given top y.
// Used for the first platform under the player's start position.
func (s *Spawner) Anchor(centerX, y float64) Platform {
	x := centerX - s.cfg.Width/2
	x = math.Max(0, math.Min(x, s.maxX()))
	return s.stamp(Platform{
		X:    x,
		Y:    y,
		W:    s.cfg.Width,
		H:    s.cfg.Height,
		Kind: KindNormal,
	})
}

// Next produces the platform one random gap above lastY.
func (s *Spawner) Next(lastY float64) Platform {
	return s.next(lastY, true)
}

// NextCalm is Next restricted to normal platforms without coins.
// Used while seeding the opening screen.
func (s *Spawner) NextCalm(lastY float64) Platform {
	return s.next(lastY, false)
}

func (s *Spawner) next(lastY float64, special bool) Platform {
	gap := s.minGap + s.rng.Float64()*(s.maxGap-s.minGap)
	x := s.rng.Float64() * s.maxX()

	kind := KindNormal
	if special {
		kind = s.pickKind()
	}

	p := Platform{
		X:    x,
		Y:    lastY - gap,
		W:    s.cfg.Width,
		H:    s.cfg.Height,
		Kind: kind,
	}

	if kind == KindMoving {
		p.VX = s.cfg.MoveSpeed
		if s.rng.Intn(2) == 0 {
			p.VX = -p.VX
		}
	}
	if special && s.cfg.CoinChance > 0 {
		p.Coin = s.rng.Float64() < s.cfg.CoinChance
	}

	return s.stamp(p)
}

// pickKind draws a weighted-random kind. Two breakables in a row are
// avoided so a broken ledge always has a solid one above it.
func (s *Spawner) pickKind() Kind {
	w := s.cfg.Weights
	total := w.Total()
	if total <= 0 {
		return KindNormal
	}

	roll := s.rng.Intn(total)
	var kind Kind
	switch {
	case roll < w.Normal:
		kind = KindNormal
	case roll < w.Normal+w.Moving:
		kind = KindMoving
	case roll < w.Normal+w.Moving+w.Breakable:
		kind = KindBreakable
	default:
		kind = KindSpring
	}

	if kind == KindBreakable && s.lastKind == KindBreakable {
		kind = KindNormal
	}
	return kind
}

func (s *Spawner) stamp(p Platform) Platform {
	s.seq++
	p.Seq = s.seq
	s.lastKind = p.Kind
	return p
}

// maxX returns the rightmost valid left edge for a platform.
func (s *Spawner) maxX() float64 {
	return math.Max(0, s.screenW-s.cfg.Width)
}
