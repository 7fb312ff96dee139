package jumper

// Snapshot is a comparable copy of the simulation state, used by tests and
// the headless simulator.
type Snapshot struct {
	Tick      int
	Score     int
	Best      int
	Coins     int
	Runs      int
	State     PlayerState
	PlayerX   float64
	PlayerY   float64
	PlayerVX  float64
	PlayerVY  float64
	CameraY   float64
	Platforms int
	TopY      float64 // Y of the highest live platform
	TopSeq    uint64
	Dropped   int // Platforms lost to a full pool
}

// Snapshot captures the current state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:  g.tick,
		Score: g.score,
		Best:  g.best,
		Runs:  g.runs,
	}
	if g.player != nil {
		s.Coins = g.player.Coins
		s.State = g.player.State()
		s.PlayerX, s.PlayerY = g.player.X, g.player.Y
		s.PlayerVX, s.PlayerVY = g.player.VX, g.player.VY
	}
	if g.camera != nil {
		s.CameraY = g.camera.Y
	}
	if g.level != nil {
		s.Platforms = g.level.Len()
		s.Dropped = g.level.Dropped()
		if _, top, ok := g.level.pool.Newest(); ok {
			s.TopY = top.Y
			s.TopSeq = top.Seq
		}
	}
	return s
}

// Platforms returns a copy of the live platforms, lowest first.
func (g *Game) Platforms() []Platform {
	if g.level == nil {
		return nil
	}
	return g.level.Platforms()
}
