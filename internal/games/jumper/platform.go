package jumper

import "github.com/vovakirdan/tui-jumper/internal/core"

// Kind is the closed set of platform variants. Resolution code switches over
// every value; adding a kind means extending those switches.
type Kind uint8

const (
	KindNormal    Kind = iota // Plain bounce
	KindMoving                // Slides horizontally, bounces off the walls
	KindBreakable             // Bounces once, then disappears
	KindSpring                // Launches with the spring impulse
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNormal:
		return "normal"
	case KindMoving:
		return "moving"
	case KindBreakable:
		return "breakable"
	case KindSpring:
		return "spring"
	default:
		return "unknown"
	}
}

// Platform is a single ledge in world space. Y is the top surface.
type Platform struct {
	X, Y float64
	W, H float64
	Kind Kind
	VX   float64 // Non-zero only for KindMoving
	Coin bool    // A coin sits on top of the platform
	Seq  uint64  // Spawn order; Y strictly decreases as Seq grows
}

// Box returns the platform's collision box.
func (p Platform) Box() core.Box {
	return core.NewBox(p.X, p.Y, p.W, p.H)
}

// CoinBox returns the one-cell pickup box resting on the platform's center.
func (p Platform) CoinBox() core.Box {
	return core.NewBox(p.X+p.W/2-0.5, p.Y-1, 1, 1)
}
