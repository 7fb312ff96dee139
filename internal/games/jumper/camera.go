package jumper

import (
	"math"

	"github.com/vovakirdan/tui-jumper/internal/core"
)

// Camera tracks the top of the visible area in world space.
// It only ever scrolls up (Y never increases during a run).
type Camera struct {
	Y          float64
	followLine float64 // Screen rows from the top the player may climb to
}

// NewCamera creates a camera that keeps the player at or below followLine.
func NewCamera(followLine float64) *Camera {
	return &Camera{followLine: followLine}
}

// Update scrolls up when the target climbs above the follow line.
func (c *Camera) Update(target core.Box) {
	c.Y = math.Min(c.Y, target.Y-c.followLine)
}

// Reset returns the camera to the start of a run.
func (c *Camera) Reset() {
	c.Y = 0
}

// ToScreen converts a world Y into a screen row.
func (c *Camera) ToScreen(y float64) int {
	return int(math.Floor(y - c.Y))
}

// Score converts a camera position into whole meters climbed.
func Score(cameraY, unitsPerMeter float64) int {
	if unitsPerMeter <= 0 {
		return 0
	}
	return int(math.Floor(-cameraY / unitsPerMeter))
}
