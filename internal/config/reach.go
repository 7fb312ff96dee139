package config

import "math"

// ContinuousApex returns the height gained by a jump with the given impulse
// under constant gravity: v²/(2g).
func ContinuousApex(impulse, gravity float64) float64 {
	if gravity <= 0 {
		return math.Inf(1)
	}
	return impulse * impulse / (2 * gravity)
}

// DiscreteApex returns the height actually gained by the tick integrator
// (velocity updated before position, constant dt). It is always a little
// below ContinuousApex.
func DiscreteApex(impulse, gravity float64) float64 {
	if gravity <= 0 || impulse <= 0 {
		return 0
	}
	v := -impulse
	h := 0.0
	for {
		v += gravity
		if v >= 0 {
			return h
		}
		h -= v
	}
}

// MaxReachableGap returns the largest platform gap that is still jumpable
// with the configured physics and safety margin.
func (c JumperConfig) MaxReachableGap() float64 {
	j, g := c.Physics.JumpImpulse, c.Physics.Gravity
	apex := math.Min(ContinuousApex(j, g), DiscreteApex(j, g))
	return apex - c.Platforms.SafetyMargin
}
