package material

import (
	"math"

	"github.com/glintlab/go-rough-dielectric/pkg/core"
)

// Checker is a procedural checkerboard texture. It is the simplest
// spatially-varying texture and mostly serves to exercise the
// non-constant parameter paths (e.g. roughness that changes across a surface).
type Checker struct {
	Even, Odd core.Vec3 // Values of the two check colors
	Frequency float64   // Number of checks per unit of UV space
}

// NewChecker creates a checkerboard texture with the given check values
func NewChecker(even, odd core.Vec3, frequency float64) *Checker {
	if frequency <= 0 {
		frequency = 1
	}
	return &Checker{Even: even, Odd: odd, Frequency: frequency}
}

// Evaluate returns one of the two check values based on UV cell parity
func (c *Checker) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	checkX := int(math.Floor(uv.X * c.Frequency))
	checkY := int(math.Floor(uv.Y * c.Frequency))
	if (checkX+checkY)%2 == 0 {
		return c.Even
	}
	return c.Odd
}

// IsConstant always reports false
func (c *Checker) IsConstant() bool {
	return false
}
