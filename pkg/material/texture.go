package material

import (
	"github.com/glintlab/go-rough-dielectric/pkg/core"
)

// Texture provides spatially-varying values for material parameters
type Texture interface {
	// Evaluate returns the value at given UV coordinates and 3D point.
	// UV drives surface-parameterized textures, the point procedural ones.
	Evaluate(uv core.Vec2, point core.Vec3) core.Vec3

	// IsConstant reports whether the texture returns the same value
	// everywhere. Materials use this to classify themselves as spatially
	// varying, which downstream consumers account for when deciding whether
	// ray-differential information is needed.
	IsConstant() bool
}

// Constant provides a uniform spectrum or scalar value
type Constant struct {
	Value core.Vec3
}

// NewConstant creates a constant spectrum texture
func NewConstant(value core.Vec3) *Constant {
	return &Constant{Value: value}
}

// NewConstantScalar creates a constant scalar texture (stored as a gray spectrum)
func NewConstantScalar(value float64) *Constant {
	return &Constant{Value: core.NewVec3(value, value, value)}
}

// Evaluate returns the constant value regardless of UV or position
func (c *Constant) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	return c.Value
}

// IsConstant always reports true
func (c *Constant) IsConstant() bool {
	return true
}

// scalarValue collapses a texture lookup into a scalar by averaging the
// spectrum channels (used for roughness, which is inherently scalar)
func scalarValue(t Texture, uv core.Vec2, point core.Vec3) float64 {
	return t.Evaluate(uv, point).Average()
}
