package core

import (
	"math"
)

// Shading-frame helpers. Directions handed to the scattering code live in a
// local frame whose z-axis is the shading normal, so the usual trigonometric
// quantities reduce to simple component arithmetic. The sign of Z tells
// which side of the interface a direction lies on.

// CosTheta returns the cosine of the angle between v and the shading normal
func CosTheta(v Vec3) float64 {
	return v.Z
}

// AbsCosTheta returns the absolute cosine of the angle between v and the normal
func AbsCosTheta(v Vec3) float64 {
	return math.Abs(v.Z)
}

// SinTheta2 returns the squared sine of the angle between v and the normal
func SinTheta2(v Vec3) float64 {
	return 1.0 - v.Z*v.Z
}

// TanTheta returns the tangent of the angle between v and the normal
func TanTheta(v Vec3) float64 {
	sinTheta2 := SinTheta2(v)
	if sinTheta2 <= 0 {
		return 0
	}
	return math.Sqrt(sinTheta2) / v.Z
}

// SameHemisphere reports whether two local directions lie on the same side
// of the interface
func SameHemisphere(a, b Vec3) bool {
	return a.Z*b.Z > 0
}

// Signum returns -1 for negative values and +1 otherwise
func Signum(value float64) float64 {
	if value < 0 {
		return -1.0
	}
	return 1.0
}

// SphericalDirection converts spherical coordinates to a local-frame vector
func SphericalDirection(sinTheta, cosTheta, phi float64) Vec3 {
	return Vec3{
		X: sinTheta * math.Cos(phi),
		Y: sinTheta * math.Sin(phi),
		Z: cosTheta,
	}
}
