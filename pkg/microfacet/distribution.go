package microfacet

import (
	"fmt"
	"math"

	"github.com/glintlab/go-rough-dielectric/pkg/core"
)

// Type identifies a microfacet normal distribution family.
// The set is closed: scattering code switches exhaustively over it.
type Type int

const (
	// Beckmann is the physically-based distribution derived from Gaussian
	// random surfaces (the default)
	Beckmann Type = iota
	// GGX is the distribution of Walter et al., with longer tails than
	// Beckmann; renderings using it may converge slowly
	GGX
	// Phong is the classical cos^p distribution
	Phong
	// AshikhminShirley is the anisotropic Phong-style distribution; the only
	// family that accepts distinct tangent/bitangent roughness values
	AshikhminShirley
)

// ParseType resolves a distribution name as it appears in parameter files
func ParseType(name string) (Type, error) {
	switch name {
	case "beckmann":
		return Beckmann, nil
	case "ggx":
		return GGX, nil
	case "phong":
		return Phong, nil
	case "as":
		return AshikhminShirley, nil
	default:
		return Beckmann, fmt.Errorf("microfacet: unknown distribution %q", name)
	}
}

func (t Type) String() string {
	switch t {
	case Beckmann:
		return "beckmann"
	case GGX:
		return "ggx"
	case Phong:
		return "phong"
	case AshikhminShirley:
		return "as"
	default:
		return "invalid"
	}
}

// Distribution evaluates and samples microsurface normals for one family.
// All directions are in the local shading frame (z-axis = macroscopic normal)
// and micro-normals returned by Sample always lie in the upper hemisphere.
// A Distribution is an immutable value and safe for concurrent use.
type Distribution struct {
	typ Type
}

// New creates a distribution of the given family
func New(t Type) Distribution {
	return Distribution{typ: t}
}

// Type returns the distribution family
func (d Distribution) Type() Type {
	return d.typ
}

// SupportsAnisotropy reports whether the family accepts distinct
// tangent/bitangent roughness values
func (d Distribution) SupportsAnisotropy() bool {
	return d.typ == AshikhminShirley
}

// TransformRoughness converts the user-facing roughness value into the
// family's native parameter: a slope for Beckmann/GGX, an exponent for
// Phong/Ashikhmin-Shirley. The conversion is chosen so the families produce
// a similar appearance for the same input roughness.
func (d Distribution) TransformRoughness(value float64) float64 {
	value = math.Max(value, 1e-5)
	if d.typ == Phong || d.typ == AshikhminShirley {
		value = math.Max(2.0/(value*value)-2.0, 0.1)
	}
	return value
}

// Eval returns the microfacet normal distribution density D at micro-normal m.
// Back-facing micro-normals have zero density, and vanishingly small results
// are flushed to exactly zero so callers can short-circuit on D == 0.
func (d Distribution) Eval(m core.Vec3, alphaU, alphaV float64) float64 {
	if core.CosTheta(m) <= 0 {
		return 0
	}

	cosTheta2 := m.Z * m.Z
	var result float64

	switch d.typ {
	case Beckmann:
		ex := core.TanTheta(m) / alphaU
		result = math.Exp(-ex*ex) / (math.Pi * alphaU * alphaU * cosTheta2 * cosTheta2)
	case GGX:
		tanTheta := core.TanTheta(m)
		root := alphaU / (cosTheta2 * (alphaU*alphaU + tanTheta*tanTheta))
		result = root * root / math.Pi
	case Phong:
		result = (alphaU + 2) / (2 * math.Pi) * math.Pow(m.Z, alphaU)
	case AshikhminShirley:
		norm := math.Sqrt((alphaU+2)*(alphaV+2)) / (2 * math.Pi)
		sinTheta2 := 1 - cosTheta2
		if sinTheta2 <= 0 {
			// m is the macroscopic normal: cos^e = 1 for any exponent
			result = norm
		} else {
			exponent := (alphaU*m.X*m.X + alphaV*m.Y*m.Y) / sinTheta2
			result = norm * math.Pow(m.Z, exponent)
		}
	}

	if result < 1e-20 {
		result = 0
	}
	return result
}

// PDF returns the density with which Sample draws micro-normal m,
// expressed with respect to solid angle: D(m) * cos(theta_m)
func (d Distribution) PDF(m core.Vec3, alphaU, alphaV float64) float64 {
	return d.Eval(m, alphaU, alphaV) * core.CosTheta(m)
}

// Sample draws a micro-normal from the density D(m)*cos(theta_m) given a
// pair of uniform random numbers
func (d Distribution) Sample(sample core.Vec2, alphaU, alphaV float64) core.Vec3 {
	var cosTheta, phi float64

	switch d.typ {
	case Beckmann:
		tanTheta2 := -alphaU * alphaU * math.Log(1.0-sample.X)
		cosTheta = 1.0 / math.Sqrt(1.0+tanTheta2)
		phi = 2 * math.Pi * sample.Y
	case GGX:
		tanTheta2 := alphaU * alphaU * sample.X / (1.0 - sample.X)
		cosTheta = 1.0 / math.Sqrt(1.0+tanTheta2)
		phi = 2 * math.Pi * sample.Y
	case Phong:
		cosTheta = math.Pow(sample.X, 1.0/(alphaU+2))
		phi = 2 * math.Pi * sample.Y
	case AshikhminShirley:
		// Quadrant-mirrored sampling of the anisotropic lobe
		switch {
		case sample.X < 0.25:
			phi, cosTheta = sampleFirstQuadrant(alphaU, alphaV, 4*sample.X, sample.Y)
		case sample.X < 0.5:
			phi, cosTheta = sampleFirstQuadrant(alphaU, alphaV, 4*(0.5-sample.X), sample.Y)
			phi = math.Pi - phi
		case sample.X < 0.75:
			phi, cosTheta = sampleFirstQuadrant(alphaU, alphaV, 4*(sample.X-0.5), sample.Y)
			phi += math.Pi
		default:
			phi, cosTheta = sampleFirstQuadrant(alphaU, alphaV, 4*(1.0-sample.X), sample.Y)
			phi = 2*math.Pi - phi
		}
	}

	sinTheta := math.Sqrt(math.Max(0, 1.0-cosTheta*cosTheta))
	return core.SphericalDirection(sinTheta, cosTheta, phi)
}

// sampleFirstQuadrant draws phi and cosTheta restricted to phi in [0, pi/2]
func sampleFirstQuadrant(alphaU, alphaV, u1, u2 float64) (phi, cosTheta float64) {
	if alphaU == alphaV {
		phi = math.Pi * u1 * 0.5
	} else {
		phi = math.Atan(math.Sqrt((alphaU+1)/(alphaV+1)) * math.Tan(math.Pi*u1*0.5))
	}
	cosPhi, sinPhi := math.Cos(phi), math.Sin(phi)
	cosTheta = math.Pow(u2, 1.0/(alphaU*cosPhi*cosPhi+alphaV*sinPhi*sinPhi+1.0))
	return phi, cosTheta
}

// G evaluates the joint shadowing-masking factor for an incident/outgoing
// direction pair and micro-normal m
func (d Distribution) G(wi, wo, m core.Vec3, alphaU, alphaV float64) float64 {
	if d.typ == AshikhminShirley {
		// V-cavity form used by the anisotropic Phong-style family
		if wi.Dot(m)*core.CosTheta(wi) <= 0 || wo.Dot(m)*core.CosTheta(wo) <= 0 {
			return 0
		}
		nDotM := core.CosTheta(m)
		return math.Min(1.0, math.Min(
			2*nDotM*core.CosTheta(wo)/wo.Dot(m),
			2*nDotM*core.CosTheta(wi)/wi.Dot(m)))
	}
	return d.smithG1(wi, m, alphaU) * d.smithG1(wo, m, alphaU)
}

// smithG1 is the monodirectional Smith shadowing term
func (d Distribution) smithG1(v, m core.Vec3, alpha float64) float64 {
	// Can't see the back side of a microfacet from the front and vice versa
	if v.Dot(m)*core.CosTheta(v) <= 0 {
		return 0
	}

	tanTheta := math.Abs(core.TanTheta(v))
	if tanTheta == 0 {
		return 1
	}

	if d.typ == GGX {
		root := alpha * tanTheta
		return 2.0 / (1.0 + math.Sqrt(1.0+root*root))
	}

	var a float64
	if d.typ == Phong {
		// Approximate the exponent as an equivalent Beckmann slope
		a = math.Sqrt(0.5*alpha+1) / tanTheta
	} else {
		a = 1.0 / (alpha * tanTheta)
	}
	if a >= 1.6 {
		return 1.0
	}

	// Rational approximation to the Beckmann shadowing integral (<0.35% error)
	aSqr := a * a
	return (3.535*a + 2.181*aSqr) / (1.0 + 2.276*a + 2.577*aSqr)
}
