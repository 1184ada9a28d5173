package microfacet

import (
	"math"
	"math/rand"
	"testing"

	"github.com/glintlab/go-rough-dielectric/pkg/core"
)

func TestParseType(t *testing.T) {
	cases := map[string]Type{
		"beckmann": Beckmann,
		"ggx":      GGX,
		"phong":    Phong,
		"as":       AshikhminShirley,
	}
	for name, want := range cases {
		got, err := ParseType(name)
		if err != nil {
			t.Errorf("ParseType(%q): unexpected error %v", name, err)
		}
		if got != want {
			t.Errorf("ParseType(%q): expected %v, got %v", name, want, got)
		}
		if got.String() != name {
			t.Errorf("String round-trip for %q gave %q", name, got.String())
		}
	}

	if _, err := ParseType("trowbridge"); err == nil {
		t.Error("ParseType should reject unknown distribution names")
	}
}

func TestSupportsAnisotropy(t *testing.T) {
	for _, typ := range []Type{Beckmann, GGX, Phong} {
		if New(typ).SupportsAnisotropy() {
			t.Errorf("%v should not support anisotropy", typ)
		}
	}
	if !New(AshikhminShirley).SupportsAnisotropy() {
		t.Error("Ashikhmin-Shirley should support anisotropy")
	}
}

func TestTransformRoughness(t *testing.T) {
	beckmann := New(Beckmann)
	if got := beckmann.TransformRoughness(0.3); got != 0.3 {
		t.Errorf("Beckmann roughness should pass through, got %v", got)
	}
	if got := beckmann.TransformRoughness(0); got != 1e-5 {
		t.Errorf("Roughness should be clamped away from zero, got %v", got)
	}

	// Phong-style families convert roughness to an exponent
	phong := New(Phong)
	want := 2.0/(0.1*0.1) - 2.0
	if got := phong.TransformRoughness(0.1); math.Abs(got-want) > 1e-9 {
		t.Errorf("Phong exponent: expected %v, got %v", want, got)
	}
	if got := phong.TransformRoughness(10); got != 0.1 {
		t.Errorf("Phong exponent should be clamped to 0.1, got %v", got)
	}
}

func TestEvalBackfacingIsZero(t *testing.T) {
	m := core.NewVec3(0.2, 0.1, -0.5).Normalize()
	for _, typ := range []Type{Beckmann, GGX, Phong, AshikhminShirley} {
		d := New(typ)
		alpha := d.TransformRoughness(0.2)
		if got := d.Eval(m, alpha, alpha); got != 0 {
			t.Errorf("%v: back-facing micro-normal should have zero density, got %v", typ, got)
		}
	}
}

// The normal distribution must satisfy the projected-area normalization
// integral(D(m) * cos(theta_m) dm) = 1 over the hemisphere. Estimated with
// uniform hemisphere sampling.
func TestEvalNormalization(t *testing.T) {
	const samples = 200000
	random := rand.New(rand.NewSource(17))

	for _, typ := range []Type{Beckmann, GGX, Phong, AshikhminShirley} {
		d := New(typ)
		alpha := d.TransformRoughness(0.5)

		var sum float64
		for i := 0; i < samples; i++ {
			cosTheta := random.Float64()
			sinTheta := math.Sqrt(1 - cosTheta*cosTheta)
			phi := 2 * math.Pi * random.Float64()
			m := core.SphericalDirection(sinTheta, cosTheta, phi)
			sum += d.Eval(m, alpha, alpha) * cosTheta
		}
		estimate := sum / samples * 2 * math.Pi

		if math.Abs(estimate-1.0) > 0.05 {
			t.Errorf("%v: normalization integral should be 1, got %v", typ, estimate)
		}
	}
}

func TestSampleProducesValidMicronormals(t *testing.T) {
	random := rand.New(rand.NewSource(3))

	for _, typ := range []Type{Beckmann, GGX, Phong, AshikhminShirley} {
		d := New(typ)
		alphaU := d.TransformRoughness(0.3)
		alphaV := alphaU
		if typ == AshikhminShirley {
			alphaV = d.TransformRoughness(0.6)
		}

		for i := 0; i < 1000; i++ {
			s := core.NewVec2(random.Float64(), random.Float64())
			m := d.Sample(s, alphaU, alphaV)

			if math.Abs(m.Length()-1.0) > 1e-9 {
				t.Fatalf("%v: sampled micro-normal is not unit length: %v", typ, m)
			}
			if m.Z <= 0 {
				t.Fatalf("%v: sampled micro-normal is not in the upper hemisphere: %v", typ, m)
			}
			if pdf := d.PDF(m, alphaU, alphaV); pdf <= 0 {
				t.Fatalf("%v: sampled micro-normal has non-positive density %v", typ, pdf)
			}
		}
	}
}

func TestSampleConcentratesWithLowRoughness(t *testing.T) {
	random := rand.New(rand.NewSource(9))
	d := New(Beckmann)

	meanCos := func(alpha float64) float64 {
		var sum float64
		const n = 5000
		for i := 0; i < n; i++ {
			s := core.NewVec2(random.Float64(), random.Float64())
			sum += d.Sample(s, alpha, alpha).Z
		}
		return sum / n
	}

	smooth := meanCos(0.05)
	rough := meanCos(0.5)
	if smooth <= rough {
		t.Errorf("Lower roughness should concentrate samples around the normal: alpha=0.05 gave mean cos %v, alpha=0.5 gave %v", smooth, rough)
	}
	if smooth < 0.99 {
		t.Errorf("At alpha=0.05 samples should hug the normal, mean cos was %v", smooth)
	}
}

func TestShadowingMasking(t *testing.T) {
	up := core.NewVec3(0, 0, 1)

	for _, typ := range []Type{Beckmann, GGX, Phong, AshikhminShirley} {
		d := New(typ)
		alpha := d.TransformRoughness(0.3)

		// Perpendicular incidence on an aligned facet: no shadowing at all
		if got := d.G(up, up, up, alpha, alpha); math.Abs(got-1.0) > 1e-9 {
			t.Errorf("%v: G at perpendicular incidence should be 1, got %v", typ, got)
		}

		// G stays within [0, 1] for arbitrary configurations, up to the
		// ~0.35% error of the rational approximation to the Beckmann
		// shadowing integral, which overshoots 1 just below its a=1.6 cutoff
		random := rand.New(rand.NewSource(11))
		for i := 0; i < 500; i++ {
			wi := randomDirection(random)
			wo := randomDirection(random)
			m := randomDirection(random)
			if m.Z < 0 {
				m = m.Negate()
			}
			g := d.G(wi, wo, m, alpha, alpha)
			if g < 0 || g > 1+1e-3 {
				t.Fatalf("%v: G out of range: %v", typ, g)
			}
		}
	}
}

func TestShadowingMaskingBackfacingFacet(t *testing.T) {
	d := New(Beckmann)
	alpha := 0.3

	// A facet tilted away from a grazing viewer is invisible to it
	wi := core.NewVec3(0.995, 0, 0.0995).Normalize()
	wo := core.NewVec3(0, 0, 1)
	m := core.NewVec3(-0.866, 0, 0.5)

	if got := d.G(wi, wo, m, alpha, alpha); got != 0 {
		t.Errorf("G should be zero for a facet back-facing the incident direction, got %v", got)
	}
}

func randomDirection(random *rand.Rand) core.Vec3 {
	z := 2*random.Float64() - 1
	phi := 2 * math.Pi * random.Float64()
	sinTheta := math.Sqrt(math.Max(0, 1-z*z))
	return core.SphericalDirection(sinTheta, z, phi)
}
