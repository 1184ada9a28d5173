package material

import (
	"fmt"
	"math"

	"github.com/glintlab/go-rough-dielectric/pkg/core"
	"github.com/glintlab/go-rough-dielectric/pkg/microfacet"
)

// RoughDielectricConfig holds the construction-time parameters of a rough
// dielectric interface. Zero-valued texture fields fall back to the defaults
// of a lightly roughened surface with unit modulation.
type RoughDielectricConfig struct {
	// Distribution selects the microfacet family modeling the surface roughness
	Distribution microfacet.Type

	// RoughnessU and RoughnessV are the roughness values along the tangent
	// and bitangent directions. Supplying the same Texture instance for both
	// (or leaving RoughnessV nil) keeps the material isotropic; distinct
	// instances require a distribution family that supports anisotropy.
	RoughnessU Texture
	RoughnessV Texture

	// Reflectance and Transmittance modulate the two lobes (default: unit)
	Reflectance   Texture
	Transmittance Texture

	// ExtIOR and IntIOR are the refractive indices on the two sides of the
	// interface; "exterior" is the side containing the surface normal.
	// Both must be strictly positive and must differ.
	ExtIOR float64
	IntIOR float64

	// WidenSampledLobe enables Walter's trick of sampling a slightly wider
	// microfacet lobe (roughness scaled by 1.2 - 0.2*sqrt(|cos theta_i|)),
	// which keeps importance weights bounded. The same widened roughness is
	// used by PDF so that eval/pdf/sample stay mutually consistent.
	WidenSampledLobe bool
}

// RoughDielectric models light scattering at a rough interface between two
// dielectric media, such as a transition from air to ground glass, following
// the microfacet model of Walter et al. Parameters are fixed at construction
// and immutable afterwards, so the value is safe for concurrent use.
type RoughDielectric struct {
	distribution  microfacet.Distribution
	roughnessU    Texture
	roughnessV    Texture
	reflectance   Texture
	transmittance Texture
	extIOR        float64
	intIOR        float64
	widenLobe     bool

	spatiallyVarying bool
}

// NewRoughDielectric validates the configuration and creates the material.
// Non-positive or equal refractive indices, or anisotropic roughness with a
// family that does not support it, are fatal configuration errors.
func NewRoughDielectric(cfg RoughDielectricConfig) (*RoughDielectric, error) {
	if cfg.RoughnessU == nil {
		cfg.RoughnessU = NewConstantScalar(0.1)
	}
	if cfg.RoughnessV == nil {
		cfg.RoughnessV = cfg.RoughnessU
	}
	if cfg.Reflectance == nil {
		cfg.Reflectance = NewConstant(core.NewVec3(1, 1, 1))
	}
	if cfg.Transmittance == nil {
		cfg.Transmittance = NewConstant(core.NewVec3(1, 1, 1))
	}

	if cfg.IntIOR <= 0 || cfg.ExtIOR <= 0 || cfg.IntIOR == cfg.ExtIOR {
		return nil, fmt.Errorf("material: interior (%g) and exterior (%g) indices of refraction must be positive and differ",
			cfg.IntIOR, cfg.ExtIOR)
	}

	dist := microfacet.New(cfg.Distribution)
	if cfg.RoughnessU != cfg.RoughnessV && !dist.SupportsAnisotropy() {
		return nil, fmt.Errorf("material: distinct tangent/bitangent roughness values are only supported by the %q distribution, not %q",
			microfacet.AshikhminShirley, cfg.Distribution)
	}

	return &RoughDielectric{
		distribution:  dist,
		roughnessU:    cfg.RoughnessU,
		roughnessV:    cfg.RoughnessV,
		reflectance:   cfg.Reflectance,
		transmittance: cfg.Transmittance,
		extIOR:        cfg.ExtIOR,
		intIOR:        cfg.IntIOR,
		widenLobe:     cfg.WidenSampledLobe,
		spatiallyVarying: !cfg.RoughnessU.IsConstant() || !cfg.RoughnessV.IsConstant() ||
			!cfg.Reflectance.IsConstant() || !cfg.Transmittance.IsConstant(),
	}, nil
}

// DefaultRoughGlass creates a lightly roughened BK7/air interface
// (beckmann, alpha 0.1) with lobe widening enabled
func DefaultRoughGlass() *RoughDielectric {
	m, err := NewRoughDielectric(RoughDielectricConfig{
		Distribution:     microfacet.Beckmann,
		ExtIOR:           1.000277, // air
		IntIOR:           1.5046,   // bk7
		WidenSampledLobe: true,
	})
	if err != nil {
		panic(err) // unreachable with constant parameters
	}
	return m
}

// Distribution returns the microfacet family in use
func (r *RoughDielectric) Distribution() microfacet.Type {
	return r.distribution.Type()
}

// ExtIOR returns the exterior refractive index
func (r *RoughDielectric) ExtIOR() float64 { return r.extIOR }

// IntIOR returns the interior refractive index
func (r *RoughDielectric) IntIOR() float64 { return r.intIOR }

// Anisotropic reports whether the tangent and bitangent roughness values
// come from distinct textures
func (r *RoughDielectric) Anisotropic() bool {
	return r.roughnessU != r.roughnessV
}

// SpatiallyVarying reports whether any parameter texture varies across the
// surface, in which case consumers may want ray-differential information
func (r *RoughDielectric) SpatiallyVarying() bool {
	return r.spatiallyVarying
}

// Eval returns the scattered-energy value (solid-angle measure) for the
// direction pair in rec. Any other measure evaluates to zero.
func (r *RoughDielectric) Eval(rec *ScatterQuery, measure Measure) core.Vec3 {
	if measure != SolidAngle {
		return core.Vec3{}
	}

	// Reflection keeps both directions on one side of the interface
	reflect := core.CosTheta(rec.Wi)*core.CosTheta(rec.Wo) > 0

	// Indices of refraction as seen by the arriving ray
	etaI, etaT := r.extIOR, r.intIOR
	if core.CosTheta(rec.Wi) < 0 {
		etaI, etaT = etaT, etaI
	}

	var h core.Vec3
	if reflect {
		if (rec.Component != AnyComponent && rec.Component != ReflectionComponent) ||
			rec.TypeMask&GlossyReflection == 0 {
			return core.Vec3{}
		}

		// Reflection half-vector, flipped into the hemisphere around the normal
		h = rec.Wi.Add(rec.Wo).Normalize().Multiply(core.Signum(core.CosTheta(rec.Wo)))
	} else {
		if (rec.Component != AnyComponent && rec.Component != TransmissionComponent) ||
			rec.TypeMask&GlossyTransmission == 0 {
			return core.Vec3{}
		}

		// Transmission half-vector. The sign factor flips it when the normal
		// points into the denser medium, removing an assumption of the
		// original formulation.
		sign := core.Signum(r.extIOR - r.intIOR)
		h = rec.Wi.Multiply(etaI).Add(rec.Wo.Multiply(etaT)).Normalize().Multiply(sign)
	}

	alphaU, alphaV := r.roughness(rec)

	d := r.distribution.Eval(h, alphaU, alphaV)
	if d == 0 {
		// No microfacets are oriented to redirect wi into wo
		return core.Vec3{}
	}

	f := FresnelDielectric(rec.Wi.Dot(h), r.extIOR, r.intIOR)
	g := r.distribution.G(rec.Wi, rec.Wo, h, alphaU, alphaV)

	if reflect {
		value := f * d * g / (4.0 * core.AbsCosTheta(rec.Wi))
		return r.reflectance.Evaluate(rec.UV, rec.Point).Multiply(value)
	}

	sqrtDenom := etaI*rec.Wi.Dot(h) + etaT*rec.Wo.Dot(h)
	value := ((1 - f) * d * g * etaT * etaT * rec.Wi.Dot(h) * rec.Wo.Dot(h)) /
		(core.CosTheta(rec.Wi) * sqrtDenom * sqrtDenom)

	// Account for solid-angle compression when tracing radiance; the adjoint
	// (importance) transport must omit this factor
	if rec.Mode == Radiance {
		value *= (etaI * etaI) / (etaT * etaT)
	}

	return r.transmittance.Evaluate(rec.UV, rec.Point).Multiply(math.Abs(value))
}

// PDF returns the solid-angle density with which Sample would produce rec.Wo
// for the given rec.Wi. Any other measure has zero density.
func (r *RoughDielectric) PDF(rec *ScatterQuery, measure Measure) float64 {
	if measure != SolidAngle {
		return 0
	}

	hasReflection := (rec.Component == AnyComponent || rec.Component == ReflectionComponent) &&
		rec.TypeMask&GlossyReflection != 0
	hasTransmission := (rec.Component == AnyComponent || rec.Component == TransmissionComponent) &&
		rec.TypeMask&GlossyTransmission != 0
	reflect := core.CosTheta(rec.Wi)*core.CosTheta(rec.Wo) > 0

	etaI, etaT := r.extIOR, r.intIOR
	if core.CosTheta(rec.Wi) < 0 {
		etaI, etaT = etaT, etaI
	}

	var h core.Vec3
	var dwhDwo float64

	if reflect {
		if !hasReflection {
			return 0
		}

		h = rec.Wi.Add(rec.Wo).Normalize().Multiply(core.Signum(core.CosTheta(rec.Wo)))

		// Jacobian of the half-direction transform
		dwhDwo = 1.0 / (4.0 * rec.Wo.Dot(h))
	} else {
		if !hasTransmission {
			return 0
		}

		sign := core.Signum(r.extIOR - r.intIOR)
		h = rec.Wi.Multiply(etaI).Add(rec.Wo.Multiply(etaT)).Normalize().Multiply(sign)

		sqrtDenom := etaI*rec.Wi.Dot(h) + etaT*rec.Wo.Dot(h)
		dwhDwo = (etaT * etaT * rec.Wo.Dot(h)) / (sqrtDenom * sqrtDenom)
	}

	// The same widened roughness the sampling routine draws from
	alphaU, alphaV := r.roughness(rec)
	if r.widenLobe {
		factor := lobeWideningFactor(core.CosTheta(rec.Wi))
		alphaU *= factor
		alphaV *= factor
	}

	prob := r.distribution.PDF(h, alphaU, alphaV)

	// The Fresnel weight normalizes against the other lobe's probability
	// mass, so it only applies when both lobes are live for this query
	if hasReflection && hasTransmission {
		f := FresnelDielectric(rec.Wi.Dot(h), r.extIOR, r.intIOR)
		if reflect {
			prob *= f
		} else {
			prob *= 1 - f
		}
	}

	return math.Abs(prob * dwhDwo)
}

// Sample draws an outgoing direction into rec.Wo and returns the closed-form
// importance-sampling weight. Degenerate outcomes (no lobe requested, total
// internal reflection, a direction on the wrong side) yield a zero weight.
func (r *RoughDielectric) Sample(rec *ScatterQuery, sample core.Vec2, sampler core.Sampler) core.Vec3 {
	m, alphaU, alphaV, sampleAlphaU, sampleAlphaV, choseReflection, ok := r.sampleMicronormal(rec, sample, sampler)
	if !ok {
		return core.Vec3{}
	}

	var result core.Vec3
	if choseReflection {
		if !r.setReflection(rec, m) {
			return core.Vec3{}
		}
		result = r.reflectance.Evaluate(rec.UV, rec.Point)
	} else {
		etaI, etaT, ok := r.setRefraction(rec, m)
		if !ok {
			return core.Vec3{}
		}
		result = r.transmittance.Evaluate(rec.UV, rec.Point)
		if rec.Mode == Radiance {
			// Solid-angle compression, as in Eval's transmissive case
			result = result.Multiply((etaI * etaI) / (etaT * etaT))
		}
	}

	numerator := r.distribution.Eval(m, alphaU, alphaV) *
		r.distribution.G(rec.Wi, rec.Wo, m, alphaU, alphaV) *
		rec.Wi.Dot(m)
	denominator := r.distribution.PDF(m, sampleAlphaU, sampleAlphaV) *
		core.CosTheta(rec.Wi)

	return result.Multiply(math.Abs(numerator / denominator))
}

// SampleWithPDF draws an outgoing direction like Sample, but reports the
// density through PDF and the value through Eval instead of the closed-form
// weight. This guards Monte Carlo estimators against small numerical
// mismatches between the analytic weight and the true eval/pdf ratio.
func (r *RoughDielectric) SampleWithPDF(rec *ScatterQuery, sample core.Vec2, sampler core.Sampler) (core.Vec3, float64) {
	m, _, _, _, _, choseReflection, ok := r.sampleMicronormal(rec, sample, sampler)
	if !ok {
		return core.Vec3{}, 0
	}

	if choseReflection {
		if !r.setReflection(rec, m) {
			return core.Vec3{}, 0
		}
	} else {
		if _, _, ok := r.setRefraction(rec, m); !ok {
			return core.Vec3{}, 0
		}
	}

	pdf := r.PDF(rec, SolidAngle)
	if pdf == 0 {
		return core.Vec3{}, 0
	}
	return r.Eval(rec, SolidAngle), pdf
}

// sampleMicronormal performs the shared first half of both sampling variants:
// it draws a micro-normal from the (possibly widened) distribution and
// stochastically picks a lobe by Fresnel reflectance when both are live
func (r *RoughDielectric) sampleMicronormal(rec *ScatterQuery, sample core.Vec2, sampler core.Sampler) (m core.Vec3, alphaU, alphaV, sampleAlphaU, sampleAlphaV float64, choseReflection, ok bool) {
	hasReflection := (rec.Component == AnyComponent || rec.Component == ReflectionComponent) &&
		rec.TypeMask&GlossyReflection != 0
	hasTransmission := (rec.Component == AnyComponent || rec.Component == TransmissionComponent) &&
		rec.TypeMask&GlossyTransmission != 0
	if !hasReflection && !hasTransmission {
		return core.Vec3{}, 0, 0, 0, 0, false, false
	}

	alphaU, alphaV = r.roughness(rec)
	sampleAlphaU, sampleAlphaV = alphaU, alphaV
	if r.widenLobe {
		factor := lobeWideningFactor(core.CosTheta(rec.Wi))
		sampleAlphaU *= factor
		sampleAlphaV *= factor
	}

	m = r.distribution.Sample(sample, sampleAlphaU, sampleAlphaV)

	choseReflection = hasReflection
	if hasReflection && hasTransmission {
		f := FresnelDielectric(rec.Wi.Dot(m), r.extIOR, r.intIOR)
		if sampler.Get1D() > f {
			choseReflection = false
		}
	}

	return m, alphaU, alphaV, sampleAlphaU, sampleAlphaV, choseReflection, true
}

// setReflection reflects rec.Wi about m into rec.Wo and verifies the result
// lies on the expected side of the interface
func (r *RoughDielectric) setReflection(rec *ScatterQuery, m core.Vec3) bool {
	rec.Wo = reflectAbout(rec.Wi, m)
	rec.SampledComponent = ReflectionComponent
	rec.SampledType = GlossyReflection

	return core.CosTheta(rec.Wi)*core.CosTheta(rec.Wo) > 0
}

// setRefraction refracts rec.Wi about m into rec.Wo using the side-appropriate
// index ordering; it fails on total internal reflection or a direction that
// does not end up on the opposite side of the interface
func (r *RoughDielectric) setRefraction(rec *ScatterQuery, m core.Vec3) (etaI, etaT float64, ok bool) {
	etaI, etaT = r.extIOR, r.intIOR
	if core.CosTheta(rec.Wi) < 0 {
		etaI, etaT = etaT, etaI
	}

	wo, refracted := refractAbout(rec.Wi, m, etaI, etaT)
	if !refracted {
		return 0, 0, false
	}
	rec.Wo = wo
	rec.SampledComponent = TransmissionComponent
	rec.SampledType = GlossyTransmission

	if core.CosTheta(rec.Wi)*core.CosTheta(rec.Wo) >= 0 {
		return 0, 0, false
	}
	return etaI, etaT, true
}

// roughness reads the roughness textures at the shading point and converts
// them to the distribution's native parameterization
func (r *RoughDielectric) roughness(rec *ScatterQuery) (alphaU, alphaV float64) {
	alphaU = r.distribution.TransformRoughness(scalarValue(r.roughnessU, rec.UV, rec.Point))
	alphaV = r.distribution.TransformRoughness(scalarValue(r.roughnessV, rec.UV, rec.Point))
	return alphaU, alphaV
}

// lobeWideningFactor widens the sampled lobe at grazing incidence, keeping
// importance weights bounded (roughly <= 4)
func lobeWideningFactor(cosThetaI float64) float64 {
	return 1.2 - 0.2*math.Sqrt(math.Abs(cosThetaI))
}

// reflectAbout reflects wi with respect to the micro-normal m
func reflectAbout(wi, m core.Vec3) core.Vec3 {
	return m.Multiply(2 * wi.Dot(m)).Subtract(wi)
}

// refractAbout refracts wi with respect to the micro-normal m using Snell's
// law; the second return value is false on total internal reflection
func refractAbout(wi, m core.Vec3, etaI, etaT float64) (core.Vec3, bool) {
	eta := etaI / etaT
	c := wi.Dot(m)

	// Squared cosine of the angle between the micro-normal and the
	// transmitted ray
	cosThetaT2 := 1 + eta*eta*(c*c-1)
	if cosThetaT2 < 0 {
		return core.Vec3{}, false // Total internal reflection
	}

	wo := m.Multiply(eta*c - core.Signum(wi.Z)*math.Sqrt(cosThetaT2)).
		Subtract(wi.Multiply(eta))
	return wo, true
}
