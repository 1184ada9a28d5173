package material

import (
	"github.com/glintlab/go-rough-dielectric/pkg/core"
)

// BSDF is the contract of a scattering model at a surface interface.
// Implementations are pure: all methods are read-only queries against
// immutable parameters plus the caller-supplied query record and sampler,
// so a single instance may be shared across concurrent evaluations.
type BSDF interface {
	// Eval returns the scattered-energy value for a fixed direction pair,
	// weighted by the cosine foreshortening of the outgoing direction.
	// Only the solid-angle measure is supported; any other measure is zero.
	Eval(rec *ScatterQuery, measure Measure) core.Vec3

	// PDF returns the density with which Sample would have produced rec.Wo,
	// with respect to the given measure
	PDF(rec *ScatterQuery, measure Measure) float64

	// Sample draws an outgoing direction into rec.Wo and returns the
	// importance-sampling weight (value over density, in closed form).
	// A zero result means "no contribution", never an error.
	Sample(rec *ScatterQuery, sample core.Vec2, sampler core.Sampler) core.Vec3

	// SampleWithPDF draws an outgoing direction like Sample but returns the
	// evaluated value together with the density it was drawn with, computed
	// through Eval and PDF rather than in closed form. Dividing the two
	// reproduces an unbiased estimator even under small numerical mismatches.
	SampleWithPDF(rec *ScatterQuery, sample core.Vec2, sampler core.Sampler) (core.Vec3, float64)
}
