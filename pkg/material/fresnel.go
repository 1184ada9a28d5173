package material

import (
	"math"
)

// FresnelDielectric computes the exact unpolarized Fresnel reflectance at a
// smooth interface between two dielectrics. cosThetaI is the cosine between
// the incident direction and the (micro)surface normal; its sign selects the
// side of the interface the ray arrives from. etaExt and etaInt are the
// refractive indices of the exterior and interior media, where "exterior"
// refers to the side containing the surface normal.
//
// The result is a fraction in [0, 1]; total internal reflection yields 1.
func FresnelDielectric(cosThetaI, etaExt, etaInt float64) float64 {
	etaI, etaT := etaExt, etaInt
	if cosThetaI < 0 {
		// Ray arrives from the interior side
		etaI, etaT = etaT, etaI
		cosThetaI = -cosThetaI
	}

	// Snell's law, squared sine of the transmitted angle
	eta := etaI / etaT
	sinThetaT2 := eta * eta * (1.0 - cosThetaI*cosThetaI)
	if sinThetaT2 > 1.0 {
		return 1.0 // Total internal reflection
	}
	cosThetaT := math.Sqrt(1.0 - sinThetaT2)

	rs := (etaI*cosThetaI - etaT*cosThetaT) / (etaI*cosThetaI + etaT*cosThetaT)
	rp := (etaT*cosThetaI - etaI*cosThetaT) / (etaT*cosThetaI + etaI*cosThetaT)

	return 0.5 * (rs*rs + rp*rp)
}
