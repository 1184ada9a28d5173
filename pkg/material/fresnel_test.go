package material

import (
	"math"
	"testing"
)

func TestFresnelNormalIncidence(t *testing.T) {
	// At normal incidence the reflectance reduces to
	// ((etaInt - etaExt)/(etaInt + etaExt))^2
	cases := []struct {
		etaExt, etaInt float64
	}{
		{1.0, 1.5},
		{1.0, 1.33},
		{1.5, 1.0},
		{1.000277, 1.5046},
	}

	for _, c := range cases {
		want := math.Pow((c.etaInt-c.etaExt)/(c.etaInt+c.etaExt), 2)
		got := FresnelDielectric(1.0, c.etaExt, c.etaInt)
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("FresnelDielectric(1, %v, %v): expected %v, got %v", c.etaExt, c.etaInt, want, got)
		}
	}
}

func TestFresnelTotalInternalReflection(t *testing.T) {
	// From the denser glass side, beyond the critical angle (~41.8 degrees
	// for 1.5/1.0) everything is reflected. cos(60 deg) = 0.5, negative sign
	// selects the interior side.
	if got := FresnelDielectric(-0.5, 1.0, 1.5); got != 1.0 {
		t.Errorf("Expected total internal reflection, got %v", got)
	}
}

func TestFresnelRangeAndGrazing(t *testing.T) {
	prev := 0.0
	for i := 0; i <= 100; i++ {
		cosTheta := 1.0 - float64(i)/100.0
		f := FresnelDielectric(cosTheta, 1.0, 1.5)
		if f < 0 || f > 1 {
			t.Fatalf("Reflectance out of [0,1] at cos=%v: %v", cosTheta, f)
		}
		if f+1e-12 < prev {
			t.Fatalf("Reflectance should not decrease toward grazing incidence: cos=%v gave %v after %v", cosTheta, f, prev)
		}
		prev = f
	}

	// Grazing incidence reflects everything
	if got := FresnelDielectric(0, 1.0, 1.5); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("Grazing reflectance should approach 1, got %v", got)
	}
}

func TestFresnelSideSymmetry(t *testing.T) {
	// Hitting the interface from the interior with swapped indices must give
	// the same reflectance as from the exterior
	a := FresnelDielectric(0.8, 1.0, 1.5)
	b := FresnelDielectric(-0.8, 1.5, 1.0)
	if math.Abs(a-b) > 1e-12 {
		t.Errorf("Expected side symmetry, got %v vs %v", a, b)
	}
}
