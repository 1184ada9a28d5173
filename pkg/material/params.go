package material

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/glintlab/go-rough-dielectric/pkg/core"
	"github.com/glintlab/go-rough-dielectric/pkg/microfacet"
)

// Default indices of refraction: a borosilicate glass BK7 / air interface
const (
	DefaultIntIOR = 1.5046   // bk7
	DefaultExtIOR = 1.000277 // air
)

// Params is the persisted parameter record of a rough dielectric material.
// Omitted fields take the defaults of a lightly roughened BK7/air interface.
// Alpha sets both roughness directions; AlphaU/AlphaV override it per axis
// (distinct values require the "as" distribution).
type Params struct {
	Distribution  string      `json:"distribution,omitempty"`
	Alpha         *float64    `json:"alpha,omitempty"`
	AlphaU        *float64    `json:"alphaU,omitempty"`
	AlphaV        *float64    `json:"alphaV,omitempty"`
	IntIOR        *float64    `json:"intIOR,omitempty"`
	ExtIOR        *float64    `json:"extIOR,omitempty"`
	Reflectance   *[3]float64 `json:"specularReflectance,omitempty"`
	Transmittance *[3]float64 `json:"specularTransmittance,omitempty"`
	WidenLobe     *bool       `json:"widenSampledLobe,omitempty"`
}

// LoadParams decodes a JSON parameter record
func LoadParams(r io.Reader) (Params, error) {
	var p Params
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return Params{}, fmt.Errorf("material: decoding parameters: %w", err)
	}
	return p, nil
}

// LoadParamsFile decodes a JSON parameter record from a file
func LoadParamsFile(path string) (Params, error) {
	f, err := os.Open(path)
	if err != nil {
		return Params{}, err
	}
	defer f.Close()
	return LoadParams(f)
}

// Save encodes the record as indented JSON
func (p Params) Save(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

// Build resolves defaults, validates the record and constructs the material
func (p Params) Build() (*RoughDielectric, error) {
	name := p.Distribution
	if name == "" {
		name = "beckmann"
	}
	dist, err := microfacet.ParseType(name)
	if err != nil {
		return nil, err
	}

	alpha := 0.1
	if p.Alpha != nil {
		alpha = *p.Alpha
	}
	alphaU, alphaV := alpha, alpha
	if p.AlphaU != nil {
		alphaU = *p.AlphaU
	}
	if p.AlphaV != nil {
		alphaV = *p.AlphaV
	}

	// Equal roughness values share one texture so the material stays
	// isotropic under the constructor's identity check
	roughnessU := NewConstantScalar(alphaU)
	roughnessV := roughnessU
	if alphaV != alphaU {
		roughnessV = NewConstantScalar(alphaV)
	}

	intIOR, extIOR := DefaultIntIOR, DefaultExtIOR
	if p.IntIOR != nil {
		intIOR = *p.IntIOR
	}
	if p.ExtIOR != nil {
		extIOR = *p.ExtIOR
	}

	spectrum := func(v *[3]float64) Texture {
		if v == nil {
			return NewConstant(core.NewVec3(1, 1, 1))
		}
		return NewConstant(core.NewVec3(v[0], v[1], v[2]))
	}

	widen := true
	if p.WidenLobe != nil {
		widen = *p.WidenLobe
	}

	return NewRoughDielectric(RoughDielectricConfig{
		Distribution:     dist,
		RoughnessU:       roughnessU,
		RoughnessV:       roughnessV,
		Reflectance:      spectrum(p.Reflectance),
		Transmittance:    spectrum(p.Transmittance),
		IntIOR:           intIOR,
		ExtIOR:           extIOR,
		WidenSampledLobe: widen,
	})
}
