package material

import (
	"github.com/glintlab/go-rough-dielectric/pkg/core"
)

// TransportMode distinguishes the two light-transport conventions.
// They differ in how refraction's solid-angle compression is accounted for,
// which matters for bidirectional methods.
type TransportMode int

const (
	// Radiance transport: paths traced from the camera
	Radiance TransportMode = iota
	// Importance transport: the adjoint quantity, paths traced from lights
	Importance
)

// Measure identifies the measure a value or density is expressed in
type Measure int

const (
	// UnknownMeasure is the zero value; queries with it always evaluate to zero
	UnknownMeasure Measure = iota
	// SolidAngle is the only measure the rough dielectric model supports
	SolidAngle
)

// ComponentType is a bitmask restricting which physical effects a query considers
type ComponentType uint32

const (
	// GlossyReflection selects the reflective lobe
	GlossyReflection ComponentType = 1 << iota
	// GlossyTransmission selects the transmissive lobe
	GlossyTransmission

	// AllComponents places no restriction on the scattering type
	AllComponents = GlossyReflection | GlossyTransmission
)

// Component indices as used by ScatterQuery.Component
const (
	// AnyComponent matches every lobe
	AnyComponent = -1
	// ReflectionComponent is the index of the reflective lobe
	ReflectionComponent = 0
	// TransmissionComponent is the index of the transmissive lobe
	TransmissionComponent = 1
)

// ScatterQuery carries the per-event state of a scattering evaluation.
// Directions are unit vectors in the local shading frame (z-axis = shading
// normal) and point away from the surface. Queries are transient: one is
// created per shading event and discarded after use.
type ScatterQuery struct {
	Wi core.Vec3 // Incident direction
	Wo core.Vec3 // Outgoing direction; set by sampling, given for eval/pdf

	UV    core.Vec2 // Surface parameterization at the shading point
	Point core.Vec3 // World-space shading point (for procedural textures)

	Component int           // Requested lobe index, or AnyComponent
	TypeMask  ComponentType // Requested scattering types
	Mode      TransportMode // Radiance or Importance transport

	// Filled in by sampling
	SampledComponent int
	SampledType      ComponentType
}

// NewScatterQuery creates an unrestricted radiance-transport query for the
// given incident direction
func NewScatterQuery(wi core.Vec3) *ScatterQuery {
	return &ScatterQuery{
		Wi:        wi,
		Component: AnyComponent,
		TypeMask:  AllComponents,
		Mode:      Radiance,
	}
}
