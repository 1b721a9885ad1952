package light

import (
	"RenderPipeline/internal/assert"
	"RenderPipeline/internal/gpucommand"
	"RenderPipeline/internal/logger"
	"RenderPipeline/internal/shadow"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Type is the variant tag, also written to the GPU as the first entry of
// every light record. Zero is reserved for an empty slot.
type Type int

const (
	TypeNone Type = iota
	TypePoint
	TypeSpot
)

func (t Type) String() string {
	switch t {
	case TypePoint:
		return "point"
	case TypeSpot:
		return "spot"
	default:
		return "none"
	}
}

// IntensityType is the photometric unit an intensity value is expressed in.
type IntensityType int

const (
	// IntensityLuminance is intensity per steradian.
	IntensityLuminance IntensityType = iota
	// IntensityLumens is total flux over the emitting solid angle.
	IntensityLumens
)

func (t IntensityType) String() string {
	switch t {
	case IntensityLuminance:
		return "luminance"
	case IntensityLumens:
		return "lumens"
	default:
		return "unknown"
	}
}

// baseEntries is the number of floats every light writes before its
// variant payload.
const baseEntries = 11

// colorScale keeps bright lights inside the half-float range of the light buffer.
const colorScale = 1.0 / 100.0

// Light is one light of a closed set of variants. The zero value is not
// usable; create lights with New, NewSpotLight or NewPointLight.
//
// Exactly one of the variant payloads is set, matching typ.
type Light struct {
	// HOT DATA - written to the GPU on every upload
	typ             Type
	position        mgl32.Vec3
	color           mgl32.Vec3
	energy          float32 // stored in IntensityLuminance
	nearPlane       float32
	maxCullDistance float32
	iesProfile      int

	// COLD DATA - bookkeeping for the light manager
	id                  uuid.UUID
	slot                int
	needsUpdate         bool
	castsShadows        bool
	shadowMapResolution int
	shadowSources       []*shadow.Source

	spot  *spotData
	point *pointData
}

// New creates a light of the given variant with defaults taken from cfg.
// No shadow sources are allocated.
func New(t Type, cfg Config) *Light {
	l := &Light{
		typ:                 t,
		color:               mgl32.Vec3(cfg.Color),
		energy:              cfg.Energy,
		nearPlane:           cfg.NearPlane,
		maxCullDistance:     cfg.MaxCullDistance,
		iesProfile:          -1,
		id:                  uuid.New(),
		slot:                -1,
		castsShadows:        cfg.CastsShadows,
		shadowMapResolution: cfg.ShadowMapResolution,
		shadowSources:       make([]*shadow.Source, 0),
	}

	switch t {
	case TypeSpot:
		l.spot = &spotData{
			direction: mgl32.Vec3(cfg.SpotDirection),
			fov:       cfg.SpotFov,
		}
	case TypePoint:
		l.point = &pointData{
			radius:      cfg.PointRadius,
			innerRadius: cfg.PointInnerRadius,
		}
	default:
		assert.That(false, "unknown light type", zap.Int("type", int(t)))
	}

	logger.Log.Debug("Light created",
		zap.Stringer("id", l.id),
		zap.Stringer("type", t))
	return l
}

// NewSpotLight creates a spot light facing (0, 0, -1) with a 45 degree cone.
func NewSpotLight() *Light {
	return New(TypeSpot, DefaultConfig())
}

// NewPointLight creates a point light with a radius of 10.
func NewPointLight() *Light {
	return New(TypePoint, DefaultConfig())
}

func (l *Light) ID() uuid.UUID { return l.id }
func (l *Light) Type() Type    { return l.typ }

func (l *Light) Position() mgl32.Vec3 { return l.position }

func (l *Light) SetPosition(pos mgl32.Vec3) {
	l.position = pos
	l.markDirty()
	l.invalidateShadows()
}

func (l *Light) Color() mgl32.Vec3 { return l.color }

// SetColor sets the linear RGB color; brightness comes from the energy.
func (l *Light) SetColor(color mgl32.Vec3) {
	l.color = color
	l.markDirty()
}

// Energy returns the intensity in IntensityLuminance units.
func (l *Light) Energy() float32 { return l.energy }

func (l *Light) SetEnergy(energy float32) {
	l.energy = energy
	l.markDirty()
}

func (l *Light) NearPlane() float32 { return l.nearPlane }

func (l *Light) SetNearPlane(near float32) {
	l.nearPlane = near
	l.markDirty()
	l.invalidateShadows()
}

func (l *Light) MaxCullDistance() float32 { return l.maxCullDistance }

func (l *Light) SetMaxCullDistance(distance float32) {
	l.maxCullDistance = distance
	l.markDirty()
	l.invalidateShadows()
}

func (l *Light) IESProfile() int { return l.iesProfile }

// SetIESProfile selects an IES profile by index, -1 for none.
func (l *Light) SetIESProfile(profile int) {
	l.iesProfile = profile
	l.markDirty()
}

func (l *Light) ShadowMapResolution() int { return l.shadowMapResolution }

func (l *Light) SetShadowMapResolution(resolution int) {
	l.shadowMapResolution = resolution
	l.markDirty()
	l.invalidateShadows()
}

func (l *Light) CastsShadows() bool { return l.castsShadows }

// SetCastsShadows must be called before the light is attached to a manager.
func (l *Light) SetCastsShadows(flag bool) {
	if !assert.That(!l.HasSlot(), "cannot toggle shadows on an attached light",
		zap.Stringer("id", l.id)) {
		return
	}
	l.castsShadows = flag
}

func (l *Light) Slot() int     { return l.slot }
func (l *Light) HasSlot() bool { return l.slot >= 0 }

func (l *Light) AssignSlot(slot int) {
	l.slot = slot
}

func (l *Light) RemoveSlot() {
	l.slot = -1
}

// NeedsUpdate reports whether the GPU copy of the light is stale.
func (l *Light) NeedsUpdate() bool { return l.needsUpdate }

func (l *Light) SetNeedsUpdate(flag bool) {
	l.needsUpdate = flag
}

func (l *Light) markDirty() {
	l.needsUpdate = true
}

func (l *Light) invalidateShadows() {
	for _, src := range l.shadowSources {
		src.SetNeedsUpdate(true)
	}
}

// NumShadowSources returns how many shadow sources the light owns.
func (l *Light) NumShadowSources() int {
	return len(l.shadowSources)
}

// ShadowSource returns the i-th owned source. The light keeps ownership.
func (l *Light) ShadowSource(i int) *shadow.Source {
	return l.shadowSources[i]
}

// ClearShadowSources releases every owned shadow source.
func (l *Light) ClearShadowSources() {
	l.shadowSources = nil
}

// WriteToCommand appends the common light record and then the variant
// payload. Entry count and order are fixed by the shader-side unpacking.
func (l *Light) WriteToCommand(cmd *gpucommand.Command) {
	cmd.PushInt(int(l.typ))
	cmd.PushInt(l.iesProfile)

	if l.castsShadows && len(l.shadowSources) > 0 {
		cmd.PushInt(l.shadowSources[0].Slot())
	} else {
		cmd.PushInt(-1)
	}

	cmd.PushVec3(l.position)
	cmd.PushVec3(l.color.Mul(l.energy * colorScale))
	cmd.PushFloat(l.nearPlane)
	cmd.PushFloat(l.maxCullDistance)

	switch l.typ {
	case TypeSpot:
		l.spot.writeToCommand(cmd)
	case TypePoint:
		l.point.writeToCommand(cmd)
	}
}

// InitShadowSources allocates the variant's shadow sources. Calling it on a
// light that already has sources is a programming error.
func (l *Light) InitShadowSources() {
	if !assert.That(len(l.shadowSources) == 0, "shadow sources already initialized",
		zap.Stringer("id", l.id),
		zap.Int("count", len(l.shadowSources))) {
		return
	}

	switch l.typ {
	case TypeSpot:
		l.shadowSources = append(l.shadowSources, shadow.NewSource())
	case TypePoint:
		for range cubeFaces {
			l.shadowSources = append(l.shadowSources, shadow.NewSource())
		}
	}
}

// UpdateShadowSources pushes resolution and lens parameters into the owned
// sources. It has to be called after any change to the lens inputs.
func (l *Light) UpdateShadowSources() {
	switch l.typ {
	case TypeSpot:
		l.updateSpotShadowSources()
	case TypePoint:
		l.updatePointShadowSources()
	}
}

// ConversionFactor returns the multiplier converting an intensity in from
// units to to units. Identical units always give exactly 1. Unsupported
// pairs are a programming error and return 0.
func (l *Light) ConversionFactor(from, to IntensityType) float32 {
	if from == to {
		return 1.0
	}

	var solidAngle float64
	switch l.typ {
	case TypeSpot:
		solidAngle = l.spot.solidAngle()
	case TypePoint:
		solidAngle = pointSolidAngle
	}

	if from == IntensityLuminance && to == IntensityLumens {
		return float32(solidAngle)
	} else if from == IntensityLumens && to == IntensityLuminance {
		return float32(1.0 / solidAngle)
	}

	assert.That(false, "unsupported intensity conversion",
		zap.Stringer("type", l.typ),
		zap.Stringer("from", from),
		zap.Stringer("to", to))
	return 0.0
}
