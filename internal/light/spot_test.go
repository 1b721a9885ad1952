package light

import (
	"math"
	"testing"

	invariant "RenderPipeline/internal/assert"
	"RenderPipeline/internal/gpucommand"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSpotLightDefaults(t *testing.T) {
	l := NewSpotLight()

	assert.Equal(t, TypeSpot, l.Type())
	assert.Equal(t, mgl32.Vec3{0, 0, -1}, l.Direction())
	assert.Equal(t, float32(45), l.Fov())
	assert.Equal(t, 0, l.NumShadowSources(), "construction must not allocate shadow sources")
	assert.False(t, l.HasSlot())
}

func TestSpotWriteToCommandPayload(t *testing.T) {
	l := NewSpotLight()
	cmd := gpucommand.New(gpucommand.StoreLight)

	l.WriteToCommand(cmd)

	payload := cmd.Payload()
	require.Len(t, payload, baseEntries+4)

	spot := payload[baseEntries:]
	assert.InDelta(t, 0.92388, spot[0], 1e-5)
	assert.Equal(t, []float32{0, 0, -1}, spot[1:])
}

func TestSpotWriteToCommandDirectionNotNormalized(t *testing.T) {
	l := NewSpotLight()
	l.SetDirection(mgl32.Vec3{0, 3, 4})
	l.SetFov(90)
	cmd := gpucommand.New(gpucommand.StoreLight)

	l.WriteToCommand(cmd)

	spot := cmd.Payload()[baseEntries:]
	assert.InDelta(t, math.Cos(math.Pi/4), spot[0], 1e-6)
	assert.Equal(t, []float32{0, 3, 4}, spot[1:])
}

func TestSpotWriteToCommandBasePayload(t *testing.T) {
	l := NewSpotLight()
	l.SetPosition(mgl32.Vec3{1, 2, 3})
	l.SetColor(mgl32.Vec3{1, 0.5, 0})
	l.SetEnergy(200)
	cmd := gpucommand.New(gpucommand.StoreLight)

	l.WriteToCommand(cmd)

	base := cmd.Payload()[:baseEntries]
	assert.Equal(t, float32(TypeSpot), base[0])
	assert.Equal(t, float32(-1), base[1], "no IES profile")
	assert.Equal(t, float32(-1), base[2], "no shadow source slot")
	assert.Equal(t, []float32{1, 2, 3}, base[3:6])
	assert.InDeltaSlice(t, []float32{2, 1, 0}, base[6:9], 1e-6)
	assert.Equal(t, float32(0.5), base[9])
	assert.Equal(t, float32(40), base[10])
}

func TestSpotConversionIdentity(t *testing.T) {
	l := NewSpotLight()
	for _, fov := range []float32{0.001, 1, 45, 90, 180, 270, 359.9} {
		l.SetFov(fov)
		for _, unit := range []IntensityType{IntensityLuminance, IntensityLumens, IntensityType(99)} {
			assert.Equal(t, float32(1.0), l.ConversionFactor(unit, unit), "fov=%v unit=%v", fov, unit)
		}
	}
}

func TestSpotConversionHemisphere(t *testing.T) {
	l := NewSpotLight()
	l.SetFov(180)

	assert.InDelta(t, 2*math.Pi, l.ConversionFactor(IntensityLuminance, IntensityLumens), 1e-5)
	assert.InDelta(t, 0.15915, l.ConversionFactor(IntensityLumens, IntensityLuminance), 1e-5)
}

func TestSpotConversionQuarter(t *testing.T) {
	l := NewSpotLight()
	l.SetFov(90)

	assert.InDelta(t, 1.8403, l.ConversionFactor(IntensityLuminance, IntensityLumens), 1e-4)
}

func TestSpotConversionRoundTrip(t *testing.T) {
	l := NewSpotLight()
	l.SetFov(60)

	forward := l.ConversionFactor(IntensityLuminance, IntensityLumens)
	back := l.ConversionFactor(IntensityLumens, IntensityLuminance)
	assert.InDelta(t, 1.0, forward*back, 1e-6)
}

func TestSpotConversionUnsupportedPair(t *testing.T) {
	l := NewSpotLight()

	var factor float32 = -1
	assertViolation(t, func() {
		factor = l.ConversionFactor(IntensityType(99), IntensityLumens)
	})
	if !invariant.Enabled {
		assert.Equal(t, float32(0), factor, "unsupported pair returns 0")
	}
}

func TestSpotInitShadowSources(t *testing.T) {
	l := NewSpotLight()

	l.InitShadowSources()
	require.Equal(t, 1, l.NumShadowSources())

	assertViolation(t, func() { l.InitShadowSources() })
	assert.Equal(t, 1, l.NumShadowSources(), "a spot light owns exactly one shadow source")
}

func TestSpotUpdateShadowSources(t *testing.T) {
	l := NewSpotLight()
	l.SetPosition(mgl32.Vec3{5, 0, 2})
	l.SetDirection(mgl32.Vec3{1, 0, 0})
	l.SetFov(60)
	l.SetNearPlane(0.25)
	l.SetMaxCullDistance(25)
	l.SetShadowMapResolution(1024)
	l.InitShadowSources()

	l.UpdateShadowSources()

	src := l.ShadowSource(0)
	fov, near, far, pos, dir := src.Lens()
	assert.Equal(t, 1024, src.Resolution())
	assert.Equal(t, float32(60), fov)
	assert.Equal(t, float32(0.25), near)
	assert.Equal(t, float32(25), far, "max cull distance is the far plane")
	assert.Equal(t, mgl32.Vec3{5, 0, 2}, pos)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, dir)
}

func TestSpotUpdateShadowSourcesIdempotent(t *testing.T) {
	l := NewSpotLight()
	l.SetPosition(mgl32.Vec3{0, 0, 10})
	l.InitShadowSources()

	l.UpdateShadowSources()
	src := l.ShadowSource(0)
	first := src.MVP()
	src.SetNeedsUpdate(false)

	l.UpdateShadowSources()
	assert.Equal(t, first, src.MVP())
	assert.False(t, src.NeedsUpdate())
}

func TestSpotSettersInvalidateShadows(t *testing.T) {
	l := NewSpotLight()
	l.InitShadowSources()
	l.UpdateShadowSources()
	l.ShadowSource(0).SetNeedsUpdate(false)
	l.SetNeedsUpdate(false)

	l.SetFov(30)

	assert.True(t, l.NeedsUpdate())
	assert.True(t, l.ShadowSource(0).NeedsUpdate())
	fov, _, _, _, _ := l.ShadowSource(0).Lens()
	assert.Equal(t, float32(45), fov, "the lens only follows after UpdateShadowSources")
}

func TestSpotLookAt(t *testing.T) {
	l := NewSpotLight()
	l.SetPosition(mgl32.Vec3{1, 1, 1})

	l.LookAt(mgl32.Vec3{1, 1, -4})

	assert.Equal(t, mgl32.Vec3{0, 0, -5}, l.Direction())
}

func TestSpotAccessorsOnPointLightRejected(t *testing.T) {
	l := NewPointLight()
	l.SetNeedsUpdate(false)

	assertViolation(t, func() { l.SetFov(30) })
	assertViolation(t, func() { l.SetDirection(mgl32.Vec3{1, 0, 0}) })
	assert.False(t, l.NeedsUpdate(), "rejected setters must not dirty the light")
	assert.Equal(t, TypePoint, l.Type())
}
