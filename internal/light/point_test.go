package light

import (
	"math"
	"testing"

	"RenderPipeline/internal/gpucommand"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPointLightDefaults(t *testing.T) {
	l := NewPointLight()

	assert.Equal(t, TypePoint, l.Type())
	assert.Equal(t, float32(10), l.Radius())
	assert.Equal(t, float32(0.01), l.InnerRadius())
	assert.Equal(t, 0, l.NumShadowSources())
}

func TestPointWriteToCommandPayload(t *testing.T) {
	l := NewPointLight()
	l.SetRadius(12)
	l.SetInnerRadius(0.5)
	cmd := gpucommand.New(gpucommand.StoreLight)

	l.WriteToCommand(cmd)

	payload := cmd.Payload()
	require.Len(t, payload, baseEntries+2)
	assert.Equal(t, float32(TypePoint), payload[0])
	assert.Equal(t, []float32{12, 0.5}, payload[baseEntries:])
}

func TestPointShadowSourcesCoverCube(t *testing.T) {
	l := NewPointLight()
	l.SetPosition(mgl32.Vec3{1, 2, 3})
	l.InitShadowSources()
	require.Equal(t, 6, l.NumShadowSources())

	l.UpdateShadowSources()

	for i := 0; i < l.NumShadowSources(); i++ {
		fov, _, far, pos, dir := l.ShadowSource(i).Lens()
		assert.Equal(t, float32(90), fov)
		assert.Equal(t, float32(10), far, "radius is the far plane")
		assert.Equal(t, mgl32.Vec3{1, 2, 3}, pos)
		assert.Equal(t, cubeFaces[i], dir)
	}
}

func TestPointConversionFactor(t *testing.T) {
	l := NewPointLight()

	assert.InDelta(t, 4*math.Pi, l.ConversionFactor(IntensityLuminance, IntensityLumens), 1e-5)
	assert.InDelta(t, 1/(4*math.Pi), l.ConversionFactor(IntensityLumens, IntensityLuminance), 1e-7)
	assert.Equal(t, float32(1), l.ConversionFactor(IntensityLumens, IntensityLumens))
}

func TestPointAccessorsOnSpotLightRejected(t *testing.T) {
	l := NewSpotLight()
	l.SetNeedsUpdate(false)

	assertViolation(t, func() { l.SetRadius(3) })
	assert.False(t, l.NeedsUpdate(), "rejected setters must not dirty the light")
}
