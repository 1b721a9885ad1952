package light

import (
	"math"

	"RenderPipeline/internal/assert"
	"RenderPipeline/internal/gpucommand"
	"RenderPipeline/internal/logger"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

type spotData struct {
	direction mgl32.Vec3 // not normalized
	fov       float32    // full cone angle in degrees
}

// cosHalfFov is what the shader compares the per-pixel dot product against.
func (s *spotData) cosHalfFov() float64 {
	return math.Cos(float64(s.fov) / 360.0 * math.Pi)
}

// solidAngle of a cone with half angle fov/2.
func (s *spotData) solidAngle() float64 {
	return 2.0 * math.Pi * (1.0 - s.cosHalfFov())
}

func (s *spotData) writeToCommand(cmd *gpucommand.Command) {
	cmd.PushFloat(float32(s.cosHalfFov()))
	cmd.PushVec3(s.direction)
}

func (l *Light) spotPayload() *spotData {
	if !assert.That(l.typ == TypeSpot, "not a spot light",
		zap.Stringer("id", l.id),
		zap.Stringer("type", l.typ)) {
		return nil
	}
	return l.spot
}

// Direction returns the cone axis as it was set.
func (l *Light) Direction() mgl32.Vec3 {
	if s := l.spotPayload(); s != nil {
		return s.direction
	}
	return mgl32.Vec3{}
}

// SetDirection sets the cone axis. The vector is stored and uploaded as is;
// callers pass a unit vector.
func (l *Light) SetDirection(dir mgl32.Vec3) {
	if s := l.spotPayload(); s != nil {
		s.direction = dir
		l.markDirty()
		l.invalidateShadows()
	}
}

// LookAt points the cone axis from the light's position at target.
func (l *Light) LookAt(target mgl32.Vec3) {
	l.SetDirection(target.Sub(l.position))
}

// Fov returns the full cone angle in degrees.
func (l *Light) Fov() float32 {
	if s := l.spotPayload(); s != nil {
		return s.fov
	}
	return 0
}

// SetFov sets the full cone angle in degrees. Values outside (0, 360) are
// stored but make the cone math meaningless.
func (l *Light) SetFov(fov float32) {
	s := l.spotPayload()
	if s == nil {
		return
	}
	if fov <= 0 || fov >= 360 {
		logger.Log.Warn("Spot light fov out of range",
			zap.Stringer("id", l.id),
			zap.Float32("fov", fov))
	}
	s.fov = fov
	l.markDirty()
	l.invalidateShadows()
}

func (l *Light) updateSpotShadowSources() {
	if !assert.That(len(l.shadowSources) == 1, "spot light needs exactly one shadow source",
		zap.Stringer("id", l.id),
		zap.Int("count", len(l.shadowSources))) {
		return
	}
	src := l.shadowSources[0]
	src.SetResolution(l.shadowMapResolution)
	src.SetPerspectiveLens(l.spot.fov, l.nearPlane, l.maxCullDistance, l.position, l.spot.direction)
}
