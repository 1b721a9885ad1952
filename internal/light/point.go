package light

import (
	"math"

	"RenderPipeline/internal/assert"
	"RenderPipeline/internal/gpucommand"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

const pointSolidAngle = 4.0 * math.Pi

// cubeFaces are the lens axes of a point light's six shadow sources.
var cubeFaces = [6]mgl32.Vec3{
	{1, 0, 0},
	{-1, 0, 0},
	{0, 1, 0},
	{0, -1, 0},
	{0, 0, 1},
	{0, 0, -1},
}

type pointData struct {
	radius      float32
	innerRadius float32
}

func (p *pointData) writeToCommand(cmd *gpucommand.Command) {
	cmd.PushFloat(p.radius)
	cmd.PushFloat(p.innerRadius)
}

func (l *Light) pointPayload() *pointData {
	if !assert.That(l.typ == TypePoint, "not a point light",
		zap.Stringer("id", l.id),
		zap.Stringer("type", l.typ)) {
		return nil
	}
	return l.point
}

// Radius is the distance at which the light's contribution reaches zero.
func (l *Light) Radius() float32 {
	if p := l.pointPayload(); p != nil {
		return p.radius
	}
	return 0
}

func (l *Light) SetRadius(radius float32) {
	if p := l.pointPayload(); p != nil {
		p.radius = radius
		l.markDirty()
		l.invalidateShadows()
	}
}

// InnerRadius is the size of the emitting sphere.
func (l *Light) InnerRadius() float32 {
	if p := l.pointPayload(); p != nil {
		return p.innerRadius
	}
	return 0
}

func (l *Light) SetInnerRadius(radius float32) {
	if p := l.pointPayload(); p != nil {
		p.innerRadius = radius
		l.markDirty()
	}
}

func (l *Light) updatePointShadowSources() {
	if !assert.That(len(l.shadowSources) == len(cubeFaces), "point light needs one shadow source per cube face",
		zap.Stringer("id", l.id),
		zap.Int("count", len(l.shadowSources))) {
		return
	}
	for i, src := range l.shadowSources {
		src.SetResolution(l.shadowMapResolution)
		src.SetPerspectiveLens(90, l.nearPlane, l.point.radius, l.position, cubeFaces[i])
	}
}
