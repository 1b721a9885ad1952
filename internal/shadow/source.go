package shadow

import (
	"math"

	"RenderPipeline/internal/gpucommand"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/xlab/linmath"
)

// Source is one shadow-casting frustum owned by a light.
type Source struct {
	// HOT DATA - read whenever the light manager uploads or culls sources
	mvp         mgl32.Mat4
	bounds      Sphere
	slot        int
	needsUpdate bool

	// COLD DATA - lens inputs
	resolution int
	fov        float32
	nearPlane  float32
	farPlane   float32
	position   mgl32.Vec3
	direction  mgl32.Vec3
}

// Sphere is a bounding sphere in world space.
type Sphere struct {
	Center mgl32.Vec3
	Radius float32
}

var (
	worldUp    = mgl32.Vec3{0, 0, 1}
	fallbackUp = mgl32.Vec3{0, 1, 0}
)

func NewSource() *Source {
	return &Source{
		slot:        -1,
		needsUpdate: true,
		resolution:  512,
	}
}

func (s *Source) Slot() int         { return s.slot }
func (s *Source) HasSlot() bool     { return s.slot >= 0 }
func (s *Source) SetSlot(slot int)  { s.slot = slot }
func (s *Source) NeedsUpdate() bool { return s.needsUpdate }
func (s *Source) Resolution() int   { return s.resolution }
func (s *Source) MVP() mgl32.Mat4   { return s.mvp }
func (s *Source) Bounds() Sphere    { return s.bounds }

func (s *Source) SetNeedsUpdate(flag bool) {
	s.needsUpdate = flag
}

// SetResolution changes the shadow map size; the map has to be re-rendered.
func (s *Source) SetResolution(resolution int) {
	if resolution == s.resolution {
		return
	}
	s.resolution = resolution
	s.needsUpdate = true
}

// Lens returns the inputs of the last SetPerspectiveLens call.
func (s *Source) Lens() (fov, near, far float32, pos, dir mgl32.Vec3) {
	return s.fov, s.nearPlane, s.farPlane, s.position, s.direction
}

// SetPerspectiveLens points the frustum from pos along dir. fov is the full
// angle in degrees; far is the far clip distance. dir does not need to be
// normalized.
func (s *Source) SetPerspectiveLens(fov, near, far float32, pos, dir mgl32.Vec3) {
	s.fov = fov
	s.nearPlane = near
	s.farPlane = far
	s.position = pos
	s.direction = dir

	axis := dir.Normalize()
	up := worldUp
	if float32(math.Abs(float64(axis.Dot(up)))) > 0.999 {
		up = fallbackUp
	}

	view := mgl32.LookAtV(pos, pos.Add(axis), up)
	projection := mgl32.Perspective(mgl32.DegToRad(fov), 1.0, near, far)

	mvp := projection.Mul4(view)
	if mvp != s.mvp {
		s.mvp = mvp
		s.needsUpdate = true
	}
	s.bounds = frustumBounds(fov, far, pos, axis)
}

func frustumBounds(fov, far float32, pos, axis mgl32.Vec3) Sphere {
	if fov >= 180 || fov <= 0 {
		return Sphere{Center: pos, Radius: far}
	}
	half := far * float32(math.Tan(float64(mgl32.DegToRad(fov*0.5))))
	mid := far * 0.5
	return Sphere{
		Center: pos.Add(axis.Mul(mid)),
		Radius: float32(math.Sqrt(float64(mid*mid + 2*half*half))),
	}
}

// WriteToCommand appends the MVP.
func (s *Source) WriteToCommand(cmd *gpucommand.Command) {
	cmd.PushMat4(s.mvp)
}

// MVPVulkan returns the MVP as a linmath matrix. Both types are column-major,
// so mgl32 column i becomes linmath row index i.
func (s *Source) MVPVulkan() linmath.Mat4x4 {
	var out linmath.Mat4x4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			out[col][row] = s.mvp[col*4+row]
		}
	}
	return out
}
