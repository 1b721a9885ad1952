package shadow

import "github.com/go-gl/mathgl/mgl32"

type Plane struct {
	Normal   mgl32.Vec3
	Distance float32
}

func (p Plane) DistanceToPoint(point mgl32.Vec3) float32 {
	return p.Normal.Dot(point) + p.Distance
}

// Frustum is a convex volume bounded by six inward-facing planes.
type Frustum struct {
	Planes [6]Plane
}

// FrustumFromMatrix extracts the clip planes of a view-projection matrix,
// in the order left, right, bottom, top, near, far.
func FrustumFromMatrix(viewProj mgl32.Mat4) Frustum {
	var f Frustum
	w := viewProj.Row(3)
	for axis := 0; axis < 3; axis++ {
		r := viewProj.Row(axis)
		f.Planes[axis*2] = planeFromVec4(w.Add(r))
		f.Planes[axis*2+1] = planeFromVec4(w.Sub(r))
	}
	return f
}

func planeFromVec4(v mgl32.Vec4) Plane {
	p := Plane{Normal: v.Vec3(), Distance: v.W()}
	if length := p.Normal.Len(); length > 0 {
		p.Normal = p.Normal.Mul(1 / length)
		p.Distance /= length
	}
	return p
}

// Frustum returns the clip volume of the source's lens.
func (s *Source) Frustum() Frustum {
	return FrustumFromMatrix(s.mvp)
}

// IntersectsSphere reports whether a sphere is at least partly inside f.
func (f Frustum) IntersectsSphere(s Sphere) bool {
	for _, plane := range f.Planes {
		if plane.DistanceToPoint(s.Center) < -s.Radius {
			return false
		}
	}
	return true
}
