package main

import (
	"fmt"
	"strings"

	"RenderPipeline/internal/codec"
	"RenderPipeline/internal/light"

	"github.com/go-gl/mathgl/mgl32"
)

// SceneData is the on-disk description of a set of lights.
type SceneData struct {
	Lights []LightData `json:"lights" yaml:"lights"`
	Camera *CameraData `json:"camera,omitempty" yaml:"camera,omitempty"`
}

// CameraData is an optional viewer used to report which shadow maps matter.
type CameraData struct {
	Position [3]float32 `json:"position" yaml:"position"`
	Target   [3]float32 `json:"target" yaml:"target"`
	Fov      float32    `json:"fov" yaml:"fov"`
	Near     float32    `json:"near" yaml:"near"`
	Far      float32    `json:"far" yaml:"far"`
}

// ViewProjection builds a square, Z-up perspective view of the camera.
func (c CameraData) ViewProjection() mgl32.Mat4 {
	fov, near, far := c.Fov, c.Near, c.Far
	if fov <= 0 {
		fov = 60
	}
	if near <= 0 {
		near = 0.1
	}
	if far <= near {
		far = 1000
	}

	eye := mgl32.Vec3(c.Position)
	target := mgl32.Vec3(c.Target)
	up := mgl32.Vec3{0, 0, 1}
	if dir := target.Sub(eye).Normalize(); dir.Cross(up).Len() < 1e-3 {
		up = mgl32.Vec3{0, 1, 0}
	}

	proj := mgl32.Perspective(mgl32.DegToRad(fov), 1, near, far)
	return proj.Mul4(mgl32.LookAtV(eye, target, up))
}

type LightData struct {
	Type         string      `json:"type" yaml:"type"` // "spot" or "point"
	Position     [3]float32  `json:"position" yaml:"position"`
	Color        *[3]float32 `json:"color,omitempty" yaml:"color,omitempty"`
	Temperature  float32     `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	Intensity    *float32    `json:"intensity,omitempty" yaml:"intensity,omitempty"`
	Unit         string      `json:"unit,omitempty" yaml:"unit,omitempty"` // "luminance" or "lumens"
	CastsShadows *bool       `json:"castsShadows,omitempty" yaml:"casts_shadows,omitempty"`

	// Spot lights
	Direction *[3]float32 `json:"direction,omitempty" yaml:"direction,omitempty"`
	Fov       *float32    `json:"fov,omitempty" yaml:"fov,omitempty"`

	// Point lights
	Radius      *float32 `json:"radius,omitempty" yaml:"radius,omitempty"`
	InnerRadius *float32 `json:"innerRadius,omitempty" yaml:"inner_radius,omitempty"`
}

func loadScene(path string) (*SceneData, error) {
	var scene SceneData
	if err := codec.ReadFile(path, &scene); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	return &scene, nil
}

func parseType(name string) (light.Type, error) {
	switch strings.ToLower(name) {
	case "spot", "":
		return light.TypeSpot, nil
	case "point":
		return light.TypePoint, nil
	default:
		return light.TypeNone, fmt.Errorf("unknown light type %q", name)
	}
}

func parseUnit(name string) (light.IntensityType, error) {
	switch strings.ToLower(name) {
	case "luminance", "":
		return light.IntensityLuminance, nil
	case "lumens":
		return light.IntensityLumens, nil
	default:
		return light.IntensityLuminance, fmt.Errorf("unknown intensity unit %q", name)
	}
}

// build creates the light described by d on top of cfg.
func (d LightData) build(cfg light.Config) (*light.Light, error) {
	typ, err := parseType(d.Type)
	if err != nil {
		return nil, err
	}
	unit, err := parseUnit(d.Unit)
	if err != nil {
		return nil, err
	}

	if d.CastsShadows != nil {
		cfg.CastsShadows = *d.CastsShadows
	}
	l := light.New(typ, cfg)
	l.SetPosition(mgl32.Vec3(d.Position))

	switch typ {
	case light.TypeSpot:
		if d.Direction != nil {
			l.SetDirection(mgl32.Vec3(*d.Direction))
		}
		if d.Fov != nil {
			l.SetFov(*d.Fov)
		}
	case light.TypePoint:
		if d.Radius != nil {
			l.SetRadius(*d.Radius)
		}
		if d.InnerRadius != nil {
			l.SetInnerRadius(*d.InnerRadius)
		}
	}

	if d.Temperature > 0 {
		l.SetColorFromTemperature(d.Temperature)
	} else if d.Color != nil {
		l.SetColor(mgl32.Vec3(*d.Color))
	}

	// After the cone is set, so lumens spread over the final solid angle.
	if d.Intensity != nil {
		l.SetIntensity(*d.Intensity, unit)
	}
	return l, nil
}
