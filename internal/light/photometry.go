package light

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// SetIntensity sets the brightness from a value in the given unit. Energy is
// kept in luminance, so a later fov change keeps the per-steradian intensity
// and changes the total flux. Lumens on a spot light with a zero fov give an
// infinite energy.
func (l *Light) SetIntensity(value float32, unit IntensityType) {
	l.SetEnergy(value * l.ConversionFactor(unit, IntensityLuminance))
}

// Intensity returns the brightness expressed in unit.
func (l *Light) Intensity(unit IntensityType) float32 {
	return l.energy * l.ConversionFactor(IntensityLuminance, unit)
}

// SetColorFromTemperature sets the color of a black body at kelvin degrees,
// normalized so the brightest channel is 1. Valid from 1000K to 15000K.
func (l *Light) SetColorFromTemperature(kelvin float32) {
	l.SetColor(ColorFromTemperature(kelvin))
}

// ColorFromTemperature maps a color temperature to linear sRGB using
// Krystek's approximation of the Planckian locus.
func ColorFromTemperature(kelvin float32) mgl32.Vec3 {
	t := float64(mgl32.Clamp(kelvin, 1000, 15000))
	t2 := t * t

	// CIE 1960 UCS
	u := (0.860117757 + 1.54118254e-4*t + 1.28641212e-7*t2) /
		(1.0 + 8.42420235e-4*t + 7.08145163e-7*t2)
	v := (0.317398726 + 4.22806245e-5*t + 4.20481691e-8*t2) /
		(1.0 - 2.89741816e-5*t + 1.61456053e-7*t2)

	// CIE xy, then XYZ with Y = 1
	d := 2.0*u - 8.0*v + 4.0
	x := 3.0 * u / d
	y := 2.0 * v / d
	X := x / y
	Z := (1.0 - x - y) / y

	r := 3.2404542*X - 1.5371385 - 0.4985314*Z
	g := -0.9692660*X + 1.8760108 + 0.0415560*Z
	b := 0.0556434*X - 0.2040259 + 1.0572252*Z

	r, g, b = math.Max(r, 0), math.Max(g, 0), math.Max(b, 0)
	peak := math.Max(r, math.Max(g, b))
	if peak == 0 {
		return mgl32.Vec3{1, 1, 1}
	}
	return mgl32.Vec3{float32(r / peak), float32(g / peak), float32(b / peak)}
}
