package light

import (
	"fmt"

	"RenderPipeline/internal/codec"
)

// Config holds the defaults new lights are created with.
type Config struct {
	Color               [3]float32 `json:"color" yaml:"color"`
	Energy              float32    `json:"energy" yaml:"energy"`
	NearPlane           float32    `json:"nearPlane" yaml:"near_plane"`
	MaxCullDistance     float32    `json:"maxCullDistance" yaml:"max_cull_distance"`
	ShadowMapResolution int        `json:"shadowMapResolution" yaml:"shadow_map_resolution"`
	CastsShadows        bool       `json:"castsShadows" yaml:"casts_shadows"`

	// Spot lights
	SpotFov       float32    `json:"spotFov" yaml:"spot_fov"`
	SpotDirection [3]float32 `json:"spotDirection" yaml:"spot_direction"`

	// Point lights
	PointRadius      float32 `json:"pointRadius" yaml:"point_radius"`
	PointInnerRadius float32 `json:"pointInnerRadius" yaml:"point_inner_radius"`
}

// DefaultConfig returns the stock light defaults.
func DefaultConfig() Config {
	return Config{
		Color:               [3]float32{1, 1, 1},
		Energy:              20,
		NearPlane:           0.5,
		MaxCullDistance:     40,
		ShadowMapResolution: 512,
		CastsShadows:        false,

		SpotFov:       45,
		SpotDirection: [3]float32{0, 0, -1},

		PointRadius:      10,
		PointInnerRadius: 0.01,
	}
}

// LoadConfig reads a JSON or YAML file (chosen by extension) over the
// defaults, so a file only needs the keys it changes.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if err := codec.ReadFile(path, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("light config: %w", err)
	}
	return cfg, nil
}
