package fibershade

import (
	"encoding/json"
	"fmt"
	"os"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/reflectx"
)

// Vec3Cfg is a JSON direction; a zero vector means "use the default".
type Vec3Cfg struct {
	X Real `json:"x"`
	Y Real `json:"y"`
	Z Real `json:"z"`
}

func (v Vec3Cfg) Vec() Vec     { return Vec{X: v.X, Y: v.Y, Z: v.Z} }
func (v Vec3Cfg) isZero() bool { return v.X == 0 && v.Y == 0 && v.Z == 0 }

// LightCfg places the light in degrees (see LightFromDegrees).
type LightCfg struct {
	ThetaDeg Real `json:"thetaDeg" default:"45"`
	PhiDeg   Real `json:"phiDeg" default:"0"`
}

type SpecularCfg struct {
	SpecFactor Real `json:"specFactor" default:"5"`
}

type KajiyaKayCfg struct {
	SpecFactor Real `json:"specFactor" default:"25"`
	Kd         Real `json:"kd" default:"0.3"`
	Ks         Real `json:"ks" default:"0.3"`
}

// FiberCfg mirrors FiberParams with angles in degrees (friendlier than radians).
type FiberCfg struct {
	IntensityR            Real `json:"intensityR" default:"5"`
	LongitudinalShiftRDeg Real `json:"longitudinalShiftRDeg" default:"-7.5"`
	LongitudinalWidthRDeg Real `json:"longitudinalWidthRDeg" default:"7.5"`

	IntensityTT            Real `json:"intensityTT" default:"0.5"`
	LongitudinalShiftTTDeg Real `json:"longitudinalShiftTTDeg" default:"3.75"`
	LongitudinalWidthTTDeg Real `json:"longitudinalWidthTTDeg" default:"3.75"`
	AzimuthalWidthTTDeg    Real `json:"azimuthalWidthTTDeg" default:"171.88733853924697"` // 3 rad

	IntensityTRT            Real `json:"intensityTRT" default:"0.5"`
	LongitudinalShiftTRTDeg Real `json:"longitudinalShiftTRTDeg" default:"11.25"`
	LongitudinalWidthTRTDeg Real `json:"longitudinalWidthTRTDeg" default:"15"`

	IntensityG         Real `json:"intensityG" default:"1"`
	AzimuthalShiftGDeg Real `json:"azimuthalShiftGDeg" default:"30"`
	AzimuthalWidthGDeg Real `json:"azimuthalWidthGDeg" default:"10"`

	AttenuationFromRoot Real `json:"attenuationFromRoot" default:"1"`

	Eta       Real `json:"eta" default:"1.55"`
	SigmaA    Real `json:"sigmaA" default:"0.2"`
	Thickness Real `json:"thickness" default:"0.2"`

	Azimuthal   string `json:"azimuthal" default:"exact"`
	PhysicalTRT bool   `json:"physicalTRT,omitempty"`
}

type Config struct {
	Shader    string       `json:"shader" default:"marschner"`
	Light     LightCfg     `json:"light"`
	Normal    Vec3Cfg      `json:"normal"`  // defaults to +Y
	Tangent   Vec3Cfg      `json:"tangent"` // defaults to +Z
	Specular  SpecularCfg  `json:"specular"`
	KajiyaKay KajiyaKayCfg `json:"kajiyaKay"`
	Marschner FiberCfg     `json:"marschner"`
	NPhi      int          `json:"nPhi" default:"100"`
	Workers   int          `json:"workers" default:"8"`
	PNGOut    string       `json:"pngOut" default:"lobe.png"`
	GIFOut    string       `json:"gifOut" default:"sweep.gif"`
	GIFFrames int          `json:"gifFrames" default:"36"`
	GIFDelay  int          `json:"gifDelay,omitempty" default:"8"`
	Gamma     Real         `json:"gamma,omitempty" default:"0.75"`
}

// Build validates and converts the degrees-based config into FiberParams.
// Out-of-range values are clamped rather than rejected.
func (fc FiberCfg) Build() (FiberParams, error) {
	mode, err := AzimuthalModeFromName(fc.Azimuthal)
	if err != nil {
		return FiberParams{}, err
	}
	return SanitizeFiberParams(FiberParams{
		IntensityR:           fc.IntensityR,
		LongitudinalShiftR:   degToRad(fc.LongitudinalShiftRDeg),
		LongitudinalWidthR:   degToRad(fc.LongitudinalWidthRDeg),
		IntensityTT:          fc.IntensityTT,
		LongitudinalShiftTT:  degToRad(fc.LongitudinalShiftTTDeg),
		LongitudinalWidthTT:  degToRad(fc.LongitudinalWidthTTDeg),
		AzimuthalWidthTT:     degToRad(fc.AzimuthalWidthTTDeg),
		IntensityTRT:         fc.IntensityTRT,
		LongitudinalShiftTRT: degToRad(fc.LongitudinalShiftTRTDeg),
		LongitudinalWidthTRT: degToRad(fc.LongitudinalWidthTRTDeg),
		IntensityG:           fc.IntensityG,
		AzimuthalShiftG:      degToRad(fc.AzimuthalShiftGDeg),
		AzimuthalWidthG:      degToRad(fc.AzimuthalWidthGDeg),
		AttenuationFromRoot:  fc.AttenuationFromRoot,
		Eta:                  fc.Eta,
		SigmaA:               fc.SigmaA,
		Thickness:            fc.Thickness,
		Azimuthal:            mode,
		PhysicalTRT:          fc.PhysicalTRT,
	}), nil
}

// BuildShader constructs the configured shader variant.
func (cfg *Config) BuildShader(opts ...ShaderOption) (Shader, error) {
	kind, err := KindFromName(cfg.Shader)
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindSpecular:
		return NewSpecularShader(cfg.Specular.SpecFactor, opts...), nil
	case KindKajiyaKay:
		kk := cfg.KajiyaKay
		return NewKajiyaKayShader(cfg.Tangent.Vec(), kk.SpecFactor, kk.Kd, kk.Ks, opts...)
	case KindMarschner:
		p, err := cfg.Marschner.Build()
		if err != nil {
			return nil, err
		}
		return NewMarschnerShader(cfg.Tangent.Vec(), p, opts...)
	}
	return nil, fmt.Errorf("unsupported shader kind %s", kind)
}

// defaultConfig returns a Config with every `default:` tag applied.
// Normal and Tangent stay zero: JSON merges into them per component, so
// their defaults are filled in after decoding.
func defaultConfig() (*Config, error) {
	var cfg Config
	for _, v := range []any{&cfg, &cfg.Light, &cfg.Specular, &cfg.KajiyaKay, &cfg.Marschner} {
		if err := reflectx.SetFromDefaultTags(v); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

// parseConfig decodes data over the defaults; missing keys keep their defaults.
func parseConfig(data []byte) (*Config, error) {
	cfg, err := defaultConfig()
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	// Defaults / validation
	if cfg.Normal.isZero() {
		cfg.Normal = Vec3Cfg{Y: 1}
	}
	if cfg.Tangent.isZero() {
		cfg.Tangent = Vec3Cfg{Z: 1}
	}
	if cfg.NPhi <= 0 {
		cfg.NPhi = DefaultNPhi
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.PNGOut == "" {
		cfg.PNGOut = PNGOut
	}
	if cfg.GIFOut == "" {
		cfg.GIFOut = GIFOut
	}
	if cfg.GIFDelay <= 0 {
		cfg.GIFDelay = GIFDelay
	}
	if cfg.GIFFrames <= 0 {
		cfg.GIFFrames = 1
	}
	if cfg.Gamma <= 0 {
		cfg.Gamma = Gamma
	}
	if _, err := KindFromName(cfg.Shader); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Log(err)
	}
	cfg, err := parseConfig(data)
	if err != nil {
		return nil, errors.Log(fmt.Errorf("config %s: %w", path, err))
	}
	DebugLog("Loaded config from %s: shader=%s, nPhi=%d, workers=%d, gamma=%f", path, cfg.Shader, cfg.NPhi, cfg.Workers, cfg.Gamma)
	return cfg, nil
}
