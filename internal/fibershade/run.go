package fibershade

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

func Run(cfgPath string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	return RunConfig(context.Background(), cfg)
}

// RunConfig samples the configured shader and writes the requested images.
func RunConfig(ctx context.Context, cfg *Config) error {
	logger := slog.Default()

	var opts []ShaderOption
	var diag *DiagLog
	if Debug {
		diag = NewDiagLog(logger)
		opts = append(opts, WithDiagnostics(diag))
	}
	shader, err := cfg.BuildShader(opts...)
	if err != nil {
		return fmt.Errorf("build shader: %w", err)
	}
	logger.Info("shader", "config", Describe(shader))

	sampler := NewSampler(cfg.Workers)
	defer sampler.Close()
	up := cfg.Normal.Vec()
	light := LightFromDegrees(cfg.Light.ThetaDeg, cfg.Light.PhiDeg)

	start := time.Now()
	lobe, err := sampler.Hemisphere(ctx, shader, light, up, cfg.NPhi)
	if err != nil {
		return fmt.Errorf("sample lobe: %w", err)
	}
	logger.Info("lobe", "points", len(lobe.Intensity), "max", lobe.Max(), "pole", lobe.Pole(), "time", time.Since(start))

	if PNG {
		if err := SaveLobePNG16(lobe, cfg.PNGOut, cfg.Gamma); err != nil {
			return err
		}
		logger.Info("saved PNG", "path", cfg.PNGOut)
	}
	if GIF {
		frames, err := sampler.SweepLobes(ctx, shader, up, cfg.NPhi, cfg.GIFFrames, cfg.Light.PhiDeg)
		if err != nil {
			return fmt.Errorf("sweep light: %w", err)
		}
		if err := SaveLobeSweepGIF(frames, cfg.GIFOut, cfg.GIFDelay, cfg.Gamma); err != nil {
			return err
		}
		logger.Info("saved animated GIF", "path", cfg.GIFOut, "frames", len(frames))
	}
	diag.Stats(logger)
	return nil
}
