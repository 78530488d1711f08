package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/pprof"

	"github.com/lukaszgryglicki/fibershade/internal/fibershade"
)

func main() {
	fibershade.Debug = os.Getenv("DEBUG") != ""
	fibershade.PNG = os.Getenv("SKIP_PNG") == ""
	fibershade.GIF = os.Getenv("GIF") != ""
	level := slog.LevelInfo
	if fibershade.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	profile := os.Getenv("PROFILE") != ""
	if profile {
		f, err := os.Create("cpu.out")
		if err != nil {
			panic(err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			panic(err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	cfg := "scenes/config.json"
	if len(os.Args) > 1 {
		cfg = os.Args[1]
	}
	if err := fibershade.Run(cfg); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
