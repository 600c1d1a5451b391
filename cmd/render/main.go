package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/matt-g-everett/lerpease/render"
	"github.com/matt-g-everett/lerpease/stream"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults to the built-in sketch).")
	frames := flag.Int("frames", 72, "Number of frames to render.")
	deltaMs := flag.Float64("delta", 1000.0/60, "Milliseconds between frames.")
	outDir := flag.String("out", "frames", "Output directory.")
	flag.Parse()

	config := stream.DefaultConfig()
	if *configPath != "" {
		c, err := stream.ReadConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to read config: %v", err)
		}
		config = c
	}

	registry, err := config.Registry()
	if err != nil {
		log.Fatalf("Failed to load curves: %v", err)
	}
	sketch, err := stream.NewSketch(config.Sketch, registry)
	if err != nil {
		log.Fatalf("Failed to create sketch: %v", err)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatal(err)
	}

	width, height := sketch.Size()
	r := render.NewRasterizer(width, height)
	defer r.Close()

	for i := 0; i < *frames; i++ {
		f := sketch.AdvanceFrame(*deltaMs)
		if err := r.Draw(f); err != nil {
			log.Fatalf("Frame %d: %v", i, err)
		}
		path := filepath.Join(*outDir, fmt.Sprintf("frame-%04d.png", i))
		if err := r.SavePNG(path); err != nil {
			log.Fatalf("Frame %d: %v", i, err)
		}
		if f.Reset {
			log.Printf("Cycle completed at frame %d (t=%.3f)", i, f.Progress)
		}
	}

	log.Printf("Wrote %d frames to %s", *frames, *outDir)
}
