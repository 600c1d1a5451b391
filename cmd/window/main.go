package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/matt-g-everett/lerpease/stream"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults to the built-in sketch).")
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

	width, height := sketch.Size()
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("lerp easing")
	// Frames are layered over the previous screen to keep the trails.
	ebiten.SetScreenClearedEveryFrame(false)

	if err := ebiten.RunGame(NewGame(sketch)); err != nil {
		log.Fatal(err)
	}
}
