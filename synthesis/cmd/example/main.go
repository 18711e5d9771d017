// Example program demonstrating how to use the synthesis package to:
// 1. Build a starfield sky and a random antenna array
// 2. Run a short observation
// 3. Write the normalized dirty image and the sky next to each other
//
// Usage:
//
//	go run main.go
//
// The program writes example.png and example-sky.png to the current directory.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/bob-anderson-ok/IOTAinterferometer/antenna"
	"github.com/bob-anderson-ok/IOTAinterferometer/sky"
	"github.com/bob-anderson-ok/IOTAinterferometer/synthesis"
)

func main() {
	fmt.Println("Dirty Image Synthesis Example")
	fmt.Println("=============================")

	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	// A small fixed observation so the example runs in a few seconds
	cfg := synthesis.DefaultConfig()
	cfg.Count = 6
	cfg.ImageSize = 64
	cfg.TimeSamples = 24
	cfg.DurationHours = 12

	rng := rand.New(rand.NewSource(1))

	skyImage, err := sky.Starfield(cfg.Stars, cfg.ImageSize, rng)
	if err != nil {
		log.Fatalf("Failed to build sky: %v", err)
	}

	array, err := antenna.Random(cfg.Count, cfg.ScaleM, cfg.DishSizeM, rng)
	if err != nil {
		log.Fatalf("Failed to build antenna array: %v", err)
	}

	pipeline, err := synthesis.New(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to build pipeline: %v", err)
	}

	fmt.Printf("\n  Antennas: %d", cfg.Count)
	fmt.Printf("\n  Beamwidth: %.3f rad", cfg.Beamwidth())
	fmt.Printf("\n  Time step: %.2f hours\n\n", cfg.StepHours())

	result, err := pipeline.Run(context.Background(), skyImage, array)
	if err != nil {
		log.Fatalf("Observation failed: %v", err)
	}

	if err := result.Dirty.Save("example.png"); err != nil {
		log.Fatalf("Failed to write example.png: %v", err)
	}
	if err := skyImage.Save("example-sky.png"); err != nil {
		log.Fatalf("Failed to write example-sky.png: %v", err)
	}

	fmt.Printf("\nSynthesized %d visibilities into a %dx%d dirty image\n",
		result.History.Len(), cfg.ImageSize, cfg.ImageSize)
	fmt.Println("Wrote example.png and example-sky.png")
}
