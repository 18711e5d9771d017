package synthesis_test

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"github.com/bob-anderson-ok/IOTAinterferometer/antenna"
	"github.com/bob-anderson-ok/IOTAinterferometer/sky"
	"github.com/bob-anderson-ok/IOTAinterferometer/synthesis"
)

// Example observes a single point source with a two dish east-west
// baseline for a full day and locates the brightest pixel of the dirty image.
func Example() {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := synthesis.DefaultConfig()
	cfg.Count = 2
	cfg.ImageSize = 32
	cfg.DurationHours = 24
	cfg.TimeSamples = 48

	pipeline, err := synthesis.New(cfg, logger)
	if err != nil {
		log.Fatal(err)
	}

	skyImage, err := sky.PointSource(cfg.ImageSize, 20, 9)
	if err != nil {
		log.Fatal(err)
	}
	array, err := antenna.New(mat.NewDense(2, 2, []float64{-10, 0, 10, 0}), cfg.DishSizeM)
	if err != nil {
		log.Fatal(err)
	}

	result, err := pipeline.Run(context.Background(), skyImage, array)
	if err != nil {
		log.Fatal(err)
	}

	pixels := result.Dirty.ToVector()
	peak := 0
	for i, v := range pixels {
		if v > pixels[peak] {
			peak = i
		}
	}
	fmt.Printf("time steps: %d\n", result.History.Steps())
	fmt.Printf("samples: %d\n", result.History.Len())
	fmt.Printf("peak at row %d, col %d\n", peak/cfg.ImageSize, peak%cfg.ImageSize)

	// Output:
	// time steps: 48
	// samples: 192
	// peak at row 20, col 9
}
