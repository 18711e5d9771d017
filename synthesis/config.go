package synthesis

import (
	"errors"
	"fmt"

	"github.com/bob-anderson-ok/IOTAinterferometer/antenna"
	"github.com/bob-anderson-ok/IOTAinterferometer/sky"
)

// Config describes one simulated observation. It is built once at the
// configuration boundary, validated, and then only read.
type Config struct {
	Sky           string  `mapstructure:"sky"`            // sky source selector
	Stars         int     `mapstructure:"stars"`          // point sources in a starfield sky
	Count         int     `mapstructure:"count"`          // number of antennas
	DurationHours float64 `mapstructure:"duration_hours"` // length of the observation
	TimeSamples   int     `mapstructure:"time_samples"`   // number of time steps
	WavelengthM   float64 `mapstructure:"wavelength_m"`
	DishSizeM     float64 `mapstructure:"dish_size_m"`
	ImageSize     int     `mapstructure:"image_size"` // output resolution (pixels per side)
	ArrayType     string  `mapstructure:"array_type"` // antenna layout selector
	ScaleM        float64 `mapstructure:"scale_m"`    // physical extent of the array
	Seed          int64   `mapstructure:"seed"`       // 0 selects a time based seed
	Workers       int     `mapstructure:"workers"`    // synthesis parallelism, 0 = GOMAXPROCS
}

// DefaultConfig returns the settings of a 10 dish, 8 hour, 21 cm observation
// imaged at 128 x 128.
func DefaultConfig() Config {
	return Config{
		Sky:           sky.SourceStars,
		Stars:         sky.DefaultStars,
		Count:         10,
		DurationHours: 8.0,
		TimeSamples:   50,
		WavelengthM:   0.21,
		DishSizeM:     1.0,
		ImageSize:     128,
		ArrayType:     string(antenna.LayoutRandom),
		ScaleM:        50.0,
	}
}

// Beamwidth is the angular half-width of the imaged patch (radians).
func (c Config) Beamwidth() float64 {
	return c.WavelengthM / c.DishSizeM
}

// StepHours is the time between consecutive samples.
func (c Config) StepHours() float64 {
	return c.DurationHours / float64(c.TimeSamples)
}

// Validate rejects configurations the pipeline cannot run.
func (c Config) Validate() error {
	var errs []error
	if c.Count < 1 {
		errs = append(errs, fmt.Errorf("count must be at least 1, got %d", c.Count))
	}
	if c.TimeSamples < 1 {
		errs = append(errs, fmt.Errorf("time_samples must be at least 1, got %d", c.TimeSamples))
	}
	if c.DurationHours < 0 {
		errs = append(errs, fmt.Errorf("duration_hours must not be negative, got %g", c.DurationHours))
	}
	if c.WavelengthM <= 0 {
		errs = append(errs, fmt.Errorf("wavelength_m must be positive, got %g", c.WavelengthM))
	}
	if c.DishSizeM <= 0 {
		errs = append(errs, fmt.Errorf("dish_size_m must be positive, got %g", c.DishSizeM))
	}
	// The pixel count is image_size squared, so any positive size reshapes.
	if c.ImageSize < 1 {
		errs = append(errs, fmt.Errorf("image_size must be at least 1, got %d", c.ImageSize))
	}
	if c.ScaleM < 0 {
		errs = append(errs, fmt.Errorf("scale_m must not be negative, got %g", c.ScaleM))
	}
	if c.Stars < 0 {
		errs = append(errs, fmt.Errorf("stars must not be negative, got %d", c.Stars))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	return errors.Join(errs...)
}
