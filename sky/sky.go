// Package sky generates the intensity grids observed by the simulator.
package sky

import (
	"errors"
	"math/rand"

	"github.com/bob-anderson-ok/IOTAinterferometer/imagebuf"
)

// SourceStars is the only sky source currently implemented.
const SourceStars = "stars"

// DefaultStars is the number of point sources in a default starfield.
const DefaultStars = 5

// Starfield returns a size x size grid of zeros with stars unit-intensity
// pixels at random positions. Stars may land on the same pixel.
func Starfield(stars, size int, rng *rand.Rand) (*imagebuf.Image, error) {
	if size < 1 {
		return nil, errors.New("sky size must be at least 1")
	}
	img := imagebuf.New(size)
	for i := 0; i < stars; i++ {
		row := rng.Intn(size)
		col := rng.Intn(size)
		img.Set(row, col, 1.0)
	}
	return img, nil
}

// FromSource builds the named sky. Any name other than SourceStars falls
// back to the starfield; the returned flag is false when that happened.
func FromSource(name string, stars, size int, rng *rand.Rand) (*imagebuf.Image, bool, error) {
	img, err := Starfield(stars, size, rng)
	return img, name == SourceStars, err
}

// PointSource returns a size x size grid with a single unit pixel.
func PointSource(size, row, col int) (*imagebuf.Image, error) {
	if row < 0 || row >= size || col < 0 || col >= size {
		return nil, errors.New("point source outside the sky grid")
	}
	img := imagebuf.New(size)
	img.Set(row, col, 1.0)
	return img, nil
}
