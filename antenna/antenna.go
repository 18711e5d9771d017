// Package antenna models a planar array of dish antennas observing from a
// rotating platform.
package antenna

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"github.com/bob-anderson-ok/IOTAinterferometer/meshgrid"
)

// ErrNoAntennas is returned when an array would hold zero antennas.
var ErrNoAntennas = errors.New("antenna array needs at least one antenna")

// Array holds antenna positions as stacked (x, y) row vectors in meters.
//
// The row count is fixed for the lifetime of the array. Propagate is the
// only operation that mutates the positions.
type Array struct {
	positions *mat.Dense
	DishSize  float64 // parabolic dish diameter (meters)
}

// New builds an array from an N x 2 position matrix. The matrix is copied.
func New(positions mat.Matrix, dishSize float64) (*Array, error) {
	r, c := positions.Dims()
	if r < 1 {
		return nil, ErrNoAntennas
	}
	if c != 2 {
		return nil, fmt.Errorf("antenna positions must have 2 columns, got %d", c)
	}
	return &Array{
		positions: mat.DenseCopyOf(positions),
		DishSize:  dishSize,
	}, nil
}

// Random places count antennas uniformly in [-scale/2, scale/2) on each axis.
func Random(count int, scale, dishSize float64, rng *rand.Rand) (*Array, error) {
	if count < 1 {
		return nil, ErrNoAntennas
	}
	data := make([]float64, count*2)
	for i := range data {
		data[i] = rng.Float64()*scale - scale/2.0
	}
	return &Array{
		positions: mat.NewDense(count, 2, data),
		DishSize:  dishSize,
	}, nil
}

// Len is the number of antennas.
func (a *Array) Len() int {
	r, _ := a.positions.Dims()
	return r
}

// Positions returns a copy of the current antenna positions.
func (a *Array) Positions() *mat.Dense {
	return mat.DenseCopyOf(a.positions)
}

// Clone returns an independent copy of the array.
func (a *Array) Clone() *Array {
	return &Array{positions: mat.DenseCopyOf(a.positions), DishSize: a.DishSize}
}

// ToUV converts the antenna positions to (u,v) coordinates, in units of
// the observing wavelength.
func (a *Array) ToUV(wavelength float64) *mat.Dense {
	var uv mat.Dense
	uv.Apply(func(_, _ int, v float64) float64 { return v / wavelength }, a.positions)
	return &uv
}

// Baselines returns the (u,v) coordinates of every ordered antenna pair as
// an N^2 x 2 matrix. Row i*N+j holds (antenna_i - antenna_j) / wavelength.
func (a *Array) Baselines(wavelength float64) *mat.Dense {
	n := a.Len()
	x := mat.Col(nil, 0, a.positions)
	y := mat.Col(nil, 1, a.positions)
	x1, x2 := meshgrid.Meshgrid(x, x)
	y1, y2 := meshgrid.Meshgrid(y, y)

	data := make([]float64, 0, n*n*2)
	for i, j := range meshgrid.Pairs(n, n) {
		data = append(data,
			(x1[i][j]-x2[i][j])/wavelength,
			(y1[i][j]-y2[i][j])/wavelength,
		)
	}
	return mat.NewDense(n*n, 2, data)
}

// Propagate rotates the array about the origin by the angle swept in the
// given number of hours, assuming one full turn every 24 hours. Positions
// are updated in place: each row vector p becomes p * [[c, -s], [s, c]].
func (a *Array) Propagate(hours float64) {
	angle := hours / 24.0 * 2.0 * math.Pi
	s := math.Sin(angle)
	c := math.Cos(angle)
	rot := mat.NewDense(2, 2, []float64{
		c, -s,
		s, c,
	})

	var rotated mat.Dense
	rotated.Mul(a.positions, rot)
	a.positions.Copy(&rotated)
}

// Layout names an antenna placement strategy.
type Layout string

const (
	LayoutRandom Layout = "random"
	LayoutSpiral Layout = "spiral"
	LayoutY      Layout = "y"
)

// Generate builds an array with the requested layout. Only the random
// layout is implemented; spiral and y (and unknown names) fall back to it.
func Generate(layout Layout, count int, scale, dishSize float64, rng *rand.Rand, logger logrus.FieldLogger) (*Array, error) {
	switch layout {
	case LayoutRandom:
	case LayoutSpiral, LayoutY:
		logger.WithField("layout", layout).Warn("array layout not implemented, using random placement")
	default:
		logger.WithField("layout", layout).Warn("unknown array layout, using random placement")
	}
	return Random(count, scale, dishSize, rng)
}
