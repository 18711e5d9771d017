// Package beam samples the imaged patch of sky as a square grid of (l,m)
// direction cosines and evaluates the Fourier phase kernel that links (u,v)
// samples to every grid point.
package beam

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/bob-anderson-ok/IOTAinterferometer/meshgrid"
)

// ErrResolution is returned for a grid with no samples.
var ErrResolution = errors.New("beam resolution must be at least 1")

// Beam holds stacked (l,m) row vectors. Sample p = i*n + j has l taken from
// grid row i and m from grid column j, so the sample order is the row-major
// pixel order of an n x n image.
type Beam struct {
	samples *mat.Dense
	n       int
}

// FromBeamwidth builds an n x n grid spanning [-beamwidth, beamwidth) on
// both axes with spacing 2*beamwidth/n.
func FromBeamwidth(beamwidth float64, n int) (*Beam, error) {
	if n < 1 {
		return nil, ErrResolution
	}
	axis := make([]float64, n)
	step := 2.0 / float64(n)
	for k := range axis {
		axis[k] = beamwidth * (-1.0 + float64(k)*step)
	}

	lGrid, mGrid := meshgrid.Meshgrid(axis, axis)
	data := make([]float64, 0, n*n*2)
	for i, j := range meshgrid.Pairs(n, n) {
		data = append(data, lGrid[i][j], mGrid[i][j])
	}
	return &Beam{samples: mat.NewDense(n*n, 2, data), n: n}, nil
}

// Resolution is the number of samples along one side of the grid.
func (b *Beam) Resolution() int { return b.n }

// Len is the total number of grid samples.
func (b *Beam) Len() int { return b.n * b.n }

// At returns the direction cosines of sample p.
func (b *Beam) At(p int) (l, m float64) {
	return b.samples.At(p, 0), b.samples.At(p, 1)
}

// Samples returns a copy of the (l,m) table.
func (b *Beam) Samples() *mat.Dense {
	return mat.DenseCopyOf(b.samples)
}

// Phases evaluates exp(i*2*(u*l + v*m)) for every (u,v) row of uv against
// every beam sample. The result has one row per (u,v) sample and one column
// per beam sample.
//
// Signal synthesis and image synthesis both use this kernel; the exponent
// sign must stay the same for both or the image comes out mirrored.
func (b *Beam) Phases(uv mat.Matrix) (*mat.CDense, error) {
	k, c := uv.Dims()
	if c != 2 {
		return nil, fmt.Errorf("uv table must have 2 columns, got %d", c)
	}
	if k == 0 {
		return nil, errors.New("uv table is empty")
	}

	var dots mat.Dense
	dots.Mul(uv, b.samples.T())

	m := b.Len()
	out := make([]complex128, k*m)
	for row := 0; row < k; row++ {
		for p, x := range dots.RawRowView(row) {
			s, c := math.Sincos(2.0 * x)
			out[row*m+p] = complex(c, s)
		}
	}
	return mat.NewCDense(k, m, out), nil
}
