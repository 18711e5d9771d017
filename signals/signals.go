// Package signals holds the instantaneous complex amplitude received by
// each antenna and correlates them pairwise.
package signals

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/cblas128"
	"gonum.org/v1/gonum/mat"

	"github.com/bob-anderson-ok/IOTAinterferometer/meshgrid"
)

// Set is one complex signal per antenna.
type Set struct {
	signals []complex128
}

// FromSlice wraps existing signal values. The slice is copied.
func FromSlice(s []complex128) Set {
	return Set{signals: append([]complex128(nil), s...)}
}

// New synthesizes the per-antenna signals seen through a phase matrix
// (one row per antenna, one column per sky pixel): signal = phases * sky.
func New(phases *mat.CDense, sky []complex128) (Set, error) {
	rows, cols := phases.Dims()
	if cols != len(sky) {
		return Set{}, fmt.Errorf("phase matrix has %d columns but sky has %d pixels", cols, len(sky))
	}

	out := make([]complex128, rows)
	cblas128.Gemv(blas.NoTrans, 1, phases.RawCMatrix(),
		cblas128.Vector{N: cols, Inc: 1, Data: sky},
		0, cblas128.Vector{N: rows, Inc: 1, Data: out})
	return Set{signals: out}, nil
}

// Len is the number of antennas.
func (s Set) Len() int { return len(s.signals) }

// Signals returns a copy of the signal values.
func (s Set) Signals() []complex128 {
	return append([]complex128(nil), s.signals...)
}

// CrossCorrelate returns the N x N outer product signal (x) conj(signal)
// flattened row-major: entry i*N+j is s_i * conj(s_j). The ordering matches
// antenna.Array.Baselines.
func (s Set) CrossCorrelate() []complex128 {
	n := len(s.signals)
	out := make([]complex128, n*n)
	for i, j := range meshgrid.Pairs(n, n) {
		si := s.signals[i]
		if i == j {
			out[meshgrid.Index(i, j, n)] = complex(real(si)*real(si)+imag(si)*imag(si), 0)
			continue
		}
		out[meshgrid.Index(i, j, n)] = si * cmplx.Conj(s.signals[j])
	}
	return out
}
