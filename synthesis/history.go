package synthesis

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// History accumulates the baselines and visibilities of every time step.
// Row k of the stacked baseline table belongs to visibility k.
type History struct {
	baselines    []float64 // row-major (u, v)
	visibilities []complex128
	rowsPerStep  int
	steps        int
}

// NewHistory preallocates room for steps time steps of rowsPerStep pairs.
func NewHistory(rowsPerStep, steps int) *History {
	return &History{
		baselines:    make([]float64, 0, rowsPerStep*steps*2),
		visibilities: make([]complex128, 0, rowsPerStep*steps),
	}
}

// Append adds one time step. The baseline table must be K x 2 with K equal
// to len(vis), and K must match earlier steps.
func (h *History) Append(baselines mat.Matrix, vis []complex128) error {
	rows, cols := baselines.Dims()
	if cols != 2 {
		return fmt.Errorf("baseline table must have 2 columns, got %d", cols)
	}
	if rows != len(vis) {
		return fmt.Errorf("baseline table has %d rows but %d visibilities", rows, len(vis))
	}
	if h.steps > 0 && rows != h.rowsPerStep {
		return fmt.Errorf("time step %d has %d baselines, earlier steps had %d", h.steps, rows, h.rowsPerStep)
	}

	for i := 0; i < rows; i++ {
		h.baselines = append(h.baselines, baselines.At(i, 0), baselines.At(i, 1))
	}
	h.visibilities = append(h.visibilities, vis...)
	h.rowsPerStep = rows
	h.steps++
	return nil
}

// Len is the total number of stacked samples.
func (h *History) Len() int { return len(h.visibilities) }

// Steps is the number of appended time steps.
func (h *History) Steps() int { return h.steps }

// Baselines returns the stacked (T*N^2) x 2 baseline table, or nil when
// nothing has been appended.
func (h *History) Baselines() *mat.Dense {
	if h.Len() == 0 {
		return nil
	}
	return mat.NewDense(h.Len(), 2, append([]float64(nil), h.baselines...))
}

// Visibilities returns a copy of the stacked visibilities.
func (h *History) Visibilities() []complex128 {
	return append([]complex128(nil), h.visibilities...)
}
