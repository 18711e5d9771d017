// Package synthesis drives a simulated interferometric observation: it steps
// an antenna array through time, correlates the signals every step, and
// forms a dirty image from the accumulated visibilities by direct summation.
//
// Direct summation costs O(T*N^2*P) for T steps, N antennas and P pixels,
// but accepts (u,v) samples anywhere, not just on a regular grid.
package synthesis

import (
	"context"
	"errors"
	"fmt"
	"math/cmplx"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/cblas128"
	"gonum.org/v1/gonum/mat"

	"github.com/bob-anderson-ok/IOTAinterferometer/antenna"
	"github.com/bob-anderson-ok/IOTAinterferometer/beam"
	"github.com/bob-anderson-ok/IOTAinterferometer/imagebuf"
	"github.com/bob-anderson-ok/IOTAinterferometer/metrics"
	"github.com/bob-anderson-ok/IOTAinterferometer/signals"
)

// blockEntries bounds the size of one phase-matrix block during synthesis
// (complex entries, 16 bytes each).
const blockEntries = 1 << 20

// Pipeline runs observations for one validated Config.
type Pipeline struct {
	cfg       Config
	beam      *beam.Beam
	logger    logrus.FieldLogger
	blockRows int
}

// Result is the outcome of a run.
type Result struct {
	Dirty   *imagebuf.Image // unnormalized dirty image
	History *History
}

// New validates cfg and builds the beam grid sized to the output image.
func New(cfg Config, logger logrus.FieldLogger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	b, err := beam.FromBeamwidth(cfg.Beamwidth(), cfg.ImageSize)
	if err != nil {
		return nil, err
	}
	rows := blockEntries / b.Len()
	if rows < 1 {
		rows = 1
	}
	return &Pipeline{cfg: cfg, beam: b, logger: logger, blockRows: rows}, nil
}

// Config returns the configuration the pipeline was built with.
func (p *Pipeline) Config() Config { return p.cfg }

// Beam returns the beam grid used for both signal and image synthesis.
func (p *Pipeline) Beam() *beam.Beam { return p.beam }

// Run observes skyImage with array and synthesizes the dirty image.
//
// Run takes ownership of array: the positions are rotated in place once per
// time step and are left at their final orientation.
func (p *Pipeline) Run(ctx context.Context, skyImage *imagebuf.Image, array *antenna.Array) (*Result, error) {
	if skyImage.Size() != p.cfg.ImageSize {
		return nil, fmt.Errorf("sky is %dx%d pixels, pipeline expects %dx%d",
			skyImage.Size(), skyImage.Size(), p.cfg.ImageSize, p.cfg.ImageSize)
	}

	start := time.Now()
	hist, err := p.observe(complexPixels(skyImage), array)
	if err != nil {
		return nil, err
	}
	p.logger.WithFields(logrus.Fields{
		"steps":   hist.Steps(),
		"samples": hist.Len(),
		"elapsed": time.Since(start).String(),
	}).Info("observation complete")

	dirty, err := p.Synthesize(ctx, hist)
	if err != nil {
		return nil, err
	}
	return &Result{Dirty: dirty, History: hist}, nil
}

func complexPixels(img *imagebuf.Image) []complex128 {
	v := img.ToVector()
	out := make([]complex128, len(v))
	for i, x := range v {
		out[i] = complex(x, 0)
	}
	return out
}

// observe runs the time steps strictly in order. It is the only caller of
// array.Propagate, so step t always starts from the positions step t-1 left.
func (p *Pipeline) observe(pixels []complex128, array *antenna.Array) (*History, error) {
	wavelength := p.cfg.WavelengthM
	step := p.cfg.StepHours()
	n := array.Len()
	hist := NewHistory(n*n, p.cfg.TimeSamples)

	for t := 0; t < p.cfg.TimeSamples; t++ {
		stepStart := time.Now()

		array.Propagate(step)

		// Signals arrive from the sky, hence the negated (u,v).
		var uv mat.Dense
		uv.Scale(-1, array.ToUV(wavelength))

		phases, err := p.beam.Phases(&uv)
		if err != nil {
			return nil, fmt.Errorf("time step %d: %w", t, err)
		}
		rx, err := signals.New(phases, pixels)
		if err != nil {
			return nil, fmt.Errorf("time step %d: %w", t, err)
		}
		if err := hist.Append(array.Baselines(wavelength), rx.CrossCorrelate()); err != nil {
			return nil, fmt.Errorf("time step %d: %w", t, err)
		}

		elapsed := time.Since(stepStart)
		metrics.RecordStep(elapsed)
		p.logger.WithFields(logrus.Fields{
			"step":    t,
			"elapsed": elapsed.String(),
		}).Debug("time step complete")
	}
	return hist, nil
}

// Synthesize forms the dirty image |visibilities . phases(baselines)| over
// the beam grid.
//
// The baseline table is split into row blocks; each block's phase matrix is
// built and contracted with its visibilities on a worker, and the partial
// sums are added in block order.
func (p *Pipeline) Synthesize(ctx context.Context, hist *History) (*imagebuf.Image, error) {
	k := hist.Len()
	if k == 0 {
		return nil, errors.New("no visibilities to synthesize")
	}
	start := time.Now()

	baselines := hist.Baselines()
	vis := hist.visibilities
	pixels := p.beam.Len()

	nBlocks := (k + p.blockRows - 1) / p.blockRows
	partial := make([][]complex128, nBlocks)

	workers := p.cfg.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for b := 0; b < nBlocks; b++ {
		lo := b * p.blockRows
		hi := min(lo+p.blockRows, k)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			phases, err := p.beam.Phases(baselines.Slice(lo, hi, 0, 2))
			if err != nil {
				return fmt.Errorf("baseline block %d: %w", b, err)
			}
			acc := make([]complex128, pixels)
			cblas128.Gemv(blas.Trans, 1, phases.RawCMatrix(),
				cblas128.Vector{N: hi - lo, Inc: 1, Data: vis[lo:hi]},
				0, cblas128.Vector{N: pixels, Inc: 1, Data: acc})
			partial[b] = acc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	dirty := make([]float64, pixels)
	sum := make([]complex128, pixels)
	for _, acc := range partial {
		for i, v := range acc {
			sum[i] += v
		}
	}
	for i, v := range sum {
		dirty[i] = cmplx.Abs(v)
	}

	elapsed := time.Since(start)
	metrics.RecordSynthesis(elapsed, k, nBlocks)
	p.logger.WithFields(logrus.Fields{
		"samples": k,
		"pixels":  pixels,
		"blocks":  nBlocks,
		"workers": workers,
		"elapsed": elapsed.String(),
	}).Info("image synthesis complete")

	return imagebuf.FromVector(dirty)
}
