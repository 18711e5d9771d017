package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestTickStep(t *testing.T) {
	tests := []struct {
		extent, want float64
	}{
		{5, 1},
		{10, 2},
		{25, 5},
		{40, 10},
		{1000, 200},
		{0.5, 0.1},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, tickStep(tt.extent), 1e-12, "extent %g", tt.extent)
	}
}

func TestStepTicks(t *testing.T) {
	ticks := StepTicks{Step: 2, Format: "%.0f"}.Ticks(-5, 5)
	require.Len(t, ticks, 5)
	assert.Equal(t, -4.0, ticks[0].Value)
	assert.Equal(t, "4", ticks[4].Label)
}

func TestMakeUVCoverageImage(t *testing.T) {
	baselines := mat.NewDense(4, 2, []float64{
		0, 0,
		95.2, -12.5,
		-95.2, 12.5,
		0, 0,
	})
	img, err := makeUVCoverageImage(baselines, "UV coverage", 400, 300)
	require.NoError(t, err)
	assert.InDelta(t, 400, img.Bounds().Dx(), 1)
	assert.InDelta(t, 300, img.Bounds().Dy(), 1)
}

func TestMakeUVCoverageImageSingleDish(t *testing.T) {
	img, err := makeUVCoverageImage(mat.NewDense(2, 2, nil), "UV coverage", 200, 200)
	require.NoError(t, err)
	assert.False(t, img.Bounds().Empty())
}

func TestMakeUVCoverageImageErrors(t *testing.T) {
	_, err := makeUVCoverageImage(nil, "", 200, 200)
	assert.Error(t, err)

	_, err = makeUVCoverageImage(mat.NewDense(2, 3, nil), "", 200, 200)
	assert.Error(t, err)
}
