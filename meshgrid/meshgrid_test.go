package meshgrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeshgridOrientation(t *testing.T) {
	a := []int{1, 2}
	b := []int{10, 20, 30}

	m1, m2 := Meshgrid(a, b)
	require.Len(t, m1, 2)
	require.Len(t, m2, 2)

	for i := range a {
		require.Len(t, m1[i], 3)
		require.Len(t, m2[i], 3)
		for j := range b {
			assert.Equal(t, a[i], m1[i][j], "m1[%d][%d]", i, j)
			assert.Equal(t, b[j], m2[i][j], "m2[%d][%d]", i, j)
		}
	}
}

func TestPairsOrderMatchesIndex(t *testing.T) {
	k := 0
	for i, j := range Pairs(3, 4) {
		assert.Equal(t, k, Index(i, j, 4))
		k++
	}
	assert.Equal(t, 12, k)
}

func TestPairsStopsEarly(t *testing.T) {
	n := 0
	for range Pairs(5, 5) {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestFlattenRowMajor(t *testing.T) {
	m1, m2 := Meshgrid([]int{1, 2}, []int{10, 20, 30})
	assert.Equal(t, []int{1, 1, 1, 2, 2, 2}, Flatten(m1))
	assert.Equal(t, []int{10, 20, 30, 10, 20, 30}, Flatten(m2))
	assert.Nil(t, Flatten[int](nil))
}

func TestMeshgridEmpty(t *testing.T) {
	m1, m2 := Meshgrid([]float64{}, []float64{1})
	assert.Empty(t, m1)
	assert.Empty(t, m2)
}
