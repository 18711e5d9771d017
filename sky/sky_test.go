package sky

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStarfield(t *testing.T) {
	img, err := Starfield(DefaultStars, 32, rand.New(rand.NewSource(11)))
	require.NoError(t, err)
	assert.Equal(t, 32, img.Size())

	lit := 0
	for _, v := range img.ToVector() {
		switch v {
		case 0:
		case 1:
			lit++
		default:
			t.Fatalf("unexpected intensity %v", v)
		}
	}
	assert.GreaterOrEqual(t, lit, 1)
	assert.LessOrEqual(t, lit, DefaultStars)
}

func TestStarfieldRejectsEmpty(t *testing.T) {
	_, err := Starfield(5, 0, rand.New(rand.NewSource(1)))
	assert.Error(t, err)
}

func TestFromSourceFallsBack(t *testing.T) {
	a, known, err := FromSource(SourceStars, 5, 16, rand.New(rand.NewSource(4)))
	require.NoError(t, err)
	assert.True(t, known)

	b, known, err := FromSource("galaxy", 5, 16, rand.New(rand.NewSource(4)))
	require.NoError(t, err)
	assert.False(t, known)
	assert.Equal(t, a.ToVector(), b.ToVector())
}

func TestPointSource(t *testing.T) {
	img, err := PointSource(8, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, 1.0, img.At(2, 5))

	_, err = PointSource(8, 8, 0)
	assert.Error(t, err)
}
