// Package imagebuf converts between flat pixel vectors and square intensity
// grids and writes them out as grayscale rasters.
package imagebuf

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"gonum.org/v1/gonum/floats"
)

var (
	ErrNotSquare      = errors.New("pixel count is not a perfect square")
	ErrEmpty          = errors.New("image has no pixels")
	ErrUndefinedOrder = errors.New("image contains NaN so min/max are undefined")
	ErrUnknownFormat  = errors.New("unsupported image file extension")
)

// Image is a square grid of intensities indexed [row][col].
type Image struct {
	pixels [][]float64
}

// New returns a size x size image of zeros.
func New(size int) *Image {
	m := make([][]float64, size)
	for i := range m {
		m[i] = make([]float64, size)
	}
	return &Image{pixels: m}
}

// FromMatrix copies a square matrix into a new image.
func FromMatrix(m [][]float64) (*Image, error) {
	n := len(m)
	if n == 0 {
		return nil, ErrEmpty
	}
	img := New(n)
	for y := range m {
		if len(m[y]) != n {
			return nil, fmt.Errorf("row %d has %d values, want %d: %w", y, len(m[y]), n, ErrNotSquare)
		}
		copy(img.pixels[y], m[y])
	}
	return img, nil
}

// FromVector reshapes a row-major pixel vector into a square image.
func FromVector(v []float64) (*Image, error) {
	if len(v) == 0 {
		return nil, ErrEmpty
	}
	n := SideLength(len(v))
	if n < 0 {
		return nil, fmt.Errorf("%d pixels: %w", len(v), ErrNotSquare)
	}

	img := New(n)
	k := 0
	for i := 0; i < n; i++ {
		copy(img.pixels[i], v[k:k+n])
		k += n
	}
	return img, nil
}

// SideLength returns the side of a square holding count pixels, or -1 when
// count is not a perfect square.
func SideLength(count int) int {
	n := int(math.Round(math.Sqrt(float64(count))))
	if n*n != count {
		return -1
	}
	return n
}

// Size is the side length of the image in pixels.
func (img *Image) Size() int { return len(img.pixels) }

// At returns the intensity at (row, col).
func (img *Image) At(row, col int) float64 { return img.pixels[row][col] }

// Set stores an intensity at (row, col).
func (img *Image) Set(row, col int, v float64) { img.pixels[row][col] = v }

// ToVector flattens the image row-major. It is the exact inverse of FromVector.
func (img *Image) ToVector() []float64 {
	n := img.Size()
	out := make([]float64, 0, n*n)
	for _, row := range img.pixels {
		out = append(out, row...)
	}
	return out
}

// Normalize returns (data - min) / max.
//
// The divisor is the raw maximum rather than the range, so the result only
// lies in [0,1] when min >= 0. Dirty images are magnitudes and satisfy that.
func (img *Image) Normalize() (*Image, error) {
	v := img.ToVector()
	if len(v) == 0 {
		return nil, ErrEmpty
	}
	if floats.HasNaN(v) {
		return nil, ErrUndefinedOrder
	}
	lo := floats.Min(v)
	hi := floats.Max(v)
	for i := range v {
		v[i] = (v[i] - lo) / hi
	}
	return FromVector(v)
}

// Gray normalizes the image and quantizes it to 8 bits: value*255
// truncated toward zero, saturating at 0 and 255 (NaN becomes 0).
func (img *Image) Gray() (*image.Gray, error) {
	norm, err := img.Normalize()
	if err != nil {
		return nil, err
	}
	n := norm.Size()
	out := image.NewGray(image.Rect(0, 0, n, n))
	for y := 0; y < n; y++ {
		row := y * out.Stride
		for x := 0; x < n; x++ {
			out.Pix[row+x] = toByte(norm.pixels[y][x] * 255.0)
		}
	}
	return out, nil
}

func toByte(v float64) uint8 {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}

// Gray16 maps raw intensities to 16 bits with a fixed physical scale:
// Y16 = round(v * scale), clamped to [0, 65535]. Non-finite values are
// written as 0. Intensity is recovered as Y16 / scale.
func (img *Image) Gray16(scale float64) (*image.Gray16, error) {
	n := img.Size()
	if n == 0 {
		return nil, ErrEmpty
	}
	if scale <= 0 {
		return nil, errors.New("scale must be > 0")
	}

	out := image.NewGray16(image.Rect(0, 0, n, n))
	for y := 0; y < n; y++ {
		row := y * out.Stride
		for x := 0; x < n; x++ {
			i := row + 2*x
			v := img.pixels[y][x]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				out.Pix[i], out.Pix[i+1] = 0, 0
				continue
			}
			u := math.Round(v * scale)
			if u < 0 {
				u = 0
			} else if u > 65535 {
				u = 65535
			}
			y16 := uint16(u)
			// Gray16 Pix is big-endian per pixel
			out.Pix[i] = uint8(y16 >> 8)
			out.Pix[i+1] = uint8(y16)
		}
	}
	return out, nil
}

// Preview renders the 8-bit image enlarged to size x size with
// nearest-neighbour sampling so individual pixels stay visible.
func (img *Image) Preview(size int) (image.Image, error) {
	g, err := img.Gray()
	if err != nil {
		return nil, err
	}
	if size <= 0 || size == img.Size() {
		return g, nil
	}
	return resize.Resize(uint(size), uint(size), g, resize.NearestNeighbor), nil
}

// Supported reports whether Save can encode files with the extension of path.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff":
		return true
	}
	return false
}

// Encode writes m in the format implied by the extension of path.
func Encode(w io.Writer, path string, m image.Image) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return png.Encode(w, m)
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, m, &jpeg.Options{Quality: 95})
	case ".bmp":
		return bmp.Encode(w, m)
	case ".tif", ".tiff":
		return tiff.Encode(w, m, nil)
	}
	return fmt.Errorf("%q: %w", path, ErrUnknownFormat)
}

// Save normalizes the image and writes it as an 8-bit grayscale raster.
func (img *Image) Save(path string) error {
	if !Supported(path) {
		return fmt.Errorf("%q: %w", path, ErrUnknownFormat)
	}
	g, err := img.Gray()
	if err != nil {
		return fmt.Errorf("quantizing %q: %w", path, err)
	}
	return WriteImage(path, g)
}

// SaveGray16 writes the raw intensities as a 16-bit PNG (see Gray16).
func (img *Image) SaveGray16(path string, scale float64) error {
	g, err := img.Gray16(scale)
	if err != nil {
		return err
	}
	return WriteImage(path, g)
}

// WriteImage creates path and encodes m into it by extension.
func WriteImage(path string, m image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return Encode(f, path, m)
}
