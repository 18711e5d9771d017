// Package meshgrid materializes every ordered (i, j) pairing of two sequences.
//
// The pairing order produced here (i outer, j inner, row-major) is the order
// shared by baselines and cross-correlations. Anything that flattens a pair
// table must go through Index or Pairs so the two stay aligned.
package meshgrid

import "iter"

// Meshgrid returns two len(a) x len(b) matrices such that m1[i][j] = a[i]
// and m2[i][j] = b[j].
func Meshgrid[T any](a, b []T) (m1, m2 [][]T) {
	rows := len(a)
	cols := len(b)
	m1 = make([][]T, rows)
	m2 = make([][]T, rows)
	for i, j := range Pairs(rows, cols) {
		if j == 0 {
			m1[i] = make([]T, cols)
			m2[i] = make([]T, cols)
		}
		m1[i][j] = a[i]
		m2[i][j] = b[j]
	}
	return m1, m2
}

// Pairs yields every (i, j) with 0 <= i < rows and 0 <= j < cols,
// i outer and j inner.
func Pairs(rows, cols int) iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				if !yield(i, j) {
					return
				}
			}
		}
	}
}

// Index is the row-major flat index of pair (i, j) in a table with cols columns.
func Index(i, j, cols int) int {
	return i*cols + j
}

// Flatten concatenates the rows of m in row-major order.
func Flatten[T any](m [][]T) []T {
	if len(m) == 0 {
		return nil
	}
	out := make([]T, 0, len(m)*len(m[0]))
	for _, row := range m {
		out = append(out, row...)
	}
	return out
}
