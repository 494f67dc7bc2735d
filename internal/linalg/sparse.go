// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package linalg

import "gonum.org/v1/gonum/mat"

// SparseMatrix is a minimal coordinate-list (COO) sparse matrix: one entry
// per strictly non-zero element, used for the dense<->sparse round-trip
// gonum's dense-only subset here doesn't otherwise provide.
type SparseMatrix struct {
	Rows, Cols int
	RowIdx     []int
	ColIdx     []int
	Values     []float64
}

// ToSparse converts a dense matrix to COO form, keeping only strictly
// non-zero entries.
func ToSparse(d *mat.Dense) *SparseMatrix {
	rows, cols := d.Dims()
	s := &SparseMatrix{Rows: rows, Cols: cols}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := d.At(i, j)
			if v != 0 {
				s.RowIdx = append(s.RowIdx, i)
				s.ColIdx = append(s.ColIdx, j)
				s.Values = append(s.Values, v)
			}
		}
	}
	return s
}

// FromSparse reconstructs the dense matrix a SparseMatrix represents.
func FromSparse(s *SparseMatrix) *mat.Dense {
	d := mat.NewDense(s.Rows, s.Cols, nil)
	for k, v := range s.Values {
		d.Set(s.RowIdx[k], s.ColIdx[k], v)
	}
	return d
}

// CountNNZ returns the number of strictly non-zero entries in a dense
// matrix, matching the definition SparseMatrix itself uses.
func CountNNZ(d *mat.Dense) int {
	rows, cols := d.Dims()
	count := 0
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if d.At(i, j) != 0 {
				count++
			}
		}
	}
	return count
}
