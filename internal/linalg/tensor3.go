// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

// Package linalg collects the dense linear-algebra helpers the solver and
// kernel engine share: a flat-slice-backed 3-tensor for the per-instance
// vertex-difference array UU, a Cholesky-with-LU-fallback SPD solve, and a
// dense/sparse matrix conversion helper.
package linalg

import "fmt"

// Tensor3 is an n x rows x cols dense 3-tensor backed by one flat slice,
// generalizing the row-major allocator idiom the rest of this module uses
// for 2-D matrices to a third axis. GenSVM's only 3-tensor is UU (n x
// (K-1) x K); gonum's mat package has no 3-D type, so this is a minimal,
// purpose-built one.
type Tensor3 struct {
	n, rows, cols int
	data          []float64
}

// NewTensor3 allocates a zeroed n x rows x cols tensor.
func NewTensor3(n, rows, cols int) *Tensor3 {
	return &Tensor3{n: n, rows: rows, cols: cols, data: make([]float64, n*rows*cols)}
}

// Dims returns the tensor's three dimensions.
func (t *Tensor3) Dims() (int, int, int) {
	return t.n, t.rows, t.cols
}

func (t *Tensor3) index(i, j, k int) int {
	return (i*t.rows+j)*t.cols + k
}

// At returns the element at (i, j, k).
func (t *Tensor3) At(i, j, k int) float64 {
	return t.data[t.index(i, j, k)]
}

// Set assigns the element at (i, j, k).
func (t *Tensor3) Set(i, j, k int, v float64) {
	t.data[t.index(i, j, k)] = v
}

// CheckDims returns an error if the tensor's dimensions don't match the
// expected (n, rows, cols), used to guard UU against a stale K or n.
func (t *Tensor3) CheckDims(n, rows, cols int) error {
	if t.n != n || t.rows != rows || t.cols != cols {
		return fmt.Errorf("tensor3 dimension mismatch: have (%d,%d,%d), want (%d,%d,%d)",
			t.n, t.rows, t.cols, n, rows, cols)
	}
	return nil
}
