// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

// Package simplex builds the regular K-simplex vertex matrix U and the
// per-instance structures (UU, R) derived from a dataset's labels that the
// majorization solver needs before its first loss evaluation.
package simplex

import (
	"fmt"
	"math"

	"github.com/bitjungle/gensvm/internal/linalg"
	"github.com/bitjungle/gensvm/pkg/types"
	"gonum.org/v1/gonum/mat"
)

// Simplex constructs the K x (K-1) matrix U whose rows are the K vertices
// of a regular (K-1)-simplex with unit edge length.
func Simplex(k int) *mat.Dense {
	if k < 2 {
		panic(fmt.Sprintf("simplex: K must be >= 2, got %d", k))
	}
	u := mat.NewDense(k, k-1, nil)
	for j := 0; j < k-1; j++ {
		off := -1.0 / math.Sqrt(2*float64(j+1)*float64(j+2))
		on := math.Sqrt(float64(j+1) / (2 * float64(j+2)))
		for i := 0; i < k; i++ {
			switch {
			case i <= j:
				u.Set(i, j, off)
			case i == j+1:
				u.Set(i, j, on)
			default:
				u.Set(i, j, 0)
			}
		}
	}
	return u
}

// Diff builds UU, the n x (K-1) x K instance-vertex-difference tensor:
// UU[i][j][k] = U[y[i]-1][j] - U[k][j].
func Diff(u *mat.Dense, y []int, k int) *linalg.Tensor3 {
	n := len(y)
	km1 := k - 1
	uu := linalg.NewTensor3(n, km1, k)
	for i := 0; i < n; i++ {
		classRow := y[i] - 1
		for j := 0; j < km1; j++ {
			uij := u.At(classRow, j)
			for kk := 0; kk < k; kk++ {
				uu.Set(i, j, kk, uij-u.At(kk, j))
			}
		}
	}
	return uu
}

// CategoryMatrix builds R, the n x K category-indicator matrix:
// R[i][j] = 1 if y[i] != j+1, else 0.
func CategoryMatrix(y []int, k int) *mat.Dense {
	n := len(y)
	r := mat.NewDense(n, k, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < k; j++ {
			if y[i] != j+1 {
				r.Set(i, j, 1)
			}
		}
	}
	return r
}

// Prepare runs Simplex, Diff, and CategoryMatrix for a dataset/model pair
// and stores the results on the model, needed before the first loss
// evaluation and whenever K, n, or y changes.
func Prepare(m *types.Model, d *types.Dataset) error {
	if d.K < 2 {
		return types.NewDimensionError("dataset must have at least 2 classes", 2, d.K)
	}
	m.U = Simplex(d.K)
	m.UU = Diff(m.U, d.Y, d.K)
	m.R = CategoryMatrix(d.Y, d.K)
	return nil
}
