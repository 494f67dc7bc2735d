// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package linalg

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// SolveSPD solves A*X = B for the symmetric positive-(semi)definite A via
// Cholesky (LAPACK POSV). If Cholesky fails because A is not PD, it falls
// back to a general LU solve and reports ok=false so the caller can record
// a non-fatal Numerical-soft error and continue with whatever came back.
//
// gonum's lapack64 wrapper does not expose a symmetric-indefinite solve
// (LAPACK dsysv); mat.LU's general solve is the closest equivalent it
// offers, so it stands in as the fallback here.
func SolveSPD(a *mat.SymDense, b mat.Matrix) (x *mat.Dense, ok bool, err error) {
	var chol mat.Cholesky
	n, _ := a.Dims()
	x = mat.NewDense(n, colsOf(b), nil)
	if chol.Factorize(a) {
		if solveErr := chol.SolveTo(x, b); solveErr == nil {
			return x, true, nil
		}
	}

	dense := mat.NewDense(n, n, nil)
	dense.Copy(a)
	var lu mat.LU
	lu.Factorize(dense)
	if err := lu.SolveTo(x, false, b); err != nil {
		return nil, false, fmt.Errorf("SPD and LU solve both failed: %w", err)
	}
	return x, false, nil
}

func colsOf(m mat.Matrix) int {
	_, c := m.Dims()
	return c
}

// SymRankOneAccumulate builds the upper triangle of dst via a sequence of
// rank-1 updates dst += sum_i a_i * z_i * z_i^T, the construction used for
// H~ = Z^T A Z. z must have length equal to dst's dimension.
func SymRankOneAccumulate(dst *mat.SymDense, a float64, z []float64) {
	if a == 0 {
		return
	}
	v := mat.NewVecDense(len(z), z)
	dst.SymRankOne(dst, a, v)
}
