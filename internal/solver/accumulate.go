// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package solver

import (
	"math"

	"github.com/bitjungle/gensvm/pkg/types"
	"gonum.org/v1/gonum/mat"
)

// computeMajorant builds the per-instance majorant coefficients aVec and B
// (the Solver.Step caller's A and B of H̃ = ZᵀAZ, RHS = ZᵀAZV + ZᵀB). Each
// instance's class (linear regime vs the p-power regime) and ω_i are
// determined from the Q/H already computed by the preceding Loss call.
func (s *Solver) computeMajorant(m *types.Model, d *types.Dataset) (aVec []float64, bMat *mat.Dense) {
	n, k := m.R.Dims()
	_, km1 := m.V.Dims()
	aVec = make([]float64, n)
	bMat = mat.NewDense(n, km1, nil)
	nf := float64(n)

	for i := 0; i < n; i++ {
		// The linear-hinge majorant is tight only while at most one of the
		// instance's Huber errors is non-zero: (Σ H^p R)^(1/p) then equals
		// that single error for every p.
		nonZero := 0
		for j := 0; j < k; j++ {
			if m.R.At(i, j) != 0 && m.H.At(i, j) > 0 {
				nonZero++
			}
		}
		classLinear := nonZero <= 1

		omega := 1.0
		if !classLinear {
			sumHp := 0.0
			for j := 0; j < k; j++ {
				if m.R.At(i, j) != 0 {
					sumHp += math.Pow(m.H.At(i, j), m.P)
				}
			}
			if sumHp > 0 {
				omega = (1 / m.P) * math.Pow(sumHp, 1/m.P-1)
			} else {
				omega = 0
			}
		}

		scale := m.Rho[i] / nf
		var aSum float64
		switch {
		case classLinear:
			for j := 0; j < k; j++ {
				if m.R.At(i, j) == 0 {
					continue
				}
				a, b := linearMajorant(m.Q.At(i, j), m.Kappa)
				aSum += a
				for coord := 0; coord < km1; coord++ {
					bMat.Set(i, coord, bMat.At(i, coord)+scale*b*m.UU.At(i, coord, j))
				}
			}
		case m.P == 2:
			for j := 0; j < k; j++ {
				if m.R.At(i, j) == 0 {
					continue
				}
				b := quadraticB(m.Q.At(i, j), m.Kappa)
				for coord := 0; coord < km1; coord++ {
					bMat.Set(i, coord, bMat.At(i, coord)+scale*omega*b*m.UU.At(i, coord, j))
				}
			}
			aSum = 1.5 * float64(k-1)
		default:
			for j := 0; j < k; j++ {
				if m.R.At(i, j) == 0 {
					continue
				}
				a, b := generalMajorant(m.Q.At(i, j), m.Kappa, m.P)
				aSum += a
				for coord := 0; coord < km1; coord++ {
					bMat.Set(i, coord, bMat.At(i, coord)+scale*omega*b*m.UU.At(i, coord, j))
				}
			}
		}

		if !classLinear {
			aSum *= omega
		}
		aVec[i] = scale * aSum
	}
	return aVec, bMat
}
