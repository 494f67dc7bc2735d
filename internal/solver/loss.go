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

// huber applies the generalized Huber transform to a single margin value q.
func huber(q, kappa float64) float64 {
	switch {
	case q <= -kappa:
		return 1 - q - (kappa+1)/2
	case q <= 1:
		return (1 - q) * (1 - q) / (2*kappa + 2)
	default:
		return 0
	}
}

// computeZV computes Z*V (n x (K-1)) into the solver's reused ZV buffer.
func (s *Solver) computeZV(d *types.Dataset, m *types.Model) *mat.Dense {
	n, _ := d.Z.Dims()
	_, km1 := m.V.Dims()
	if s.zv == nil || !dimsMatch(s.zv, n, km1) {
		s.zv = mat.NewDense(n, km1, nil)
	}
	s.zv.Mul(d.Z, m.V)
	return s.zv
}

func dimsMatch(m *mat.Dense, r, c int) bool {
	rr, cc := m.Dims()
	return rr == r && cc == c
}

// computeQH fills m.Q and m.H from the current V: Q = (ZV) ⊙ UU summed
// over the middle axis, followed by the Huber transform of each entry.
func (s *Solver) computeQH(d *types.Dataset, m *types.Model) {
	zv := s.computeZV(d, m)
	n, k := m.R.Dims()
	_, km1 := m.V.Dims()

	if m.Q == nil || !dimsMatch(m.Q, n, k) {
		m.Q = mat.NewDense(n, k, nil)
	}
	if m.H == nil || !dimsMatch(m.H, n, k) {
		m.H = mat.NewDense(n, k, nil)
	}

	for i := 0; i < n; i++ {
		for kk := 0; kk < k; kk++ {
			sum := 0.0
			for j := 0; j < km1; j++ {
				sum += zv.At(i, j) * m.UU.At(i, j, kk)
			}
			m.Q.Set(i, kk, sum)
			m.H.Set(i, kk, huber(sum, m.Kappa))
		}
	}
}

// Loss computes L(V): the mean per-instance Huber-hinge aggregate plus
// the bias-excluding L2 regularization term.
func Loss(m *types.Model, d *types.Dataset, s *Solver) float64 {
	s.computeQH(d, m)

	n, k := m.H.Dims()
	total := 0.0
	for i := 0; i < n; i++ {
		sum := 0.0
		for j := 0; j < k; j++ {
			if m.R.At(i, j) != 0 {
				sum += math.Pow(m.H.At(i, j), m.P)
			}
		}
		total += m.Rho[i] * math.Pow(sum, 1/m.P)
	}
	total /= float64(n)

	reg := 0.0
	rows, cols := m.V.Dims()
	for i := 1; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := m.V.At(i, j)
			reg += v * v
		}
	}
	total += m.Lambda * reg

	m.Loss = total
	return total
}
