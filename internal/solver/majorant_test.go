// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package solver

import (
	"testing"

	"github.com/bitjungle/gensvm/internal/simplex"
	"github.com/bitjungle/gensvm/pkg/testutil"
	"github.com/bitjungle/gensvm/pkg/types"
	"gonum.org/v1/gonum/mat"
)

// TestGeneralMajorantReducesToHingeAtPOne checks that the general (p != 2)
// schedule degenerates exactly to the linear-hinge majorant at p=1, in all
// three q regions: at p=1 the loss contribution is the plain Huber hinge,
// so the two schedules must coincide.
func TestGeneralMajorantReducesToHingeAtPOne(t *testing.T) {
	kappa := 0.1
	qs := []float64{-2.0, -0.5, -kappa, 0.0, 0.3, 0.99, 1.0, 1.5, 3.0}

	for _, q := range qs {
		wantA, wantB := linearMajorant(q, kappa)
		gotA, gotB := generalMajorant(q, kappa, 1.0)
		testutil.AssertAlmostEqual(t, wantA, gotA, testutil.DefaultTolerance, "curvature a")
		testutil.AssertAlmostEqual(t, wantB, gotB, testutil.DefaultTolerance, "coefficient b")
	}
}

// TestGeneralMajorantMidRegionConstants pins the between-breakpoints
// curvature 0.25*p*(2p-1)*((kappa+1)/2)^(p-2) and the matching
// p*(1-q)^(2p-1)/(2kappa+2)^p coefficient for a couple of (p, kappa)
// combinations.
func TestGeneralMajorantMidRegionConstants(t *testing.T) {
	cases := []struct {
		p, kappa, q  float64
		wantA, wantB float64
	}{
		// p=1: a = 0.25/0.55, b = (1-q)/2.2.
		{1.0, 0.1, 0.4, 0.25 / 0.55, 0.6 / 2.2},
		// p=1.5: a = 0.25*1.5*2*(0.55)^(-0.5), b = 1.5*(0.6)^2/(2.2)^1.5.
		{1.5, 0.1, 0.4, 0.75 / 0.7416198487095663, 1.5 * 0.36 / 3.2631273343220917},
	}
	for _, c := range cases {
		a, b := generalMajorant(c.q, c.kappa, c.p)
		testutil.AssertAlmostEqual(t, c.wantA, a, testutil.LooseTolerance, "mid-region a")
		testutil.AssertAlmostEqual(t, c.wantB, b, testutil.LooseTolerance, "mid-region b")
	}
}

// TestLossIsMonotoneNonincreasingForFractionalP repeats the monotone-loss
// invariant on the general (p != 2) majorant path, which only a
// non-integer p exercises.
func TestLossIsMonotoneNonincreasingForFractionalP(t *testing.T) {
	d := testutil.LinearlySeparableDataset(3, 15, 4, 19)
	m := types.NewModel(1.5, 0.5, 0.1, 1e-9, types.WeightUnit, types.LinearKernel{})
	if err := simplex.Prepare(m, d); err != nil {
		t.Fatalf("simplex.Prepare: %v", err)
	}
	InitRho(m, d)
	rows, cols := d.M+1, d.K-1
	m.V = mat.NewDense(rows, cols, nil)

	s := New()
	prevLoss := Loss(m, d, s)
	for i := 0; i < 25; i++ {
		if err := s.Step(m, d); err != nil {
			if gerr, ok := err.(*types.GenSVMError); !ok || gerr.Fatal {
				t.Fatalf("Step: %v", err)
			}
			break
		}
		loss := Loss(m, d, s)
		if loss > prevLoss+testutil.LooseTolerance {
			t.Fatalf("iteration %d: loss increased from %v to %v", i, prevLoss, loss)
		}
		prevLoss = loss
	}
}
