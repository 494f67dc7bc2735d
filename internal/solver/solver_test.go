// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package solver

import (
	"context"
	"math/rand"
	"testing"

	"github.com/bitjungle/gensvm/internal/simplex"
	"github.com/bitjungle/gensvm/pkg/testutil"
	"github.com/bitjungle/gensvm/pkg/types"
	"gonum.org/v1/gonum/mat"
)

func fitSeeded(t *testing.T, d *types.Dataset, m *types.Model) {
	t.Helper()
	if err := simplex.Prepare(m, d); err != nil {
		t.Fatalf("simplex.Prepare: %v", err)
	}
	InitRho(m, d)
	rows, cols := d.M+1, d.K-1
	m.V = mat.NewDense(rows, cols, nil)

	s := New()
	if err := s.Fit(context.Background(), m, d); err != nil {
		if gerr, ok := err.(*types.GenSVMError); !ok || gerr.Fatal {
			t.Fatalf("Fit: %v", err)
		}
	}
}

// TestFitConvergesOnSeparableData checks that a linearly separable,
// well-clustered multiclass problem reaches StateConverged with
// training_error (the relative loss decrease at halt) at or below epsilon,
// per the convergence guarantee a majorization-minimization loss must
// satisfy on an easy instance.
func TestFitConvergesOnSeparableData(t *testing.T) {
	d := testutil.LinearlySeparableDataset(3, 20, 3, 7)
	m := types.NewModel(1.0, 1.0, 0.0, 1e-6, types.WeightUnit, types.LinearKernel{})
	fitSeeded(t, d, m)

	if m.State != types.StateConverged {
		t.Errorf("expected StateConverged, got %s", m.State)
	}
	if m.Iteration == 0 {
		t.Errorf("expected at least one iteration")
	}
	if m.TrainingError > m.Epsilon {
		t.Errorf("expected training_error <= epsilon at convergence, got %v > %v", m.TrainingError, m.Epsilon)
	}
}

// TestLossIsMonotoneNonincreasing checks the majorization-minimization
// invariant that each Step never increases the loss.
func TestLossIsMonotoneNonincreasing(t *testing.T) {
	d := testutil.LinearlySeparableDataset(3, 15, 4, 11)
	m := types.NewModel(1.0, 1.0, 0.1, 1e-9, types.WeightUnit, types.LinearKernel{})
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

// TestWarmStartConvergesFasterThanRandomSeed checks the warm-start
// guarantee: a model seeded from a nearby converged V reaches
// StateConverged in strictly fewer iterations than one seeded from
// scratch on the same data.
func TestWarmStartConvergesFasterThanRandomSeed(t *testing.T) {
	d := testutil.LinearlySeparableDataset(3, 20, 3, 99)

	cold := types.NewModel(1.0, 1.0, 0.0, 1e-8, types.WeightUnit, types.LinearKernel{})
	if err := simplex.Prepare(cold, d); err != nil {
		t.Fatalf("simplex.Prepare: %v", err)
	}
	InitRho(cold, d)
	rows, cols := d.M+1, d.K-1
	cold.V = mat.NewDense(rows, cols, nil)

	s := New()
	if err := s.Fit(context.Background(), cold, d); err != nil {
		if gerr, ok := err.(*types.GenSVMError); !ok || gerr.Fatal {
			t.Fatalf("Fit (cold start): %v", err)
		}
	}
	if cold.State != types.StateConverged {
		t.Fatalf("expected cold-started model to converge, got state %s", cold.State)
	}

	// Fit a fresh random start at the same epsilon, then warm-start an
	// identical model from the converged V above.
	randomStart := types.NewModel(1.0, 1.0, 0.0, 1e-8, types.WeightUnit, types.LinearKernel{})
	if err := simplex.Prepare(randomStart, d); err != nil {
		t.Fatalf("simplex.Prepare: %v", err)
	}
	InitRho(randomStart, d)
	randRng := rand.New(rand.NewSource(1))
	randomStart.V = mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			randomStart.V.Set(i, j, randRng.NormFloat64())
		}
	}
	rs := New()
	if err := rs.Fit(context.Background(), randomStart, d); err != nil {
		if gerr, ok := err.(*types.GenSVMError); !ok || gerr.Fatal {
			t.Fatalf("Fit (random start): %v", err)
		}
	}

	warm := types.NewModel(1.0, 1.0, 0.0, 1e-8, types.WeightUnit, types.LinearKernel{})
	if err := simplex.Prepare(warm, d); err != nil {
		t.Fatalf("simplex.Prepare: %v", err)
	}
	InitRho(warm, d)
	warm.V = mat.DenseCopyOf(cold.V)

	ws := New()
	if err := ws.Fit(context.Background(), warm, d); err != nil {
		if gerr, ok := err.(*types.GenSVMError); !ok || gerr.Fatal {
			t.Fatalf("Fit (warm start): %v", err)
		}
	}
	if warm.State != types.StateConverged {
		t.Fatalf("expected warm-started model to converge, got state %s", warm.State)
	}

	if warm.Iteration >= randomStart.Iteration {
		t.Errorf("expected warm start (%d iterations) to beat a fresh random start (%d iterations)",
			warm.Iteration, randomStart.Iteration)
	}
}

func TestInitRhoGroupWeighting(t *testing.T) {
	d := testutil.LinearlySeparableDataset(2, 10, 2, 3)
	m := types.NewModel(1.0, 1.0, 0.0, 1e-6, types.WeightGroup, types.LinearKernel{})
	InitRho(m, d)

	if len(m.Rho) != d.N {
		t.Fatalf("expected rho length %d, got %d", d.N, len(m.Rho))
	}
	sum := 0.0
	for _, r := range m.Rho {
		sum += r
	}
	testutil.AssertAlmostEqual(t, float64(d.N), sum, testutil.LooseTolerance, "group rho should sum to n")
}
