// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

// Package solver implements the GenSVM majorization-minimization solver:
// the loss function, the per-iteration quadratic majorant, and the
// seeded/iterating/converged state machine.
package solver

import (
	"context"
	"math"

	"github.com/bitjungle/gensvm/internal/alloc"
	"github.com/bitjungle/gensvm/internal/linalg"
	"github.com/bitjungle/gensvm/internal/simplex"
	"github.com/bitjungle/gensvm/pkg/types"
	"gonum.org/v1/gonum/mat"
)

// Solver owns the working buffers (ZV, ZᵀAZ and its dense copy, ZᵀAZV,
// ZᵀB, the RHS buffer) reused across a single Fit call's iterations, a
// single working-copy pattern generalized from one deflation buffer to the
// five majorant buffers a GenSVM iteration needs. The majorant's A and B
// are rebuilt on every Step. A Solver is moved between Model/Dataset pairs,
// never shared concurrently.
type Solver struct {
	zv       *mat.Dense
	zaz      *mat.SymDense
	zazDense *mat.Dense
	zazV     *mat.Dense
	zB       *mat.Dense
	rhs      *mat.Dense
}

// New returns a Solver with no buffers yet allocated; they are sized on
// first use against whatever Dataset/Model pair is fit.
func New() *Solver {
	return &Solver{}
}

// InitRho initializes the instance-weight vector rho: unit weights give
// rho == 1 everywhere; group weights give rho[i] = n / (K * |class(y[i])|),
// so rho always sums to n.
func InitRho(m *types.Model, d *types.Dataset) {
	n := d.N
	rho := make([]float64, n)
	switch m.WeightIdx {
	case types.WeightGroup:
		counts := make([]int, d.K+1)
		for _, y := range d.Y {
			counts[y]++
		}
		for i, y := range d.Y {
			rho[i] = float64(n) / (float64(d.K) * float64(counts[y]))
		}
	default:
		for i := range rho {
			rho[i] = 1
		}
	}
	m.Rho = rho
}

// Step performs one majorization update: build the quadratic majorant at
// the current V (using the Q/H already computed by the preceding Loss
// call), solve the SPD normal equations, and apply step doubling once past
// iteration 50.
func (s *Solver) Step(m *types.Model, d *types.Dataset) error {
	aVec, bMat := s.computeMajorant(m, d)

	n, p := d.Z.Dims()
	_, km1 := m.V.Dims()

	if err := s.sizeBuffers(p, km1); err != nil {
		return err
	}

	s.zaz.Zero()
	for i := 0; i < n; i++ {
		if aVec[i] == 0 {
			continue
		}
		z := mat.Row(nil, i, d.Z)
		linalg.SymRankOneAccumulate(s.zaz, aVec[i], z)
	}

	s.zazDense.Copy(s.zaz)
	s.zazV.Mul(s.zazDense, m.V)
	s.zB.Mul(d.Z.T(), bMat)
	s.rhs.Add(s.zazV, s.zB)

	// Lambda regularizes every row except the bias row (row 0).
	for j := 1; j < p; j++ {
		s.zaz.SetSym(j, j, s.zaz.At(j, j)+m.Lambda)
	}

	vNew, ok, err := linalg.SolveSPD(s.zaz, s.rhs)
	if err != nil {
		return types.NewNumericalSoftError("majorant solve failed", err)
	}

	oldV := m.V
	if m.Iteration > 50 {
		doubled := mat.NewDense(p, km1, nil)
		doubled.Scale(2, vNew)
		doubled.Sub(doubled, oldV)
		vNew = doubled
	}

	m.Vbar = oldV
	m.V = vNew

	if !ok {
		// Non-fatal: the Cholesky solve fell back to LU and the step is
		// taken anyway with whatever came back.
		return types.NewNumericalSoftError("majorant Cholesky failed, used LU fallback", nil)
	}
	return nil
}

// sizeBuffers allocates the majorant working buffers on first use (or when
// a Solver is moved to a differently-shaped Model/Dataset pair); iterations
// within one Fit call reuse them.
func (s *Solver) sizeBuffers(p, km1 int) error {
	if s.zaz != nil {
		if zr, _ := s.zaz.Dims(); zr == p && dimsMatch(s.rhs, p, km1) {
			return nil
		}
	}
	if err := alloc.GuardAlloc(p, p, "solver.Step: ZtAZ"); err != nil {
		return err
	}
	s.zaz = mat.NewSymDense(p, nil)
	s.zazDense = mat.NewDense(p, p, nil)
	s.zazV = mat.NewDense(p, km1, nil)
	s.zB = mat.NewDense(p, km1, nil)
	s.rhs = mat.NewDense(p, km1, nil)
	return nil
}

// Fit runs the majorization loop to convergence or MAX_ITER. m.V must
// already be seeded (randomly or via warm-start) and m.Rho initialized
// via InitRho before calling Fit. ctx is polled between iterations for
// cooperative cancellation.
func (s *Solver) Fit(ctx context.Context, m *types.Model, d *types.Dataset) error {
	if m.U == nil || m.UU == nil || m.R == nil {
		if err := simplex.Prepare(m, d); err != nil {
			return err
		}
	}
	if err := m.UU.CheckDims(d.N, d.K-1, d.K); err != nil {
		return types.NewValidationError("model working state does not match this dataset", err)
	}
	if m.V == nil {
		return types.NewValidationError("model V must be seeded before Fit", nil)
	}
	_, zCols := d.Z.Dims()
	vRows, _ := m.V.Dims()
	if zCols != vRows {
		return types.NewDimensionError("model V is not shaped for this dataset's Z", zCols, vRows)
	}
	if m.Rho == nil {
		InitRho(m, d)
	}

	prevLoss := Loss(m, d, s)
	m.State = types.StateIterating

	var softErr error
	for {
		select {
		case <-ctx.Done():
			return types.NewCancellationError("fit cancelled")
		default:
		}

		if err := s.Step(m, d); err != nil {
			if gerr, ok := err.(*types.GenSVMError); ok && !gerr.Fatal {
				softErr = gerr
			} else {
				return err
			}
		}
		m.Iteration++

		loss := Loss(m, d, s)
		rel := (prevLoss - loss) / loss
		// A negative rel means the loss increased (a failed solve or a
		// numerically degenerate step); that is not convergence.
		if !math.IsNaN(rel) && rel >= 0 && rel <= m.Epsilon {
			m.State = types.StateConverged
			m.TrainingError = rel
			return softErr
		}
		if m.Iteration >= types.MaxIterations {
			m.State = types.StateIterationCapped
			m.TrainingError = rel
			return types.NewConvergenceError("reached the iteration cap before converging", m.Iteration)
		}
		prevLoss = loss
	}
}
