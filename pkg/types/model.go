// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package types

import (
	"github.com/bitjungle/gensvm/internal/linalg"
	"gonum.org/v1/gonum/mat"
)

// SolverState is the four-state machine governing a Model's optimization
// lifecycle.
type SolverState int

const (
	// StateSeeded is the initial state: V holds its starting value (random
	// or warm-started) but no loss has been computed yet.
	StateSeeded SolverState = iota
	// StateIterating is entered on the first loss evaluation.
	StateIterating
	// StateConverged is entered when the relative loss decrease drops to
	// or below Epsilon.
	StateConverged
	// StateIterationCapped is entered when the iteration count reaches
	// MaxIterations without converging.
	StateIterationCapped
)

// String renders the state name for diagnostics.
func (s SolverState) String() string {
	switch s {
	case StateSeeded:
		return "seeded"
	case StateIterating:
		return "iterating"
	case StateConverged:
		return "converged"
	case StateIterationCapped:
		return "iteration_capped"
	default:
		return "unknown"
	}
}

// WeightScheme selects how instance weights rho are initialized.
type WeightScheme int

const (
	// WeightUnit gives every instance weight 1 (rho summing to n).
	WeightUnit WeightScheme = 1
	// WeightGroup rebalances by class size: rho[i] = n / (K * |class(y[i])|).
	WeightGroup WeightScheme = 2
)

// MaxIterations is the hard iteration cap (MAX_ITER).
const MaxIterations = 1_000_000

// Model is the fitted GenSVM object: its scalar hyperparameters, the
// primary optimization variable V, and the solver's derived working state,
// all sized from the dataset it is fit against.
type Model struct {
	// Scalar hyperparameters.
	P         float64 // loss exponent, 1 <= P <= 2
	Lambda    float64 // regularization, > 0
	Kappa     float64 // Huber smoothness, > -1
	Epsilon   float64 // stopping tolerance, > 0
	WeightIdx WeightScheme
	Kernel    KernelSpec

	// V is the (m+1) x (K-1) augmented weight matrix, the only primary
	// optimization variable. Vbar holds V from the previous iterate: Step
	// sets it to the pre-update V, the point step doubling reflects from.
	V, Vbar *mat.Dense

	// Derived/working state, sized from n, m, K.
	U   *mat.Dense      // K x (K-1) simplex vertices
	UU  *linalg.Tensor3 // n x (K-1) x K vertex-difference tensor
	Q   *mat.Dense      // n x K errors
	H   *mat.Dense      // n x K Huber errors
	R   *mat.Dense      // n x K category indicators
	Rho []float64       // length n instance weights

	TrainingError float64
	State         SolverState
	Iteration     int
	Loss          float64
}

// NewModel returns a zero-valued Model with the given hyperparameters; its
// working state is allocated by internal/solver once a Dataset is known.
func NewModel(p, lambda, kappa, epsilon float64, weightIdx WeightScheme, kernel KernelSpec) *Model {
	return &Model{
		P:         p,
		Lambda:    lambda,
		Kappa:     kappa,
		Epsilon:   epsilon,
		WeightIdx: weightIdx,
		Kernel:    kernel,
		State:     StateSeeded,
	}
}

// WT returns the bias row t = V[0] and the weight block W = V[1:], the
// terminal-state decomposition of a converged V.
func (m *Model) WT() (t []float64, w *mat.Dense) {
	rows, cols := m.V.Dims()
	t = make([]float64, cols)
	for j := 0; j < cols; j++ {
		t[j] = m.V.At(0, j)
	}
	w = mat.DenseCopyOf(m.V.Slice(1, rows, 0, cols))
	return t, w
}
