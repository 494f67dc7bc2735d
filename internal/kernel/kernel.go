// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

// Package kernel builds the Gram matrix for a GenSVM kernel specification
// and reduces it to a full-rank feature map by Cholesky factorization.
package kernel

import (
	"fmt"
	"math"

	"github.com/bitjungle/gensvm/pkg/types"
	"gonum.org/v1/gonum/mat"
)

// eval computes k(x, y) for the given kernel spec, dispatching with a type
// switch so each variant only reads the parameters that belong to it; no
// RBF/sigmoid fall-through is possible by construction.
func eval(spec types.KernelSpec, x, y []float64) float64 {
	switch k := spec.(type) {
	case types.LinearKernel:
		return dot(x, y)
	case types.PolyKernel:
		return math.Pow(k.Gamma*dot(x, y)+k.Coef0, float64(k.Degree))
	case types.RBFKernel:
		return math.Exp(-k.Gamma * sqDist(x, y))
	case types.SigmoidKernel:
		return math.Tanh(k.Gamma*dot(x, y) + k.Coef0)
	default:
		panic(fmt.Sprintf("kernel: unhandled spec type %T", spec))
	}
}

func dot(x, y []float64) float64 {
	sum := 0.0
	for i := range x {
		sum += x[i] * y[i]
	}
	return sum
}

func sqDist(x, y []float64) float64 {
	sum := 0.0
	for i := range x {
		diff := x[i] - y[i]
		sum += diff * diff
	}
	return sum
}

// GramMatrix computes the n x n symmetric kernel matrix K~[i][j] = k(xi, xj)
// over the rows of raw.
func GramMatrix(spec types.KernelSpec, raw *mat.Dense) *mat.Dense {
	n, _ := raw.Dims()
	rows := make([][]float64, n)
	for i := 0; i < n; i++ {
		rows[i] = mat.Row(nil, i, raw)
	}

	g := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := eval(spec, rows[i], rows[j])
			g.Set(i, j, v)
			if i != j {
				g.Set(j, i, v)
			}
		}
	}
	return g
}

// sameSpec reports whether two kernel specs have the same type and
// parameters, used to decide whether MakeKernel's re-invocation is a no-op.
func sameSpec(a, b types.KernelSpec) bool {
	if a == nil || b == nil {
		return types.IsLinear(a) && types.IsLinear(b)
	}
	return a == b
}

// MakeKernel applies model.Kernel's preprocessing to d in place. If
// model.Kernel is linear (or nil), Z stays the raw bias-augmented matrix
// and this is a
// no-op. Otherwise it computes the Gram matrix over d.RawFeatures,
// Cholesky-factors it, and rewrites d.Z to [1 | L]. A same-parameter
// re-invocation (d.Kernel already equal to model.Kernel) is a no-op;
// changing any kernel parameter forces recomputation.
func MakeKernel(model *types.Model, d *types.Dataset) error {
	if types.IsLinear(model.Kernel) {
		return nil
	}
	if sameSpec(d.Kernel, model.Kernel) {
		return nil
	}

	g := GramMatrix(model.Kernel, d.RawFeatures)

	n, _ := g.Dims()
	symG := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			symG.SetSym(i, j, g.At(i, j))
		}
	}

	var chol mat.Cholesky
	if !chol.Factorize(symG) {
		ctx := map[string]interface{}{"kernel": model.Kernel.Name(), "n": n}
		if eig := mostNegativeEigenvalue(symG); eig < 0 {
			ctx["most_negative_eigenvalue"] = eig
		}
		return types.NewNumericalHardError(
			fmt.Sprintf("kernel matrix is not positive definite for kernel %s", model.Kernel.Name()),
			nil, ctx)
	}

	var l mat.TriDense
	chol.LTo(&l)

	d.RawKernel = g
	d.Z = rewriteWithBias(&l, n)
	d.Kernel = model.Kernel
	d.M = n

	return nil
}

// mostNegativeEigenvalue runs a single eigendecomposition to report the
// most-negative eigenvalue in a Cholesky-failure's fatal error context,
// purely as a diagnostic for a better error message.
func mostNegativeEigenvalue(sym *mat.SymDense) float64 {
	var eig mat.EigenSym
	if !eig.Factorize(sym, false) {
		return math.NaN()
	}
	vals := eig.Values(nil)
	min := math.Inf(1)
	for _, v := range vals {
		if v < min {
			min = v
		}
	}
	return min
}

// rewriteWithBias builds [1 | L], the n x (n+1) bias-augmented matrix Z
// becomes, from the n x n lower-triangular Cholesky factor L.
func rewriteWithBias(l mat.Matrix, n int) *mat.Dense {
	z := mat.NewDense(n, n+1, nil)
	for i := 0; i < n; i++ {
		z.Set(i, 0, 1.0)
		for j := 0; j < n; j++ {
			z.Set(i, j+1, l.At(i, j))
		}
	}
	return z
}
