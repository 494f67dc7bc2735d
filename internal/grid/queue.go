// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

// Package grid enumerates hyperparameter combinations into a warm-start
// friendly task queue and drives cross-validated training across it,
// including the consistency-repeats selection rule.
package grid

import (
	"github.com/bitjungle/gensvm/pkg/types"
)

// gammaCoefDegree returns the per-task kernel parameter triple for index
// (ig, ic, id) into the grid's gamma/coef/degree axes, or the zero triple
// when an axis is empty (the kernel doesn't consume it).
func gammaCoefDegree(g *types.GridSpec, ig, ic, id int) (gamma, coef float64, degree int) {
	if len(g.Gamma) > 0 {
		gamma = g.Gamma[ig]
	}
	if len(g.Coef) > 0 {
		coef = g.Coef[ic]
	}
	if len(g.Degree) > 0 {
		degree = g.Degree[id]
	}
	return gamma, coef, degree
}

func axisLen(n int) int {
	if n == 0 {
		return 1
	}
	return n
}

func buildKernel(name string, gamma, coef float64, degree int) (types.KernelSpec, error) {
	spec, err := types.ParseKernelName(name)
	if err != nil {
		return nil, err
	}
	switch spec.(type) {
	case types.PolyKernel:
		return types.PolyKernel{Gamma: gamma, Coef0: coef, Degree: degree}, nil
	case types.RBFKernel:
		return types.RBFKernel{Gamma: gamma}, nil
	case types.SigmoidKernel:
		return types.SigmoidKernel{Gamma: gamma, Coef0: coef}, nil
	default:
		return types.LinearKernel{}, nil
	}
}

// MakeQueue enumerates the Cartesian product of g's hyperparameter axes
// into N = Np*Nl*Nk*Ne*Nw * max(Ng,1) * max(Nc,1) * max(Nd,1) tasks,
// nesting a loop per axis. The gamma/coef/degree loops range over
// axisLen(n), so an empty kernel-parameter axis still makes one pass; an
// empty weight axis counts as the single unit-weight value; p, lambda,
// kappa and epsilon range over their values as given, so an empty one
// yields no tasks.
//
// Enumeration order, innermost to outermost, is p, lambda, kappa, weight,
// epsilon, gamma, coef, degree, so consecutive tasks differ only in p and
// the previous task's V is a strong initializer for the next, satisfying
// the warm-start requirement.
func MakeQueue(g *types.GridSpec, train, test *types.Dataset) ([]*types.Task, error) {
	var tasks []*types.Task
	id := 0

	nd := axisLen(len(g.Degree))
	nc := axisLen(len(g.Coef))
	ng := axisLen(len(g.Gamma))

	for idg := 0; idg < nd; idg++ {
		for icg := 0; icg < nc; icg++ {
			for igg := 0; igg < ng; igg++ {
				gamma, coef, degree := gammaCoefDegree(g, igg, icg, idg)
				kernel, err := buildKernel(g.KernelName, gamma, coef, degree)
				if err != nil {
					return nil, err
				}
				for _, e := range g.Epsilon {
					for _, w := range weightAxis(g) {
						for _, k := range g.Kappa {
							for _, l := range g.Lambda {
								for _, p := range g.P {
									tasks = append(tasks, &types.Task{
										ID:        id,
										Train:     train,
										Test:      test,
										P:         p,
										Lambda:    l,
										Kappa:     k,
										Epsilon:   e,
										WeightIdx: w,
										Kernel:    kernel,
										Folds:     g.Folds,
									})
									id++
								}
							}
						}
					}
				}
			}
		}
	}
	return tasks, nil
}

func weightAxis(g *types.GridSpec) []types.WeightScheme {
	if len(g.Weight) == 0 {
		return []types.WeightScheme{types.WeightUnit}
	}
	return g.Weight
}
