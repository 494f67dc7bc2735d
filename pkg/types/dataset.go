// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package types

import "gonum.org/v1/gonum/mat"

// Dataset is a loaded, labeled (or unlabeled) training/test set. N, K and
// RawFeatures are fixed after loading and never mutated; Z, Kernel,
// RawKernel and M are rebuilt by the kernel engine whenever kernel
// preprocessing is (re)applied.
// Separating RawFeatures from Z avoids an aliased-pointer hazard: RawFeatures
// never moves, so a kernel re-invocation always starts from the same source
// data.
type Dataset struct {
	N int // instances
	M int // raw predictors; set to N once a kernel transform is applied
	K int // classes; 0 for unlabeled data

	// RawFeatures is the n x m matrix of raw predictors as loaded, with no
	// bias column and no kernel transform. Immutable after load.
	RawFeatures *mat.Dense

	// Z is the n x (m+1) (or, after kernelization, n x (n+1)) augmented
	// feature matrix consumed by the solver: its first column is a constant
	// 1. It starts as [1 | RawFeatures] and is rewritten in place by
	// internal/kernel.MakeKernel to [1 | L].
	Z *mat.Dense

	// Y holds the 1-based class label per instance, relabeled on load so
	// the minimum is 1. Nil for unlabeled data.
	Y []int

	// Kernel records which transform, if any, has already been baked into
	// Z. A nil value or LinearKernel{} means Z is still the raw augmented
	// matrix.
	Kernel KernelSpec

	// RawKernel is the n x n Gram matrix K̃ computed by internal/kernel's
	// MakeKernel, kept alongside the collapsed Z = [1 | L] so that a later
	// cross-validation split can extract the train x train and test x train
	// submatrices and re-factor per fold (internal/cv's kernel-case split),
	// rather than trying to recover K̃ from a Cholesky factor it no longer
	// corresponds to once rows are removed. Nil for a linear dataset.
	RawKernel *mat.Dense
}

// HasLabels reports whether the dataset carries ground-truth labels.
func (d *Dataset) HasLabels() bool {
	return d.Y != nil
}

// AugmentWithBias builds the n x (m+1) matrix [1 | raw] from a raw n x m
// feature matrix. This is the Z a freshly loaded, not-yet-kernelized
// Dataset carries.
func AugmentWithBias(raw *mat.Dense) *mat.Dense {
	n, m := raw.Dims()
	z := mat.NewDense(n, m+1, nil)
	for i := 0; i < n; i++ {
		z.Set(i, 0, 1.0)
		for j := 0; j < m; j++ {
			z.Set(i, j+1, raw.At(i, j))
		}
	}
	return z
}

// NewDataset builds a Dataset from raw features and optional labels,
// performing Z's bias augmentation at load time.
func NewDataset(raw *mat.Dense, y []int, k int) *Dataset {
	n, m := raw.Dims()
	return &Dataset{
		N:           n,
		M:           m,
		K:           k,
		RawFeatures: raw,
		Z:           AugmentWithBias(raw),
		Y:           y,
		Kernel:      LinearKernel{},
	}
}
