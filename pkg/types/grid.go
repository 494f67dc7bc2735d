// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package types

// GridSpec is the parsed grid-specification file: an array of hyperparameter
// values per axis, plus the shared kernel/folds/repeats configuration.
// internal/grid.MakeQueue enumerates it into a Task slice.
type GridSpec struct {
	TrainPath string
	TestPath  string // non-empty switches the driver to the train/test variant

	P       []float64
	Lambda  []float64
	Kappa   []float64
	Epsilon []float64
	Weight  []WeightScheme

	Folds   int
	Repeats int

	KernelName string // LINEAR|POLY|RBF|SIGMOID, as read from the grid-spec file
	Gamma      []float64
	Coef       []float64
	Degree     []int
}

// Task is one enumerated grid-search work item: a hyperparameter
// combination to cross-validate (or train/test-score), carrying its own
// performance slot and, after consistency repeats, its mu/sigma summary.
type Task struct {
	ID int

	// Train and Test point at the caller's shared datasets. Kernel
	// preprocessing in internal/grid rewrites their Z, M, Kernel and
	// RawKernel in place, and the parallel driver points them at
	// per-worker copies.
	Train *Dataset
	Test  *Dataset

	P         float64
	Lambda    float64
	Kappa     float64
	Epsilon   float64
	WeightIdx WeightScheme
	Kernel    KernelSpec
	Folds     int

	// Performance is the mean hitrate across folds (or the single
	// train/test-variant hitrate) from the first pass.
	Performance float64

	// Mu and Sigma are filled in by the consistency-repeats pass for tasks
	// in the top percentile set; zero otherwise.
	Mu    float64
	Sigma float64
}
