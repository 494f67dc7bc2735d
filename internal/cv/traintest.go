// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package cv

import (
	"github.com/bitjungle/gensvm/pkg/types"
	"gonum.org/v1/gonum/mat"
)

// GetTrainTest extracts the train and test Datasets for fold f of a cvIdx
// assignment. The linear case copies rows; the kernel case extracts
// submatrices of full.RawKernel and re-factors the train block, since a
// Cholesky factor of the whole dataset does not restrict to a valid
// Cholesky factor of a row subset.
func GetTrainTest(full *types.Dataset, cvIdx []int, f int) (train, test *types.Dataset, err error) {
	var trainIdx, testIdx []int
	for i, fold := range cvIdx {
		if fold == f {
			testIdx = append(testIdx, i)
		} else {
			trainIdx = append(trainIdx, i)
		}
	}

	if types.IsLinear(full.Kernel) {
		return splitLinear(full, trainIdx, testIdx)
	}
	return splitKernel(full, trainIdx, testIdx)
}

func splitLinear(full *types.Dataset, trainIdx, testIdx []int) (train, test *types.Dataset, err error) {
	train = subsetRows(full, trainIdx)
	test = subsetRows(full, testIdx)
	return train, test, nil
}

// subsetRows builds a Dataset over a row subset of full, preserving Z's
// columns (the linear case never changes feature dimensionality).
func subsetRows(full *types.Dataset, idx []int) *types.Dataset {
	n := len(idx)
	_, m := full.RawFeatures.Dims()
	_, p := full.Z.Dims()

	raw := mat.NewDense(n, m, nil)
	z := mat.NewDense(n, p, nil)
	var y []int
	if full.HasLabels() {
		y = make([]int, n)
	}
	for dst, src := range idx {
		raw.SetRow(dst, mat.Row(nil, src, full.RawFeatures))
		z.SetRow(dst, mat.Row(nil, src, full.Z))
		if y != nil {
			y[dst] = full.Y[src]
		}
	}

	return &types.Dataset{
		N:           n,
		M:           full.M,
		K:           full.K,
		RawFeatures: raw,
		Z:           z,
		Y:           y,
		Kernel:      full.Kernel,
	}
}

// splitKernel handles the kernel case: extract the
// train x train submatrix of full.RawKernel, Cholesky-factor it, and
// write train.Z = [1 | L_train]. A test x train rectangular block embeds
// the test points into the same (n_train+1)-dimensional space so a fold
// model's V can be applied to them directly.
func splitKernel(full *types.Dataset, trainIdx, testIdx []int) (train, test *types.Dataset, err error) {
	nTrain, nTest := len(trainIdx), len(testIdx)

	trainBlock := mat.NewSymDense(nTrain, nil)
	for a, i := range trainIdx {
		for b := a; b < nTrain; b++ {
			j := trainIdx[b]
			trainBlock.SetSym(a, b, full.RawKernel.At(i, j))
		}
	}

	var chol mat.Cholesky
	if !chol.Factorize(trainBlock) {
		return nil, nil, types.NewNumericalHardError(
			"CV train-fold kernel submatrix is not positive definite", nil,
			map[string]interface{}{"fold_size": nTrain})
	}
	var l mat.TriDense
	chol.LTo(&l)

	trainRaw := subsetFeatureRows(full.RawFeatures, trainIdx)
	testRaw := subsetFeatureRows(full.RawFeatures, testIdx)

	trainZ := mat.NewDense(nTrain, nTrain+1, nil)
	for i := 0; i < nTrain; i++ {
		trainZ.Set(i, 0, 1.0)
		for j := 0; j < nTrain; j++ {
			trainZ.Set(i, j+1, l.At(i, j))
		}
	}

	testBlock := mat.NewDense(nTest, nTrain, nil)
	for a, i := range testIdx {
		for b, j := range trainIdx {
			testBlock.Set(a, b, full.RawKernel.At(i, j))
		}
	}

	// Embed test points: solve L_train * X^T = testBlock^T for X, so
	// X L_train^T = testBlock, i.e. X = testBlock * L_train^-T.
	var lInv mat.Dense
	if err := lInv.Inverse(&l); err != nil {
		return nil, nil, types.NewNumericalHardError(
			"CV train-fold Cholesky factor is singular", err, nil)
	}
	embedded := mat.NewDense(nTest, nTrain, nil)
	embedded.Mul(testBlock, lInv.T())

	testZ := mat.NewDense(nTest, nTrain+1, nil)
	for i := 0; i < nTest; i++ {
		testZ.Set(i, 0, 1.0)
		for j := 0; j < nTrain; j++ {
			testZ.Set(i, j+1, embedded.At(i, j))
		}
	}

	train = &types.Dataset{
		N: nTrain, M: nTrain, K: full.K,
		RawFeatures: trainRaw, Z: trainZ,
		Y: subsetLabels(full, trainIdx), Kernel: full.Kernel,
		RawKernel: denseFromSym(trainBlock),
	}
	test = &types.Dataset{
		N: nTest, M: nTrain, K: full.K,
		RawFeatures: testRaw, Z: testZ,
		Y: subsetLabels(full, testIdx), Kernel: full.Kernel,
	}
	return train, test, nil
}

func subsetFeatureRows(full *mat.Dense, idx []int) *mat.Dense {
	_, m := full.Dims()
	out := mat.NewDense(len(idx), m, nil)
	for dst, src := range idx {
		out.SetRow(dst, mat.Row(nil, src, full))
	}
	return out
}

func subsetLabels(full *types.Dataset, idx []int) []int {
	if !full.HasLabels() {
		return nil
	}
	y := make([]int, len(idx))
	for dst, src := range idx {
		y[dst] = full.Y[src]
	}
	return y
}

func denseFromSym(s *mat.SymDense) *mat.Dense {
	n, _ := s.Dims()
	d := mat.NewDense(n, n, nil)
	d.Copy(s)
	return d
}
