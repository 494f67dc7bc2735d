// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

// Package predict maps fitted models to class labels and scores them
// against ground truth.
package predict

import (
	"math"

	"github.com/bitjungle/gensvm/internal/simplex"
	"github.com/bitjungle/gensvm/pkg/types"
	"gonum.org/v1/gonum/mat"
)

// PredictLabels computes ZV and assigns each row the 1-based index of the
// simplex vertex nearest it in Euclidean distance.
func PredictLabels(d *types.Dataset, m *types.Model) ([]int, error) {
	n, p := d.Z.Dims()
	vrows, km1 := m.V.Dims()
	if vrows != p {
		return nil, types.NewDimensionError("dataset Z columns do not match model V rows", vrows, p)
	}

	zv := mat.NewDense(n, km1, nil)
	zv.Mul(d.Z, m.V)

	// U is built for the model's K, not the dataset's: an unlabeled test
	// set carries no K of its own.
	k := km1 + 1
	u := simplex.Simplex(k)

	yHat := make([]int, n)
	for i := 0; i < n; i++ {
		row := mat.Row(nil, i, zv)
		best := -1
		bestDist := math.Inf(1)
		for j := 0; j < k; j++ {
			dist := 0.0
			for c := 0; c < km1; c++ {
				diff := row[c] - u.At(j, c)
				dist += diff * diff
			}
			if dist < bestDist {
				bestDist = dist
				best = j
			}
		}
		yHat[i] = best + 1
	}
	return yHat, nil
}

// PredictionPerf reports the percentage of yHat entries matching d.Y. The
// caller must skip this for unlabeled data (d.HasLabels() == false).
func PredictionPerf(d *types.Dataset, yHat []int) float64 {
	if !d.HasLabels() {
		return 0
	}
	matches := 0
	for i, y := range d.Y {
		if y == yHat[i] {
			matches++
		}
	}
	return 100 * float64(matches) / float64(len(d.Y))
}
