// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package testutil

import (
	"math"
	"math/rand"
	"testing"

	"github.com/bitjungle/gensvm/pkg/types"
	"gonum.org/v1/gonum/mat"
)

const (
	// DefaultTolerance is the default numerical tolerance for floating point comparisons.
	DefaultTolerance = 1e-10
	// LooseTolerance is used for comparisons across iterative solver results.
	LooseTolerance = 1e-6
	// StrictTolerance is used for closed-form linear algebra comparisons.
	StrictTolerance = 1e-14
)

// AlmostEqual reports whether a and b agree within tolerance, treating
// matching NaN or matching infinite signs as equal.
func AlmostEqual(a, b, tolerance float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	if math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	if math.IsInf(a, 1) && math.IsInf(b, 1) {
		return true
	}
	if math.IsInf(a, -1) && math.IsInf(b, -1) {
		return true
	}
	return math.Abs(a-b) <= tolerance
}

// AssertAlmostEqual fails the test if expected and actual disagree beyond tolerance.
func AssertAlmostEqual(t *testing.T, expected, actual, tolerance float64, message string) {
	t.Helper()
	if !AlmostEqual(expected, actual, tolerance) {
		t.Errorf("%s: expected %v, got %v (tolerance %v)", message, expected, actual, tolerance)
	}
}

// AssertMatrixAlmostEqual compares two gonum matrices element-wise.
func AssertMatrixAlmostEqual(t *testing.T, expected, actual mat.Matrix, tolerance float64, message string) {
	t.Helper()

	er, ec := expected.Dims()
	ar, ac := actual.Dims()
	if er != ar || ec != ac {
		t.Errorf("%s: dimension mismatch - expected %dx%d, got %dx%d", message, er, ec, ar, ac)
		return
	}

	for i := 0; i < er; i++ {
		for j := 0; j < ec; j++ {
			if !AlmostEqual(expected.At(i, j), actual.At(i, j), tolerance) {
				t.Errorf("%s: element [%d,%d] mismatch - expected %v, got %v",
					message, i, j, expected.At(i, j), actual.At(i, j))
				return
			}
		}
	}
}

// AssertSliceAlmostEqual compares two float64 slices element-wise.
func AssertSliceAlmostEqual(t *testing.T, expected, actual []float64, tolerance float64, message string) {
	t.Helper()

	if len(expected) != len(actual) {
		t.Errorf("%s: length mismatch - expected %d, got %d", message, len(expected), len(actual))
		return
	}

	for i := range expected {
		if !AlmostEqual(expected[i], actual[i], tolerance) {
			t.Errorf("%s: element [%d] mismatch - expected %v, got %v",
				message, i, expected[i], actual[i])
			return
		}
	}
}

// AssertNoError fails the test if err is non-nil.
func AssertNoError(t *testing.T, err error, message string) {
	t.Helper()
	if err != nil {
		t.Errorf("%s: unexpected error: %v", message, err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error, message string) {
	t.Helper()
	if err == nil {
		t.Errorf("%s: expected error but got nil", message)
	}
}

// LinearlySeparableDataset builds a synthetic K-class dataset with n points
// per class, each class a tight Gaussian cluster centered at a vertex of a
// scaled simplex in m dimensions, so that a trained model is expected to
// reach zero training error. Reproducible for a fixed seed.
func LinearlySeparableDataset(classes, perClass, features int, seed int64) *types.Dataset {
	n := classes * perClass
	rng := rand.New(rand.NewSource(seed))

	raw := mat.NewDense(n, features, nil)
	labels := make([]int, n)

	row := 0
	for k := 0; k < classes; k++ {
		for j := 0; j < perClass; j++ {
			for f := 0; f < features; f++ {
				center := 0.0
				if f == k%features {
					center = 10.0
				}
				raw.Set(row, f, center+rng.NormFloat64()*0.05)
			}
			labels[row] = k + 1
			row++
		}
	}

	return types.NewDataset(raw, labels, classes)
}
