// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package iox

import (
	"path/filepath"
	"testing"

	"github.com/bitjungle/gensvm/pkg/testutil"
	"github.com/bitjungle/gensvm/pkg/types"
	"gonum.org/v1/gonum/mat"
)

func TestModelFileRoundTrip(t *testing.T) {
	m := types.NewModel(1.0, 0.5, 0.1, 1e-6, types.WeightUnit, types.LinearKernel{})
	m.V = mat.NewDense(3, 2, []float64{
		0.1, -0.2,
		1.5, 2.5,
		-3.25, 4.75,
	})

	path := filepath.Join(t.TempDir(), "model.txt")
	if err := WriteModelFile(path, m, "train.txt", 10, 2, 3); err != nil {
		t.Fatalf("WriteModelFile: %v", err)
	}

	got, err := ReadModelFile(path)
	if err != nil {
		t.Fatalf("ReadModelFile: %v", err)
	}

	testutil.AssertAlmostEqual(t, m.P, got.P, testutil.StrictTolerance, "p")
	testutil.AssertAlmostEqual(t, m.Lambda, got.Lambda, testutil.StrictTolerance, "lambda")
	testutil.AssertAlmostEqual(t, m.Kappa, got.Kappa, testutil.StrictTolerance, "kappa")
	testutil.AssertAlmostEqual(t, m.Epsilon, got.Epsilon, testutil.StrictTolerance, "epsilon")
	testutil.AssertMatrixAlmostEqual(t, m.V, got.V, testutil.StrictTolerance, "V round trip")
}
