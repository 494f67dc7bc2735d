// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package predict

import (
	"context"
	"testing"

	"github.com/bitjungle/gensvm/internal/simplex"
	"github.com/bitjungle/gensvm/internal/solver"
	"github.com/bitjungle/gensvm/pkg/testutil"
	"github.com/bitjungle/gensvm/pkg/types"
	"gonum.org/v1/gonum/mat"
)

// TestPredictionPerfRoundTrip fits a model on an easy, well-separated
// dataset and checks that predicting on the same data it was trained on
// reaches 100% performance.
func TestPredictionPerfRoundTrip(t *testing.T) {
	d := testutil.LinearlySeparableDataset(3, 25, 3, 42)
	m := types.NewModel(1.0, 1.0, 0.0, 1e-7, types.WeightUnit, types.LinearKernel{})

	if err := simplex.Prepare(m, d); err != nil {
		t.Fatalf("simplex.Prepare: %v", err)
	}
	solver.InitRho(m, d)
	rows, cols := d.M+1, d.K-1
	m.V = mat.NewDense(rows, cols, nil)

	s := solver.New()
	if err := s.Fit(context.Background(), m, d); err != nil {
		if gerr, ok := err.(*types.GenSVMError); !ok || gerr.Fatal {
			t.Fatalf("Fit: %v", err)
		}
	}

	yHat, err := PredictLabels(d, m)
	if err != nil {
		t.Fatalf("PredictLabels: %v", err)
	}

	perf := PredictionPerf(d, yHat)
	if perf != 100.0 {
		t.Errorf("expected 100%% training accuracy on separable data, got %.2f%%", perf)
	}
}

// TestPredictLabelsTwelvePointRing reproduces the canonical 12-point
// simplex-space ring scenario: 12 points evenly spaced on the unit circle
// in 2-D simplex space (Z, V constructed via the reduced QR decomposition
// of those points) must classify to exactly this label sequence.
func TestPredictLabelsTwelvePointRing(t *testing.T) {
	z := mat.NewDense(12, 3, []float64{
		1, -0.3943375672974065, -0.1056624327025935,
		1, -0.2886751345948129, -0.2886751345948128,
		1, -0.1056624327025937, -0.3943375672974063,
		1, 0.1056624327025935, -0.3943375672974064,
		1, 0.2886751345948129, -0.2886751345948129,
		1, 0.3943375672974064, -0.1056624327025937,
		1, 0.3943375672974065, 0.1056624327025935,
		1, 0.2886751345948130, 0.2886751345948128,
		1, 0.1056624327025939, 0.3943375672974063,
		1, -0.1056624327025934, 0.3943375672974064,
		1, -0.2886751345948126, 0.2886751345948132,
		1, -0.3943375672974064, 0.1056624327025939,
	})
	v := mat.NewDense(3, 2, []float64{
		0, 0,
		-2.4494897427831779, -0.0000000000000002,
		0, -2.4494897427831783,
	})

	d := &types.Dataset{N: 12, M: 2, K: 3, Z: z}
	m := &types.Model{V: v}

	yHat, err := PredictLabels(d, m)
	if err != nil {
		t.Fatalf("PredictLabels: %v", err)
	}

	want := []int{2, 3, 3, 3, 3, 1, 1, 1, 1, 2, 2, 2}
	for i, y := range want {
		if yHat[i] != y {
			t.Errorf("label %d: got %d, want %d", i, yHat[i], y)
		}
	}
}

// TestPredictionPerfKnownHitrates reproduces the canonical y=[1,1,1,1,2,2,2,3]
// hitrate scenario: predicting all-1, all-2, all-3 must give exactly
// 50.0%, 37.5%, and 12.5%.
func TestPredictionPerfKnownHitrates(t *testing.T) {
	d := &types.Dataset{N: 8, Y: []int{1, 1, 1, 1, 2, 2, 2, 3}}

	cases := []struct {
		label int
		want  float64
	}{
		{1, 50.0},
		{2, 37.5},
		{3, 12.5},
	}
	for _, c := range cases {
		yHat := make([]int, 8)
		for i := range yHat {
			yHat[i] = c.label
		}
		if perf := PredictionPerf(d, yHat); perf != c.want {
			t.Errorf("all-%d predictions: got %.4f%%, want %.4f%%", c.label, perf, c.want)
		}
	}
}

func TestPredictionPerfUnlabeledReturnsZero(t *testing.T) {
	d := testutil.LinearlySeparableDataset(2, 5, 2, 1)
	d.Y = nil
	if perf := PredictionPerf(d, []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}); perf != 0 {
		t.Errorf("expected 0 for unlabeled dataset, got %v", perf)
	}
}

func TestPredictLabelsDimensionMismatch(t *testing.T) {
	d := testutil.LinearlySeparableDataset(2, 5, 2, 1)
	m := types.NewModel(1, 1, 0, 1e-6, types.WeightUnit, types.LinearKernel{})
	m.V = mat.NewDense(2, 1, nil) // wrong row count

	if _, err := PredictLabels(d, m); err == nil {
		t.Fatal("expected dimension error")
	}
}
