// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package simplex

import (
	"math"
	"testing"

	"github.com/bitjungle/gensvm/pkg/testutil"
)

// TestSimplexPairwiseDistances checks that every pair of vertices in the
// constructed K-simplex is equidistant, the defining property a regular
// simplex must have.
func TestSimplexPairwiseDistances(t *testing.T) {
	for k := 2; k <= 6; k++ {
		u := Simplex(k)
		rows, cols := u.Dims()
		if rows != k || cols != k-1 {
			t.Fatalf("K=%d: expected shape %dx%d, got %dx%d", k, k, k-1, rows, cols)
		}

		var want float64 = -1
		for i := 0; i < k; i++ {
			for j := i + 1; j < k; j++ {
				d2 := 0.0
				for c := 0; c < cols; c++ {
					diff := u.At(i, c) - u.At(j, c)
					d2 += diff * diff
				}
				dist := math.Sqrt(d2)
				if want < 0 {
					want = dist
					continue
				}
				testutil.AssertAlmostEqual(t, want, dist, testutil.LooseTolerance,
					"simplex vertex distance")
			}
		}
	}
}

func TestCategoryMatrix(t *testing.T) {
	y := []int{1, 2, 3}
	r := CategoryMatrix(y, 3)
	rows, cols := r.Dims()
	if rows != 3 || cols != 3 {
		t.Fatalf("expected 3x3, got %dx%d", rows, cols)
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 1.0
			if y[i] == j+1 {
				want = 0.0
			}
			if r.At(i, j) != want {
				t.Errorf("R[%d][%d] = %v, want %v", i, j, r.At(i, j), want)
			}
		}
	}
}

func TestDiffMatchesVertexSubtraction(t *testing.T) {
	k := 4
	u := Simplex(k)
	y := []int{1, 2, 3, 4, 1}
	uu := Diff(u, y, k)
	for i, yi := range y {
		classRow := yi - 1
		for j := 0; j < k-1; j++ {
			for kk := 0; kk < k; kk++ {
				want := u.At(classRow, j) - u.At(kk, j)
				got := uu.At(i, j, kk)
				testutil.AssertAlmostEqual(t, want, got, testutil.StrictTolerance, "UU entry")
			}
		}
	}
}

func TestSimplexPanicsBelowTwoClasses(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for K < 2")
		}
	}()
	Simplex(1)
}
