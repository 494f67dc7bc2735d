// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package cv

import "testing"

// TestMakeCVSplitCoversAllFolds checks that every instance is assigned to
// some fold in [0, folds) and that fold sizes differ by at most one.
func TestMakeCVSplitCoversAllFolds(t *testing.T) {
	n, folds := 23, 5
	rng := NewRNG(1)
	cvIdx := MakeCVSplit(rng, n, folds)

	if len(cvIdx) != n {
		t.Fatalf("expected %d assignments, got %d", n, len(cvIdx))
	}

	counts := make([]int, folds)
	for _, f := range cvIdx {
		if f < 0 || f >= folds {
			t.Fatalf("fold id %d out of range [0,%d)", f, folds)
		}
		counts[f]++
	}

	minC, maxC := n, 0
	for _, c := range counts {
		if c < minC {
			minC = c
		}
		if c > maxC {
			maxC = c
		}
	}
	if maxC-minC > 1 {
		t.Errorf("fold sizes too unbalanced: %v", counts)
	}
}

// TestMakeCVSplitExactFoldSizes pins the two canonical balance cases: an
// even split puts exactly n/folds instances in every fold, and a remainder
// of r spills one extra instance into each of the first r folds.
func TestMakeCVSplitExactFoldSizes(t *testing.T) {
	cases := []struct {
		n, folds int
		larger   int // number of folds holding n/folds+1 instances
	}{
		{100, 10, 0},
		{103, 10, 3},
	}
	for _, c := range cases {
		cvIdx := MakeCVSplit(NewRNG(7), c.n, c.folds)
		counts := make([]int, c.folds)
		for _, f := range cvIdx {
			counts[f]++
		}

		small := c.n / c.folds
		nBig := 0
		for f, cnt := range counts {
			switch cnt {
			case small:
			case small + 1:
				nBig++
			default:
				t.Errorf("n=%d folds=%d: fold %d has %d instances, want %d or %d",
					c.n, c.folds, f, cnt, small, small+1)
			}
		}
		if nBig != c.larger {
			t.Errorf("n=%d folds=%d: %d folds of size %d, want %d",
				c.n, c.folds, nBig, small+1, c.larger)
		}
	}
}

// TestMakeCVSplitReproducible checks that two RNGs seeded identically
// produce the identical fold assignment.
func TestMakeCVSplitReproducible(t *testing.T) {
	a := MakeCVSplit(NewRNG(99), 30, 4)
	b := MakeCVSplit(NewRNG(99), 30, 4)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("fold assignment diverged at index %d: %d != %d", i, a[i], b[i])
		}
	}
}
