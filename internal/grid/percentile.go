// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package grid

import (
	"math"
	"sort"
)

// Prctile implements Matlab-style percentile: pct is a percentage in
// [0,100]; index = pct/100*N + 0.5, linearly interpolated between the
// surrounding sorted elements and clamped at the ends.
func Prctile(values []float64, pct float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return sorted[0]
	}

	idx := pct/100*float64(n) + 0.5
	if idx <= 1 {
		return sorted[0]
	}
	if idx >= float64(n) {
		return sorted[n-1]
	}

	lo := int(math.Floor(idx))
	frac := idx - float64(lo)
	// idx is 1-based; sorted is 0-based.
	return sorted[lo-1] + frac*(sorted[lo]-sorted[lo-1])
}
