// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

// Package cv builds cross-validation fold assignments and extracts the
// train/test submatrices a fold needs, for both the linear and kernel
// cases.
package cv

import "math/rand"

// RNG wraps math/rand's generator behind the single constructor this
// package and internal/grid share, so a grid run can seed one RNG for
// reproducible fold assignments and V randomization. gonum's own
// stat/distuv and stat/sampleuv accept any rand.Source, so threading a
// plain *rand.Rand composes cleanly rather than needing a bespoke
// generator.
type RNG struct {
	*rand.Rand
}

// NewRNG returns an RNG seeded with seed. Two RNGs built from the same
// seed produce identical fold assignments and V-seedings.
func NewRNG(seed int64) *RNG {
	return &RNG{Rand: rand.New(rand.NewSource(seed))}
}
