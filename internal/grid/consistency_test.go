// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package grid

import (
	"context"
	"testing"

	"github.com/bitjungle/gensvm/internal/cv"
	"github.com/bitjungle/gensvm/pkg/testutil"
	"github.com/bitjungle/gensvm/pkg/types"
)

// TestSelectConsistentAllTiedSelectsAtZeroPercentile checks the boundary
// case of the iterative selection rule: when every task in the top set
// carries the same mu and sigma, the p=0 thresholds (max mu, min sigma)
// equal every task's own values, so the first iteration already selects
// the full set instead of escalating p.
func TestSelectConsistentAllTiedSelectsAtZeroPercentile(t *testing.T) {
	tasks := make([]*types.Task, 20)
	for i := range tasks {
		tasks[i] = &types.Task{ID: i, Performance: 90.0, Mu: 90.0, Sigma: 2.0}
	}

	selected := selectConsistent(tasks)
	if len(selected) != 20 {
		t.Fatalf("expected all 20 tied tasks selected at p=0, got %d", len(selected))
	}
}

// TestConsistencyRepeatsFillsMuSigmaForTiedBoundary checks that when 20
// tasks tie exactly at the 95th-percentile boundary, all 20 land in the
// top set and each gets its own mu/sigma filled in by the repeats pass,
// not just the nominal top performer.
func TestConsistencyRepeatsFillsMuSigmaForTiedBoundary(t *testing.T) {
	d := testutil.LinearlySeparableDataset(2, 30, 3, 13)

	tasks := make([]*types.Task, 20)
	for i := range tasks {
		tasks[i] = &types.Task{
			ID: i, Train: d, Test: nil,
			P: 1.0, Lambda: 1.0, Kappa: 0.0, Epsilon: 1e-4,
			WeightIdx: types.WeightUnit, Kernel: types.LinearKernel{}, Folds: 3,
			Performance: 80.0,
		}
	}

	rng := cv.NewRNG(21)
	selected, err := ConsistencyRepeats(context.Background(), tasks, 2, rng)
	if err != nil {
		t.Fatalf("ConsistencyRepeats: %v", err)
	}

	for i, task := range tasks {
		if task.Mu == 0 && task.Sigma == 0 {
			t.Errorf("task %d: expected mu/sigma to be populated for a tied top-set member", i)
		}
	}
	if len(selected) == 0 {
		t.Fatal("expected at least one task selected from the tied top set")
	}
}
