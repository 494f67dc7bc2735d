// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package grid

import (
	"context"

	"github.com/bitjungle/gensvm/internal/cv"
	"github.com/bitjungle/gensvm/pkg/types"
	"gonum.org/v1/gonum/stat"
)

// ConsistencyRepeats runs the consistency-repeats pass: the 95th-percentile
// boundary of task.Performance defines the top set;
// each top-set task is re-run repeats times from scratch (fresh CV
// splits), and the iterative mu/sigma threshold rule selects the best
// consistent configuration(s).
func ConsistencyRepeats(ctx context.Context, tasks []*types.Task, repeats int, rng *cv.RNG) ([]*types.Task, error) {
	if repeats <= 0 {
		return tasks, nil
	}

	perfs := make([]float64, len(tasks))
	for i, t := range tasks {
		perfs[i] = t.Performance
	}
	boundary := Prctile(perfs, 95)

	var topSet []*types.Task
	for _, t := range tasks {
		if t.Performance >= boundary {
			topSet = append(topSet, t)
		}
	}

	for _, task := range topSet {
		select {
		case <-ctx.Done():
			return topSet, nil
		default:
		}

		runs := make([]float64, 0, repeats)
		for r := 0; r < repeats; r++ {
			seed := types.NewModel(task.P, task.Lambda, task.Kappa, task.Epsilon, task.WeightIdx, task.Kernel)
			rows, cols := task.Train.M+1, task.Train.K-1
			seed.V = seedV(rng.Rand, rows, cols)

			fresh := &types.Task{
				ID: task.ID, Train: task.Train, Test: task.Test,
				P: task.P, Lambda: task.Lambda, Kappa: task.Kappa, Epsilon: task.Epsilon,
				WeightIdx: task.WeightIdx, Kernel: task.Kernel, Folds: task.Folds,
			}
			if err := runTask(ctx, fresh, seed, rng); err != nil {
				return nil, err
			}
			runs = append(runs, fresh.Performance)
		}

		task.Mu = stat.Mean(runs, nil)
		task.Sigma = stat.StdDev(runs, nil)
	}

	return selectConsistent(topSet), nil
}

// selectConsistent implements the iterative selection rule: starting with
// p=0, take mu-threshold = prctile(mu, 100-p) and sigma-threshold =
// prctile(sigma, p); emit tasks with mu >= mu-threshold and
// sigma <= sigma-threshold; if empty, increase p and retry.
func selectConsistent(topSet []*types.Task) []*types.Task {
	if len(topSet) == 0 {
		return nil
	}

	mus := make([]float64, len(topSet))
	sigmas := make([]float64, len(topSet))
	for i, t := range topSet {
		mus[i] = t.Mu
		sigmas[i] = t.Sigma
	}

	for p := 0; p <= 100; p++ {
		muThreshold := Prctile(mus, float64(100-p))
		sigmaThreshold := Prctile(sigmas, float64(p))

		var selected []*types.Task
		for _, t := range topSet {
			if t.Mu >= muThreshold && t.Sigma <= sigmaThreshold {
				selected = append(selected, t)
			}
		}
		if len(selected) > 0 {
			return selected
		}
	}
	return topSet
}
