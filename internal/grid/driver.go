// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package grid

import (
	"context"
	"math/rand"
	"sync"

	"github.com/bitjungle/gensvm/internal/cv"
	"github.com/bitjungle/gensvm/internal/kernel"
	"github.com/bitjungle/gensvm/internal/predict"
	"github.com/bitjungle/gensvm/internal/solver"
	"github.com/bitjungle/gensvm/pkg/types"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// seedV returns a fresh randomly-initialized V of the given shape, used to
// seed the single queue-lifetime seed model.
func seedV(rng *rand.Rand, rows, cols int) *mat.Dense {
	v := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v.Set(i, j, rng.NormFloat64()*0.01)
		}
	}
	return v
}

// warmStartV builds a rows x cols V seeded from prev: the overlapping
// top-left block is copied and any remainder is filled with small random
// values. A kernelized fold's V has nTrain+1 rows while the seed model's
// has n+1, so a plain copy cannot warm-start across folds.
func warmStartV(rng *rand.Rand, prev *mat.Dense, rows, cols int) *mat.Dense {
	v := seedV(rng, rows, cols)
	pr, pc := prev.Dims()
	for i := 0; i < rows && i < pr; i++ {
		for j := 0; j < cols && j < pc; j++ {
			v.Set(i, j, prev.At(i, j))
		}
	}
	return v
}

// TrainQueue runs the warm-started CV training loop over tasks, populating
// each task's Performance. rng drives both fold assignment and V seeding,
// so a fixed seed reproduces a run exactly. ctx is polled between folds
// and between tasks for cooperative cancellation; a cancellation returns
// the partially-populated queue, not an error.
func TrainQueue(ctx context.Context, tasks []*types.Task, rng *cv.RNG) error {
	if len(tasks) == 0 {
		return nil
	}

	// Kernelize the first task's data before sizing the seed model: for a
	// non-LINEAR grid, Train.M only becomes the post-kernelization instance
	// count (n) once MakeKernel has run, and every task in a queue shares
	// the same kernel type, so seed.V must be shaped from the kernelized
	// dimension, not the raw feature count.
	first := tasks[0]
	kernelModel := &types.Model{Kernel: first.Kernel}
	if err := kernel.MakeKernel(kernelModel, first.Train); err != nil {
		return err
	}
	if first.Test != nil {
		if err := kernel.MakeKernel(kernelModel, first.Test); err != nil {
			return err
		}
	}

	full := first.Train
	rows, cols := full.M+1, full.K-1
	seed := types.NewModel(first.P, first.Lambda, first.Kappa, first.Epsilon, first.WeightIdx, first.Kernel)
	seed.V = seedV(rng.Rand, rows, cols)

	for _, task := range tasks {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if err := runTask(ctx, task, seed, rng); err != nil {
			return err
		}
	}
	return nil
}

// TrainQueueParallel distributes tasks over workers goroutines. Warm-starting
// is severed across workers but preserved within each worker's serial stream:
// tasks are split into contiguous chunks and each worker owns a private seed
// model, RNG, and dataset clone (kernel preprocessing rewrites a dataset's Z
// in place, so workers must not share one). Each worker's RNG is drawn from
// rng up front, so a fixed seed still pins the full run.
func TrainQueueParallel(ctx context.Context, tasks []*types.Task, rng *cv.RNG, workers int) error {
	if workers <= 1 || len(tasks) <= 1 {
		return TrainQueue(ctx, tasks, rng)
	}
	if workers > len(tasks) {
		workers = len(tasks)
	}
	chunk := (len(tasks) + workers - 1) / workers

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for w := 0; w < workers; w++ {
		lo := w * chunk
		if lo >= len(tasks) {
			break
		}
		hi := lo + chunk
		if hi > len(tasks) {
			hi = len(tasks)
		}

		workerRNG := cv.NewRNG(rng.Int63())
		wg.Add(1)
		go func(w int, sub []*types.Task, wrng *cv.RNG) {
			defer wg.Done()

			trainCopy := *sub[0].Train
			var testCopy *types.Dataset
			if sub[0].Test != nil {
				tc := *sub[0].Test
				testCopy = &tc
			}
			for _, t := range sub {
				t.Train = &trainCopy
				t.Test = testCopy
			}

			errs[w] = TrainQueue(ctx, sub, wrng)
		}(w, tasks[lo:hi], workerRNG)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// runTask runs one task's CV loop (or single train/test fit), progressively
// warm-starting seed.V from each fold's final V. Kernel preparation happens
// here, not once up front, because each task may carry its own kernel
// parameters (a grid over gamma rebuilds the Gram matrix per value); a
// same-parameter re-invocation across consecutive tasks (enumeration places
// p innermost, so neighbouring tasks often share kernel params) is a no-op
// per internal/kernel.MakeKernel's own memoization.
func runTask(ctx context.Context, task *types.Task, seed *types.Model, rng *cv.RNG) error {
	kernelModel := &types.Model{Kernel: task.Kernel}
	if err := kernel.MakeKernel(kernelModel, task.Train); err != nil {
		return err
	}
	if task.Test != nil {
		if err := kernel.MakeKernel(kernelModel, task.Test); err != nil {
			return err
		}
	}

	if task.Test != nil {
		return runTrainTestVariant(ctx, task, seed, rng)
	}

	cvIdx := cv.MakeCVSplit(rng, task.Train.N, task.Folds)
	hitrates := make([]float64, 0, task.Folds)

	for f := 0; f < task.Folds; f++ {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		foldTrain, foldTest, err := cv.GetTrainTest(task.Train, cvIdx, f)
		if err != nil {
			return err
		}

		hitrate, err := fitAndScore(ctx, task, foldTrain, foldTest, seed, rng)
		if err != nil {
			return err
		}
		hitrates = append(hitrates, hitrate)
	}

	task.Performance = stat.Mean(hitrates, nil)
	return nil
}

// runTrainTestVariant handles the train/test variant: train once on the
// full training set with warm-start, score on the external test set, no
// CV loop.
func runTrainTestVariant(ctx context.Context, task *types.Task, seed *types.Model, rng *cv.RNG) error {
	hitrate, err := fitAndScore(ctx, task, task.Train, task.Test, seed, rng)
	if err != nil {
		return err
	}
	task.Performance = hitrate
	return nil
}

// fitAndScore allocates a fresh working model sized to foldTrain, seeds it
// from seed.V, optimizes, predicts on foldTest, and warm-starts seed.V from
// the fold's final V (progressive warm-start).
func fitAndScore(ctx context.Context, task *types.Task, foldTrain, foldTest *types.Dataset, seed *types.Model, rng *cv.RNG) (float64, error) {
	m := types.NewModel(task.P, task.Lambda, task.Kappa, task.Epsilon, task.WeightIdx, task.Kernel)
	solver.InitRho(m, foldTrain)
	_, zCols := foldTrain.Z.Dims()
	m.V = warmStartV(rng.Rand, seed.V, zCols, foldTrain.K-1)

	s := solver.New()
	if err := s.Fit(ctx, m, foldTrain); err != nil {
		if gerr, ok := err.(*types.GenSVMError); !ok || gerr.Fatal {
			return 0, err
		}
	}

	yHat, err := predict.PredictLabels(foldTest, m)
	if err != nil {
		return 0, err
	}
	hitrate := predict.PredictionPerf(foldTest, yHat)

	seed.V = mat.DenseCopyOf(m.V)
	return hitrate, nil
}
