// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

// Command gensvm-grid runs a warm-started cross-validated grid search over
// a grid-specification file.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/bitjungle/gensvm/internal/cv"
	"github.com/bitjungle/gensvm/internal/grid"
	"github.com/bitjungle/gensvm/internal/iox"
	"github.com/bitjungle/gensvm/internal/version"
	"github.com/bitjungle/gensvm/pkg/types"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var seed int64
	var parallel int

	root := &cobra.Command{
		Use:     "gensvm-grid <grid-spec-file>",
		Short:   "Run a warm-started cross-validated grid search for GenSVM",
		Version: version.Get().Short(),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGrid(cmd, args[0], seed, parallel)
		},
	}
	root.Flags().Int64Var(&seed, "seed", 1, "RNG seed for fold assignment and V seeding")
	root.Flags().IntVar(&parallel, "parallel", 1,
		"number of grid workers; values above 1 sever warm-starting across workers")
	return root
}

func runGrid(cmd *cobra.Command, specPath string, seed int64, parallel int) error {
	warn := func(msg string) { fmt.Fprintf(os.Stderr, "warning: %s\n", msg) }

	spec, err := iox.ParseGridSpec(specPath, warn)
	if err != nil {
		return err
	}

	train, err := iox.LoadDataset(spec.TrainPath)
	if err != nil {
		return err
	}
	var test *types.Dataset
	if spec.TestPath != "" {
		test, err = iox.LoadDataset(spec.TestPath)
		if err != nil {
			return err
		}
	}

	tasks, err := grid.MakeQueue(spec, train, test)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rng := cv.NewRNG(seed)
	if err := grid.TrainQueueParallel(ctx, tasks, rng, parallel); err != nil {
		return err
	}

	selected, err := grid.ConsistencyRepeats(ctx, tasks, spec.Repeats, rng)
	if err != nil {
		return err
	}

	fmt.Printf("ran %d tasks in %s\n", len(tasks), time.Now().Format(time.RFC3339))
	for _, t := range selected {
		fmt.Printf("task %d: p=%g lambda=%g kappa=%g epsilon=%g weight=%d performance=%.2f%% mu=%.2f sigma=%.2f\n",
			t.ID, t.P, t.Lambda, t.Kappa, t.Epsilon, t.WeightIdx, t.Performance, t.Mu, t.Sigma)
	}
	return nil
}
