// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

// Command gensvm-train fits a GenSVM model on a labeled dataset and
// writes a model file.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"

	"github.com/bitjungle/gensvm/internal/config"
	"github.com/bitjungle/gensvm/internal/iox"
	"github.com/bitjungle/gensvm/internal/kernel"
	"github.com/bitjungle/gensvm/internal/simplex"
	"github.com/bitjungle/gensvm/internal/solver"
	"github.com/bitjungle/gensvm/internal/version"
	"github.com/bitjungle/gensvm/pkg/types"
	cli "github.com/urfave/cli/v2"
	"gonum.org/v1/gonum/mat"
)

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	defaults := config.DefaultConfig()
	return &cli.App{
		Name:      "gensvm-train",
		Usage:     "Fit a Generalized Multiclass SVM on a labeled dataset",
		Version:   version.Get().Short(),
		ArgsUsage: "<dataset>",
		Flags: []cli.Flag{
			&cli.Float64Flag{Name: "p", Value: defaults.Fit.P, Usage: "loss exponent (1 <= p <= 2)"},
			&cli.Float64Flag{Name: "lambda", Aliases: []string{"l"}, Value: defaults.Fit.Lambda, Usage: "regularization strength"},
			&cli.Float64Flag{Name: "kappa", Aliases: []string{"k"}, Value: defaults.Fit.Kappa, Usage: "Huber smoothness"},
			&cli.Float64Flag{Name: "epsilon", Aliases: []string{"e"}, Value: defaults.Fit.Epsilon, Usage: "stopping tolerance"},
			&cli.IntFlag{Name: "weight", Aliases: []string{"r"}, Value: defaults.Fit.Weight, Usage: "weight scheme: 1=unit, 2=group"},
			&cli.StringFlag{Name: "kerneltype", Aliases: []string{"t"}, Value: "LINEAR", Usage: "LINEAR|POLY|RBF|SIGMOID"},
			&cli.Float64Flag{Name: "gamma", Aliases: []string{"g"}, Usage: "kernel gamma"},
			&cli.Float64Flag{Name: "coef", Aliases: []string{"c"}, Usage: "kernel coef0"},
			&cli.IntFlag{Name: "degree", Aliases: []string{"d"}, Usage: "kernel degree (POLY only)"},
			&cli.StringFlag{Name: "seed-model", Aliases: []string{"m"}, Usage: "seed V from an existing model file"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output model file path"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "suppress stdout progress output"},
		},
		Action: runTrain,
	}
}

func runTrain(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("expected exactly one dataset argument", 1)
	}
	datasetPath := c.Args().Get(0)

	d, err := iox.LoadDataset(datasetPath)
	if err != nil {
		return cli.Exit(err, 1)
	}
	if !d.HasLabels() {
		return cli.Exit("gensvm-train requires a labeled dataset", 1)
	}

	kernelSpec, err := buildKernelSpec(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	m := types.NewModel(c.Float64("p"), c.Float64("lambda"), c.Float64("kappa"), c.Float64("epsilon"),
		types.WeightScheme(c.Int("weight")), kernelSpec)

	if err := kernel.MakeKernel(m, d); err != nil {
		return cli.Exit(err, 1)
	}
	if err := simplex.Prepare(m, d); err != nil {
		return cli.Exit(err, 1)
	}
	solver.InitRho(m, d)

	rows, cols := d.M+1, d.K-1
	if seedPath := c.String("seed-model"); seedPath != "" {
		seedModel, err := iox.ReadModelFile(seedPath)
		if err != nil {
			return cli.Exit(err, 1)
		}
		m.V = seedModel.V
	} else {
		m.V = zeroV(rows, cols)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s := solver.New()
	fitErr := s.Fit(ctx, m, d)
	if fitErr != nil {
		if gerr, ok := fitErr.(*types.GenSVMError); ok && gerr.Fatal {
			return cli.Exit(gerr, 1)
		}
		if !c.Bool("quiet") {
			fmt.Fprintf(os.Stderr, "warning: %v\n", fitErr)
		}
	}

	if !c.Bool("quiet") {
		fmt.Printf("converged: %s, iterations: %d, training_error: %g\n", m.State, m.Iteration, m.TrainingError)
		t, w := m.WT()
		fmt.Printf("bias: %v, weight norm: %g\n", t, mat.Norm(w, 2))
	}

	outPath := c.String("out")
	if outPath == "" {
		outPath = datasetPath + config.DefaultConfig().Output.FileSuffix
	}
	if err := iox.WriteModelFile(outPath, m, datasetPath, d.N, d.M, d.K); err != nil {
		return cli.Exit(err, 1)
	}
	return nil
}

func buildKernelSpec(c *cli.Context) (types.KernelSpec, error) {
	spec, err := types.ParseKernelName(c.String("kerneltype"))
	if err != nil {
		return nil, err
	}
	switch spec.(type) {
	case types.PolyKernel:
		return types.PolyKernel{Gamma: c.Float64("gamma"), Coef0: c.Float64("coef"), Degree: c.Int("degree")}, nil
	case types.RBFKernel:
		return types.RBFKernel{Gamma: c.Float64("gamma")}, nil
	case types.SigmoidKernel:
		return types.SigmoidKernel{Gamma: c.Float64("gamma"), Coef0: c.Float64("coef")}, nil
	default:
		return types.LinearKernel{}, nil
	}
}

func zeroV(rows, cols int) *mat.Dense {
	v := mat.NewDense(rows, cols, nil)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v.Set(i, j, rng.NormFloat64()*0.01)
		}
	}
	return v
}
