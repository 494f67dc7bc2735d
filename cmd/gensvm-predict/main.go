// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

// Command gensvm-predict maps a dataset through a fitted model and writes
// predicted labels.
package main

import (
	"fmt"
	"os"

	"github.com/bitjungle/gensvm/internal/iox"
	"github.com/bitjungle/gensvm/internal/predict"
	"github.com/bitjungle/gensvm/internal/version"
	cli "github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:      "gensvm-predict",
		Usage:     "Predict labels for a dataset using a fitted GenSVM model",
		Version:   version.Get().Short(),
		ArgsUsage: "<dataset> <model>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output predictions file path"},
		},
		Action: runPredict,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runPredict(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.Exit("expected <dataset> <model> arguments", 1)
	}
	datasetPath := c.Args().Get(0)
	modelPath := c.Args().Get(1)

	d, err := iox.LoadDataset(datasetPath)
	if err != nil {
		return cli.Exit(err, 1)
	}
	m, err := iox.ReadModelFile(modelPath)
	if err != nil {
		return cli.Exit(err, 1)
	}

	yHat, err := predict.PredictLabels(d, m)
	if err != nil {
		return cli.Exit(err, 1)
	}

	outPath := c.String("out")
	if outPath == "" {
		outPath = datasetPath + "_predictions"
	}
	if err := iox.WritePredictions(outPath, d, yHat); err != nil {
		return cli.Exit(err, 1)
	}

	if d.HasLabels() {
		fmt.Printf("prediction_perf: %.2f%%\n", predict.PredictionPerf(d, yHat))
	}
	return nil
}
