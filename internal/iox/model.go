// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package iox

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bitjungle/gensvm/internal/version"
	"github.com/bitjungle/gensvm/pkg/types"
	"gonum.org/v1/gonum/mat"
)

// WriteModelFile writes m in GenSVM's fixed model-file layout: a versioned
// header, the scalar hyperparameters, the dataset dimensions,
// and V as (m+1) rows of (K-1) space-separated %+.16f doubles.
func WriteModelFile(path string, m *types.Model, datasetPath string, n, mFeatures, k int) error {
	if err := ValidateOutputPath(path); err != nil {
		return types.NewIOError("cannot write model file", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return types.NewIOError("cannot create model file", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	now := time.Now()
	_, offset := now.Zone()
	sign := "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}

	fmt.Fprintf(w, "Output file for GenSVM (version %s)\n", version.Get().Short())
	fmt.Fprintf(w, "Generated on: %s (UTC %s%02d:%02d)\n\n",
		now.Format("2006-01-02 15:04:05"), sign, offset/3600, (offset%3600)/60)
	fmt.Fprintf(w, "Model:\n")
	fmt.Fprintf(w, "p = %v\n", m.P)
	fmt.Fprintf(w, "lambda = %v\n", m.Lambda)
	fmt.Fprintf(w, "kappa = %v\n", m.Kappa)
	fmt.Fprintf(w, "epsilon = %g\n", m.Epsilon)
	fmt.Fprintf(w, "weight_idx = %d\n\n", m.WeightIdx)
	fmt.Fprintf(w, "Data:\n")
	fmt.Fprintf(w, "filename = %s\n", datasetPath)
	fmt.Fprintf(w, "n = %d\n", n)
	fmt.Fprintf(w, "m = %d\n", mFeatures)
	fmt.Fprintf(w, "K = %d\n\n", k)
	fmt.Fprintf(w, "Output:\n")

	rows, cols := m.V.Dims()
	for i := 0; i < rows; i++ {
		parts := make([]string, cols)
		for j := 0; j < cols; j++ {
			parts[j] = fmt.Sprintf("%+.16f", m.V.At(i, j))
		}
		fmt.Fprintln(w, strings.Join(parts, " "))
	}
	return w.Flush()
}

// ReadModelFile parses a model file written by WriteModelFile.
func ReadModelFile(path string) (*types.Model, error) {
	if err := ValidateInputPath(path); err != nil {
		return nil, types.NewIOError("cannot read model file", err)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, types.NewIOError("cannot open model file", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 64*1024)

	var p, lambda, kappa, epsilon float64
	var weightIdx int
	var n, mFeatures, k int
	var vRows [][]float64

	section := ""
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "Model:":
			section = "model"
			continue
		case line == "Data:":
			section = "data"
			continue
		case line == "Output:":
			section = "output"
			continue
		case strings.HasPrefix(line, "Output file for GenSVM"), strings.HasPrefix(line, "Generated on:"):
			continue
		}

		if section == "output" {
			fields := strings.Fields(line)
			row := make([]float64, len(fields))
			for j, tok := range fields {
				v, err := strconv.ParseFloat(tok, 64)
				if err != nil {
					return nil, types.NewValidationError("model file: malformed V row", err)
				}
				row[j] = v
			}
			vRows = append(vRows, row)
			continue
		}

		key, val, ok := splitKV(line)
		if !ok {
			continue
		}
		var perr error
		switch {
		case section == "model" && key == "p":
			p, perr = strconv.ParseFloat(val, 64)
		case section == "model" && key == "lambda":
			lambda, perr = strconv.ParseFloat(val, 64)
		case section == "model" && key == "kappa":
			kappa, perr = strconv.ParseFloat(val, 64)
		case section == "model" && key == "epsilon":
			epsilon, perr = strconv.ParseFloat(val, 64)
		case section == "model" && key == "weight_idx":
			weightIdx, perr = strconv.Atoi(val)
		case section == "data" && key == "n":
			n, perr = strconv.Atoi(val)
		case section == "data" && key == "m":
			mFeatures, perr = strconv.Atoi(val)
		case section == "data" && key == "K":
			k, perr = strconv.Atoi(val)
		}
		if perr != nil {
			return nil, types.NewValidationError(fmt.Sprintf("model file: invalid value for %s", key), perr)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, types.NewIOError("error reading model file", err)
	}
	if k < 2 {
		return nil, types.NewValidationError("model file: K must be at least 2", nil)
	}
	if len(vRows) != mFeatures+1 {
		return nil, types.NewValidationError(
			fmt.Sprintf("model file: expected %d V rows, got %d", mFeatures+1, len(vRows)), nil)
	}

	v := mat.NewDense(len(vRows), k-1, nil)
	for i, row := range vRows {
		for j, val := range row {
			v.Set(i, j, val)
		}
	}

	model := types.NewModel(p, lambda, kappa, epsilon, types.WeightScheme(weightIdx), nil)
	model.V = v
	model.State = types.StateConverged
	_ = n
	return model, nil
}

func splitKV(line string) (key, val string, ok bool) {
	idx := strings.Index(line, "=")
	if idx < 0 {
		return "", "", false
	}
	return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+1:]), true
}
