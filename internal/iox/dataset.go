// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package iox

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bitjungle/gensvm/pkg/types"
	"gonum.org/v1/gonum/mat"
)

// maxLineBytes bounds a single dataset-file line.
const maxLineBytes = 1024

// parseNumericValue parses a dataset feature value, accepting the special
// float spellings a text dataset may carry (GenSVM datasets are not
// locale-sensitive, so no decimal-separator handling is needed).
func parseNumericValue(value string) (float64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, fmt.Errorf("cannot parse empty string as number")
	}
	if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return v, nil
	}
	switch strings.ToLower(trimmed) {
	case "inf", "+inf", "infinity", "+infinity":
		return math.Inf(1), nil
	case "-inf", "-infinity":
		return math.Inf(-1), nil
	case "nan":
		return math.NaN(), nil
	}
	return 0, fmt.Errorf("cannot parse %q as number", trimmed)
}

// LoadDataset reads a dataset text file: a header line "n m", then n rows
// of m floats optionally followed by an integer label.
// Labels are relabeled so the minimum is 1; a negative minimum label is a
// fatal Input-format error. A path ending in .csv is routed to the CSV
// interop loader instead (header row, last column as label).
func LoadDataset(path string) (*types.Dataset, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return LoadDatasetCSV(path, true)
	}
	if err := ValidateInputPath(path); err != nil {
		return nil, types.NewIOError("cannot read dataset file", err)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, types.NewIOError("cannot open dataset file", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	buf := make([]byte, maxLineBytes)
	scanner.Buffer(buf, maxLineBytes)

	if !scanner.Scan() {
		return nil, types.NewValidationError("dataset file is empty", nil)
	}
	header := strings.Fields(scanner.Text())
	if len(header) != 2 {
		return nil, types.NewValidationError("dataset header must have exactly two fields: n m", nil)
	}
	n, err1 := strconv.Atoi(header[0])
	m, err2 := strconv.Atoi(header[1])
	if err1 != nil || err2 != nil || n <= 0 || m <= 0 {
		return nil, types.NewValidationError("dataset header n, m must be positive integers", nil)
	}

	raw := mat.NewDense(n, m, nil)
	var labels []int
	haveLabels := false

	for i := 0; i < n; i++ {
		if !scanner.Scan() {
			return nil, types.NewValidationError(
				fmt.Sprintf("dataset file ends early: expected %d rows, got %d", n, i), nil)
		}
		fields := strings.Fields(scanner.Text())

		rowHasLabel := len(fields) == m+1
		if i == 0 {
			haveLabels = rowHasLabel
			if haveLabels {
				labels = make([]int, n)
			}
		}
		expected := m
		if haveLabels {
			expected = m + 1
		}
		if len(fields) != expected {
			return nil, types.NewValidationError(
				fmt.Sprintf("row %d: expected %d fields, got %d", i, expected, len(fields)), nil)
		}

		for j := 0; j < m; j++ {
			v, err := parseNumericValue(fields[j])
			if err != nil {
				return nil, types.NewValidationError(fmt.Sprintf("row %d, column %d: %v", i, j, err), err)
			}
			raw.Set(i, j, v)
		}
		if haveLabels {
			lbl, err := strconv.Atoi(fields[m])
			if err != nil {
				return nil, types.NewValidationError(fmt.Sprintf("row %d: invalid integer label", i), err)
			}
			labels[i] = lbl
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, types.NewIOError("error reading dataset file", err)
	}

	k := 0
	if haveLabels {
		minLabel := labels[0]
		maxLabel := labels[0]
		for _, l := range labels {
			if l < minLabel {
				minLabel = l
			}
			if l > maxLabel {
				maxLabel = l
			}
		}
		if minLabel < 0 {
			return nil, types.NewValidationError("negative class label", nil)
		}
		if minLabel == 0 {
			for i := range labels {
				labels[i]++
			}
			maxLabel++
		}
		k = maxLabel
	}

	return types.NewDataset(raw, labels, k), nil
}
