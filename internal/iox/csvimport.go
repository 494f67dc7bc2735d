// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package iox

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/bitjungle/gensvm/pkg/types"
	"gonum.org/v1/gonum/mat"
)

// LoadDatasetCSV is a supplemental convenience path alongside the native
// dataset-file format: a plain numeric CSV, optional header row, last
// column treated as the integer class label. Labels are relabeled the
// same way LoadDataset does.
func LoadDatasetCSV(path string, hasHeader bool) (*types.Dataset, error) {
	if err := ValidateInputPath(path); err != nil {
		return nil, types.NewIOError("cannot read CSV dataset", err)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, types.NewIOError("cannot open CSV dataset", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, types.NewIOError("cannot parse CSV dataset", err)
	}
	if hasHeader && len(records) > 0 {
		records = records[1:]
	}
	if len(records) == 0 {
		return nil, types.NewValidationError("CSV dataset has no data rows", nil)
	}

	n := len(records)
	m := len(records[0]) - 1
	if m <= 0 {
		return nil, types.NewValidationError("CSV dataset needs at least one feature column plus a label column", nil)
	}

	raw := mat.NewDense(n, m, nil)
	labels := make([]int, n)
	for i, row := range records {
		if len(row) != m+1 {
			return nil, types.NewValidationError("CSV dataset rows have inconsistent width", nil)
		}
		for j := 0; j < m; j++ {
			v, err := parseNumericValue(row[j])
			if err != nil {
				return nil, types.NewValidationError("CSV dataset: invalid feature value", err)
			}
			raw.Set(i, j, v)
		}
		lbl, err := strconv.Atoi(row[m])
		if err != nil {
			return nil, types.NewValidationError("CSV dataset: invalid label value", err)
		}
		labels[i] = lbl
	}

	minLabel, maxLabel := labels[0], labels[0]
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

	return types.NewDataset(raw, labels, maxLabel), nil
}
