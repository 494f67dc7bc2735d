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
	"strings"

	"github.com/bitjungle/gensvm/pkg/types"
)

// WritePredictions writes one line per row of d: its raw features followed
// by the predicted label, space-separated.
func WritePredictions(path string, d *types.Dataset, yHat []int) error {
	if err := ValidateOutputPath(path); err != nil {
		return types.NewIOError("cannot write predictions file", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return types.NewIOError("cannot create predictions file", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	n, m := d.RawFeatures.Dims()
	for i := 0; i < n; i++ {
		parts := make([]string, 0, m+1)
		for j := 0; j < m; j++ {
			parts = append(parts, fmt.Sprintf("%g", d.RawFeatures.At(i, j)))
		}
		parts = append(parts, fmt.Sprintf("%d", yHat[i]))
		fmt.Fprintln(w, strings.Join(parts, " "))
	}
	return w.Flush()
}
