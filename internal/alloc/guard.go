// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

// Package alloc guards the solver's per-iteration working-buffer
// allocations against runaway sizes, reporting a fatal Allocation error
// with the requested byte count and call site.
//
// This is a single pre-allocation size check rather than a running memory
// profile: only a byte-estimate and a human-readable formatting helper are
// needed here.
package alloc

import (
	"fmt"
	"os"
	"strconv"

	"github.com/bitjungle/gensvm/pkg/types"
)

// MaxBytes is the default ceiling for a single working-buffer allocation.
// Overridable via the GENSVM_MAX_ALLOC_BYTES environment variable for
// users fitting unusually large kernel matrices.
var MaxBytes int64 = 4 << 30 // 4 GiB

func init() {
	if v := os.Getenv("GENSVM_MAX_ALLOC_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			MaxBytes = n
		}
	}
}

// EstimateBytes estimates the memory a rows x cols float64 matrix needs,
// including per-row slice overhead for the row-major boundary
// representation.
func EstimateBytes(rows, cols int) int64 {
	dataSize := int64(rows) * int64(cols) * 8
	sliceOverhead := int64(rows) * 24
	return dataSize + sliceOverhead
}

// GuardAlloc returns a fatal Allocation error if a rows x cols float64
// buffer would exceed MaxBytes, naming callSite for the error's context.
func GuardAlloc(rows, cols int, callSite string) error {
	size := EstimateBytes(rows, cols)
	if size > MaxBytes {
		msg := fmt.Sprintf("working buffer of %s exceeds the %s allocation limit",
			FormatBytes(size), FormatBytes(MaxBytes))
		return types.NewAllocationError(msg, size, callSite)
	}
	return nil
}

// FormatBytes formats a byte count in human-readable form for the
// Allocation error message.
func FormatBytes(bytes int64) string {
	const (
		kb = 1024
		mb = kb * 1024
		gb = mb * 1024
	)
	switch {
	case bytes >= gb:
		return fmt.Sprintf("%.2f GB", float64(bytes)/gb)
	case bytes >= mb:
		return fmt.Sprintf("%.2f MB", float64(bytes)/mb)
	case bytes >= kb:
		return fmt.Sprintf("%.2f KB", float64(bytes)/kb)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
