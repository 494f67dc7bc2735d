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

	"github.com/bitjungle/gensvm/internal/config"
	"github.com/bitjungle/gensvm/pkg/types"
)

// ParseGridSpec reads a grid-specification file: one directive per line, in
// any order. Unknown lines are warned (via warn) and ignored; config
// conflicts (e.g. gamma with LINEAR) are non-fatal.
func ParseGridSpec(path string, warn func(string)) (*types.GridSpec, error) {
	if err := ValidateInputPath(path); err != nil {
		return nil, types.NewIOError("cannot read grid spec file", err)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, types.NewIOError("cannot open grid spec file", err)
	}
	defer f.Close()

	defaults := config.DefaultConfig().Grid
	g := &types.GridSpec{Folds: defaults.DefaultFolds, Repeats: defaults.DefaultRepeats, KernelName: "LINEAR"}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, rest, ok := strings.Cut(line, ":")
		if !ok {
			warn(fmt.Sprintf("unrecognized grid spec line: %q", line))
			continue
		}
		key = strings.TrimSpace(key)
		rest = strings.TrimSpace(rest)

		switch key {
		case "train":
			g.TrainPath = rest
		case "test":
			g.TestPath = rest
		case "p":
			g.P, err = parseFloats(rest)
		case "lambda":
			g.Lambda, err = parseFloats(rest)
		case "kappa":
			g.Kappa, err = parseFloats(rest)
		case "epsilon":
			g.Epsilon, err = parseFloats(rest)
		case "weight":
			var ints []int
			ints, err = parseInts(rest)
			for _, v := range ints {
				g.Weight = append(g.Weight, types.WeightScheme(v))
			}
		case "folds":
			g.Folds, err = firstInt(rest, key, warn)
		case "repeats":
			g.Repeats, err = firstInt(rest, key, warn)
		case "kernel":
			g.KernelName = strings.ToUpper(rest)
		case "gamma":
			g.Gamma, err = parseFloats(rest)
		case "coef":
			g.Coef, err = parseFloats(rest)
		case "degree":
			g.Degree, err = parseInts(rest)
		default:
			warn(fmt.Sprintf("unrecognized grid spec directive: %q", key))
			continue
		}
		if err != nil {
			return nil, types.NewValidationError(fmt.Sprintf("grid spec: invalid value for %s", key), err)
		}
	}
	if serr := scanner.Err(); serr != nil {
		return nil, types.NewIOError("error reading grid spec file", serr)
	}
	if g.TrainPath == "" {
		return nil, types.NewValidationError("grid spec: train: path is required", nil)
	}

	applyKernelConflicts(g, warn)
	return g, nil
}

// applyKernelConflicts warns and drops kernel parameters that don't apply
// to the selected kernel.
func applyKernelConflicts(g *types.GridSpec, warn func(string)) {
	switch g.KernelName {
	case "LINEAR":
		if len(g.Gamma) > 0 {
			warn("gamma specified with LINEAR kernel, ignoring")
			g.Gamma = nil
		}
		if len(g.Coef) > 0 {
			warn("coef specified with LINEAR kernel, ignoring")
			g.Coef = nil
		}
	case "RBF":
		if len(g.Coef) > 0 {
			warn("coef specified with RBF kernel, ignoring")
			g.Coef = nil
		}
	}
	if g.KernelName != "POLY" && len(g.Degree) > 0 {
		warn("degree specified without POLY kernel, ignoring")
		g.Degree = nil
	}
}

func parseFloats(s string) ([]float64, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("expected at least one value")
	}
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseInts(s string) ([]int, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("expected at least one value")
	}
	out := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func firstInt(s, key string, warn func(string)) (int, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0, fmt.Errorf("expected at least one value")
	}
	if len(fields) > 1 {
		warn(fmt.Sprintf("%s takes a single value, ignoring %d extra", key, len(fields)-1))
	}
	return strconv.Atoi(fields[0])
}
