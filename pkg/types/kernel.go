// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package types

import (
	"fmt"
	"strings"
)

// KernelSpec is a tagged union of the four kernel families GenSVM supports.
// It replaces a flat "kernel type string plus parallel gamma/degree/coef0
// fields" design: each variant only carries the parameters that are
// meaningful for it, so a kernel engine dispatching on KernelSpec via a type
// switch cannot silently fall through to the wrong branch or read an
// ignored parameter.
type KernelSpec interface {
	kernelSpec()
	// Name returns the grid-spec/model-file keyword for this kernel.
	Name() string
}

// LinearKernel requests no kernel preprocessing; Z stays the raw
// bias-augmented feature matrix.
type LinearKernel struct{}

func (LinearKernel) kernelSpec() {}

// Name implements KernelSpec.
func (LinearKernel) Name() string { return "LINEAR" }

// PolyKernel computes (Gamma*<x,x'> + Coef0)^Degree.
type PolyKernel struct {
	Gamma  float64
	Coef0  float64
	Degree int
}

func (PolyKernel) kernelSpec() {}

// Name implements KernelSpec.
func (PolyKernel) Name() string { return "POLY" }

// RBFKernel computes exp(-Gamma*||x-x'||^2).
type RBFKernel struct {
	Gamma float64
}

func (RBFKernel) kernelSpec() {}

// Name implements KernelSpec.
func (RBFKernel) Name() string { return "RBF" }

// SigmoidKernel computes tanh(Gamma*<x,x'> + Coef0).
type SigmoidKernel struct {
	Gamma float64
	Coef0 float64
}

func (SigmoidKernel) kernelSpec() {}

// Name implements KernelSpec.
func (SigmoidKernel) Name() string { return "SIGMOID" }

// IsLinear reports whether spec requests no kernel transform. A nil spec is
// treated as linear, matching a freshly zero-valued Model.
func IsLinear(spec KernelSpec) bool {
	if spec == nil {
		return true
	}
	_, ok := spec.(LinearKernel)
	return ok
}

// ParseKernelName maps a grid-spec/CLI kernel keyword to a zero-valued
// KernelSpec variant (parameters are filled in separately). Returns an
// error for any keyword other than LINEAR, POLY, RBF, and SIGMOID, matched
// in any letter case.
func ParseKernelName(name string) (KernelSpec, error) {
	switch strings.ToUpper(name) {
	case "LINEAR":
		return LinearKernel{}, nil
	case "POLY":
		return PolyKernel{}, nil
	case "RBF":
		return RBFKernel{}, nil
	case "SIGMOID":
		return SigmoidKernel{}, nil
	default:
		return nil, fmt.Errorf("unknown kernel type: %q", name)
	}
}
