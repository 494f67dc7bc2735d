// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package types

import "testing"

func TestIsLinear(t *testing.T) {
	if !IsLinear(nil) {
		t.Error("nil spec should be treated as linear")
	}
	if !IsLinear(LinearKernel{}) {
		t.Error("LinearKernel should be linear")
	}
	if IsLinear(RBFKernel{Gamma: 1}) {
		t.Error("RBFKernel should not be linear")
	}
}

func TestParseKernelNameCaseInsensitive(t *testing.T) {
	cases := map[string]KernelSpec{
		"LINEAR": LinearKernel{}, "linear": LinearKernel{},
		"RBF": RBFKernel{}, "rbf": RBFKernel{},
		"POLY": PolyKernel{}, "SIGMOID": SigmoidKernel{},
	}
	for name, want := range cases {
		got, err := ParseKernelName(name)
		if err != nil {
			t.Fatalf("ParseKernelName(%q): %v", name, err)
		}
		if got != want {
			t.Errorf("ParseKernelName(%q) = %#v, want %#v", name, got, want)
		}
	}
}

func TestParseKernelNameUnknown(t *testing.T) {
	if _, err := ParseKernelName("GAUSSIAN"); err == nil {
		t.Fatal("expected an error for an unknown kernel name")
	}
}
