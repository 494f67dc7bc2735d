// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package alloc

import (
	"testing"

	"github.com/bitjungle/gensvm/pkg/types"
)

func TestGuardAllocUnderLimit(t *testing.T) {
	if err := GuardAlloc(10, 10, "test"); err != nil {
		t.Errorf("expected no error for a small buffer, got %v", err)
	}
}

func TestGuardAllocOverLimit(t *testing.T) {
	orig := MaxBytes
	MaxBytes = 100
	defer func() { MaxBytes = orig }()

	err := GuardAlloc(1000, 1000, "test.Step")
	if err == nil {
		t.Fatal("expected an allocation error")
	}
	gerr, ok := err.(*types.GenSVMError)
	if !ok {
		t.Fatalf("expected *types.GenSVMError, got %T", err)
	}
	if !gerr.Fatal {
		t.Error("allocation errors must be fatal per policy")
	}
	if gerr.Context["call_site"] != "test.Step" {
		t.Errorf("expected call site in context, got %v", gerr.Context)
	}
}

func TestFormatBytes(t *testing.T) {
	cases := map[int64]string{
		500:             "500 B",
		2048:            "2.00 KB",
		5 * 1024 * 1024: "5.00 MB",
	}
	for bytes, want := range cases {
		if got := FormatBytes(bytes); got != want {
			t.Errorf("FormatBytes(%d) = %q, want %q", bytes, got, want)
		}
	}
}
