// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.

// Package types provides the core data structures used throughout GenSVM:
// the loaded Dataset, the fitted Model and its working state, kernel
// specifications, grid specifications, and the structured error type.
//
// # Core Types
//
//   - Dataset: a loaded, bias-augmented feature matrix with integer labels.
//   - Model: the scalar hyperparameters, the primary variable V, and the
//     solver's derived working state (U, UU, Q, H, R, rho).
//   - KernelSpec: a tagged union of Linear/Poly/RBF/Sigmoid kernels.
//   - GridSpec / Task: the grid-search configuration and its enumerated work
//     items.
//
// # Data Structures
//
// Matrices are gonum *mat.Dense values in row-major order, where At(i, j)
// is row i, column j. This aligns with the dataset file format and the GenSVM paper's
// matrix notation.
//
// # Error Handling
//
// GenSVMError provides a structured error type for consistent error
// handling across the application. All errors include context for
// debugging and a Fatal flag distinguishing conditions that must unwind to
// the CLI entry point from ones that are logged and continued.
//
// # Thread Safety
//
// Types in this package are not thread-safe. A Model's working buffers are
// owned by exactly one fitter at a time; parallel grid workers must each
// own a private Model.
package types
