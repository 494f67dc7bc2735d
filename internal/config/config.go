// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package config

// CLIConfig holds configuration shared by the three GenSVM entry points.
type CLIConfig struct {
	// Fit configuration
	Fit FitConfig `json:"fit"`

	// Output configuration
	Output OutputConfig `json:"output"`

	// Grid configuration
	Grid GridConfig `json:"grid"`
}

// FitConfig holds the solver's default hyperparameters, used when a CLI
// flag is not supplied.
type FitConfig struct {
	P       float64 `json:"p"`
	Lambda  float64 `json:"lambda"`
	Kappa   float64 `json:"kappa"`
	Epsilon float64 `json:"epsilon"`
	Weight  int     `json:"weight_idx"`
}

// OutputConfig holds output file configuration.
type OutputConfig struct {
	// Suffix for output files when -o is not given explicitly.
	FileSuffix string `json:"file_suffix"`

	// Whether to create the output directory if it doesn't exist. The
	// writers in internal/iox do not read this field: they fail when the
	// output file's parent directory is missing.
	CreateOutputDir bool `json:"create_output_dir"`
}

// GridConfig holds the grid-search driver's defaults.
type GridConfig struct {
	DefaultFolds   int `json:"default_folds"`
	DefaultRepeats int `json:"default_repeats"`
}

// DefaultConfig returns GenSVM's default configuration.
func DefaultConfig() *CLIConfig {
	return &CLIConfig{
		Fit: FitConfig{
			P:       1.0,
			Lambda:  1.0,
			Kappa:   0.0,
			Epsilon: 1e-6,
			Weight:  1,
		},
		Output: OutputConfig{
			FileSuffix:      "_model",
			CreateOutputDir: true,
		},
		Grid: GridConfig{
			DefaultFolds:   10,
			DefaultRepeats: 0,
		},
	}
}
