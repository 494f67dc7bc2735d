// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

// Package iox implements GenSVM's text I/O formats: dataset files, model
// files, predictions files, and grid-specification files.
package iox

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MaxFileSize bounds a readable dataset/model/grid file.
const MaxFileSize = 2 << 30 // 2 GiB

// systemDirectories must never be used as an output path. Limited to the
// paths that matter for a CLI tool writing model/prediction files.
var systemDirectories = []string{
	"/etc", "/bin", "/sbin", "/usr/bin", "/usr/sbin",
	"/sys", "/proc", "/dev", "/boot",
}

// ValidateInputPath checks that path names a regular file of at most
// MaxFileSize bytes and contains no null byte, before the caller opens it.
// The path is resolved to an absolute path first, so ".." components are
// accepted.
func ValidateInputPath(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("cannot resolve path: %w", err)
	}
	if err := validateBasicPath(absPath); err != nil {
		return fmt.Errorf("input path validation failed: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file does not exist: %s", absPath)
		}
		return fmt.Errorf("cannot access file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("not a regular file: %s", absPath)
	}
	if info.Size() > MaxFileSize {
		return fmt.Errorf("file too large: %d bytes (max %d)", info.Size(), MaxFileSize)
	}
	return nil
}

// ValidateOutputPath checks that path's parent directory exists, is
// writable, and is not a well-known system directory.
func ValidateOutputPath(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("cannot resolve path: %w", err)
	}
	if err := validateBasicPath(absPath); err != nil {
		return fmt.Errorf("output path validation failed: %w", err)
	}
	if err := checkSystemDirectory(absPath); err != nil {
		return err
	}

	dir := filepath.Dir(absPath)
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("parent directory does not exist: %s", dir)
		}
		return fmt.Errorf("cannot access parent directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("parent path is not a directory: %s", dir)
	}
	return nil
}

func validateBasicPath(path string) error {
	if path == "" {
		return fmt.Errorf("empty path")
	}
	if strings.Contains(path, "\x00") {
		return fmt.Errorf("null byte in path")
	}
	cleanPath := filepath.Clean(path)
	if !filepath.IsAbs(cleanPath) {
		for _, part := range strings.Split(filepath.ToSlash(cleanPath), "/") {
			if part == ".." {
				return fmt.Errorf("directory traversal detected")
			}
		}
	}
	return nil
}

func checkSystemDirectory(absPath string) error {
	normalized := filepath.Clean(strings.ToLower(absPath))
	for _, sysDir := range systemDirectories {
		if strings.HasPrefix(normalized, filepath.Clean(strings.ToLower(sysDir))) {
			return fmt.Errorf("cannot write to system directory: %s", sysDir)
		}
	}
	return nil
}
