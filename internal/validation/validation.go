// Package validation provides input checks performed by the CLI before a
// run reaches the engine, so path mistakes surface as clear messages
// rather than mid-run failures.
package validation

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Common validation errors.
var (
	ErrEmptyPath    = errors.New("path cannot be empty")
	ErrNotAFile     = errors.New("not a regular file")
	ErrNotWritable  = errors.New("output directory not writable")
	ErrSameAsSource = errors.New("output path equals input path")
)

// ValidateInputFile verifies the input path names an existing regular file.
func ValidateInputFile(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("input file %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("input file %s: %w", path, ErrNotAFile)
	}
	return nil
}

// HasDocxExtension reports whether the path carries the conventional
// extension. Used for a warning only, never a hard failure.
func HasDocxExtension(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".docx")
}

// ValidateOutputPath verifies the output location is usable: it must not
// collide with the input, and its directory must exist (or be creatable)
// and be writable.
func ValidateOutputPath(inputPath, outputPath string) error {
	if outputPath == "" {
		return ErrEmptyPath
	}

	absIn, err1 := filepath.Abs(inputPath)
	absOut, err2 := filepath.Abs(outputPath)
	if err1 == nil && err2 == nil && absIn == absOut {
		return ErrSameAsSource
	}

	dir := filepath.Dir(outputPath)
	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("output directory %s: %w", dir, ErrNotWritable)
		}
	case err != nil:
		return fmt.Errorf("output directory %s: %w", dir, err)
	case !info.IsDir():
		return fmt.Errorf("output directory %s: not a directory", dir)
	}

	// Probe writability directly; permission bits lie on some filesystems.
	probe, err := os.CreateTemp(dir, ".docsimp-probe-*")
	if err != nil {
		return fmt.Errorf("output directory %s: %w", dir, ErrNotWritable)
	}
	probe.Close()
	os.Remove(probe.Name())
	return nil
}
