package validation

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// TestValidateInputFile verifies input path checks.
func TestValidateInputFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "doc.docx")
	if err := os.WriteFile(file, []byte("content"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := ValidateInputFile(file); err != nil {
		t.Errorf("existing file should validate: %v", err)
	}
	if err := ValidateInputFile(""); !errors.Is(err, ErrEmptyPath) {
		t.Errorf("empty path should fail with ErrEmptyPath, got %v", err)
	}
	if err := ValidateInputFile(filepath.Join(dir, "missing.docx")); err == nil {
		t.Error("missing file should fail validation")
	}
	if err := ValidateInputFile(dir); !errors.Is(err, ErrNotAFile) {
		t.Errorf("directory should fail with ErrNotAFile, got %v", err)
	}
}

// TestHasDocxExtension verifies case-insensitive extension detection.
func TestHasDocxExtension(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"report.docx", true},
		{"REPORT.DOCX", true},
		{"report.doc", false},
		{"report", false},
		{"archive.docx.zip", false},
	}
	for _, tt := range tests {
		if got := HasDocxExtension(tt.path); got != tt.want {
			t.Errorf("HasDocxExtension(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

// TestValidateOutputPath verifies output collision and directory handling.
func TestValidateOutputPath(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.docx")
	if err := os.WriteFile(input, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := ValidateOutputPath(input, filepath.Join(dir, "out.docx")); err != nil {
		t.Errorf("valid output path should pass: %v", err)
	}
	if err := ValidateOutputPath(input, input); !errors.Is(err, ErrSameAsSource) {
		t.Errorf("output equal to input should fail, got %v", err)
	}
	if err := ValidateOutputPath(input, ""); !errors.Is(err, ErrEmptyPath) {
		t.Errorf("empty output should fail with ErrEmptyPath, got %v", err)
	}

	// A missing directory is created on demand.
	nested := filepath.Join(dir, "a", "b", "out.docx")
	if err := ValidateOutputPath(input, nested); err != nil {
		t.Errorf("nested output dir should be created: %v", err)
	}
	if _, err := os.Stat(filepath.Dir(nested)); err != nil {
		t.Error("nested directory should exist after validation")
	}
}
