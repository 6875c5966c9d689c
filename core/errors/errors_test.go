package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TestPackageErrorNotAZip verifies classification of unreadable archives.
func TestPackageErrorNotAZip(t *testing.T) {
	err := NewNotAZip("/tmp/broken.docx", fmt.Errorf("zip: not a valid zip file"))

	if !errors.Is(err, ErrNotAZip) {
		t.Error("PackageError without a part should unwrap to ErrNotAZip")
	}
	if errors.Is(err, ErrMissingPart) {
		t.Error("PackageError without a part should not match ErrMissingPart")
	}
	if !strings.Contains(err.Error(), "/tmp/broken.docx") {
		t.Errorf("error message should name the path: %v", err)
	}
	if !strings.Contains(err.Error(), "not a valid zip file") {
		t.Errorf("error message should carry the underlying cause: %v", err)
	}
}

// TestPackageErrorMissingPart verifies classification of incomplete packages.
func TestPackageErrorMissingPart(t *testing.T) {
	err := NewMissingPart("doc.docx", "word/document.xml")

	if !errors.Is(err, ErrMissingPart) {
		t.Error("PackageError with a part should unwrap to ErrMissingPart")
	}
	if !strings.Contains(err.Error(), "word/document.xml") {
		t.Errorf("error message should name the missing part: %v", err)
	}
}

// TestParseError verifies malformed-XML errors carry the part name.
func TestParseError(t *testing.T) {
	underlying := fmt.Errorf("unexpected EOF")
	err := NewParse("word/footnotes.xml", underlying)

	if !errors.Is(err, ErrMalformedXML) {
		t.Error("ParseError should unwrap to ErrMalformedXML")
	}
	if !strings.Contains(err.Error(), "word/footnotes.xml") {
		t.Errorf("error message should name the offending part: %v", err)
	}
}

// TestConfigErrorInvalidLevel verifies level validation errors.
func TestConfigErrorInvalidLevel(t *testing.T) {
	for _, level := range []int{-1, 9, 100} {
		err := NewInvalidLevel(level)
		if !errors.Is(err, ErrInvalidLevel) {
			t.Errorf("level %d: should unwrap to ErrInvalidLevel", level)
		}
		if !strings.Contains(err.Error(), fmt.Sprintf("%d", level)) {
			t.Errorf("level %d: message should include the value: %v", level, err)
		}
	}
}

// TestIOErrorUnwrap verifies IOError preserves the underlying error.
func TestIOErrorUnwrap(t *testing.T) {
	underlying := errors.New("permission denied")
	err := NewIO("write", "/out/result.docx", underlying)

	if !errors.Is(err, underlying) {
		t.Error("IOError should unwrap to the underlying error")
	}
	if !strings.Contains(err.Error(), "/out/result.docx") {
		t.Errorf("error message should name the path: %v", err)
	}
}

// TestWrap verifies nil handling and message prefixing.
func TestWrap(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should return nil")
	}
	if Wrapf(nil, "context %d", 1) != nil {
		t.Error("Wrapf(nil) should return nil")
	}

	base := errors.New("base")
	wrapped := Wrap(base, "opening package")
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error should match the base error")
	}
	if !strings.HasPrefix(wrapped.Error(), "opening package: ") {
		t.Errorf("unexpected message: %v", wrapped)
	}
}
