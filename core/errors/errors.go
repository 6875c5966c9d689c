// Package errors provides the standardized error taxonomy for docsimp.
//
// Every failure surfaced by the engine unwraps to one of the sentinel
// errors below, so callers can classify with errors.Is without depending
// on message text.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrNotAZip indicates the input is not a readable zip container.
	ErrNotAZip = errors.New("not a zip archive")
	// ErrMissingPart indicates a mandatory package part is absent.
	ErrMissingPart = errors.New("missing mandatory part")
	// ErrInvalidLevel indicates a simplification level outside 0-8.
	ErrInvalidLevel = errors.New("invalid simplification level")
	// ErrMalformedXML indicates a target part's content is not well-formed.
	ErrMalformedXML = errors.New("malformed xml")
	// ErrCancelled indicates the run was cancelled before writing output.
	ErrCancelled = errors.New("run cancelled")
)

// PackageError represents a container-level failure: the input is not a
// valid archive, or a mandatory part is missing.
type PackageError struct {
	Path   string // input archive path
	Part   string // mandatory part name, if the failure is a missing part
	Reason string // human-readable detail
	Err    error  // underlying error, if any
}

func (e *PackageError) Error() string {
	if e.Part != "" {
		return fmt.Sprintf("invalid package %s: missing %s", e.Path, e.Part)
	}
	if e.Err != nil {
		return fmt.Sprintf("invalid package %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid package %s: %s", e.Path, e.Reason)
}

// Unwrap returns the classification sentinel. The underlying cause, when
// present, is carried in the message only, so errors.Is against the
// sentinels always works.
func (e *PackageError) Unwrap() error {
	if e.Part != "" {
		return ErrMissingPart
	}
	return ErrNotAZip
}

// ParseError represents a target part whose XML content is not well-formed.
type ParseError struct {
	Part string // part name inside the package (e.g. word/document.xml)
	Err  error  // underlying decoder error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Part, e.Err)
}

func (e *ParseError) Unwrap() error {
	return ErrMalformedXML
}

// ConfigError represents an invalid run configuration, detected before the
// package is opened.
type ConfigError struct {
	Field   string // configuration field (e.g. "level")
	Value   string // offending value
	Message string // human-readable detail
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidLevel
}

// IOError represents a filesystem failure, surfaced with the path involved.
type IOError struct {
	Op   string // operation being performed (e.g. "read", "write", "rename")
	Path string // file path involved
	Err  error  // underlying error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Helper constructors

// NewNotAZip creates a PackageError for an unreadable archive.
func NewNotAZip(path string, err error) *PackageError {
	return &PackageError{Path: path, Reason: "not a zip archive", Err: err}
}

// NewMissingPart creates a PackageError for an absent mandatory part.
func NewMissingPart(path, part string) *PackageError {
	return &PackageError{Path: path, Part: part}
}

// NewParse creates a ParseError for a malformed target part.
func NewParse(part string, err error) *ParseError {
	return &ParseError{Part: part, Err: err}
}

// NewInvalidLevel creates a ConfigError for an out-of-range level.
func NewInvalidLevel(level int) *ConfigError {
	return &ConfigError{
		Field:   "level",
		Value:   fmt.Sprintf("%d", level),
		Message: "must be between 0 and 8",
	}
}

// NewIO creates an IOError.
func NewIO(op, path string, err error) *IOError {
	return &IOError{Op: op, Path: path, Err: err}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
