package ot

import (
	"errors"
	"fmt"
)

// ErrInvalidTableData is the error family for inconsistent layout table data.
// It is raised when a table is constructed, never when it is queried.
// Use errors.Is to test for it.
var ErrInvalidTableData = errors.New("invalid table data")

// ErrorSeverity represents the severity level of a table construction error.
type ErrorSeverity int

const (
	// SeverityCritical indicates an error that makes the table unusable.
	SeverityCritical ErrorSeverity = iota
	// SeverityMajor indicates a significant error; parts of the table have been dropped.
	SeverityMajor
	// SeverityMinor indicates a minor issue that can be safely ignored in most cases.
	SeverityMinor
)

// String returns a human-readable representation of the error severity.
func (s ErrorSeverity) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityMajor:
		return "MAJOR"
	case SeverityMinor:
		return "MINOR"
	default:
		return "UNKNOWN"
	}
}

// TableError represents an inconsistency found while constructing a layout table.
// TableError wraps ErrInvalidTableData.
type TableError struct {
	Section  string        // table or sub-table, e.g. "ClassSequenceContext"
	Issue    string        // human-readable description of the issue
	Severity ErrorSeverity // severity level of the error
}

// Error implements the error interface.
func (e TableError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Severity, e.Section, e.Issue)
}

// Unwrap makes TableError match ErrInvalidTableData with errors.Is.
func (e TableError) Unwrap() error {
	return ErrInvalidTableData
}

// InvalidTable creates a critical TableError for section, with an issue
// description formatted from format and args.
func InvalidTable(section string, format string, args ...any) error {
	err := TableError{
		Section:  section,
		Issue:    fmt.Sprintf(format, args...),
		Severity: SeverityCritical,
	}
	tracer().Debugf("%s", err.Error())
	return err
}

// Warning creates a minor TableError. Warnings describe data which has been
// repaired during construction; the resulting table is usable.
func Warning(section string, format string, args ...any) error {
	return TableError{
		Section:  section,
		Issue:    fmt.Sprintf(format, args...),
		Severity: SeverityMinor,
	}
}

// IsCritical reports whether err contains a critical TableError.
func IsCritical(err error) bool {
	var terr TableError
	if errors.As(err, &terr) {
		return terr.Severity == SeverityCritical
	}
	return false
}
