package models

import "fmt"

// ErrorType represents different categories of errors
type ErrorType int

const (
	ErrFetch ErrorType = iota
	ErrDecode
	ErrInvalidRecord
	ErrInvalidConfig
	ErrFileOp
	ErrSigning
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrFetch:
		return "Fetch"
	case ErrDecode:
		return "Decode"
	case ErrInvalidRecord:
		return "InvalidRecord"
	case ErrInvalidConfig:
		return "InvalidConfig"
	case ErrFileOp:
		return "FileOp"
	case ErrSigning:
		return "Signing"
	default:
		return "Unknown"
	}
}

// DiffError represents an error during a branch comparison
type DiffError struct {
	Type   ErrorType
	Branch string
	Err    error
}

// Error implements the error interface
func (e *DiffError) Error() string {
	if e.Branch != "" {
		return fmt.Sprintf("[%s] branch '%s': %v", e.Type, e.Branch, e.Err)
	}
	return fmt.Sprintf("[%s] %v", e.Type, e.Err)
}

// Unwrap returns the wrapped error
func (e *DiffError) Unwrap() error {
	return e.Err
}
