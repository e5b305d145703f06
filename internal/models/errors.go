package models

import "fmt"

// ErrorType represents different categories of errors
type ErrorType int

const (
	ErrRecipeParse ErrorType = iota
	ErrResolve
	ErrSource
	ErrBuild
	ErrPackage
	ErrSigning
	ErrFileOp
	ErrInvalidConfig
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrRecipeParse:
		return "RecipeParse"
	case ErrResolve:
		return "Resolve"
	case ErrSource:
		return "Source"
	case ErrBuild:
		return "Build"
	case ErrPackage:
		return "Package"
	case ErrSigning:
		return "Signing"
	case ErrFileOp:
		return "FileOp"
	case ErrInvalidConfig:
		return "InvalidConfig"
	default:
		return "Unknown"
	}
}

// ForgeError represents an error during a recipe run
type ForgeError struct {
	Type ErrorType
	Ref  string
	Err  error
}

// Error implements the error interface
func (e *ForgeError) Error() string {
	if e.Ref != "" {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Ref, e.Err)
	}
	return fmt.Sprintf("[%s] %v", e.Type, e.Err)
}

// Unwrap returns the wrapped error
func (e *ForgeError) Unwrap() error {
	return e.Err
}
