// Package common provides shared utilities and types used across the application.
package common

import "errors"

// Common application errors.
var (
	// Import errors.
	ErrNoExpenses    = errors.New("no expenses to import")
	ErrInvalidFormat = errors.New("invalid file format")
)
