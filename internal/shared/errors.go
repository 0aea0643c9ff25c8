package shared

import "fmt"

var (
	// Storage errors
	ErrNotFound = fmt.Errorf("record not found")

	// Platform errors
	ErrUnsupportedPlatform = fmt.Errorf("unsupported platform")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
