package dialog

import "fmt"

var (
	// Setup errors returned by New
	ErrNoProvider            = fmt.Errorf("no dialog provider configured")
	ErrNoRegistrations       = fmt.Errorf("no dialog channels registered")
	ErrDuplicateRegistration = fmt.Errorf("dialog channel already registered")
	ErrEmptyKind             = fmt.Errorf("dialog kind must not be empty")
	ErrUnknownFamily         = fmt.Errorf("unknown dialog family")

	// Launch errors returned by builder terminal methods
	ErrNotRegistered = fmt.Errorf("dialog channel not registered")
)
