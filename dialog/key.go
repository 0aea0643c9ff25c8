package dialog

import "fmt"

// Family enumerates the dialog operation categories. Single and
// multi-select variants share a family; a multi-select outcome is just the
// batch form of the same channel's results.
type Family int

const (
	FamilySave Family = iota
	FamilyLoad
	FamilyPickFile
	FamilyPickDirectory
)

func (f Family) String() string {
	switch f {
	case FamilySave:
		return "save"
	case FamilyLoad:
		return "load"
	case FamilyPickFile:
		return "pick_file"
	case FamilyPickDirectory:
		return "pick_directory"
	default:
		return ""
	}
}

// valid reports whether f is one of the declared families. Guards New
// against arithmetic on the enum.
func (f Family) valid() bool {
	return f >= FamilySave && f <= FamilyPickDirectory
}

// Kind labels independent dialog channels within a family. Two kinds never
// share a mailbox, so their events cannot cross-deliver.
type Kind string

// Key identifies one dialog channel: a (family, kind) pair. At most one
// mailbox exists per key.
type Key struct {
	Family Family
	Kind   Kind
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s", k.Family, k.Kind)
}

// Registration declares one dialog channel for [New] to open. Registrations
// are plain data and are applied in order; that order is also the order
// [Dialogs.Poll] visits mailboxes.
type Registration struct {
	Family Family
	Kind   Kind
}

// WithSave declares a save-file channel for kind.
func WithSave(kind Kind) Registration {
	return Registration{Family: FamilySave, Kind: kind}
}

// WithLoad declares a load-file channel for kind. One registration covers
// both [Builder.LoadFile] and [Builder.LoadMultipleFiles].
func WithLoad(kind Kind) Registration {
	return Registration{Family: FamilyLoad, Kind: kind}
}

// WithPickFile declares a pick-file channel for kind, covering both
// [Builder.PickFile] and [Builder.PickMultipleFiles].
func WithPickFile(kind Kind) Registration {
	return Registration{Family: FamilyPickFile, Kind: kind}
}

// WithPickDirectory declares a pick-directory channel for kind, covering
// both [Builder.PickDirectory] and [Builder.PickMultipleDirectories].
func WithPickDirectory(kind Kind) Registration {
	return Registration{Family: FamilyPickDirectory, Kind: kind}
}
