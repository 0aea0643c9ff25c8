package dialog

// Event is one host-visible dialog outcome, delivered by [Dialogs.Poll].
// The concrete types below are the complete set; hosts type-switch on them
// the way they would on UI messages.
type Event interface {
	// Key reports the (family, kind) channel the event belongs to.
	Key() Key
}

// FileSaved reports a completed save: the user chose a target and the
// payload write ran. Err holds the write result; a failed write is still a
// completion, never a cancellation.
type FileSaved struct {
	Kind     Kind
	FileName string
	Err      error
	Data     any
}

func (e FileSaved) Key() Key { return Key{Family: FamilySave, Kind: e.Kind} }

// SaveCanceled reports that the user dismissed a save dialog.
type SaveCanceled struct {
	Kind Kind
}

func (e SaveCanceled) Key() Key { return Key{Family: FamilySave, Kind: e.Kind} }

// FileLoaded reports one loaded file. A multi-select load delivers one
// FileLoaded per chosen file, all surfacing in the same poll. Err holds
// the read result for this file; Contents is nil when it is set.
type FileLoaded struct {
	Kind     Kind
	FileName string
	Contents []byte
	Err      error
	Data     any
}

func (e FileLoaded) Key() Key { return Key{Family: FamilyLoad, Kind: e.Kind} }

// LoadCanceled reports that the user dismissed a load dialog.
type LoadCanceled struct {
	Kind Kind
}

func (e LoadCanceled) Key() Key { return Key{Family: FamilyLoad, Kind: e.Kind} }

// FilePicked reports one picked file path. No I/O runs for picks; pair a
// pick channel with your own I/O when load and save don't fit.
type FilePicked struct {
	Kind Kind
	Path string
	Data any
}

func (e FilePicked) Key() Key { return Key{Family: FamilyPickFile, Kind: e.Kind} }

// FilePickCanceled reports that the user dismissed a file picker.
type FilePickCanceled struct {
	Kind Kind
}

func (e FilePickCanceled) Key() Key { return Key{Family: FamilyPickFile, Kind: e.Kind} }

// DirectoryPicked reports one picked directory path.
type DirectoryPicked struct {
	Kind Kind
	Path string
	Data any
}

func (e DirectoryPicked) Key() Key { return Key{Family: FamilyPickDirectory, Kind: e.Kind} }

// DirectoryPickCanceled reports that the user dismissed a directory picker.
type DirectoryPickCanceled struct {
	Kind Kind
}

func (e DirectoryPickCanceled) Key() Key { return Key{Family: FamilyPickDirectory, Kind: e.Kind} }

// canceledEvent builds the cancellation event for a key's family. Families
// are validated at registration, so the switch is total.
func canceledEvent(key Key) Event {
	switch key.Family {
	case FamilySave:
		return SaveCanceled{Kind: key.Kind}
	case FamilyLoad:
		return LoadCanceled{Kind: key.Kind}
	case FamilyPickFile:
		return FilePickCanceled{Kind: key.Kind}
	default:
		return DirectoryPickCanceled{Kind: key.Kind}
	}
}
