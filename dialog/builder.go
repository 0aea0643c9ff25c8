package dialog

// Builder accumulates dialog configuration before a launch. Create one with
// [Dialogs.Dialog], chain setters, then finish with exactly one terminal
// method. The terminal call snapshots the configuration, starts the
// background unit, and returns; the only error it can report is launching
// against a channel that was never registered.
type Builder struct {
	d    *Dialogs
	cfg  Config
	data any
}

// AddFilter appends a named extension filter. Repeated calls accumulate,
// and the provider receives filters in insertion order.
func (b *Builder) AddFilter(name string, extensions ...string) *Builder {
	b.cfg.Filters = append(b.cfg.Filters, Filter{
		Name:       name,
		Extensions: append([]string(nil), extensions...),
	})
	return b
}

// SetDirectory sets the dialog's starting directory. Setting it to the
// empty string clears an earlier hint and restores the platform default.
func (b *Builder) SetDirectory(path string) *Builder {
	b.cfg.Directory = path
	return b
}

// SetFileName sets the pre-filled file name. Last write wins.
func (b *Builder) SetFileName(name string) *Builder {
	b.cfg.FileName = name
	return b
}

// SetTitle sets the dialog window title. Last write wins.
func (b *Builder) SetTitle(title string) *Builder {
	b.cfg.Title = title
	return b
}

// SetData attaches an opaque payload to the launch. Completion events for
// the launch echo it back in their Data field; cancellation events do not
// carry it.
func (b *Builder) SetData(data any) *Builder {
	b.data = data
	return b
}

// snapshot copies the accumulated configuration so the launched unit owns
// an independent value even if the builder is reused afterwards.
func (b *Builder) snapshot() Config {
	cfg := b.cfg
	cfg.Filters = append([]Filter(nil), b.cfg.Filters...)
	return cfg
}

// SaveFile opens a save dialog on kind's channel and writes contents to
// whatever target the user picks. The outcome arrives later as a
// [FileSaved] or [SaveCanceled] event.
func (b *Builder) SaveFile(kind Kind, contents []byte) error {
	return b.d.launchSave(b.snapshot(), kind, contents, b.data)
}

// LoadFile opens a single-file load dialog on kind's channel and reads the
// chosen file. The outcome arrives as a [FileLoaded] or [LoadCanceled]
// event.
func (b *Builder) LoadFile(kind Kind) error {
	return b.d.launchLoad(b.snapshot(), kind, b.data, false)
}

// LoadMultipleFiles opens a multi-file load dialog on kind's channel. A
// selection of k files arrives as k [FileLoaded] events in one poll, in
// selection order; dismissal arrives as a single [LoadCanceled].
func (b *Builder) LoadMultipleFiles(kind Kind) error {
	return b.d.launchLoad(b.snapshot(), kind, b.data, true)
}

// PickFile opens a single-file picker on kind's channel. The outcome
// arrives as a [FilePicked] or [FilePickCanceled] event; no I/O runs.
func (b *Builder) PickFile(kind Kind) error {
	return b.d.launchPick(b.snapshot(), FamilyPickFile, kind, b.data, false)
}

// PickMultipleFiles opens a multi-file picker on kind's channel. A
// selection of k files arrives as k [FilePicked] events in one poll.
func (b *Builder) PickMultipleFiles(kind Kind) error {
	return b.d.launchPick(b.snapshot(), FamilyPickFile, kind, b.data, true)
}

// PickDirectory opens a single-directory picker on kind's channel. The
// outcome arrives as a [DirectoryPicked] or [DirectoryPickCanceled] event.
func (b *Builder) PickDirectory(kind Kind) error {
	return b.d.launchPick(b.snapshot(), FamilyPickDirectory, kind, b.data, false)
}

// PickMultipleDirectories opens a multi-directory picker on kind's
// channel. A selection of k directories arrives as k [DirectoryPicked]
// events in one poll.
func (b *Builder) PickMultipleDirectories(kind Kind) error {
	return b.d.launchPick(b.snapshot(), FamilyPickDirectory, kind, b.data, true)
}
