package dialog

import (
	"context"
	"os"
	"path/filepath"
)

// Filter is one named extension filter, e.g. ("Text", "txt", "md").
// Extensions carry no leading dot.
type Filter struct {
	Name       string
	Extensions []string
}

// Config is the snapshot of builder state handed to the provider at launch.
// Empty fields mean no preference; providers fall back to platform
// defaults. Filters keep the order they were added in, and providers that
// render a filter list must present them in that order.
type Config struct {
	Filters   []Filter
	Directory string
	FileName  string
	Title     string
}

// Target identifies a file or directory chosen in a dialog. Name is the
// display base name, Path the full path.
type Target struct {
	Path string
	Name string
}

// NewTarget builds a Target from a path, deriving the display name.
func NewTarget(path string) Target {
	return Target{Path: path, Name: filepath.Base(path)}
}

// Provider presents selection dialogs. Implementations may block the
// calling goroutine for as long as the user deliberates; the bridge only
// ever calls them from background units, never from the tick thread.
//
// There is no error path. A picker either yields a selection or is
// dismissed: returning nil (or an empty slice) means the user dismissed
// the dialog, exactly that and nothing else. Multi-select methods return
// targets in the provider's selection order, which the bridge preserves
// through delivery.
type Provider interface {
	OpenSave(ctx context.Context, cfg Config) *Target
	OpenFile(ctx context.Context, cfg Config) *Target
	OpenFiles(ctx context.Context, cfg Config) []Target
	OpenDirectory(ctx context.Context, cfg Config) *Target
	OpenDirectories(ctx context.Context, cfg Config) []Target
}

// FS performs the payload I/O that follows a selection. Calls run on the
// background unit's goroutine, so blocking is fine. Failures are carried
// to the host inside completion events rather than surfacing anywhere
// else.
type FS interface {
	WriteFile(ctx context.Context, target Target, contents []byte) error
	ReadFile(ctx context.Context, target Target) ([]byte, error)
}

// OSFS is the default [FS], backed by the local filesystem.
type OSFS struct{}

func (OSFS) WriteFile(_ context.Context, target Target, contents []byte) error {
	return os.WriteFile(target.Path, contents, 0644)
}

func (OSFS) ReadFile(_ context.Context, target Target) ([]byte, error) {
	return os.ReadFile(target.Path)
}
