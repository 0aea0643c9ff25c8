package provider

import (
	"context"

	"github.com/desertthunder/filedialog/dialog"
)

// Mode says which widget a terminal host should present for a request.
// It is derived from the provider method called, which is the only place
// single and multi selection are distinguishable.
type Mode int

const (
	ModeSave Mode = iota
	ModeFile
	ModeFiles
	ModeDirectory
	ModeDirectories
)

func (m Mode) String() string {
	switch m {
	case ModeSave:
		return "save"
	case ModeFile:
		return "file"
	case ModeFiles:
		return "files"
	case ModeDirectory:
		return "directory"
	case ModeDirectories:
		return "directories"
	default:
		return ""
	}
}

// Multiple reports whether the host may respond with more than one target.
func (m Mode) Multiple() bool {
	return m == ModeFiles || m == ModeDirectories
}

// Request is one dialog a terminal host should present. The host shows a
// widget matching Mode and Config, then calls [Request.Respond] exactly
// once with the user's selection.
type Request struct {
	Mode   Mode
	Config dialog.Config
	reply  chan []dialog.Target
}

// Respond resolves the request. No targets means the user dismissed the
// dialog. Calling it a second time panics on the closed channel, matching
// the one-outcome contract.
func (r Request) Respond(targets ...dialog.Target) {
	r.reply <- targets
	close(r.reply)
}

// Term is a [dialog.Provider] for hosts that render their own pickers.
// Each Open call turns into a [Request] on [Term.Requests] and blocks its
// background unit until the host responds. Requests queue when several
// dialogs are in flight; the host presents them one at a time.
type Term struct {
	requests chan Request
}

// NewTerm creates a terminal-bridged provider. depth bounds how many
// unpresented requests may queue before launches wait their turn.
func NewTerm(depth int) *Term {
	if depth <= 0 {
		depth = 8
	}
	return &Term{requests: make(chan Request, depth)}
}

// Requests is the stream of dialogs awaiting presentation.
func (t *Term) Requests() <-chan Request {
	return t.requests
}

// open posts a request and waits for the host's response. A done context
// resolves as a dismissal so units never outlive the host.
func (t *Term) open(ctx context.Context, mode Mode, cfg dialog.Config) []dialog.Target {
	req := Request{Mode: mode, Config: cfg, reply: make(chan []dialog.Target, 1)}
	select {
	case t.requests <- req:
	case <-ctx.Done():
		return nil
	}
	select {
	case targets := <-req.reply:
		return targets
	case <-ctx.Done():
		return nil
	}
}

func (t *Term) OpenSave(ctx context.Context, cfg dialog.Config) *dialog.Target {
	return first(t.open(ctx, ModeSave, cfg))
}

func (t *Term) OpenFile(ctx context.Context, cfg dialog.Config) *dialog.Target {
	return first(t.open(ctx, ModeFile, cfg))
}

func (t *Term) OpenFiles(ctx context.Context, cfg dialog.Config) []dialog.Target {
	return t.open(ctx, ModeFiles, cfg)
}

func (t *Term) OpenDirectory(ctx context.Context, cfg dialog.Config) *dialog.Target {
	return first(t.open(ctx, ModeDirectory, cfg))
}

func (t *Term) OpenDirectories(ctx context.Context, cfg dialog.Config) []dialog.Target {
	return t.open(ctx, ModeDirectories, cfg)
}
