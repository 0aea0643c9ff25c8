package provider

import (
	"context"
	"sync"
	"time"

	"github.com/desertthunder/filedialog/dialog"
)

// Response is one canned dialog outcome. The zero value is an immediate
// dismissal. Delay holds the dialog open before resolving, imitating a
// user who thinks; Release, when set, holds it open until the channel is
// closed, putting resolution timing in the caller's hands.
type Response struct {
	Targets []dialog.Target
	Delay   time.Duration
	Release <-chan struct{}
}

// Script holds the canned responses per picker method, consumed in order.
// An exhausted queue dismisses, so a script only describes the launches it
// cares about.
type Script struct {
	Saves          []Response
	Files          []Response
	FileLists      []Response
	Directories    []Response
	DirectoryLists []Response
}

// Scripted is a [dialog.Provider] that replays a [Script]. It also records
// every configuration it receives, in call order, so tests can assert on
// what a launch actually requested.
type Scripted struct {
	mu      sync.Mutex
	script  Script
	configs []dialog.Config
}

// NewScripted creates a provider replaying the given script.
func NewScripted(script Script) *Scripted {
	return &Scripted{script: script}
}

// Configs returns a copy of every configuration received so far.
func (p *Scripted) Configs() []dialog.Config {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]dialog.Config(nil), p.configs...)
}

func (p *Scripted) next(cfg dialog.Config, queue *[]Response) Response {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.configs = append(p.configs, cfg)
	if len(*queue) == 0 {
		return Response{}
	}
	r := (*queue)[0]
	*queue = (*queue)[1:]
	return r
}

// resolve waits out the response's delay and gate. A done context resolves
// early as a dismissal, the same way closing an app dismisses its dialogs.
func resolve(ctx context.Context, r Response) []dialog.Target {
	if r.Delay > 0 {
		timer := time.NewTimer(r.Delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil
		}
	}
	if r.Release != nil {
		select {
		case <-r.Release:
		case <-ctx.Done():
			return nil
		}
	}
	return r.Targets
}

func first(targets []dialog.Target) *dialog.Target {
	if len(targets) == 0 {
		return nil
	}
	t := targets[0]
	return &t
}

func (p *Scripted) OpenSave(ctx context.Context, cfg dialog.Config) *dialog.Target {
	return first(resolve(ctx, p.next(cfg, &p.script.Saves)))
}

func (p *Scripted) OpenFile(ctx context.Context, cfg dialog.Config) *dialog.Target {
	return first(resolve(ctx, p.next(cfg, &p.script.Files)))
}

func (p *Scripted) OpenFiles(ctx context.Context, cfg dialog.Config) []dialog.Target {
	return resolve(ctx, p.next(cfg, &p.script.FileLists))
}

func (p *Scripted) OpenDirectory(ctx context.Context, cfg dialog.Config) *dialog.Target {
	return first(resolve(ctx, p.next(cfg, &p.script.Directories)))
}

func (p *Scripted) OpenDirectories(ctx context.Context, cfg dialog.Config) []dialog.Target {
	return resolve(ctx, p.next(cfg, &p.script.DirectoryLists))
}
