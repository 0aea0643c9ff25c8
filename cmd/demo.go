package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"

	"github.com/desertthunder/filedialog/dialog"
	"github.com/desertthunder/filedialog/internal/formatter"
	"github.com/desertthunder/filedialog/internal/provider"
)

const (
	kindNotes      dialog.Kind = "notes"
	kindManuscript dialog.Kind = "manuscript"
	kindImport     dialog.Kind = "import"
	kindWorkspace  dialog.Kind = "workspace"
)

const (
	savePayload = "hello, filedialog\n"
	demoTag     = "demo-session"
)

// Demo runs a scripted dialog session end to end: launches across every
// family, a tick loop that drains results in delivery order, and payload
// verification on disk afterwards.
func (r *Runner) Demo(ctx context.Context, cmd *cli.Command) error {
	jsonOut := cmd.Bool("json")
	tickRate := time.Duration(cmd.Int("rate-ms")) * time.Millisecond
	if tickRate <= 0 {
		tickRate = r.config.Host.TickRate()
	}

	workdir := cmd.String("dir")
	if workdir == "" {
		tmp, err := os.MkdirTemp("", "filedialog-demo-")
		if err != nil {
			return fmt.Errorf("failed to create working directory: %w", err)
		}
		defer os.RemoveAll(tmp)
		workdir = tmp
	}

	seed, err := seedWorkdir(workdir)
	if err != nil {
		return err
	}

	script := provider.Script{
		Saves: []provider.Response{
			{Targets: []dialog.Target{dialog.NewTarget(filepath.Join(workdir, "a.txt"))}, Delay: 40 * time.Millisecond},
		},
		Files: []provider.Response{
			{Delay: 30 * time.Millisecond},
			{Targets: []dialog.Target{dialog.NewTarget(seed.notes)}, Delay: 30 * time.Millisecond},
		},
		FileLists: []provider.Response{
			{Targets: targets(seed.chapters), Delay: 60 * time.Millisecond},
		},
		DirectoryLists: []provider.Response{
			{Targets: targets(seed.dirs), Delay: 40 * time.Millisecond},
		},
	}
	scripted := provider.NewScripted(script)

	var fsys dialog.FS = dialog.OSFS{}
	if cmd.Bool("slow") {
		fsys = provider.NewThrottled(fsys, 1024)
	}

	bridge, err := dialog.New(dialog.Options{
		Context:  ctx,
		Provider: scripted,
		FS:       fsys,
		Logger:   r.logger,
		Registrations: []dialog.Registration{
			dialog.WithSave(kindNotes),
			dialog.WithLoad(kindManuscript),
			dialog.WithPickFile(kindImport),
			dialog.WithPickDirectory(kindWorkspace),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to build dialog bridge: %w", err)
	}

	if !jsonOut {
		r.writePlainHeader("filedialog demo")
		r.writePlain("working directory: %s\n", workdir)
	}

	// First wave: one launch per script queue, so each consumes a known
	// response. The second single-file response stays queued for the pick
	// launch in the second wave.
	if err := bridge.Dialog().
		AddFilter("Text", "txt").
		SetFileName("a.txt").
		SetTitle("Save demo transcript").
		SetData(demoTag).
		SaveFile(kindNotes, []byte(savePayload)); err != nil {
		return fmt.Errorf("save launch failed: %w", err)
	}
	if err := bridge.Dialog().SetTitle("Load manuscript").LoadFile(kindManuscript); err != nil {
		return fmt.Errorf("load launch failed: %w", err)
	}
	if err := bridge.Dialog().AddFilter("Chapters", "txt").LoadMultipleFiles(kindManuscript); err != nil {
		return fmt.Errorf("batch load launch failed: %w", err)
	}

	limiter := rate.NewLimiter(rate.Every(tickRate), 1)
	tick := 0

	first, err := r.collect(ctx, bridge, limiter, &tick, 5, jsonOut)
	if err != nil {
		return err
	}

	if err := bridge.Dialog().SetDirectory(workdir).PickFile(kindImport); err != nil {
		return fmt.Errorf("pick launch failed: %w", err)
	}
	if err := bridge.Dialog().PickMultipleDirectories(kindWorkspace); err != nil {
		return fmt.Errorf("directory pick launch failed: %w", err)
	}

	second, err := r.collect(ctx, bridge, limiter, &tick, 4, jsonOut)
	if err != nil {
		return err
	}

	return r.demoSummary(append(first, second...), workdir, scripted, tick, jsonOut)
}

// collect ticks the bridge until want events arrive, printing them as
// they land along with whatever is still pending.
func (r *Runner) collect(ctx context.Context, bridge *dialog.Dialogs, limiter *rate.Limiter, tick *int, want int, jsonOut bool) ([]dialog.Event, error) {
	var out []dialog.Event
	deadline := time.Now().Add(15 * time.Second)

	for len(out) < want {
		if time.Now().After(deadline) {
			return out, fmt.Errorf("timed out waiting for dialog events: got %d of %d", len(out), want)
		}
		if err := limiter.Wait(ctx); err != nil {
			return out, fmt.Errorf("demo interrupted: %w", err)
		}
		*tick++

		events := bridge.Poll()
		if len(events) > 0 {
			if jsonOut {
				data, err := formatter.EventsJSON(events)
				if err != nil {
					return out, err
				}
				if err := r.writePlain("%s\n", data); err != nil {
					return out, err
				}
			} else {
				for _, ev := range events {
					if err := r.writePlain("tick %-3d %s\n", *tick, formatter.EventLine(ev)); err != nil {
						return out, err
					}
				}
			}
			out = append(out, events...)
		}

		if !jsonOut {
			if pl := formatter.PendingLine(bridge.Pending()); pl != "" {
				if err := r.writePlain("tick %-3d %s\n", *tick, pl); err != nil {
					return out, err
				}
			}
		}
	}
	return out, nil
}

func (r *Runner) demoSummary(events []dialog.Event, workdir string, scripted *provider.Scripted, ticks int, jsonOut bool) error {
	saved, err := os.ReadFile(filepath.Join(workdir, "a.txt"))
	if err != nil {
		return fmt.Errorf("saved file not on disk: %w", err)
	}
	if string(saved) != savePayload {
		return fmt.Errorf("saved file holds %q, wanted %q", saved, savePayload)
	}

	if jsonOut {
		return nil
	}

	var tagged bool
	for _, ev := range events {
		if e, ok := ev.(dialog.FileSaved); ok && e.Data == demoTag {
			tagged = true
		}
	}

	r.writePlainln("%d events over %d ticks", len(events), ticks)
	r.writePlain("a.txt verified on disk (%s)\n", formatter.ByteCount(len(saved)))
	r.writePlain("provider received %d launches\n", len(scripted.Configs()))
	if tagged {
		r.writePlain("save context round-tripped\n")
	}
	return nil
}

type demoSeed struct {
	notes    string
	chapters []string
	dirs     []string
}

// seedWorkdir lays down the files and directories the scripted dialogs
// point at.
func seedWorkdir(dir string) (demoSeed, error) {
	var seed demoSeed
	filler := strings.Repeat("the quick brown fox jumps over the lazy dog\n", 12)

	seed.notes = filepath.Join(dir, "notes.md")
	if err := os.WriteFile(seed.notes, []byte("# notes\n"+filler), 0644); err != nil {
		return seed, fmt.Errorf("failed to seed %s: %w", seed.notes, err)
	}

	for i := 1; i <= 3; i++ {
		path := filepath.Join(dir, fmt.Sprintf("ch%d.txt", i))
		if err := os.WriteFile(path, []byte(fmt.Sprintf("chapter %d\n%s", i, filler)), 0644); err != nil {
			return seed, fmt.Errorf("failed to seed %s: %w", path, err)
		}
		seed.chapters = append(seed.chapters, path)
	}

	for _, name := range []string{"assets", "drafts", "archive"} {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(path, 0755); err != nil {
			return seed, fmt.Errorf("failed to seed %s: %w", path, err)
		}
		seed.dirs = append(seed.dirs, path)
	}
	return seed, nil
}

func targets(paths []string) []dialog.Target {
	out := make([]dialog.Target, 0, len(paths))
	for _, p := range paths {
		out = append(out, dialog.NewTarget(p))
	}
	return out
}
