package dialog

import (
	"fmt"

	"github.com/desertthunder/filedialog/internal/shared"
)

// lookup resolves a launch target channel. This is the synchronous failure
// point for unregistered kinds; nothing past here can fail the caller.
func (d *Dialogs) lookup(family Family, kind Kind) (*registration, error) {
	reg, ok := d.byKey[Key{Family: family, Kind: kind}]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotRegistered, family, kind)
	}
	return reg, nil
}

// begin records the launch and logs it, returning the operation id.
func (d *Dialogs) begin(reg *registration) string {
	id := shared.GenerateID()
	d.ops.begin(id, reg.key)
	d.logger.Debug("dialog launched", "op", id, "channel", reg.key.String())
	return id
}

// resolve retires the operation, posts its result, and wakes the host.
// The tracker entry is removed first so a pending operation and its
// delivered events are never visible together.
func (d *Dialogs) resolve(reg *registration, id string, r taggedResult) {
	d.ops.finish(id)
	reg.mb.put(r)
	d.logger.Debug("dialog resolved", "op", id, "channel", reg.key.String(), "outcome", r.tag.String())
	if d.wake != nil {
		d.wake()
	}
}

// launchSave runs the save unit: present the picker, write contents to the
// chosen target, deliver exactly one result.
func (d *Dialogs) launchSave(cfg Config, kind Kind, contents []byte, data any) error {
	reg, err := d.lookup(FamilySave, kind)
	if err != nil {
		return err
	}
	id := d.begin(reg)
	go func() {
		target := d.provider.OpenSave(d.ctx, cfg)
		if target == nil {
			d.resolve(reg, id, canceledResult())
			return
		}
		d.ops.transition(id, StateSaving)
		werr := d.fs.WriteFile(d.ctx, *target, contents)
		d.resolve(reg, id, singleResult(FileSaved{
			Kind:     kind,
			FileName: target.Name,
			Err:      werr,
			Data:     data,
		}))
	}()
	return nil
}

// launchLoad runs the load unit for single or multi selection. Reads
// happen per target; one failed read errors that file's event without
// touching its siblings.
func (d *Dialogs) launchLoad(cfg Config, kind Kind, data any, multiple bool) error {
	reg, err := d.lookup(FamilyLoad, kind)
	if err != nil {
		return err
	}
	id := d.begin(reg)
	go func() {
		targets := d.open(cfg, FamilyLoad, multiple)
		if len(targets) == 0 {
			d.resolve(reg, id, canceledResult())
			return
		}
		d.ops.transition(id, StateLoading)
		events := make([]Event, 0, len(targets))
		for _, target := range targets {
			contents, rerr := d.fs.ReadFile(d.ctx, target)
			events = append(events, FileLoaded{
				Kind:     kind,
				FileName: target.Name,
				Contents: contents,
				Err:      rerr,
				Data:     data,
			})
		}
		if !multiple {
			d.resolve(reg, id, singleResult(events[0]))
			return
		}
		d.resolve(reg, id, batchResult(events))
	}()
	return nil
}

// launchPick runs the pick unit for either pick family. Picks carry paths
// only; no I/O follows the selection.
func (d *Dialogs) launchPick(cfg Config, family Family, kind Kind, data any, multiple bool) error {
	reg, err := d.lookup(family, kind)
	if err != nil {
		return err
	}
	id := d.begin(reg)
	go func() {
		targets := d.open(cfg, family, multiple)
		if len(targets) == 0 {
			d.resolve(reg, id, canceledResult())
			return
		}
		events := make([]Event, 0, len(targets))
		for _, target := range targets {
			events = append(events, pickedEvent(family, kind, target.Path, data))
		}
		if !multiple {
			d.resolve(reg, id, singleResult(events[0]))
			return
		}
		d.resolve(reg, id, batchResult(events))
	}()
	return nil
}

// open calls the provider method matching the family and arity and
// normalizes the outcome to a slice, empty on dismissal. Loads and file
// picks share the provider's file picker; only directories differ.
func (d *Dialogs) open(cfg Config, family Family, multiple bool) []Target {
	if family == FamilyPickDirectory {
		if multiple {
			return d.provider.OpenDirectories(d.ctx, cfg)
		}
		return asSlice(d.provider.OpenDirectory(d.ctx, cfg))
	}
	if multiple {
		return d.provider.OpenFiles(d.ctx, cfg)
	}
	return asSlice(d.provider.OpenFile(d.ctx, cfg))
}

func asSlice(t *Target) []Target {
	if t == nil {
		return nil
	}
	return []Target{*t}
}

func pickedEvent(family Family, kind Kind, path string, data any) Event {
	if family == FamilyPickFile {
		return FilePicked{Kind: kind, Path: path, Data: data}
	}
	return DirectoryPicked{Kind: kind, Path: path, Data: data}
}
