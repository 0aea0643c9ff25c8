// package formatter renders delivered dialog events and pending operations
// for terminal output (plain text and JSON)
package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/filedialog/dialog"
)

// EventLine returns a one-line human-readable rendering of a delivered
// event, suitable for log scrollback.
func EventLine(ev dialog.Event) string {
	key := ev.Key()
	switch e := ev.(type) {
	case dialog.FileSaved:
		if e.Err != nil {
			return fmt.Sprintf("save of %s failed [%s]: %v", e.FileName, key, e.Err)
		}
		return fmt.Sprintf("saved %s [%s]", e.FileName, key)
	case dialog.SaveCanceled:
		return fmt.Sprintf("save canceled [%s]", key)
	case dialog.FileLoaded:
		if e.Err != nil {
			return fmt.Sprintf("load of %s failed [%s]: %v", e.FileName, key, e.Err)
		}
		return fmt.Sprintf("loaded %s (%s) [%s]", e.FileName, ByteCount(len(e.Contents)), key)
	case dialog.LoadCanceled:
		return fmt.Sprintf("load canceled [%s]", key)
	case dialog.FilePicked:
		return fmt.Sprintf("picked file %s [%s]", e.Path, key)
	case dialog.FilePickCanceled:
		return fmt.Sprintf("file pick canceled [%s]", key)
	case dialog.DirectoryPicked:
		return fmt.Sprintf("picked directory %s [%s]", e.Path, key)
	case dialog.DirectoryPickCanceled:
		return fmt.Sprintf("directory pick canceled [%s]", key)
	default:
		return fmt.Sprintf("event [%s]", key)
	}
}

// eventRecord is the flat JSON shape shared by all event types. Fields
// that don't apply to an event are omitted.
type eventRecord struct {
	Event    string `json:"event"`
	Family   string `json:"family"`
	Kind     string `json:"kind"`
	FileName string `json:"file_name,omitempty"`
	Path     string `json:"path,omitempty"`
	Size     int    `json:"size,omitempty"`
	Error    string `json:"error,omitempty"`
}

func record(ev dialog.Event) eventRecord {
	key := ev.Key()

	rec := eventRecord{Family: key.Family.String(), Kind: string(key.Kind)}
	switch e := ev.(type) {
	case dialog.FileSaved:
		rec.Event = "file_saved"
		rec.FileName = e.FileName
		if e.Err != nil {
			rec.Error = e.Err.Error()
		}
	case dialog.SaveCanceled:
		rec.Event = "save_canceled"
	case dialog.FileLoaded:
		rec.Event = "file_loaded"
		rec.FileName = e.FileName
		rec.Size = len(e.Contents)
		if e.Err != nil {
			rec.Error = e.Err.Error()
		}
	case dialog.LoadCanceled:
		rec.Event = "load_canceled"
	case dialog.FilePicked:
		rec.Event = "file_picked"
		rec.Path = e.Path
	case dialog.FilePickCanceled:
		rec.Event = "file_pick_canceled"
	case dialog.DirectoryPicked:
		rec.Event = "directory_picked"
		rec.Path = e.Path
	case dialog.DirectoryPickCanceled:
		rec.Event = "directory_pick_canceled"
	}
	return rec
}

// EventJSON renders one event as a JSON object.
func EventJSON(ev dialog.Event) ([]byte, error) {
	data, err := json.Marshal(record(ev))
	if err != nil {
		return nil, fmt.Errorf("failed to encode event: %w", err)
	}
	return data, nil
}

// EventsJSON renders one poll's events as a JSON array, preserving
// delivery order.
func EventsJSON(events []dialog.Event) ([]byte, error) {
	records := make([]eventRecord, 0, len(events))
	for _, ev := range events {
		records = append(records, record(ev))
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("failed to encode events: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// PendingLine summarizes in-flight operations for a status bar, oldest
// first. Empty input produces the empty string.
func PendingLine(ops []dialog.Operation) string {
	if len(ops) == 0 {
		return ""
	}

	parts := make([]string, 0, len(ops))
	for _, op := range ops {
		age := time.Since(op.Started).Round(time.Second)
		parts = append(parts, fmt.Sprintf("%s (%s, %s)", op.Key, op.State, age))
	}
	return fmt.Sprintf("%d pending: %s", len(ops), strings.Join(parts, ", "))
}

// ByteCount renders a byte size with a binary unit suffix.
func ByteCount(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := unit, 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
