package provider

import (
	"context"
	"testing"
	"time"

	"github.com/desertthunder/filedialog/dialog"
)

func TestTermBridgesRequests(t *testing.T) {
	term := NewTerm(4)
	ctx := context.Background()

	go func() {
		req := <-term.Requests()
		if req.Mode != ModeSave {
			t.Errorf("request mode = %s, want save", req.Mode)
		}
		if req.Config.FileName != "a.txt" {
			t.Errorf("request file name = %q, want a.txt", req.Config.FileName)
		}
		req.Respond(dialog.Target{Path: "/out/a.txt", Name: "a.txt"})
	}()

	target := term.OpenSave(ctx, dialog.Config{FileName: "a.txt"})
	if target == nil || target.Path != "/out/a.txt" {
		t.Fatalf("target = %+v, want /out/a.txt", target)
	}
}

func TestTermRespondWithNothingDismisses(t *testing.T) {
	term := NewTerm(4)

	go func() {
		req := <-term.Requests()
		req.Respond()
	}()

	if target := term.OpenFile(context.Background(), dialog.Config{}); target != nil {
		t.Fatalf("target = %+v, want dismissal", target)
	}
}

func TestTermModePerMethod(t *testing.T) {
	term := NewTerm(8)
	ctx := context.Background()

	modes := make(chan Mode, 8)
	go func() {
		for req := range term.Requests() {
			modes <- req.Mode
			req.Respond()
		}
	}()

	term.OpenSave(ctx, dialog.Config{})
	term.OpenFile(ctx, dialog.Config{})
	term.OpenFiles(ctx, dialog.Config{})
	term.OpenDirectory(ctx, dialog.Config{})
	term.OpenDirectories(ctx, dialog.Config{})

	want := []Mode{ModeSave, ModeFile, ModeFiles, ModeDirectory, ModeDirectories}
	for i, m := range want {
		select {
		case got := <-modes:
			if got != m {
				t.Errorf("request %d mode = %s, want %s", i, got, m)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("request %d never arrived", i)
		}
	}
}

func TestTermContextCancelDismisses(t *testing.T) {
	term := NewTerm(1)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan *dialog.Target, 1)
	go func() {
		done <- term.OpenFile(ctx, dialog.Config{})
	}()

	// The host never reads the request; cancel must unblock the unit.
	cancel()
	select {
	case target := <-done:
		if target != nil {
			t.Fatalf("target = %+v, want dismissal on cancel", target)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("OpenFile did not return after context cancel")
	}
}

func TestModeMultiple(t *testing.T) {
	tc := []struct {
		mode Mode
		want bool
	}{
		{ModeSave, false},
		{ModeFile, false},
		{ModeFiles, true},
		{ModeDirectory, false},
		{ModeDirectories, true},
	}
	for _, tt := range tc {
		if got := tt.mode.Multiple(); got != tt.want {
			t.Errorf("%s.Multiple() = %v, want %v", tt.mode, got, tt.want)
		}
	}
}
