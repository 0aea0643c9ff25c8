// Package dialog bridges native file dialogs into tick-driven hosts.
//
// Native pickers are long-running and user-paced; a game loop or TUI update
// loop must never wait on one. This package runs every dialog on its own
// background goroutine and hands the outcome back through per-channel
// mailboxes that the host drains with a single non-blocking [Dialogs.Poll]
// call each tick.
//
// # Channels
//
// A dialog channel is a ([Family], [Kind]) pair declared up front via
// [Registration] values passed to [New]. The family says what the dialog
// does (save, load, pick a file, pick a directory); the kind is a
// caller-chosen label that keeps independent uses apart. Events for one
// channel are never delivered to another, so a "scene" load and a "texture"
// load can be in flight at the same time without the host demultiplexing
// anything by hand.
//
// # Launching
//
// [Dialogs.Dialog] starts a [Builder]. Chain configuration setters, then
// call one terminal method:
//
//	err := d.Dialog().
//		AddFilter("Scene", "scene").
//		SetFileName("untitled.scene").
//		SaveFile("scene", contents)
//
// The terminal call snapshots the configuration, spawns the background
// unit, and returns immediately. The only way it fails is a channel that
// was never registered; everything the user does afterwards arrives as an
// [Event], never as an error from the launch.
//
// # Polling
//
// Call [Dialogs.Poll] once per tick, before the systems that consume the
// events. It drains every mailbox completely, in registration order, and
// returns whatever resolved since the previous tick; an empty tick returns
// nil. Each launch produces exactly one outcome: a completion event, a
// batch of completion events (multi-select resolves as one event per chosen
// target, all in the same poll), or a cancellation event.
//
// Hosts that sleep between ticks can set [Options.Wake] to be nudged as
// soon as a result is posted instead of waiting out the tick interval.
//
// # Outcomes
//
// User dismissal is an outcome, not an error: it arrives as [SaveCanceled],
// [LoadCanceled], [FilePickCanceled], or [DirectoryPickCanceled]. I/O that
// fails after a selection still completes the operation; the error rides in
// the completion event's Err field.
package dialog
