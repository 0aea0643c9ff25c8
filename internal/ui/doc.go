// Package ui implements the interactive dialog host using bubbletea's Elm architecture.
//
// The TUI is a tick-driven loop around a [dialog.Dialogs] bridge: a recurring
// [TickMsg] drains resolved dialog results into a scrolling event log, while
// key presses launch new save/load/pick operations. The bridge never blocks
// the update loop, so the host stays responsive however long a dialog sits
// open.
//
// Views:
//  1. [LogView] : Event scrollback, pending operations, launch keys
//  2. [PickView] : File/directory picker overlay for an open dialog request
//  3. [SaveView] : File name entry overlay for an open save request
//  4. [RecentView] : Browse remembered dialog locations
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Dialog requests arrive over the terminal provider's request channel and are
// presented one at a time; dismissing an overlay with esc resolves the request
// as a cancellation, the same outcome as closing a native dialog window.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
