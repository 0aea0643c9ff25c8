// Package provider supplies [dialog.Provider] and [dialog.FS]
// implementations for hosts that have no native picker to call.
//
// [Scripted] replays canned outcomes and is what the demo command and
// tests drive. [Term] turns provider calls into [Request] values a
// terminal UI resolves with its own widgets, bridging the blocking
// provider contract onto a message-driven host. [Throttled] wraps any
// [dialog.FS] with a byte-rate limit so slow-disk behavior can be
// rehearsed without slow disks.
package provider
