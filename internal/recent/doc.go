// Package recent persists the directories users picked in past dialogs so
// hosts can seed new launches with a familiar starting location.
//
// One row exists per dialog channel. [Store.Touch] inserts or refreshes a
// channel's row after a completion event, [Store.Last] reads it back when
// building the next launch, and [Store.List] feeds status displays. The
// bridge itself never touches this package; remembering locations is host
// policy, wired in by the commands that own a database handle.
package recent
