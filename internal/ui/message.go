package ui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/filedialog/internal/provider"
	"github.com/desertthunder/filedialog/internal/recent"
)

// TickMsg drives one host tick: the model drains the bridge and refreshes
// the pending-operation display, then schedules the next tick.
type TickMsg time.Time

// WakeMsg asks for an immediate drain outside the tick cadence. The dialog
// bridge's Wake hook sends one whenever a result lands, via [Notifier].
type WakeMsg struct{}

// requestMsg carries the next dialog request awaiting presentation.
type requestMsg struct {
	req provider.Request
}

// recentsLoadedMsg delivers the stored locations for [RecentView].
type recentsLoadedMsg struct {
	locations []recent.Location
	err       error
}

// Notifier adapts the bridge's Wake hook to a running bubbletea program.
// The hook is created before the program exists, so Attach is called once
// the program is constructed; Wake before Attach is a no-op.
type Notifier struct {
	mu sync.Mutex
	p  *tea.Program
}

// Attach binds the notifier to the program that should receive [WakeMsg].
func (n *Notifier) Attach(p *tea.Program) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.p = p
}

// Wake sends a [WakeMsg] to the attached program. Safe from any goroutine.
func (n *Notifier) Wake() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.p != nil {
		n.p.Send(WakeMsg{})
	}
}
