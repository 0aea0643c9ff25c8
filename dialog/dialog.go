package dialog

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Options configures [New]. Provider and at least one registration are
// required; everything else has a working zero value.
type Options struct {
	// Context is the base context handed to provider and FS calls. Nil
	// means context.Background. The bridge itself never cancels an
	// operation; resolution is the user's alone.
	Context context.Context

	// Provider presents the dialogs.
	Provider Provider

	// FS performs payload I/O after a selection. Nil means [OSFS].
	FS FS

	// Logger receives debug logs for launches and deliveries. Nil
	// discards them.
	Logger *log.Logger

	// Wake, when set, is called from the unit's goroutine right after a
	// result is posted, so a host that sleeps between ticks can schedule
	// an immediate poll. It must be safe for concurrent use and must not
	// block.
	Wake func()

	// Registrations declares the dialog channels, applied in order. Poll
	// visits mailboxes in this order.
	Registrations []Registration
}

// registration is the applied form of a [Registration]: the channel's key,
// its mailbox, and the prebuilt cancellation event the poller emits when
// it drains a canceled result. Built once by [New], read-only afterwards.
type registration struct {
	key      Key
	mb       *mailbox
	canceled Event
}

// Dialogs bridges background dialog operations into a tick-driven host.
// Launch methods and [Dialogs.Pending] are safe from any goroutine;
// [Dialogs.Poll] is the single consumer and belongs on the tick thread.
type Dialogs struct {
	ctx      context.Context
	provider Provider
	fs       FS
	logger   *log.Logger
	wake     func()

	// regs fixes poll order; byKey serves launch lookups. Neither changes
	// after New, which is what makes reads lock-free.
	regs  []*registration
	byKey map[Key]*registration

	ops *opTracker
}

// New validates the options, opens a mailbox per registration, and returns
// a ready bridge.
func New(opts Options) (*Dialogs, error) {
	if opts.Provider == nil {
		return nil, ErrNoProvider
	}
	if len(opts.Registrations) == 0 {
		return nil, ErrNoRegistrations
	}

	d := &Dialogs{
		ctx:      opts.Context,
		provider: opts.Provider,
		fs:       opts.FS,
		logger:   opts.Logger,
		wake:     opts.Wake,
		regs:     make([]*registration, 0, len(opts.Registrations)),
		byKey:    make(map[Key]*registration, len(opts.Registrations)),
		ops:      newOpTracker(),
	}
	if d.ctx == nil {
		d.ctx = context.Background()
	}
	if d.fs == nil {
		d.fs = OSFS{}
	}
	if d.logger == nil {
		d.logger = log.New(io.Discard)
	}

	for _, r := range opts.Registrations {
		if !r.Family.valid() {
			return nil, fmt.Errorf("%w: %d", ErrUnknownFamily, int(r.Family))
		}
		if r.Kind == "" {
			return nil, fmt.Errorf("%w: %s registration", ErrEmptyKind, r.Family)
		}
		key := Key{Family: r.Family, Kind: r.Kind}
		if _, dup := d.byKey[key]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRegistration, key)
		}
		reg := &registration{key: key, mb: newMailbox(), canceled: canceledEvent(key)}
		d.regs = append(d.regs, reg)
		d.byKey[key] = reg
	}
	return d, nil
}

// Dialog starts a fresh dialog configuration.
func (d *Dialogs) Dialog() *Builder {
	return &Builder{d: d}
}

// Poll drains every registered mailbox, in registration order, and returns
// the events that surfaced since the previous call. It never blocks and
// never fails; a tick with nothing resolved returns nil. Call it once per
// tick, before the code that consumes the events.
func (d *Dialogs) Poll() []Event {
	var out []Event
	for _, reg := range d.regs {
		reg.mb.drain(func(r taggedResult) {
			switch r.tag {
			case tagSingle:
				out = append(out, r.single)
			case tagBatch:
				out = append(out, r.batch...)
			case tagCanceled:
				out = append(out, reg.canceled)
			}
		})
	}
	if len(out) > 0 {
		d.logger.Debug("dialog events delivered", "count", len(out))
	}
	return out
}

// Pending reports the launches still waiting on the user or on I/O,
// oldest first.
func (d *Dialogs) Pending() []Operation {
	return d.ops.snapshot()
}

// Registered reports whether a (family, kind) channel exists.
func (d *Dialogs) Registered(family Family, kind Kind) bool {
	_, ok := d.byKey[Key{Family: family, Kind: kind}]
	return ok
}
