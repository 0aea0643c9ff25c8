package dialog

// mailboxDepth bounds how many unconsumed results one channel buffers
// before producers block. The poller drains fully every tick, so the
// buffer only fills when many launches of one kind resolve between two
// ticks.
const mailboxDepth = 8

type resultTag int

const (
	tagSingle resultTag = iota
	tagBatch
	tagCanceled
)

func (t resultTag) String() string {
	switch t {
	case tagSingle:
		return "single"
	case tagBatch:
		return "batch"
	case tagCanceled:
		return "canceled"
	default:
		return ""
	}
}

// taggedResult is the one message a background unit posts per launch:
// exactly one of a single event, a batch of events, or a cancellation.
// The cancellation arm carries no payload; the poller synthesizes the
// channel's cancellation event when it drains one.
type taggedResult struct {
	tag    resultTag
	single Event
	batch  []Event
}

func singleResult(ev Event) taggedResult   { return taggedResult{tag: tagSingle, single: ev} }
func batchResult(evs []Event) taggedResult { return taggedResult{tag: tagBatch, batch: evs} }
func canceledResult() taggedResult         { return taggedResult{tag: tagCanceled} }

// mailbox is the many-producer, single-consumer queue between background
// units and the poller. A buffered channel gives arrival-order delivery
// and cross-goroutine safety without any locking here.
type mailbox struct {
	ch chan taggedResult
}

func newMailbox() *mailbox {
	return &mailbox{ch: make(chan taggedResult, mailboxDepth)}
}

// put posts one result. It blocks the calling unit while the buffer is
// full; results are never dropped or overwritten.
func (m *mailbox) put(r taggedResult) {
	m.ch <- r
}

// drain hands every queued result to visit, in arrival order, without
// blocking. Draining an empty mailbox is a no-op.
func (m *mailbox) drain(visit func(taggedResult)) {
	for {
		select {
		case r := <-m.ch:
			visit(r)
		default:
			return
		}
	}
}
