package dialog

import (
	"sort"
	"sync"
	"time"
)

// OpState is the phase a pending operation is in.
type OpState int

const (
	// StateOpening means the unit is waiting on the user.
	StateOpening OpState = iota
	// StateSaving means a target was chosen and the write is running.
	StateSaving
	// StateLoading means targets were chosen and reads are running.
	StateLoading
)

func (s OpState) String() string {
	switch s {
	case StateOpening:
		return "opening"
	case StateSaving:
		return "saving"
	case StateLoading:
		return "loading"
	default:
		return ""
	}
}

// Operation is a point-in-time snapshot of one in-flight launch, for
// status displays. An operation leaves the pending set when its dialog
// resolves; there is no handle to cancel one from this side, that is the
// user's move alone.
type Operation struct {
	ID      string
	Key     Key
	State   OpState
	Started time.Time
}

// opTracker records in-flight operations. Advisory only: delivery
// correctness never depends on it.
type opTracker struct {
	mu  sync.Mutex
	ops map[string]*Operation
}

func newOpTracker() *opTracker {
	return &opTracker{ops: make(map[string]*Operation)}
}

func (t *opTracker) begin(id string, key Key) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ops[id] = &Operation{ID: id, Key: key, State: StateOpening, Started: time.Now()}
}

func (t *opTracker) transition(id string, state OpState) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if op, ok := t.ops[id]; ok {
		op.State = state
	}
}

// finish removes the operation. Units call it before posting the result,
// so a pending entry and its delivered events are never observable at the
// same time.
func (t *opTracker) finish(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.ops, id)
}

// snapshot returns the pending operations oldest-first.
func (t *opTracker) snapshot() []Operation {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Operation, 0, len(t.ops))
	for _, op := range t.ops {
		out = append(out, *op)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Started.Equal(out[j].Started) {
			return out[i].Started.Before(out[j].Started)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
