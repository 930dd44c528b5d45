// Package side holds the per-stick handedness assignment.
package side

import "sync"

// Side is the handedness assigned to a stick.
type Side int

const (
	Unassigned Side = iota
	Left
	Right
)

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unassigned"
	}
}

// NotifyFunc is called after every committed assignment so other
// subsystems (rebinding, the D-Bus surface) observe the change.
type NotifyFunc func(id string, s Side)

// Store maps a stick identity to its assigned side for the lifetime of
// the process. Reads may come from other goroutines (the D-Bus export),
// so access is guarded.
type Store struct {
	mu     sync.RWMutex
	sides  map[string]Side
	notify NotifyFunc
}

// NewStore creates an empty store. notify may be nil.
func NewStore(notify NotifyFunc) *Store {
	return &Store{
		sides:  make(map[string]Side),
		notify: notify,
	}
}

// Side returns the current assignment and whether one has ever been made.
// An unseen identity yields (Unassigned, false), never an error.
func (st *Store) Side(id string) (Side, bool) {
	st.mu.RLock()
	s, ok := st.sides[id]
	st.mu.RUnlock()
	if !ok {
		return Unassigned, false
	}
	return s, true
}

// SetSide overwrites the assignment and fires the notifier. Suppressing
// redundant writes is the classifier's job, not the store's.
func (st *Store) SetSide(id string, s Side) {
	st.mu.Lock()
	st.sides[id] = s
	st.mu.Unlock()

	if st.notify != nil {
		st.notify(id, s)
	}
}

// Assignments returns a snapshot of every known assignment.
func (st *Store) Assignments() map[string]Side {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make(map[string]Side, len(st.sides))
	for id, s := range st.sides {
		out[id] = s
	}
	return out
}
