package manager

import "sync"

// InitGate is the per-user "folder subsystem ready" marker.
//
// Owned by the manager instance rather than held in process-global state;
// its lifecycle is tied to the manager's construction. Once a user is marked
// done, subsequent initialization calls are no-ops for the manager's
// lifetime. Logout does not clear the gate - re-login in the same process
// observes done and skips re-seeding.
type InitGate struct {
	mu   sync.RWMutex
	done map[string]bool
}

// NewInitGate creates an empty gate.
func NewInitGate() *InitGate {
	return &InitGate{done: make(map[string]bool)}
}

// Register inserts a not-done entry for a user, superseding any prior state.
func (g *InitGate) Register(userID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.done[userID] = false
}

// Done reports whether initialization has completed for a user.
func (g *InitGate) Done(userID string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.done[userID]
}

// MarkDone flips the user's marker after successful initialization.
func (g *InitGate) MarkDone(userID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.done[userID] = true
}
