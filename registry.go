package vector

import (
	"sync"

	"github.com/google/uuid"
)

// Selection is the targeting relationship between a user and an entity.
type Selection struct {
	User   Handle
	Target Handle
}

// Registry maps each user to the entity it currently has selected.
// All methods are safe for concurrent use. Iteration works on a snapshot,
// so the map may be mutated freely from inside Range.
type Registry struct {
	mu         sync.RWMutex
	selections map[uuid.UUID]Selection
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{selections: make(map[uuid.UUID]Selection)}
}

// Put selects target for user, replacing any previous selection.
func (r *Registry) Put(user, target Handle) {
	r.mu.Lock()
	r.selections[user.UUID()] = Selection{User: user, Target: target}
	r.mu.Unlock()
}

// Get returns the selection of the user with the given id.
func (r *Registry) Get(user uuid.UUID) (Selection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sel, ok := r.selections[user]
	return sel, ok
}

// Remove drops the selection of the user with the given id.
func (r *Registry) Remove(user uuid.UUID) {
	r.mu.Lock()
	delete(r.selections, user)
	r.mu.Unlock()
}

// CompareAndRemove drops the selection of user only if it still targets
// target. It reports whether an entry was removed.
func (r *Registry) CompareAndRemove(user, target uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	sel, ok := r.selections[user]
	if !ok || sel.Target.UUID() != target {
		return false
	}
	delete(r.selections, user)
	return true
}

// Snapshot returns a copy of all current selections.
func (r *Registry) Snapshot() []Selection {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Selection, 0, len(r.selections))
	for _, sel := range r.selections {
		out = append(out, sel)
	}
	return out
}

// Range calls fn for every selection present when Range was called, until fn
// returns false.
func (r *Registry) Range(fn func(sel Selection) bool) {
	for _, sel := range r.Snapshot() {
		if !fn(sel) {
			return
		}
	}
}

// Clear removes every selection.
func (r *Registry) Clear() {
	r.mu.Lock()
	clear(r.selections)
	r.mu.Unlock()
}

// Len returns the number of selections.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.selections)
}
