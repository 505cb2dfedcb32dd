package core

import (
	"github.com/google/uuid"
)

// Listener observes successful sums. It receives the original input and the result.
type Listener func(input string, result int)

// ListenerID identifies one listener registration.
type ListenerID = uuid.UUID

type registration struct {
	id       ListenerID
	listener Listener
}

// listenerRegistry keeps registrations in the order they were added. Callers hold the
// Calculator's lock.
type listenerRegistry struct {
	entries []registration
}

func (r *listenerRegistry) add(listener Listener) ListenerID {
	id := uuid.New()
	r.entries = append(r.entries, registration{id: id, listener: listener})

	return id
}

func (r *listenerRegistry) remove(id ListenerID) bool {
	for i, entry := range r.entries {
		if entry.id == id {
			r.entries = append(r.entries[:i:i], r.entries[i+1:]...)

			return true
		}
	}

	return false
}

// snapshot returns a copy safe to iterate after the lock is released.
func (r *listenerRegistry) snapshot() []registration {
	return append([]registration(nil), r.entries...)
}
