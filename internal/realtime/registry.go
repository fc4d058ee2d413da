package realtime

import "sync"

// Registry tracks which live connection currently represents which user.
// One handle per identity: a second connection from the same user replaces
// the first as the delivery target.
type Registry interface {
	// Register binds the connection ID to the user, returning the connection
	// ID that was displaced, if any.
	Register(userID, connID string) (replaced string)
	// Unregister drops the entry owned by connID and returns the user it
	// belonged to, or "" if the connection was not the active handle.
	Unregister(connID string) (userID string)
	// Lookup returns the active connection ID for the user, if reachable.
	Lookup(userID string) (connID string, ok bool)
	// Online returns a snapshot of currently connected user IDs.
	Online() []string
}

type memoryRegistry struct {
	mu    sync.RWMutex
	users map[string]string // userID -> connID
	conns map[string]string // connID -> userID
}

// NewRegistry returns the in-memory registry used by single-instance
// deployments. Presence tracked here is per-process.
func NewRegistry() Registry {
	return &memoryRegistry{
		users: make(map[string]string),
		conns: make(map[string]string),
	}
}

func (r *memoryRegistry) Register(userID, connID string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	replaced := ""
	if prev, ok := r.users[userID]; ok && prev != connID {
		replaced = prev
		delete(r.conns, prev)
	}
	r.users[userID] = connID
	r.conns[connID] = userID
	return replaced
}

func (r *memoryRegistry) Unregister(connID string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	userID, ok := r.conns[connID]
	if !ok {
		return ""
	}
	delete(r.conns, connID)
	if r.users[userID] == connID {
		delete(r.users, userID)
	}
	return userID
}

func (r *memoryRegistry) Lookup(userID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	connID, ok := r.users[userID]
	return connID, ok
}

func (r *memoryRegistry) Online() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]string, 0, len(r.users))
	for userID := range r.users {
		users = append(users, userID)
	}
	return users
}
