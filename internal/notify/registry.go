package notify

import "sync"

// Registry tracks the open connections per subject. It is the only
// mutable structure shared between the subscriber goroutine and the
// per-connection session goroutines, so every access goes through the
// mutex. A connection is present exactly while its transport is open
// and authenticated.
type Registry struct {
	mu    sync.Mutex
	conns map[int]map[*Connection]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{conns: make(map[int]map[*Connection]struct{})}
}

// Register adds a connection to the subject's set.
func (r *Registry) Register(subjectID int, conn *Connection) {
	if conn == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.conns[subjectID]
	if !ok {
		set = make(map[*Connection]struct{})
		r.conns[subjectID] = set
	}
	set[conn] = struct{}{}
}

// Deregister removes a connection. Idempotent: removing a connection that
// was already removed is a no-op. Empty sets are pruned so the map does
// not accumulate entries for long-gone subjects.
func (r *Registry) Deregister(subjectID int, conn *Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.conns[subjectID]
	if !ok {
		return
	}
	delete(set, conn)
	if len(set) == 0 {
		delete(r.conns, subjectID)
	}
}

// Snapshot returns a point-in-time copy of the subject's connections so
// dispatch iteration never races with concurrent register/deregister.
func (r *Registry) Snapshot(subjectID int) []*Connection {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.conns[subjectID]
	if !ok {
		return nil
	}
	out := make([]*Connection, 0, len(set))
	for conn := range set {
		out = append(out, conn)
	}
	return out
}

// Len reports the total number of registered connections.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := 0
	for _, set := range r.conns {
		total += len(set)
	}
	return total
}

// CloseAll closes every registered connection. Used at shutdown; each
// session deregisters itself as its pumps observe the close.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	all := make([]*Connection, 0)
	for _, set := range r.conns {
		for conn := range set {
			all = append(all, conn)
		}
	}
	r.mu.Unlock()

	for _, conn := range all {
		conn.Close()
	}
}
