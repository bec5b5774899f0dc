package room

// Registry maps accepted identities to their sessions. Names are compared
// case-sensitively and a name frees up as soon as its holder's session is
// destroyed. The registry carries no lock of its own: the owning room
// serializes all access.
type Registry struct {
	byName map[string]*Session
	order  []string // join order, for a stable USERLIST
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Session)}
}

// Claim registers name for s. It fails with ErrIdentityConflict when another
// active session already holds the name.
func (r *Registry) Claim(name string, s *Session) error {
	if _, taken := r.byName[name]; taken {
		return ErrIdentityConflict
	}
	r.byName[name] = s
	r.order = append(r.order, name)
	return nil
}

// Release frees name. Releasing an unknown name is a no-op.
func (r *Registry) Release(name string) {
	if _, ok := r.byName[name]; !ok {
		return
	}
	delete(r.byName, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// ListActive returns the active identities in join order.
func (r *Registry) ListActive() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Count returns the number of active identities.
func (r *Registry) Count() int {
	return len(r.byName)
}
