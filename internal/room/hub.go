package room

import "sync"

// Hub manages all rooms on the server, keyed by name. Rooms live for the
// lifetime of the process; their paint logs are the only drawing state and
// are not persisted.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]*Room)}
}

// GetOrCreate returns the room with the given name, creating it empty on
// first use.
func (h *Hub) GetOrCreate(name string) *Room {
	h.mu.Lock()
	defer h.mu.Unlock()
	if r, ok := h.rooms[name]; ok {
		return r
	}
	r := New(name)
	h.rooms[name] = r
	return r
}

// Get returns the room with the given name, or nil when it does not exist.
func (h *Hub) Get(name string) *Room {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.rooms[name]
}
